/*
 * Copyright (C) 2020-2022 Arm Limited or its affiliates and Contributors. All rights reserved.
 * SPDX-License-Identifier: Apache-2.0
 */
package logs

import (
	"fmt"
	"log"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/sasha-s/go-deadlock"

	"github.com/RMF112018/Project-Controls-sub011/commonerrors"
)

const (
	KeyLogSource    = "source"
	KeyLoggerSource = "logger-source"
)

type logrLogger struct {
	mu     deadlock.RWMutex
	logger logr.Logger
	closeF func() error
}

func (l *logrLogger) Close() error {
	if l.closeF == nil {
		return nil
	}
	return l.closeF()
}

// Check always succeeds as a zero logr.Logger discards everything.
func (l *logrLogger) Check() error {
	if l == nil {
		return commonerrors.ErrNoLogger
	}
	return nil
}

func (l *logrLogger) get() logr.Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.logger
}

func (l *logrLogger) SetLogSource(source string) error {
	if strings.TrimSpace(source) == "" {
		return commonerrors.ErrNoLogSource
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger = l.logger.WithValues(KeyLogSource, source)
	return nil
}

func (l *logrLogger) SetLoggerSource(source string) error {
	if strings.TrimSpace(source) == "" {
		return commonerrors.ErrNoLoggerSource
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger = l.logger.WithName(source).WithValues(KeyLoggerSource, source)
	return nil
}

func (l *logrLogger) Log(output ...interface{}) {
	l.get().Info(strings.TrimSpace(fmt.Sprintln(output...)))
}

func (l *logrLogger) LogError(err ...interface{}) {
	var errs []error
	var rest []interface{}
	for i := range err {
		if e, ok := err[i].(error); ok && e != nil {
			errs = append(errs, e)
			continue
		}
		if err[i] != nil {
			rest = append(rest, err[i])
		}
	}
	l.get().Error(commonerrors.Join(errs...), strings.TrimSpace(fmt.Sprintln(rest...)))
}

// NewLogrLogger creates loggers based on a logr implementation (https://github.com/go-logr/logr)
func NewLogrLogger(logrImpl logr.Logger, loggerSource string) (Loggers, error) {
	return NewLogrLoggerWithClose(logrImpl, loggerSource, nil)
}

// NewLogrLoggerWithClose is similar to NewLogrLogger but also calls closeFunc when the loggers are closed.
func NewLogrLoggerWithClose(logrImpl logr.Logger, loggerSource string, closeFunc func() error) (loggers Loggers, err error) {
	loggers = &logrLogger{logger: logrImpl, closeF: closeFunc}
	err = loggers.SetLoggerSource(loggerSource)
	return
}

// NewLogrLoggerFromLoggers converts loggers into a logr.Logger
func NewLogrLoggerFromLoggers(loggers Loggers) logr.Logger {
	return stdr.New(log.New(&loggersWriter{loggers: loggers}, "", 0))
}

type loggersWriter struct {
	loggers Loggers
}

func (w *loggersWriter) Write(p []byte) (int, error) {
	msg := strings.TrimSpace(string(p))
	if strings.Contains(msg, `"error"=`) {
		w.loggers.LogError(msg)
	} else {
		w.loggers.Log(msg)
	}
	return len(p), nil
}
