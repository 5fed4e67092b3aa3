/*
 * Copyright (C) 2020-2021 Arm Limited or its affiliates and Contributors. All rights reserved.
 * SPDX-License-Identifier: Apache-2.0
 */
package logs

import (
	"log"

	"github.com/RMF112018/Project-Controls-sub011/commonerrors"
)

// GenericLoggers defines loggers based on standard library loggers.
type GenericLoggers struct {
	Output *log.Logger
	Error  *log.Logger
}

// Check checks whether the loggers are correctly defined or not.
func (l *GenericLoggers) Check() error {
	if l.Error == nil || l.Output == nil {
		return commonerrors.ErrNoLogger
	}
	return nil
}

func (l *GenericLoggers) SetLogSource(_ string) error {
	return nil
}

func (l *GenericLoggers) SetLoggerSource(_ string) error {
	return nil
}

// Log logs to the output logger.
func (l *GenericLoggers) Log(output ...interface{}) {
	l.Output.Println(output...)
}

// LogError logs to the Error logger.
func (l *GenericLoggers) LogError(err ...interface{}) {
	l.Error.Println(err...)
}

// Close closes the logger
func (l *GenericLoggers) Close() error {
	return nil
}
