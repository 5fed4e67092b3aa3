/*
 * Copyright (C) 2020-2021 Arm Limited or its affiliates and Contributors. All rights reserved.
 * SPDX-License-Identifier: Apache-2.0
 */

// Package logs defines the loggers used by the provisioning service.
package logs

import "io"

type Loggers interface {
	io.Closer
	// Check checks whether the loggers are correctly defined or not.
	Check() error
	// SetLogSource sets the source of the log message e.g. related run, related project, etc.
	SetLogSource(source string) error
	// SetLoggerSource sets the source of the logger e.g. API, orchestrator, CLI.
	SetLoggerSource(source string) error
	// Log logs to the output logger.
	Log(output ...interface{})
	// LogError logs to the Error logger.
	LogError(err ...interface{})
}
