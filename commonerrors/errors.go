/*
 * Copyright (C) 2020-2022 Arm Limited or its affiliates and Contributors. All rights reserved.
 * SPDX-License-Identifier: Apache-2.0
 */

// Package commonerrors defines the error types shared by every package of the provisioning service.
// Errors are expressed as a sentinel type plus a reason i.e. `type: reason` so that they can be checked with
// errors.Is and also be persisted as text and restored later on.
package commonerrors

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	ErrNotImplemented = errors.New("not implemented")
	ErrNoLogger       = errors.New("missing logger")
	ErrNoLoggerSource = errors.New("missing logger source")
	ErrNoLogSource    = errors.New("missing log source")
	ErrUndefined      = errors.New("undefined")
	ErrTimeout        = errors.New("timeout")
	ErrLocked         = errors.New("locked")
	ErrNotFound       = errors.New("not found")
	ErrUnsupported    = errors.New("unsupported")
	ErrUnavailable    = errors.New("unavailable")
	ErrUnauthorised   = errors.New("unauthorised")
	ErrForbidden      = errors.New("forbidden")
	ErrUnknown        = errors.New("unknown")
	ErrInvalid        = errors.New("invalid")
	ErrConflict       = errors.New("conflict")
	ErrMarshalling    = errors.New("unserialisable")
	ErrCancelled      = errors.New("cancelled")
	ErrUnexpected     = errors.New("unexpected")
	ErrCondition      = errors.New("failed condition")
	ErrTooLarge       = errors.New("too large")
	ErrFailed         = errors.New("failed")
	ErrExpired        = errors.New("expired")
	ErrEOF            = errors.New("end of file")
)

var knownErrors = []error{
	ErrNotImplemented, ErrNoLogger, ErrNoLoggerSource, ErrNoLogSource, ErrUndefined, ErrTimeout, ErrLocked,
	ErrNotFound, ErrUnsupported, ErrUnavailable, ErrUnauthorised, ErrForbidden, ErrUnknown, ErrInvalid,
	ErrConflict, ErrMarshalling, ErrCancelled, ErrUnexpected, ErrCondition, ErrTooLarge, ErrFailed,
	ErrExpired, ErrEOF,
}

// Any determines whether the target error is of the same type as any of the errors `err`
func Any(target error, err ...error) bool {
	for _, e := range err {
		if errors.Is(e, target) || errors.Is(target, e) {
			return true
		}
	}
	return false
}

// None determines whether the target error is of none of the types of the errors `err`
func None(target error, err ...error) bool {
	for _, e := range err {
		if errors.Is(e, target) || errors.Is(target, e) {
			return false
		}
	}
	return true
}

// CorrespondTo determines whether an error description contains any of the descriptions provided (case insensitive).
func CorrespondTo(target error, description ...string) bool {
	if target == nil {
		return false
	}
	desc := strings.ToLower(target.Error())
	for i := range description {
		if strings.Contains(desc, strings.ToLower(description[i])) {
			return true
		}
	}
	return false
}

// New creates a new error of type `errorType` with a reason.
func New(errorType error, reason string) error {
	if errorType == nil {
		if reason == "" {
			return nil
		}
		return errors.New(reason)
	}
	if reason == "" {
		return errorType
	}
	return fmt.Errorf("%w%v %v", errorType, string(TypeReasonErrorSeparator), reason)
}

// Newf is similar to New but allows formatting the reason.
func Newf(errorType error, msgFormat string, args ...any) error {
	return New(errorType, fmt.Sprintf(msgFormat, args...))
}

// WrapError wraps an error `originalError` into an error of type `targetErrorType` and adds a reason.
// If `originalError` is already of type `targetErrorType`, the error is only given some more context.
func WrapError(targetErrorType, originalError error, message string) error {
	if originalError == nil {
		return New(targetErrorType, message)
	}
	if targetErrorType == nil || Any(originalError, targetErrorType) {
		if message == "" {
			return originalError
		}
		return fmt.Errorf("%v: %w", message, originalError)
	}
	if message == "" {
		return fmt.Errorf("%w%v %v", targetErrorType, string(TypeReasonErrorSeparator), originalError.Error())
	}
	return fmt.Errorf("%w%v %v: %v", targetErrorType, string(TypeReasonErrorSeparator), message, originalError.Error())
}

// WrapErrorf is similar to WrapError but allows formatting the message.
func WrapErrorf(targetErrorType, originalError error, msgFormat string, args ...any) error {
	return WrapError(targetErrorType, originalError, fmt.Sprintf(msgFormat, args...))
}

// UndefinedVariable returns an error stating that a variable is not defined.
func UndefinedVariable(variableName string) error {
	return Newf(ErrUndefined, "%v is not defined", variableName)
}

// Join joins errors together, discarding nil ones. If there is only one non nil error, it is returned as is.
func Join(errs ...error) error {
	var nonNil []error
	for i := range errs {
		if !IsEmpty(errs[i]) {
			nonNil = append(nonNil, errs[i])
		}
	}
	switch len(nonNil) {
	case 0:
		return nil
	case 1:
		return nonNil[0]
	default:
		return errors.Join(nonNil...)
	}
}

// Ignore returns nil if the error is of any of the types to ignore; otherwise the error is returned.
func Ignore(target error, ignore ...error) error {
	if Any(target, ignore...) {
		return nil
	}
	return target
}

// IsEmpty states whether an error is nil, including typed nil pointers hidden in the error interface.
func IsEmpty(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// ConvertContextError converts context errors into common errors.
func ConvertContextError(err error) error {
	if err == nil {
		return nil
	}
	if Any(err, ErrTimeout, ErrCancelled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return WrapError(ErrTimeout, err, "")
	}
	if errors.Is(err, context.Canceled) {
		return WrapError(ErrCancelled, err, "")
	}
	return err
}

// ErrFromContext returns the common error corresponding to the state of the context, if any.
func ErrFromContext(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	return ConvertContextError(ctx.Err())
}

func deserialiseCommonError(errStr string) (bool, error) {
	errStr = strings.ToLower(strings.TrimSpace(errStr))
	for i := range knownErrors {
		if errStr == knownErrors[i].Error() {
			return true, knownErrors[i]
		}
	}
	return false, nil
}
