/*
 * Copyright (C) 2020-2022 Arm Limited or its affiliates and Contributors. All rights reserved.
 * SPDX-License-Identifier: Apache-2.0
 */

// Package parallelisation provides helpers to sequence, bound and group the execution of functions.
package parallelisation

import (
	"context"
	"fmt"
	"time"

	"github.com/RMF112018/Project-Controls-sub011/commonerrors"
)

// RunWithContext runs an action and returns as soon as either the action completes or the context is done.
// An action which does not honour the context keeps running in the background but its result is discarded.
// A panic in the action is recovered and reported as an error of type commonerrors.ErrUnexpected.
func RunWithContext(ctx context.Context, action ContextualFunc) error {
	if err := DetermineContextError(ctx); err != nil {
		return err
	}
	channel := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				channel <- commonerrors.Newf(commonerrors.ErrUnexpected, "panic: %v", r)
			}
		}()
		channel <- action(ctx)
	}()
	select {
	case err := <-channel:
		return err
	case <-ctx.Done():
		return DetermineContextError(ctx)
	}
}

// RunActionWithTimeout runs an action with a timeout. See RunWithContext.
func RunActionWithTimeout(ctx context.Context, timeout time.Duration, action ContextualFunc) error {
	if timeout <= 0 {
		return RunWithContext(ctx, action)
	}
	tCtx, cancel := context.WithTimeoutCause(ctx, timeout, commonerrors.New(commonerrors.ErrTimeout, fmt.Sprintf("exceeded %v", timeout)))
	defer cancel()
	return RunWithContext(tCtx, action)
}
