/*
 * Copyright (C) 2020-2022 Arm Limited or its affiliates and Contributors. All rights reserved.
 * SPDX-License-Identifier: Apache-2.0
 */

// Package http provides the HTTP client used to talk to the collaboration platform.
// It is a thin wrapper over hashicorp's go-retryablehttp so that failed requests are retried according to a
// retry policy (no retry, basic retries, linear or exponential backoff) and `Retry-After` headers are honoured.
// For instance, to create a client which performs exponential backoff and authenticates with a bearer token:
// client := NewConfigurableRetryableOauthClientWithLogger(DefaultRobustHTTPClientConfigurationWithExponentialBackOff(), logger, token)
package http

import (
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

//go:generate go tool mockgen -destination=mock_test.go -package=$GOPACKAGE github.com/RMF112018/Project-Controls-sub011/$GOPACKAGE IClient,IRetryWaitPolicy

// IClient defines an HTTP client similar to http.Client but without shared state with other clients used in the same program.
// See https://github.com/hashicorp/go-cleanhttp for more details.
type IClient interface {
	io.Closer
	// Get is a convenience helper for doing simple GET requests.
	Get(url string) (*http.Response, error)
	// Post is a convenience method for doing simple POST requests.
	Post(url, contentType string, body interface{}) (*http.Response, error)
	// Put performs a PUT request.
	Put(url string, body interface{}) (*http.Response, error)
	// Delete performs a DELETE request.
	Delete(url string) (*http.Response, error)
	// Do performs a generic request.
	Do(req *http.Request) (*http.Response, error)
	// StandardClient returns a standard library *http.Client with a custom Transport layer.
	StandardClient() *http.Client
}

// IRetryWaitPolicy defines the policy which specifies how much wait/sleep should happen between retry attempts.
type IRetryWaitPolicy interface {
	// Apply determines the amount of time to wait before the next retry attempt.
	// the time will be comprised between the `min` and `max` value unless other information are retrieved from the server response e.g. `Retry-After` header.
	Apply(min, max time.Duration, attemptNum int, resp *http.Response) time.Duration
}

// IRetryableClient is a retryable client. It is a normal client with the additional method of extracting the underlying go-retryablehttp client so it can be used in libraries that use it
type IRetryableClient interface {
	IClient
	UnderlyingClient() *retryablehttp.Client
}
