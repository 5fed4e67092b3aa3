/*
 * Copyright (C) 2020-2022 Arm Limited or its affiliates and Contributors. All rights reserved.
 * SPDX-License-Identifier: Apache-2.0
 */
package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-logr/logr"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/oauth2"

	"github.com/RMF112018/Project-Controls-sub011/commonerrors"
)

// RetryableClient is an http client which will retry failed requests according to the retry configuration.
type RetryableClient struct {
	client *retryablehttp.Client
}

// NewRetryableClient creates a new http client which will retry failed requests with exponential backoff.
func NewRetryableClient() IRetryableClient {
	return NewConfigurableRetryableClient(DefaultRobustHTTPClientConfigurationWithExponentialBackOff())
}

// NewConfigurableRetryableClient creates a new http client which will retry failed requests according to the retry configuration (e.g. no retry, basic retry policy, exponential backoff).
func NewConfigurableRetryableClient(cfg *HTTPClientConfiguration) IRetryableClient {
	return NewConfigurableRetryableClientWithLogger(cfg, logr.Logger{})
}

// NewConfigurableRetryableClientWithLogger creates a new http client which will retry failed requests according to the retry configuration (e.g. no retry, basic retry policy, exponential backoff).
// It is also possible to supply a logger for debug purposes
func NewConfigurableRetryableClientWithLogger(cfg *HTTPClientConfiguration, logger logr.Logger) IRetryableClient {
	return NewConfigurableRetryableClientWithLoggerFromClient(cfg, logger, cleanhttp.DefaultPooledClient())
}

// NewConfigurableRetryableOauthClientWithLogger creates a new http client which will retry failed requests according to the retry configuration with the authorisation header set to the bearer token.
// It is also possible to supply a logger for debug purposes
func NewConfigurableRetryableOauthClientWithLogger(cfg *HTTPClientConfiguration, logger logr.Logger, token string) IRetryableClient {
	return NewConfigurableRetryableOauthClientWithLoggerAndCustomClient(cfg, nil, logger, token)
}

// NewConfigurableRetryableOauthClientWithLoggerAndCustomClient is similar to NewConfigurableRetryableOauthClientWithLogger
// but the underlying client used by the oauth client can be supplied via client.
func NewConfigurableRetryableOauthClientWithLoggerAndCustomClient(cfg *HTTPClientConfiguration, client *http.Client, logger logr.Logger, token string) IRetryableClient {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token, TokenType: "Bearer"},
	)

	if client == nil {
		client = cleanhttp.DefaultPooledClient()
	}
	if cfg != nil {
		if t, ok := client.Transport.(*http.Transport); ok {
			setTransportConfiguration(cfg, t)
		}
	}

	oauthClientCtx := context.WithValue(context.Background(), oauth2.HTTPClient, client)
	tc := oauth2.NewClient(oauthClientCtx, ts)
	if cfg != nil {
		tc.Timeout = cfg.RequestTimeout
	}

	return NewConfigurableRetryableClientWithLoggerFromClient(cfg, logger, tc)
}

// NewConfigurableRetryableClientWithLoggerFromClient creates a new http client which will retry failed requests according to the retry configuration (e.g. no retry, basic retry policy, exponential backoff).
// It is also possible to supply a logger for debug purposes as well as a custom client if you need an authenticated client
func NewConfigurableRetryableClientWithLoggerFromClient(cfg *HTTPClientConfiguration, logger logr.Logger, client *http.Client) IRetryableClient {
	if cfg == nil {
		cfg = DefaultHTTPClientConfiguration()
	}
	if client == nil {
		client = cleanhttp.DefaultPooledClient()
	}
	if t, ok := client.Transport.(*http.Transport); ok {
		setTransportConfiguration(cfg, t)
	}
	if client.Timeout == 0 {
		client.Timeout = cfg.RequestTimeout
	}
	retryMax := 0
	if cfg.RetryPolicy.Enabled {
		retryMax = cfg.RetryPolicy.RetryMax
	}
	subClient := &retryablehttp.Client{
		HTTPClient:   client,
		Logger:       newLogger(logger),
		RetryWaitMin: cfg.RetryPolicy.RetryWaitMin,
		RetryWaitMax: cfg.RetryPolicy.RetryWaitMax,
		RetryMax:     retryMax,
		CheckRetry:   retryablehttp.DefaultRetryPolicy,
		Backoff:      BackOffPolicyFactory(&cfg.RetryPolicy).Apply,
		ErrorHandler: retryablehttp.PassthroughErrorHandler,
	}
	return &RetryableClient{client: subClient}
}

func (c *RetryableClient) Post(url, contentType string, body interface{}) (*http.Response, error) {
	return c.client.Post(url, contentType, body)
}

func (c *RetryableClient) StandardClient() *http.Client {
	return c.client.StandardClient()
}

func (c *RetryableClient) UnderlyingClient() *retryablehttp.Client {
	return c.client
}

func (c *RetryableClient) Get(url string) (*http.Response, error) {
	return c.client.Get(url)
}

func (c *RetryableClient) Do(req *http.Request) (*http.Response, error) {
	r, err := retryablehttp.FromRequest(req)
	if err != nil {
		return nil, commonerrors.WrapError(commonerrors.ErrInvalid, err, "could not build retryable request")
	}
	return c.client.Do(r)
}

func (c *RetryableClient) Delete(url string) (*http.Response, error) {
	return c.doRetriableRequest(http.MethodDelete, url, nil)
}

func (c *RetryableClient) Put(url string, body interface{}) (*http.Response, error) {
	return c.doRetriableRequest(http.MethodPut, url, body)
}

func (c *RetryableClient) Close() error {
	c.client.HTTPClient.CloseIdleConnections()
	return nil
}

func (c *RetryableClient) doRetriableRequest(method, url string, body interface{}) (*http.Response, error) {
	req, err := retryablehttp.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}
	return c.client.Do(req)
}

type leveledLogger struct {
	logger logr.Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(commonerrors.ErrUnexpected, msg, keysAndValues...)
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keysAndValues...)
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.V(1).Info(msg, keysAndValues...)
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.V(0).Info(fmt.Sprintf("WARNING: %v", msg), keysAndValues...)
}

func newLogger(logger logr.Logger) retryablehttp.LeveledLogger {
	if logger.IsZero() {
		return nil
	}
	return &leveledLogger{
		logger: logger,
	}
}
