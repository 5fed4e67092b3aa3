/*
 * Copyright (C) 2020-2021 Arm Limited or its affiliates and Contributors. All rights reserved.
 * SPDX-License-Identifier: Apache-2.0
 */
package http

import (
	"runtime"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/RMF112018/Project-Controls-sub011/config"
	"github.com/RMF112018/Project-Controls-sub011/retry"
)

type HTTPClientConfiguration struct {
	MaxConnsPerHost       int                            `mapstructure:"max_connections_per_host"`
	MaxIdleConns          int                            `mapstructure:"max_idle_connections"`
	MaxIdleConnsPerHost   int                            `mapstructure:"max_idle_connections_per_host"`
	IdleConnTimeout       time.Duration                  `mapstructure:"timeout_idle_connection"`
	TLSHandshakeTimeout   time.Duration                  `mapstructure:"timeout_tls_handshake"`
	ExpectContinueTimeout time.Duration                  `mapstructure:"timeout_expect_continue"`
	RequestTimeout        time.Duration                  `mapstructure:"timeout_request"`
	RetryPolicy           retry.RetryPolicyConfiguration `mapstructure:"retry_policy"`
}

func (cfg *HTTPClientConfiguration) Validate() error {
	// Validate Embedded Structs
	err := config.ValidateEmbedded(cfg)
	if err != nil {
		return err
	}

	return config.WrapValidationError(validation.ValidateStruct(cfg,
		validation.Field(&cfg.MaxConnsPerHost, validation.Min(0)),
		validation.Field(&cfg.MaxIdleConns, validation.Min(0)),
		validation.Field(&cfg.MaxIdleConnsPerHost, validation.Min(0), validation.Max(cfg.MaxIdleConns)),
		validation.Field(&cfg.IdleConnTimeout, validation.Required),
		validation.Field(&cfg.RequestTimeout, validation.Min(time.Duration(0))),
	))
}

// DefaultHTTPClientConfiguration uses default values similar to https://github.com/hashicorp/go-cleanhttp/blob/6d9e2ac5d828e5f8594b97f88c4bde14a67bb6d2/cleanhttp.go#L23
func DefaultHTTPClientConfiguration() *HTTPClientConfiguration {
	return &HTTPClientConfiguration{
		MaxConnsPerHost:       0,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   runtime.GOMAXPROCS(0) + 1,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		RequestTimeout:        30 * time.Second,
		RetryPolicy:           *retry.DefaultNoRetryPolicyConfiguration(),
	}
}

// DefaultRobustHTTPClientConfiguration returns a configuration with basic retries.
func DefaultRobustHTTPClientConfiguration() *HTTPClientConfiguration {
	cfg := DefaultHTTPClientConfiguration()
	cfg.RetryPolicy = *retry.DefaultRobustRetryPolicyConfiguration()
	return cfg
}

// DefaultRobustHTTPClientConfigurationWithExponentialBackOff returns a configuration performing exponential backoff and honouring `Retry-After` headers.
func DefaultRobustHTTPClientConfigurationWithExponentialBackOff() *HTTPClientConfiguration {
	cfg := DefaultHTTPClientConfiguration()
	cfg.RetryPolicy = *retry.DefaultExponentialBackoffRetryPolicyConfiguration()
	return cfg
}

// DefaultRobustHTTPClientConfigurationWithLinearBackOff returns a configuration performing linear backoff.
func DefaultRobustHTTPClientConfigurationWithLinearBackOff() *HTTPClientConfiguration {
	cfg := DefaultHTTPClientConfiguration()
	cfg.RetryPolicy = *retry.DefaultLinearBackoffRetryPolicyConfiguration()
	return cfg
}
