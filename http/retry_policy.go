/*
 * Copyright (C) 2020-2022 Arm Limited or its affiliates and Contributors. All rights reserved.
 * SPDX-License-Identifier: Apache-2.0
 */
package http

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-http-utils/headers"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/RMF112018/Project-Controls-sub011/retry"
)

// RetryWaitPolicy holds what is common to all wait policies.
type RetryWaitPolicy struct {
	// ConsiderRetryAfter states whether the `Retry-After` header (https://developer.mozilla.org/en-US/docs/Web/HTTP/Headers/Retry-After) sent by the server in case of 429/503 HTTP errors takes precedence.
	ConsiderRetryAfter bool
}

func (p *RetryWaitPolicy) retryAfter(resp *http.Response) (time.Duration, bool) {
	if !p.ConsiderRetryAfter {
		return 0, false
	}
	return findRetryAfter(resp)
}

// BasicRetryPolicy waits the minimum time between attempts.
type BasicRetryPolicy struct {
	RetryWaitPolicy
}

func (p *BasicRetryPolicy) Apply(min, _ time.Duration, _ int, resp *http.Response) time.Duration {
	if sleep, found := p.retryAfter(resp); found {
		return sleep
	}
	return min
}

// LinearBackoffPolicy defines a linear backoff retry policy based on the attempt number and with jitter to
// prevent a thundering herd.
// It is similar to retryablehttp.LinearJitterBackoff.
type LinearBackoffPolicy struct {
	RetryWaitPolicy
}

func (p *LinearBackoffPolicy) Apply(min, max time.Duration, attemptNum int, resp *http.Response) time.Duration {
	if sleep, found := p.retryAfter(resp); found {
		return sleep
	}
	return retryablehttp.LinearJitterBackoff(min, max, attemptNum, resp)
}

// ExponentialBackoffPolicy defines an exponential backoff retry policy.
// It is the same as retryablehttp.DefaultBackoff although the `Retry-After` header is checked differently to accept dates as well as time.
type ExponentialBackoffPolicy struct {
	RetryWaitPolicy
}

func (p *ExponentialBackoffPolicy) Apply(min, max time.Duration, attemptNum int, resp *http.Response) time.Duration {
	if sleep, found := p.retryAfter(resp); found {
		return sleep
	}
	mult := math.Pow(2, float64(attemptNum)) * float64(min)
	sleep := time.Duration(mult)
	if float64(sleep) != mult || sleep > max {
		sleep = max
	}
	return sleep
}

// BackOffPolicyFactory generates a backoff policy based on configuration.
func BackOffPolicyFactory(cfg *retry.RetryPolicyConfiguration) IRetryWaitPolicy {
	if cfg == nil {
		return &BasicRetryPolicy{}
	}
	common := RetryWaitPolicy{ConsiderRetryAfter: !cfg.RetryAfterDisabled}
	switch {
	case !cfg.Enabled || !cfg.BackOffEnabled:
		return &BasicRetryPolicy{RetryWaitPolicy: common}
	case cfg.LinearBackOffEnabled:
		return &LinearBackoffPolicy{RetryWaitPolicy: common}
	default:
		return &ExponentialBackoffPolicy{RetryWaitPolicy: common}
	}
}

func findRetryAfter(resp *http.Response) (wait time.Duration, found bool) {
	if resp == nil {
		return
	}
	if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode != http.StatusServiceUnavailable {
		return
	}
	s, ok := resp.Header[headers.RetryAfter]
	if !ok || len(s) == 0 {
		return
	}
	retryAfter := s[0]
	if sleep, err := strconv.ParseInt(retryAfter, 10, 64); err == nil {
		if sleep < 0 {
			sleep = 0
		}
		wait = time.Second * time.Duration(sleep)
		found = true
		return
	}
	if afterTime, err := parseDate(retryAfter); err == nil {
		found = true
		if afterTime.After(time.Now()) {
			wait = time.Until(afterTime)
		} else {
			wait = time.Duration(0)
		}
	}
	return
}

func parseDate(retryAfter string) (parsedTime time.Time, err error) {
	parsedTime, err = http.ParseTime(retryAfter)
	if err == nil {
		return
	}
	extraFormats := []string{time.RFC1123, time.RFC1123Z, time.RFC3339, time.RFC3339Nano}
	for i := range extraFormats {
		parsedTime, err = time.Parse(extraFormats[i], retryAfter)
		if err == nil {
			return
		}
	}
	return
}
