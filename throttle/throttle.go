// Package throttle bounds the rate of calls made to the collaboration platform and guards list operations against
// the list size thresholds of the platform.
package throttle

//go:generate go tool mockgen -destination=mock_test.go -package=$GOPACKAGE github.com/RMF112018/Project-Controls-sub011/$GOPACKAGE IListCounter

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/time/rate"

	"github.com/RMF112018/Project-Controls-sub011/commonerrors"
	"github.com/RMF112018/Project-Controls-sub011/config"
)

const (
	DefaultRequestsPerSecond = 10
	DefaultBurst             = 5
	// DefaultListThreshold is the number of items above which the platform throttles list queries.
	DefaultListThreshold = 5000
	DefaultLeadList      = "Leads"
)

type Configuration struct {
	// RequestsPerSecond is the rate of platform calls allowed. 0 disables rate limiting.
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
	// ListThreshold is the number of items a list may hold before steps querying it are flagged. 0 disables the guard.
	ListThreshold int    `mapstructure:"list_threshold"`
	LeadList      string `mapstructure:"lead_list"`
}

func (cfg *Configuration) Validate() error {
	return config.WrapValidationError(validation.ValidateStruct(cfg,
		validation.Field(&cfg.RequestsPerSecond, validation.Min(0.0)),
		validation.Field(&cfg.Burst, validation.When(cfg.RequestsPerSecond > 0, validation.Required, validation.Min(1))),
		validation.Field(&cfg.ListThreshold, validation.Min(0)),
		validation.Field(&cfg.LeadList, validation.When(cfg.ListThreshold > 0, validation.Required)),
	))
}

func DefaultConfiguration() *Configuration {
	return &Configuration{
		RequestsPerSecond: DefaultRequestsPerSecond,
		Burst:             DefaultBurst,
		ListThreshold:     DefaultListThreshold,
		LeadList:          DefaultLeadList,
	}
}

// RateLimiter is a token bucket limiter shared by all the runs of a service.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter returns a limiter corresponding to the configuration. If rate limiting is disabled, every call is allowed.
func NewRateLimiter(cfg *Configuration) *RateLimiter {
	if cfg == nil || cfg.RequestsPerSecond <= 0 {
		return &RateLimiter{limiter: rate.NewLimiter(rate.Inf, 0)}
	}
	return &RateLimiter{limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), max(cfg.Burst, 1))}
}

// Wait blocks until a call is allowed or ctx is done.
func (l *RateLimiter) Wait(ctx context.Context) error {
	if err := commonerrors.ErrFromContext(ctx); err != nil {
		return err
	}
	err := l.limiter.Wait(ctx)
	if err == nil {
		return nil
	}
	if cErr := commonerrors.ErrFromContext(ctx); cErr != nil {
		return cErr
	}
	// The limiter fails without waiting when the delay would exceed the deadline of ctx.
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return commonerrors.WrapError(commonerrors.ErrTimeout, err, "")
	}
	return commonerrors.WrapError(commonerrors.ErrUnavailable, err, "")
}
