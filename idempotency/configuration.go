package idempotency

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/RMF112018/Project-Controls-sub011/config"
)

// Configuration defines how tokens are validated and for how long they are reserved on admission.
type Configuration struct {
	MaxAge         time.Duration `mapstructure:"max_age"`
	ClockSkew      time.Duration `mapstructure:"clock_skew"`
	ReservationTTL time.Duration `mapstructure:"reservation_ttl"`
}

func (cfg *Configuration) Validate() error {
	return config.WrapValidationError(validation.ValidateStruct(cfg,
		validation.Field(&cfg.MaxAge, validation.Required, validation.Min(time.Second)),
		validation.Field(&cfg.ClockSkew, validation.Min(time.Duration(0))),
		validation.Field(&cfg.ReservationTTL, validation.Required, validation.Min(cfg.MaxAge)),
	))
}

// ValidationOptions returns the validation options corresponding to the configuration.
func (cfg *Configuration) ValidationOptions() []ValidationOption {
	return []ValidationOption{MaxAge(cfg.MaxAge), ClockSkew(cfg.ClockSkew)}
}

func DefaultConfiguration() *Configuration {
	return &Configuration{
		MaxAge:         DefaultMaxAge,
		ClockSkew:      DefaultClockSkew,
		ReservationTTL: DefaultMaxAge + DefaultClockSkew,
	}
}
