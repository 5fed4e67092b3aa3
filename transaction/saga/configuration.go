package saga

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/RMF112018/Project-Controls-sub011/config"
	"github.com/RMF112018/Project-Controls-sub011/retry"
)

const (
	DefaultStepTimeout         = 2 * time.Minute
	DefaultCompensationTimeout = 2 * time.Minute
	DefaultAuditTimeout        = 30 * time.Second
)

// Configuration defines how the orchestrator bounds and retries the actions of steps.
type Configuration struct {
	// StepTimeout is the maximum duration of the forward action of a step. 0 means no limit.
	StepTimeout time.Duration `mapstructure:"step_timeout"`
	// CompensationTimeout is the maximum duration of a compensation attempt. 0 means no limit.
	CompensationTimeout time.Duration `mapstructure:"compensation_timeout"`
	// AuditTimeout is the maximum duration of an audit write.
	AuditTimeout      time.Duration                  `mapstructure:"audit_timeout"`
	CompensationRetry retry.RetryPolicyConfiguration `mapstructure:"compensation_retry"`
}

func (cfg *Configuration) Validate() error {
	err := config.ValidateEmbedded(cfg)
	if err != nil {
		return err
	}
	return config.WrapValidationError(validation.ValidateStruct(cfg,
		validation.Field(&cfg.StepTimeout, validation.Min(time.Duration(0))),
		validation.Field(&cfg.CompensationTimeout, validation.Min(time.Duration(0))),
		validation.Field(&cfg.AuditTimeout, validation.Min(time.Duration(0))),
	))
}

func DefaultConfiguration() *Configuration {
	return &Configuration{
		StepTimeout:         DefaultStepTimeout,
		CompensationTimeout: DefaultCompensationTimeout,
		AuditTimeout:        DefaultAuditTimeout,
		CompensationRetry:   *retry.DefaultCompensationRetryPolicyConfiguration(),
	}
}
