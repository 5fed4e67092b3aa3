package provisioning

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/spf13/viper"

	"github.com/RMF112018/Project-Controls-sub011/broadcast"
	"github.com/RMF112018/Project-Controls-sub011/config"
	httpclient "github.com/RMF112018/Project-Controls-sub011/http"
	"github.com/RMF112018/Project-Controls-sub011/idempotency"
	"github.com/RMF112018/Project-Controls-sub011/throttle"
	"github.com/RMF112018/Project-Controls-sub011/transaction/saga"
)

// EnvironmentVariablePrefix is the prefix of the environment variables configuring the service e.g. PROVISIONER_LISTEN_ADDRESS.
const EnvironmentVariablePrefix = "PROVISIONER"

const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
)

const (
	DefaultListenAddress   = ":8080"
	DefaultShutdownTimeout = 30 * time.Second
	DefaultTemplate        = "project-standard"
	DefaultSQLitePath      = "provisioner.db"
	DefaultLogLevel        = "info"
)

// CatalogConfiguration defines what the steps create.
type CatalogConfiguration struct {
	Lists                 []string `mapstructure:"lists"`
	SecurityGroupSuffixes []string `mapstructure:"security_group_suffixes"`
	DefaultTemplate       string   `mapstructure:"default_template"`
}

func (cfg *CatalogConfiguration) Validate() error {
	return config.WrapValidationError(validation.ValidateStruct(cfg,
		validation.Field(&cfg.Lists, validation.Required),
		validation.Field(&cfg.SecurityGroupSuffixes, validation.Required),
		validation.Field(&cfg.DefaultTemplate, validation.Required),
	))
}

func DefaultCatalogConfiguration() *CatalogConfiguration {
	return &CatalogConfiguration{
		Lists:                 []string{"Project Documents", "RFIs", "Submittals", "Change Orders", "Daily Logs"},
		SecurityGroupSuffixes: []string{"Owners", "Members", "Visitors"},
		DefaultTemplate:       DefaultTemplate,
	}
}

// PlatformConfiguration defines how to reach the collaboration platform.
type PlatformConfiguration struct {
	BaseURL     string `mapstructure:"base_url"`
	AccessToken string `mapstructure:"access_token"`
	// HubSiteURL overrides the hub site the platform reports.
	HubSiteURL string                             `mapstructure:"hub_site_url"`
	HTTP       httpclient.HTTPClientConfiguration `mapstructure:"http"`
}

func (cfg *PlatformConfiguration) Validate() error {
	err := config.ValidateEmbedded(cfg)
	if err != nil {
		return err
	}
	return config.WrapValidationError(validation.ValidateStruct(cfg,
		validation.Field(&cfg.BaseURL, validation.Required, is.URL),
		validation.Field(&cfg.AccessToken, validation.Required),
		validation.Field(&cfg.HubSiteURL, is.URL),
	))
}

func DefaultPlatformConfiguration() *PlatformConfiguration {
	return &PlatformConfiguration{
		HTTP: *httpclient.DefaultRobustHTTPClientConfigurationWithExponentialBackOff(),
	}
}

// StorageConfiguration defines where provisioning logs, audit entries and token reservations are kept.
type StorageConfiguration struct {
	Driver     string `mapstructure:"driver"`
	SQLitePath string `mapstructure:"sqlite_path"`
	// RedisAddress is the address of the Redis server reserving tokens. Tokens are reserved by the store if empty.
	RedisAddress string `mapstructure:"redis_address"`
}

func (cfg *StorageConfiguration) Validate() error {
	return config.WrapValidationError(validation.ValidateStruct(cfg,
		validation.Field(&cfg.Driver, validation.Required, validation.In(StorageMemory, StorageSQLite)),
		validation.Field(&cfg.SQLitePath, validation.When(cfg.Driver == StorageSQLite, validation.Required)),
	))
}

func DefaultStorageConfiguration() *StorageConfiguration {
	return &StorageConfiguration{
		Driver:     StorageSQLite,
		SQLitePath: DefaultSQLitePath,
	}
}

// ServiceConfiguration is the configuration of the provisioning service.
type ServiceConfiguration struct {
	ListenAddress   string                    `mapstructure:"listen_address"`
	ShutdownTimeout time.Duration             `mapstructure:"shutdown_timeout"`
	LogLevel        string                    `mapstructure:"log_level"`
	Platform        PlatformConfiguration     `mapstructure:"platform"`
	Catalog         CatalogConfiguration      `mapstructure:"catalog"`
	Saga            saga.Configuration        `mapstructure:"saga"`
	Tokens          idempotency.Configuration `mapstructure:"tokens"`
	Storage         StorageConfiguration      `mapstructure:"storage"`
	Throttle        throttle.Configuration    `mapstructure:"throttle"`
	Broadcast       broadcast.Configuration   `mapstructure:"broadcast"`
}

func (cfg *ServiceConfiguration) Validate() error {
	err := config.ValidateEmbedded(cfg)
	if err != nil {
		return err
	}
	return config.WrapValidationError(validation.ValidateStruct(cfg,
		validation.Field(&cfg.ListenAddress, validation.Required),
		validation.Field(&cfg.ShutdownTimeout, validation.Required, validation.Min(time.Second)),
		validation.Field(&cfg.LogLevel, validation.Required, validation.In("debug", "info", "warn", "error")),
	))
}

func DefaultServiceConfiguration() *ServiceConfiguration {
	return &ServiceConfiguration{
		ListenAddress:   DefaultListenAddress,
		ShutdownTimeout: DefaultShutdownTimeout,
		LogLevel:        DefaultLogLevel,
		Platform:        *DefaultPlatformConfiguration(),
		Catalog:         *DefaultCatalogConfiguration(),
		Saga:            *saga.DefaultConfiguration(),
		Tokens:          *idempotency.DefaultConfiguration(),
		Storage:         *DefaultStorageConfiguration(),
		Throttle:        *throttle.DefaultConfiguration(),
		Broadcast:       *broadcast.DefaultConfiguration(),
	}
}

// LoadServiceConfiguration loads the configuration from the environment (variables prefixed with
// EnvironmentVariablePrefix and `.env` file) on top of the default configuration.
func LoadServiceConfiguration() (*ServiceConfiguration, error) {
	return LoadServiceConfigurationFromViper(viper.New())
}

// LoadServiceConfigurationFromViper is similar to LoadServiceConfiguration but reuses a viper session, for instance
// one command line flags were bound to using config.BindFlagToEnv.
func LoadServiceConfigurationFromViper(session *viper.Viper) (*ServiceConfiguration, error) {
	cfg := &ServiceConfiguration{}
	if err := config.LoadFromViper(session, EnvironmentVariablePrefix, cfg, DefaultServiceConfiguration()); err != nil {
		return nil, err
	}
	return cfg, nil
}
