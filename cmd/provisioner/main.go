// Command provisioner runs the project provisioning service and its maintenance commands.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/RMF112018/Project-Controls-sub011/commonerrors"
	"github.com/RMF112018/Project-Controls-sub011/config"
	"github.com/RMF112018/Project-Controls-sub011/logs"
	"github.com/RMF112018/Project-Controls-sub011/provisioning"
	"github.com/RMF112018/Project-Controls-sub011/transaction/saga"
)

const (
	commandName       = "provisioner"
	readHeaderTimeout = 10 * time.Second
)

const usage = `provisioner - project provisioning service

Usage:
  provisioner <command> [flags]

Commands:
  serve             Serve the provisioning API
  rollback          Compensate every completed step of a run
  validate-token    Check whether an idempotency token may be used for a new run
  help              Show this help message

Every setting can also be set with environment variables prefixed with PROVISIONER_ (or in a .env file)
e.g. PROVISIONER_PLATFORM_BASE_URL, PROVISIONER_PLATFORM_ACCESS_TOKEN or PROVISIONER_STORAGE_DRIVER.
`

// flagEnvironmentVariables maps the flags shared by all commands to the environment variables they override.
var flagEnvironmentVariables = map[string]string{
	"log-level":         "LOG_LEVEL",
	"listen-address":    "LISTEN_ADDRESS",
	"platform-base-url": "PLATFORM_BASE_URL",
	"storage-driver":    "STORAGE_DRIVER",
	"sqlite-path":       "STORAGE_SQLITE_PATH",
	"redis-address":     "STORAGE_REDIS_ADDRESS",
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout)
	stop()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%v: %v\n", commandName, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		_, _ = fmt.Fprint(out, usage)
		return commonerrors.New(commonerrors.ErrInvalid, "a command is required")
	}
	switch args[0] {
	case "serve":
		return serve(ctx, args[1:])
	case "rollback":
		return rollback(ctx, args[1:], out)
	case "validate-token":
		return validateToken(ctx, args[1:], out)
	case "help", "-h", "--help":
		_, _ = fmt.Fprint(out, usage)
		return nil
	default:
		_, _ = fmt.Fprint(out, usage)
		return commonerrors.Newf(commonerrors.ErrUnsupported, "unknown command %q", args[0])
	}
}

func newFlagSet(name string) *pflag.FlagSet {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("listen-address", "", "address the API listens on")
	flags.String("platform-base-url", "", "base URL of the collaboration platform API")
	flags.String("storage-driver", "", "where provisioning logs are kept (memory, sqlite)")
	flags.String("sqlite-path", "", "path of the SQLite database")
	flags.String("redis-address", "", "address of the Redis server reserving idempotency tokens")
	return flags
}

// loadConfiguration parses the command line and loads the configuration. Flags take precedence over the environment.
func loadConfiguration(flags *pflag.FlagSet, args []string) (*provisioning.ServiceConfiguration, error) {
	if err := flags.Parse(args); err != nil {
		return nil, commonerrors.WrapError(commonerrors.ErrInvalid, err, "invalid command line")
	}
	session := viper.New()
	for name, envVar := range flagEnvironmentVariables {
		if err := config.BindFlagToEnv(session, provisioning.EnvironmentVariablePrefix, envVar, flags.Lookup(name)); err != nil {
			return nil, commonerrors.WrapErrorf(commonerrors.ErrUnexpected, err, "could not bind flag %v", name)
		}
	}
	return provisioning.LoadServiceConfigurationFromViper(session)
}

func newLogger(level string) (logr.Logger, logs.Loggers, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return logr.Discard(), nil, commonerrors.WrapError(commonerrors.ErrInvalid, err, "invalid log level")
	}
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)
	zapL, err := zapCfg.Build()
	if err != nil {
		return logr.Discard(), nil, commonerrors.WrapError(commonerrors.ErrUnexpected, err, "could not create logger")
	}
	loggers, err := logs.NewZapLogger(zapL, commandName)
	if err != nil {
		return logr.Discard(), nil, err
	}
	return zapr.NewLogger(zapL), loggers, nil
}

func serve(ctx context.Context, args []string) (err error) {
	cfg, err := loadConfiguration(newFlagSet("serve"), args)
	if err != nil {
		return
	}
	logger, loggers, err := newLogger(cfg.LogLevel)
	if err != nil {
		return
	}
	defer func() { _ = loggers.Close() }()

	svc, err := newService(ctx, cfg, loggers, logger)
	if err != nil {
		return
	}
	handler, err := svc.handler()
	if err != nil {
		_ = svc.close(context.WithoutCancel(ctx))
		return
	}
	server := &http.Server{
		Addr:              cfg.ListenAddress,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("provisioning service listening", "address", cfg.ListenAddress, "storage", cfg.Storage.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return commonerrors.WrapError(commonerrors.ErrUnavailable, err, "server failed")
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
		defer cancel()
		return commonerrors.Join(server.Shutdown(shutdownCtx), svc.close(shutdownCtx))
	})
	err = g.Wait()
	if err != nil {
		logger.Error(err, "provisioning service stopped")
	}
	return
}

func rollback(ctx context.Context, args []string, out io.Writer) (err error) {
	flags := newFlagSet("rollback")
	project := flags.String("project", "", "code of the project the run belongs to")
	token := flags.String("token", "", "idempotency token of the run")
	cfg, err := loadConfiguration(flags, args)
	if err != nil {
		return
	}
	if *project == "" || *token == "" {
		return commonerrors.New(commonerrors.ErrUndefined, "both --project and --token are required")
	}
	logger, loggers, err := newLogger(cfg.LogLevel)
	if err != nil {
		return
	}
	defer func() { _ = loggers.Close() }()

	svc, err := newService(ctx, cfg, loggers, logger)
	if err != nil {
		return
	}
	defer func() { err = commonerrors.Join(err, svc.close(context.WithoutCancel(ctx))) }()

	results, err := svc.orchestrator.Rollback(ctx, *project, *token)
	if err != nil {
		return
	}
	if err = writeJSON(out, results); err != nil {
		return
	}
	failed := 0
	for i := range results {
		if !results[i].Success {
			failed++
		}
	}
	if failed > 0 {
		err = commonerrors.Newf(commonerrors.ErrUnexpected, "%v of %v compensations failed", failed, len(results))
	}
	return
}

func validateToken(ctx context.Context, args []string, out io.Writer) (err error) {
	flags := newFlagSet("validate-token")
	project := flags.String("project", "", "code of the project the token is meant for")
	token := flags.String("token", "", "idempotency token to validate")
	cfg, err := loadConfiguration(flags, args)
	if err != nil {
		return
	}
	if *project == "" {
		return commonerrors.New(commonerrors.ErrUndefined, "--project is required")
	}
	store, err := openStore(ctx, &cfg.Storage)
	if err != nil {
		return
	}
	defer func() { err = commonerrors.Join(err, store.Close()) }()

	runs, err := store.ListProvisioningLogs(ctx, *project)
	if err != nil {
		return
	}
	result := newTokenService(cfg).Validate(*token, *project, saga.RunReferences(runs))
	if err = writeJSON(out, result); err != nil {
		return
	}
	err = result.Err()
	return
}

func writeJSON(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return commonerrors.WrapError(commonerrors.ErrMarshalling, err, "could not write output")
	}
	return nil
}
