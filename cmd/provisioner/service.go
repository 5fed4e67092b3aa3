package main

import (
	"context"
	"io"
	"net/http"

	"github.com/go-logr/logr"

	"github.com/RMF112018/Project-Controls-sub011/api"
	"github.com/RMF112018/Project-Controls-sub011/broadcast"
	"github.com/RMF112018/Project-Controls-sub011/commonerrors"
	"github.com/RMF112018/Project-Controls-sub011/idempotency"
	"github.com/RMF112018/Project-Controls-sub011/idempotency/redisreserver"
	"github.com/RMF112018/Project-Controls-sub011/logs"
	"github.com/RMF112018/Project-Controls-sub011/logstore/memory"
	"github.com/RMF112018/Project-Controls-sub011/logstore/sqlite"
	"github.com/RMF112018/Project-Controls-sub011/parallelisation"
	"github.com/RMF112018/Project-Controls-sub011/platform"
	"github.com/RMF112018/Project-Controls-sub011/provisioning"
	"github.com/RMF112018/Project-Controls-sub011/throttle"
	"github.com/RMF112018/Project-Controls-sub011/transaction/saga"
)

type logStore interface {
	saga.ILogStore
	saga.IAuditSink
	idempotency.IReserver
	io.Closer
}

// service holds the components of a provisioning service.
type service struct {
	cfg          *provisioning.ServiceConfiguration
	logger       logr.Logger
	store        logStore
	reserver     idempotency.IReserver
	closers      *parallelisation.CloserStore
	tokens       *idempotency.TokenService
	hub          *broadcast.Hub
	orchestrator *saga.Orchestrator
}

func openStore(ctx context.Context, cfg *provisioning.StorageConfiguration) (logStore, error) {
	switch cfg.Driver {
	case provisioning.StorageMemory:
		return memory.NewStore(), nil
	case provisioning.StorageSQLite:
		return sqlite.Open(ctx, cfg.SQLitePath)
	default:
		return nil, commonerrors.Newf(commonerrors.ErrUnsupported, "unsupported storage driver %q", cfg.Driver)
	}
}

func newTokenService(cfg *provisioning.ServiceConfiguration) *idempotency.TokenService {
	return idempotency.NewTokenService(idempotency.WithValidationOptions(cfg.Tokens.ValidationOptions()...))
}

func newService(ctx context.Context, cfg *provisioning.ServiceConfiguration, loggers logs.Loggers, logger logr.Logger) (s *service, err error) {
	if cfg == nil {
		return nil, commonerrors.UndefinedVariable("service configuration")
	}
	store, err := openStore(ctx, &cfg.Storage)
	if err != nil {
		return nil, err
	}
	s = &service{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		reserver: store,
		closers:  parallelisation.NewCloserStoreWithOptions(parallelisation.ExecuteAll, parallelisation.Parallel, parallelisation.JoinErrors),
		tokens:   newTokenService(cfg),
		hub:      broadcast.NewHub(&cfg.Broadcast, logger.WithName("broadcast")),
	}
	s.closers.RegisterCloser(s.hub, store)
	defer func() {
		if err != nil {
			_ = s.close(context.WithoutCancel(ctx))
			s = nil
		}
	}()
	if cfg.Storage.RedisAddress != "" {
		r := redisreserver.NewFromAddress(cfg.Storage.RedisAddress, redisreserver.DefaultNamespace)
		s.reserver = r
		s.closers.RegisterCloser(r)
	}

	client, err := platform.NewClient(&cfg.Platform, logger.WithName("platform"))
	if err != nil {
		return
	}
	catalog, err := provisioning.NewCatalog(client, &cfg.Catalog)
	if err != nil {
		return
	}
	guard, err := provisioning.NewListThresholdGuard(client, &cfg.Throttle)
	if err != nil {
		return
	}
	auditSink, err := newAuditSink(store, loggers)
	if err != nil {
		return
	}
	s.orchestrator, err = saga.NewOrchestrator(catalog, client, store,
		saga.WithLogger(logger.WithName("saga")),
		saga.WithAuditSink(auditSink),
		saga.WithStatusBroadcaster(s.hub.Broadcast),
		saga.WithRateLimiter(throttle.NewRateLimiter(&cfg.Throttle)),
		saga.WithListThresholdGuard(guard),
		saga.WithTokenService(s.tokens),
		saga.WithConfiguration(&cfg.Saga),
	)
	return
}

// handler returns the HTTP API of the service.
func (s *service) handler() (http.Handler, error) {
	h, err := api.NewHandler(s.orchestrator, s.store,
		api.WithTokenService(s.tokens),
		api.WithAdmission(idempotency.NewAdmission(s.tokens, s.reserver, s.cfg.Tokens.ReservationTTL)),
		api.WithEvents(s.hub),
		api.WithLogger(s.logger.WithName("api")),
	)
	if err != nil {
		return nil, err
	}
	return api.NewRouter(h), nil
}

// close waits for pending audit writes and releases every resource of the service.
func (s *service) close(ctx context.Context) error {
	var errs []error
	if s.orchestrator != nil {
		errs = append(errs, s.orchestrator.Close(ctx))
	}
	errs = append(errs, s.closers.Close())
	return commonerrors.Join(errs...)
}

// auditSinks records audit entries in every sink, so that entries are both persisted and logged.
type auditSinks []saga.IAuditSink

func newAuditSink(store saga.IAuditSink, loggers logs.Loggers) (saga.IAuditSink, error) {
	if loggers == nil {
		return store, nil
	}
	logged, err := saga.NewLoggersAuditSink(loggers)
	if err != nil {
		return nil, err
	}
	return auditSinks{store, logged}, nil
}

func (s auditSinks) LogAudit(ctx context.Context, entry saga.AuditEntry) error {
	errs := make([]error, 0, len(s))
	for i := range s {
		errs = append(errs, s[i].LogAudit(ctx, entry))
	}
	return commonerrors.Join(errs...)
}
