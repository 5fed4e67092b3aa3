// Package memory keeps provisioning logs, audit entries and token reservations in memory. It suits tests and single
// instance deployments whose history does not need to survive a restart.
package memory

import (
	"context"
	"time"

	"github.com/sasha-s/go-deadlock"

	"github.com/RMF112018/Project-Controls-sub011/commonerrors"
	"github.com/RMF112018/Project-Controls-sub011/idempotency"
	"github.com/RMF112018/Project-Controls-sub011/parallelisation"
	"github.com/RMF112018/Project-Controls-sub011/transaction/saga"
)

var (
	_ saga.ILogStore        = &Store{}
	_ saga.IAuditSink       = &Store{}
	_ idempotency.IReserver = &Store{}
)

type reservation struct {
	projectCode string
	expiresAt   time.Time
}

type Store struct {
	mu           deadlock.RWMutex
	logs         map[string]*saga.ProvisioningLog
	tokens       []string
	audit        []saga.AuditEntry
	reservations map[string]reservation
	clock        idempotency.Clock
}

type Option func(*Store)

func WithClock(clock idempotency.Clock) Option {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		logs:         map[string]*saga.ProvisioningLog{},
		reservations: map[string]reservation{},
		clock:        idempotency.RealClock(),
	}
	for i := range opts {
		opts[i](s)
	}
	return s
}

func (s *Store) UpdateProvisioningLog(ctx context.Context, projectCode string, update saga.ProvisioningLogUpdate) error {
	if err := parallelisation.DetermineContextError(ctx); err != nil {
		return err
	}
	if update.IdempotencyToken == nil || *update.IdempotencyToken == "" {
		return commonerrors.UndefinedVariable("idempotency token")
	}
	token := *update.IdempotencyToken
	s.mu.Lock()
	defer s.mu.Unlock()
	log, found := s.logs[token]
	if !found {
		log = &saga.ProvisioningLog{}
		s.logs[token] = log
		s.tokens = append(s.tokens, token)
	} else if projectCode != "" && log.ProjectCode != projectCode {
		return commonerrors.Newf(commonerrors.ErrConflict, "token %v belongs to project %v", token, log.ProjectCode)
	}
	log.Apply(projectCode, update, s.clock.Now().UTC())
	return nil
}

func (s *Store) GetProvisioningLogByToken(ctx context.Context, token string) (*saga.ProvisioningLog, error) {
	if err := parallelisation.DetermineContextError(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	log, found := s.logs[token]
	if !found {
		return nil, commonerrors.Newf(commonerrors.ErrNotFound, "no provisioning log for token %v", token)
	}
	return log.Clone(), nil
}

// ListProvisioningLogs returns the logs of a project in order of creation.
func (s *Store) ListProvisioningLogs(ctx context.Context, projectCode string) ([]saga.ProvisioningLog, error) {
	if err := parallelisation.DetermineContextError(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	logs := []saga.ProvisioningLog{}
	for _, token := range s.tokens {
		if log := s.logs[token]; log.ProjectCode == projectCode {
			logs = append(logs, *log.Clone())
		}
	}
	return logs, nil
}

func (s *Store) LogAudit(ctx context.Context, entry saga.AuditEntry) error {
	if err := parallelisation.DetermineContextError(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audit = append(s.audit, entry)
	return nil
}

// AuditEntries returns the audit entries of a project, or of every project if projectCode is empty.
func (s *Store) AuditEntries(ctx context.Context, projectCode string) ([]saga.AuditEntry, error) {
	if err := parallelisation.DetermineContextError(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := []saga.AuditEntry{}
	for i := range s.audit {
		if projectCode == "" || s.audit[i].ProjectCode == projectCode {
			entries = append(entries, s.audit[i])
		}
	}
	return entries, nil
}

// Reserve reserves a token. Expired reservations do not prevent a new reservation.
func (s *Store) Reserve(ctx context.Context, token, projectCode string, ttl time.Duration) error {
	if err := parallelisation.DetermineContextError(ctx); err != nil {
		return err
	}
	if token == "" {
		return commonerrors.UndefinedVariable("token")
	}
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, found := s.reservations[token]; found && now.Before(r.expiresAt) {
		return commonerrors.Newf(commonerrors.ErrConflict, "token %v was already reserved for project %v", token, r.projectCode)
	}
	s.reservations[token] = reservation{projectCode: projectCode, expiresAt: now.Add(ttl)}
	return nil
}

func (s *Store) Close() error {
	return nil
}
