package saga

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-logr/logr"
	"github.com/sasha-s/go-deadlock"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/RMF112018/Project-Controls-sub011/commonerrors"
	"github.com/RMF112018/Project-Controls-sub011/idgen"
	"github.com/RMF112018/Project-Controls-sub011/logs"
	"github.com/RMF112018/Project-Controls-sub011/parallelisation"
)

type AuditAction string

const (
	AuditCompensationStarted     AuditAction = "compensation_started"
	AuditStepCompensated         AuditAction = "step_compensated"
	AuditCompensationFailed      AuditAction = "compensation_failed"
	AuditManualRollbackInitiated AuditAction = "manual_rollback_initiated"
	AuditManualRollbackCompleted AuditAction = "manual_rollback_completed"
	AuditProvisioningCompleted   AuditAction = "provisioning_completed"
)

// AuditEntry is a record of a significant event of a run.
type AuditEntry struct {
	ID                         string         `json:"id"`
	Action                     AuditAction    `json:"action"`
	ProjectCode                string         `json:"projectCode"`
	IdempotencyToken           string         `json:"idempotencyToken"`
	Step                       int            `json:"step,omitempty"`
	Details                    map[string]any `json:"details,omitempty"`
	RequiresManualIntervention bool           `json:"requiresManualIntervention"`
	TraceID                    string         `json:"traceId,omitempty"`
	Timestamp                  time.Time      `json:"timestamp"`
}

// TraceIDFromContext returns the identifier of the trace active in ctx, or an empty string if there is none.
func TraceIDFromContext(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return ""
	}
	return sc.TraceID().String()
}

// AuditDispatcher writes audit entries in the background. Audit is observability: a failed write is reported to
// the logger and never affects the caller. Once closed, the dispatcher drops any new entry.
type AuditDispatcher struct {
	sink    IAuditSink
	logger  logr.Logger
	timeout time.Duration
	clock   func() time.Time
	mu      deadlock.Mutex
	group   *errgroup.Group
	closed  bool
}

// NewAuditDispatcher returns a dispatcher writing to sink. If sink is nil, entries are dropped.
func NewAuditDispatcher(sink IAuditSink, logger logr.Logger, timeout time.Duration) *AuditDispatcher {
	return &AuditDispatcher{
		sink:    sink,
		logger:  logger,
		timeout: timeout,
		clock:   time.Now,
		group:   &errgroup.Group{},
	}
}

// Dispatch schedules the write of an entry. Missing identifier, timestamp and trace id are filled in.
func (d *AuditDispatcher) Dispatch(ctx context.Context, entry AuditEntry) {
	if d == nil || d.sink == nil {
		return
	}
	if entry.ID == "" {
		id, err := idgen.GenerateUUID7()
		if err != nil {
			d.logger.Error(err, "could not generate audit entry identifier", "action", entry.Action)
		}
		entry.ID = id
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = d.clock().UTC()
	}
	if entry.TraceID == "" {
		entry.TraceID = TraceIDFromContext(ctx)
	}
	detached := context.WithoutCancel(ctx)
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		d.logger.Info("audit entry dropped as the dispatcher is closed", "action", entry.Action, "projectCode", entry.ProjectCode, "token", entry.IdempotencyToken)
		return
	}
	d.group.Go(func() error {
		err := parallelisation.RunActionWithTimeout(detached, d.timeout, func(aCtx context.Context) error {
			return d.sink.LogAudit(aCtx, entry)
		})
		if err != nil {
			d.logger.Error(err, "audit write failed", "action", entry.Action, "projectCode", entry.ProjectCode, "token", entry.IdempotencyToken)
		}
		return nil
	})
}

// Flush waits for the writes pending when it was called to complete or for ctx to be done. Entries dispatched
// meanwhile are not waited for.
func (d *AuditDispatcher) Flush(ctx context.Context) error {
	if d == nil {
		return nil
	}
	return parallelisation.WaitWithContext(ctx, d.detachGroup(false))
}

// Close stops accepting entries and waits for pending writes to complete or for ctx to be done.
func (d *AuditDispatcher) Close(ctx context.Context) error {
	if d == nil {
		return nil
	}
	return parallelisation.WaitWithContext(ctx, d.detachGroup(true))
}

// detachGroup returns the group of pending writes and replaces it so that no write is added to a group being waited for.
func (d *AuditDispatcher) detachGroup(closing bool) *errgroup.Group {
	d.mu.Lock()
	defer d.mu.Unlock()
	if closing {
		d.closed = true
	}
	pending := d.group
	d.group = &errgroup.Group{}
	return pending
}

type loggersAuditSink struct {
	loggers logs.Loggers
}

// NewLoggersAuditSink returns a sink writing audit entries as JSON lines to loggers.
// Entries requiring manual intervention are logged as errors.
func NewLoggersAuditSink(loggers logs.Loggers) (IAuditSink, error) {
	if loggers == nil {
		return nil, commonerrors.ErrNoLogger
	}
	if err := loggers.Check(); err != nil {
		return nil, err
	}
	return &loggersAuditSink{loggers: loggers}, nil
}

func (s *loggersAuditSink) LogAudit(ctx context.Context, entry AuditEntry) error {
	if err := parallelisation.DetermineContextError(ctx); err != nil {
		return err
	}
	b, err := json.Marshal(entry)
	if err != nil {
		return commonerrors.WrapError(commonerrors.ErrMarshalling, err, "could not serialise audit entry")
	}
	if entry.RequiresManualIntervention {
		s.loggers.LogError("audit", string(b))
	} else {
		s.loggers.Log("audit", string(b))
	}
	return nil
}
