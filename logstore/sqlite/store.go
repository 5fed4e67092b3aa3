// Package sqlite keeps provisioning logs, audit entries and token reservations in a SQLite database so that runs can
// be rolled back after a restart of the service.
//
// The pure Go driver modernc.org/sqlite is used so that the service can be built without cgo.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	// Registers the "sqlite" driver.
	_ "modernc.org/sqlite"

	"github.com/RMF112018/Project-Controls-sub011/commonerrors"
	"github.com/RMF112018/Project-Controls-sub011/idempotency"
	"github.com/RMF112018/Project-Controls-sub011/parallelisation"
	"github.com/RMF112018/Project-Controls-sub011/transaction/saga"
)

const (
	driverName = "sqlite"
	timeLayout = "2006-01-02T15:04:05.000000000Z"
	// InMemory is the path of a database which only lives as long as the store.
	InMemory = ":memory:"
)

// A log is stored as a JSON document. The columns next to it are only there to look logs up.
const schema = `
CREATE TABLE IF NOT EXISTS provisioning_logs (
    id                INTEGER PRIMARY KEY AUTOINCREMENT,
    idempotency_token TEXT    NOT NULL UNIQUE,
    project_code      TEXT    NOT NULL,
    status            TEXT    NOT NULL DEFAULT '',
    document          TEXT    NOT NULL,
    created_at        TEXT    NOT NULL,
    updated_at        TEXT    NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_provisioning_logs_project ON provisioning_logs(project_code, id);

CREATE TABLE IF NOT EXISTS audit_entries (
    seq          INTEGER PRIMARY KEY AUTOINCREMENT,
    id           TEXT    NOT NULL,
    project_code TEXT    NOT NULL,
    action       TEXT    NOT NULL,
    trace_id     TEXT    NOT NULL DEFAULT '',
    document     TEXT    NOT NULL,
    logged_at    TEXT    NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_audit_entries_project ON audit_entries(project_code, seq);

CREATE TABLE IF NOT EXISTS token_reservations (
    token        TEXT PRIMARY KEY,
    project_code TEXT NOT NULL,
    expires_at   TEXT NOT NULL
);
`

var (
	_ saga.ILogStore        = &Store{}
	_ saga.IAuditSink       = &Store{}
	_ idempotency.IReserver = &Store{}
)

type Store struct {
	db    *sql.DB
	clock idempotency.Clock
}

type Option func(*Store)

func WithClock(clock idempotency.Clock) Option {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// Open opens (or creates) the database at path and applies the schema. WAL mode is enabled for file databases.
func Open(ctx context.Context, path string, opts ...Option) (store *Store, err error) {
	if path == "" {
		err = commonerrors.UndefinedVariable("database path")
		return
	}
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)", path)
	if path != InMemory {
		dsn += "&_pragma=journal_mode(WAL)"
	}
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		err = commonerrors.WrapErrorf(commonerrors.ErrUnavailable, err, "could not open database %q", path)
		return
	}
	// A single connection serialises writers and keeps in-memory databases shared.
	db.SetMaxOpenConns(1)
	if _, err = db.ExecContext(ctx, schema); err != nil {
		err = commonerrors.Join(commonerrors.WrapError(commonerrors.ErrUnexpected, err, "could not apply schema"), db.Close())
		return
	}
	store = &Store{db: db, clock: idempotency.RealClock()}
	for i := range opts {
		opts[i](store)
	}
	return
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) UpdateProvisioningLog(ctx context.Context, projectCode string, update saga.ProvisioningLogUpdate) (err error) {
	if err = parallelisation.DetermineContextError(ctx); err != nil {
		return
	}
	if update.IdempotencyToken == nil || *update.IdempotencyToken == "" {
		err = commonerrors.UndefinedVariable("idempotency token")
		return
	}
	token := *update.IdempotencyToken
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		err = convertError(err, "could not start transaction")
		return
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	log, found, err := selectLog(ctx, tx, token)
	if err != nil {
		return
	}
	if found && projectCode != "" && log.ProjectCode != projectCode {
		err = commonerrors.Newf(commonerrors.ErrConflict, "token %v belongs to project %v", token, log.ProjectCode)
		return
	}
	if !found {
		log = &saga.ProvisioningLog{}
	}
	log.Apply(projectCode, update, s.clock.Now().UTC())
	document, err := json.Marshal(log)
	if err != nil {
		err = commonerrors.WrapError(commonerrors.ErrMarshalling, err, "could not serialise provisioning log")
		return
	}
	const upsert = `
		INSERT INTO provisioning_logs (idempotency_token, project_code, status, document, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(idempotency_token) DO UPDATE SET
			project_code = excluded.project_code,
			status       = excluded.status,
			document     = excluded.document,
			updated_at   = excluded.updated_at`
	_, err = tx.ExecContext(ctx, upsert, token, log.ProjectCode, string(log.Status), string(document),
		formatTime(log.CreatedAt), formatTime(log.UpdatedAt))
	if err != nil {
		err = convertError(err, "could not save provisioning log")
		return
	}
	err = convertError(tx.Commit(), "could not commit provisioning log")
	return
}

func (s *Store) GetProvisioningLogByToken(ctx context.Context, token string) (*saga.ProvisioningLog, error) {
	if err := parallelisation.DetermineContextError(ctx); err != nil {
		return nil, err
	}
	log, found, err := selectLog(ctx, s.db, token)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, commonerrors.Newf(commonerrors.ErrNotFound, "no provisioning log for token %v", token)
	}
	return log, nil
}

// ListProvisioningLogs returns the logs of a project in order of creation.
func (s *Store) ListProvisioningLogs(ctx context.Context, projectCode string) (logs []saga.ProvisioningLog, err error) {
	if err = parallelisation.DetermineContextError(ctx); err != nil {
		return
	}
	const q = `SELECT document FROM provisioning_logs WHERE project_code = ? ORDER BY id`
	rows, err := s.db.QueryContext(ctx, q, projectCode)
	if err != nil {
		err = convertError(err, "could not list provisioning logs")
		return
	}
	defer func() { _ = rows.Close() }()
	logs = []saga.ProvisioningLog{}
	for rows.Next() {
		var document string
		if err = rows.Scan(&document); err != nil {
			err = convertError(err, "could not read provisioning log")
			return
		}
		var log saga.ProvisioningLog
		if err = unmarshal(document, &log); err != nil {
			return
		}
		logs = append(logs, log)
	}
	err = convertError(rows.Err(), "could not list provisioning logs")
	return
}

func (s *Store) LogAudit(ctx context.Context, entry saga.AuditEntry) error {
	if err := parallelisation.DetermineContextError(ctx); err != nil {
		return err
	}
	document, err := json.Marshal(entry)
	if err != nil {
		return commonerrors.WrapError(commonerrors.ErrMarshalling, err, "could not serialise audit entry")
	}
	timestamp := entry.Timestamp
	if timestamp.IsZero() {
		timestamp = s.clock.Now()
	}
	const q = `
		INSERT INTO audit_entries (id, project_code, action, trace_id, document, logged_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err = s.db.ExecContext(ctx, q, entry.ID, entry.ProjectCode, string(entry.Action), entry.TraceID,
		string(document), formatTime(timestamp))
	return convertError(err, "could not save audit entry")
}

// AuditEntries returns the audit entries of a project, or of every project if projectCode is empty.
func (s *Store) AuditEntries(ctx context.Context, projectCode string) (entries []saga.AuditEntry, err error) {
	if err = parallelisation.DetermineContextError(ctx); err != nil {
		return
	}
	const q = `SELECT document FROM audit_entries WHERE ? = '' OR project_code = ? ORDER BY seq`
	rows, err := s.db.QueryContext(ctx, q, projectCode, projectCode)
	if err != nil {
		err = convertError(err, "could not list audit entries")
		return
	}
	defer func() { _ = rows.Close() }()
	entries = []saga.AuditEntry{}
	for rows.Next() {
		var document string
		if err = rows.Scan(&document); err != nil {
			err = convertError(err, "could not read audit entry")
			return
		}
		var entry saga.AuditEntry
		if err = unmarshal(document, &entry); err != nil {
			return
		}
		entries = append(entries, entry)
	}
	err = convertError(rows.Err(), "could not list audit entries")
	return
}

// Reserve reserves a token. Expired reservations do not prevent a new reservation.
func (s *Store) Reserve(ctx context.Context, token, projectCode string, ttl time.Duration) (err error) {
	if err = parallelisation.DetermineContextError(ctx); err != nil {
		return
	}
	if token == "" {
		err = commonerrors.UndefinedVariable("token")
		return
	}
	now := s.clock.Now().UTC()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		err = convertError(err, "could not start transaction")
		return
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	var owner, expiresAt string
	err = tx.QueryRowContext(ctx, `SELECT project_code, expires_at FROM token_reservations WHERE token = ?`, token).Scan(&owner, &expiresAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		err = nil
	case err != nil:
		err = convertError(err, "could not read reservation")
		return
	default:
		expiry, subErr := parseTime(expiresAt)
		if subErr != nil {
			err = subErr
			return
		}
		if now.Before(expiry) {
			err = commonerrors.Newf(commonerrors.ErrConflict, "token %v was already reserved for project %v", token, owner)
			return
		}
	}
	const upsert = `
		INSERT INTO token_reservations (token, project_code, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(token) DO UPDATE SET project_code = excluded.project_code, expires_at = excluded.expires_at`
	if _, err = tx.ExecContext(ctx, upsert, token, projectCode, formatTime(now.Add(ttl))); err != nil {
		err = convertError(err, "could not save reservation")
		return
	}
	err = convertError(tx.Commit(), "could not commit reservation")
	return
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func selectLog(ctx context.Context, q queryer, token string) (*saga.ProvisioningLog, bool, error) {
	var document string
	err := q.QueryRowContext(ctx, `SELECT document FROM provisioning_logs WHERE idempotency_token = ?`, token).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, convertError(err, "could not read provisioning log")
	}
	log := &saga.ProvisioningLog{}
	if err = unmarshal(document, log); err != nil {
		return nil, false, err
	}
	return log, true, nil
}

func unmarshal(document string, v any) error {
	if err := json.Unmarshal([]byte(document), v); err != nil {
		return commonerrors.WrapError(commonerrors.ErrMarshalling, err, "corrupted record")
	}
	return nil
}

func convertError(err error, message string) error {
	if err == nil {
		return nil
	}
	if ctxErr := commonerrors.ConvertContextError(err); commonerrors.Any(ctxErr, commonerrors.ErrTimeout, commonerrors.ErrCancelled) {
		return ctxErr
	}
	return commonerrors.WrapError(commonerrors.ErrUnavailable, err, message)
}
