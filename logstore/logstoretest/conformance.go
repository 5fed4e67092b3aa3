// Package logstoretest checks that a store of provisioning logs behaves the way the orchestrator expects.
package logstoretest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RMF112018/Project-Controls-sub011/commonerrors"
	"github.com/RMF112018/Project-Controls-sub011/commonerrors/errortest"
	"github.com/RMF112018/Project-Controls-sub011/field"
	"github.com/RMF112018/Project-Controls-sub011/idempotency"
	"github.com/RMF112018/Project-Controls-sub011/transaction/saga"
)

// IStore is what a complete store provides.
type IStore interface {
	saga.ILogStore
	saga.IAuditSink
	idempotency.IReserver
	AuditEntries(ctx context.Context, projectCode string) ([]saga.AuditEntry, error)
	Close() error
}

// Clock is a clock which only moves when told to.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// StoreFactory returns a new empty store using the clock provided.
type StoreFactory func(t *testing.T, clock idempotency.Clock) IStore

// RunConformanceTests runs the tests every store must pass.
func RunConformanceTests(t *testing.T, factory StoreFactory) {
	t.Run("update requires a token", func(t *testing.T) { testUpdateRequiresToken(t, factory) })
	t.Run("partial updates", func(t *testing.T) { testPartialUpdates(t, factory) })
	t.Run("token of another project", func(t *testing.T) { testTokenOfAnotherProject(t, factory) })
	t.Run("not found", func(t *testing.T) { testNotFound(t, factory) })
	t.Run("list in creation order", func(t *testing.T) { testListOrder(t, factory) })
	t.Run("returned logs are copies", func(t *testing.T) { testCopies(t, factory) })
	t.Run("audit entries", func(t *testing.T) { testAuditEntries(t, factory) })
	t.Run("reservations", func(t *testing.T) { testReservations(t, factory) })
	t.Run("cancelled context", func(t *testing.T) { testCancelledContext(t, factory) })
}

func newStore(t *testing.T, factory StoreFactory, clock idempotency.Clock) IStore {
	t.Helper()
	store := factory(t, clock)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func token(projectCode string, suffix string) string {
	return fmt.Sprintf("%v%v2026-03-01T10:00:00.000Z%v%v", projectCode, idempotency.Delimiter, idempotency.Delimiter, suffix)
}

func testUpdateRequiresToken(t *testing.T, factory StoreFactory) {
	store := newStore(t, factory, nil)
	status := saga.StatusInProgress
	err := store.UpdateProvisioningLog(context.Background(), "P-1", saga.ProvisioningLogUpdate{Status: &status})
	errortest.AssertError(t, err, commonerrors.ErrUndefined)
	err = store.UpdateProvisioningLog(context.Background(), "P-1", saga.ProvisioningLogUpdate{IdempotencyToken: field.ToOptionalString("")})
	errortest.AssertError(t, err, commonerrors.ErrUndefined)
}

func testPartialUpdates(t *testing.T, factory StoreFactory) {
	clock := NewClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	store := newStore(t, factory, clock)
	ctx := context.Background()
	tok := token("P-1", "0a1b")
	input := &saga.ProvisioningInput{ProjectCode: "P-1", ProjectName: faker.Word(), RequestedBy: faker.Email()}
	status := saga.StatusInProgress
	require.NoError(t, store.UpdateProvisioningLog(ctx, "P-1", saga.ProvisioningLogUpdate{
		IdempotencyToken: &tok,
		Status:           &status,
		CurrentStep:      field.ToOptionalInt(1),
		CompletedSteps:   field.ToOptionalInt(0),
		Input:            input,
	}))
	clock.Advance(time.Second)
	status = saga.StatusCompensating
	require.NoError(t, store.UpdateProvisioningLog(ctx, "P-1", saga.ProvisioningLogUpdate{
		IdempotencyToken:     &tok,
		Status:               &status,
		CompletedSteps:       field.ToOptionalInt(2),
		CompletedStepNumbers: []int{1, 2},
		FailedStep:           field.ToOptionalInt(3),
		ErrorMessage:         field.ToOptionalString("platform timeout"),
		SiteURL:              field.ToOptionalString("https://tenant.example.com/sites/p-1"),
		CompensationLog:      []saga.CompensationResult{{Step: 2, Label: "second", Success: true}},
	}))

	log, err := store.GetProvisioningLogByToken(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, "P-1", log.ProjectCode)
	assert.Equal(t, tok, log.IdempotencyToken)
	assert.Equal(t, saga.StatusCompensating, log.Status)
	assert.Equal(t, 1, log.CurrentStep)
	assert.Equal(t, 2, log.CompletedSteps)
	assert.Equal(t, []int{1, 2}, log.CompletedStepNumbers)
	require.NotNil(t, log.FailedStep)
	assert.Equal(t, 3, *log.FailedStep)
	assert.Equal(t, "platform timeout", log.ErrorMessage)
	assert.Equal(t, "https://tenant.example.com/sites/p-1", log.SiteURL)
	require.Len(t, log.CompensationLog, 1)
	assert.Equal(t, "second", log.CompensationLog[0].Label)
	require.NotNil(t, log.Input)
	assert.Equal(t, *input, *log.Input)
	assert.True(t, log.CreatedAt.Equal(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)))
	assert.True(t, log.UpdatedAt.Equal(time.Date(2026, 3, 1, 10, 0, 1, 0, time.UTC)))
}

func testTokenOfAnotherProject(t *testing.T, factory StoreFactory) {
	store := newStore(t, factory, nil)
	ctx := context.Background()
	tok := token("P-1", "aaaa")
	require.NoError(t, store.UpdateProvisioningLog(ctx, "P-1", saga.ProvisioningLogUpdate{IdempotencyToken: &tok}))
	err := store.UpdateProvisioningLog(ctx, "P-2", saga.ProvisioningLogUpdate{IdempotencyToken: &tok, CurrentStep: field.ToOptionalInt(4)})
	errortest.AssertError(t, err, commonerrors.ErrConflict)
	log, err := store.GetProvisioningLogByToken(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, "P-1", log.ProjectCode)
	assert.Zero(t, log.CurrentStep)
}

func testNotFound(t *testing.T, factory StoreFactory) {
	store := newStore(t, factory, nil)
	_, err := store.GetProvisioningLogByToken(context.Background(), token("P-1", "ffff"))
	errortest.AssertError(t, err, commonerrors.ErrNotFound)
	logs, err := store.ListProvisioningLogs(context.Background(), "P-1")
	require.NoError(t, err)
	assert.NotNil(t, logs)
	assert.Empty(t, logs)
}

func testListOrder(t *testing.T, factory StoreFactory) {
	clock := NewClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	store := newStore(t, factory, clock)
	ctx := context.Background()
	var expected []string
	for i := 0; i < 5; i++ {
		project := "P-1"
		if i%2 == 1 {
			project = "P-2"
		}
		tok := token(project, fmt.Sprintf("%04x", 5-i))
		if project == "P-1" {
			expected = append(expected, tok)
		}
		require.NoError(t, store.UpdateProvisioningLog(ctx, project, saga.ProvisioningLogUpdate{IdempotencyToken: &tok}))
		clock.Advance(time.Millisecond)
	}
	// Updating an older run does not change its position.
	require.NoError(t, store.UpdateProvisioningLog(ctx, "P-1", saga.ProvisioningLogUpdate{IdempotencyToken: &expected[0], CurrentStep: field.ToOptionalInt(7)}))

	logs, err := store.ListProvisioningLogs(ctx, "P-1")
	require.NoError(t, err)
	require.Len(t, logs, len(expected))
	for i := range logs {
		assert.Equal(t, expected[i], logs[i].IdempotencyToken)
		assert.Equal(t, "P-1", logs[i].ProjectCode)
	}
	assert.Equal(t, 7, logs[0].CurrentStep)
	references := saga.RunReferences(logs)
	assert.Len(t, references, len(expected))
}

func testCopies(t *testing.T, factory StoreFactory) {
	store := newStore(t, factory, nil)
	ctx := context.Background()
	tok := token("P-1", "cafe")
	require.NoError(t, store.UpdateProvisioningLog(ctx, "P-1", saga.ProvisioningLogUpdate{IdempotencyToken: &tok, CompletedStepNumbers: []int{1, 2}}))
	log, err := store.GetProvisioningLogByToken(ctx, tok)
	require.NoError(t, err)
	log.CompletedStepNumbers[0] = 42
	log.Status = saga.StatusCompleted
	again, err := store.GetProvisioningLogByToken(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, again.CompletedStepNumbers)
	assert.NotEqual(t, saga.StatusCompleted, again.Status)
}

func testAuditEntries(t *testing.T, factory StoreFactory) {
	store := newStore(t, factory, nil)
	ctx := context.Background()
	entries := []saga.AuditEntry{
		{ID: faker.UUIDHyphenated(), Action: saga.AuditCompensationStarted, ProjectCode: "P-1", IdempotencyToken: token("P-1", "0001"), Timestamp: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
		{ID: faker.UUIDHyphenated(), Action: saga.AuditProvisioningCompleted, ProjectCode: "P-2", Timestamp: time.Date(2026, 3, 1, 10, 0, 1, 0, time.UTC)},
		{ID: faker.UUIDHyphenated(), Action: saga.AuditCompensationFailed, ProjectCode: "P-1", Step: 3, RequiresManualIntervention: true, Details: map[string]any{"label": "Create security groups"}, TraceID: "4bf92f3577b34da6a3ce929d0e0e4736", Timestamp: time.Date(2026, 3, 1, 10, 0, 2, 0, time.UTC)},
	}
	for i := range entries {
		require.NoError(t, store.LogAudit(ctx, entries[i]))
	}

	all, err := store.AuditEntries(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	p1, err := store.AuditEntries(ctx, "P-1")
	require.NoError(t, err)
	require.Len(t, p1, 2)
	assert.Equal(t, entries[0].ID, p1[0].ID)
	assert.Equal(t, saga.AuditCompensationFailed, p1[1].Action)
	assert.Equal(t, 3, p1[1].Step)
	assert.True(t, p1[1].RequiresManualIntervention)
	assert.Equal(t, "Create security groups", p1[1].Details["label"])
	assert.Equal(t, entries[2].TraceID, p1[1].TraceID)
	assert.True(t, p1[1].Timestamp.Equal(entries[2].Timestamp))

	none, err := store.AuditEntries(ctx, "P-3")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func testReservations(t *testing.T, factory StoreFactory) {
	clock := NewClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	store := newStore(t, factory, clock)
	ctx := context.Background()
	tok := token("P-1", "beef")
	errortest.AssertError(t, store.Reserve(ctx, "", "P-1", time.Minute), commonerrors.ErrUndefined)
	require.NoError(t, store.Reserve(ctx, tok, "P-1", time.Minute))
	errortest.AssertError(t, store.Reserve(ctx, tok, "P-1", time.Minute), commonerrors.ErrConflict)
	clock.Advance(30 * time.Second)
	errortest.AssertError(t, store.Reserve(ctx, tok, "P-1", time.Minute), commonerrors.ErrConflict)
	require.NoError(t, store.Reserve(ctx, token("P-1", "dead"), "P-1", time.Minute))
	clock.Advance(31 * time.Second)
	require.NoError(t, store.Reserve(ctx, tok, "P-1", time.Minute))
	errortest.AssertError(t, store.Reserve(ctx, tok, "P-1", time.Minute), commonerrors.ErrConflict)
}

func testCancelledContext(t *testing.T, factory StoreFactory) {
	store := newStore(t, factory, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tok := token("P-1", "0bad")
	errortest.AssertError(t, store.UpdateProvisioningLog(ctx, "P-1", saga.ProvisioningLogUpdate{IdempotencyToken: &tok}), commonerrors.ErrCancelled)
	_, err := store.GetProvisioningLogByToken(ctx, tok)
	errortest.AssertError(t, err, commonerrors.ErrCancelled)
	_, err = store.ListProvisioningLogs(ctx, "P-1")
	errortest.AssertError(t, err, commonerrors.ErrCancelled)
	errortest.AssertError(t, store.LogAudit(ctx, saga.AuditEntry{ProjectCode: "P-1"}), commonerrors.ErrCancelled)
	_, err = store.AuditEntries(ctx, "P-1")
	errortest.AssertError(t, err, commonerrors.ErrCancelled)
	errortest.AssertError(t, store.Reserve(ctx, tok, "P-1", time.Minute), commonerrors.ErrCancelled)
}
