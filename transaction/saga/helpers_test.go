package saga

import (
	"context"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/sasha-s/go-deadlock"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/RMF112018/Project-Controls-sub011/commonerrors"
	"github.com/RMF112018/Project-Controls-sub011/logs/logstest"
	"github.com/RMF112018/Project-Controls-sub011/retry"
)

type recordingStore struct {
	mu      deadlock.Mutex
	logs    map[string]*ProvisioningLog
	updates []ProvisioningLogUpdate
	failIf  func(update ProvisioningLogUpdate) error
}

func newRecordingStore() *recordingStore {
	return &recordingStore{logs: map[string]*ProvisioningLog{}}
}

func (s *recordingStore) UpdateProvisioningLog(_ context.Context, projectCode string, update ProvisioningLogUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates = append(s.updates, update)
	if s.failIf != nil {
		if err := s.failIf(update); err != nil {
			return err
		}
	}
	if update.IdempotencyToken == nil {
		return commonerrors.UndefinedVariable("token")
	}
	log, found := s.logs[*update.IdempotencyToken]
	if !found {
		log = &ProvisioningLog{}
		s.logs[*update.IdempotencyToken] = log
	}
	log.Apply(projectCode, update, time.Now())
	return nil
}

func (s *recordingStore) GetProvisioningLogByToken(_ context.Context, token string) (*ProvisioningLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	log, found := s.logs[token]
	if !found {
		return nil, commonerrors.Newf(commonerrors.ErrNotFound, "no log for %v", token)
	}
	return log.Clone(), nil
}

func (s *recordingStore) ListProvisioningLogs(_ context.Context, projectCode string) (logs []ProvisioningLog, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, log := range s.logs {
		if log.ProjectCode == projectCode {
			logs = append(logs, *log.Clone())
		}
	}
	return
}

func (s *recordingStore) get(t *testing.T, token string) *ProvisioningLog {
	t.Helper()
	log, err := s.GetProvisioningLogByToken(context.Background(), token)
	require.NoError(t, err)
	return log
}

type recordingAuditSink struct {
	mu      deadlock.Mutex
	entries []AuditEntry
}

func (s *recordingAuditSink) LogAudit(_ context.Context, entry AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *recordingAuditSink) actions() (actions []AuditAction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		actions = append(actions, s.entries[i].Action)
	}
	return
}

func (s *recordingAuditSink) count(action AuditAction) (n int) {
	for _, a := range s.actions() {
		if a == action {
			n++
		}
	}
	return
}

type recordingBroadcaster struct {
	mu       deadlock.Mutex
	messages []StatusMessage
}

func (b *recordingBroadcaster) broadcast(_ context.Context, msg StatusMessage) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, msg)
}

func (b *recordingBroadcaster) statuses() (statuses []StepStatus) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.messages {
		statuses = append(statuses, b.messages[i].StepStatus)
	}
	return
}

// stepRecorder records the actions performed by test steps.
type stepRecorder struct {
	mu          deadlock.Mutex
	executed    []int
	compensated []int
}

func (r *stepRecorder) execute(step int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.executed = append(r.executed, step)
}

func (r *stepRecorder) compensate(step int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.compensated = append(r.compensated, step)
}

func (r *stepRecorder) executions() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.executed)
}

func (r *stepRecorder) compensations() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.compensated)
}

type testStepBehaviour struct {
	execute    func(ctx context.Context, rc *RunContext) (*StepOutput, error)
	compensate func(ctx context.Context, rc *RunContext) error
}

func newTestCatalog(t *testing.T, n int, recorder *stepRecorder, behaviours map[int]testStepBehaviour) *StepCatalog {
	t.Helper()
	steps := make([]StepDefinition, 0, n)
	for i := 1; i <= n; i++ {
		behaviour := behaviours[i]
		steps = append(steps, StepDefinition{
			Step:       i,
			Label:      fmt.Sprintf("step %v %v", i, faker.Word()),
			IsCritical: i%2 == 1,
			Execute: func(ctx context.Context, rc *RunContext) (*StepOutput, error) {
				recorder.execute(i)
				if behaviour.execute != nil {
					return behaviour.execute(ctx, rc)
				}
				if i == 1 {
					return &StepOutput{SiteURL: "https://contoso.example.com/sites/" + rc.SiteAlias}, nil
				}
				return nil, nil
			},
			Compensate: func(ctx context.Context, rc *RunContext) error {
				recorder.compensate(i)
				if behaviour.compensate != nil {
					return behaviour.compensate(ctx, rc)
				}
				return nil
			},
		})
	}
	catalog, err := NewStepCatalog(steps...)
	require.NoError(t, err)
	return catalog
}

func newTestPlatform(t *testing.T, ctrl *gomock.Controller) *MockIPlatform {
	t.Helper()
	platform := NewMockIPlatform(ctrl)
	platform.EXPECT().GetHubSiteURL(gomock.Any()).Return("https://contoso.example.com/sites/hub", nil).AnyTimes()
	return platform
}

func fastConfiguration() *Configuration {
	cfg := DefaultConfiguration()
	cfg.StepTimeout = time.Second
	cfg.CompensationTimeout = time.Second
	cfg.CompensationRetry = *retry.DefaultNoRetryPolicyConfiguration()
	return cfg
}

func newTestInput() ProvisioningInput {
	return ProvisioningInput{
		ProjectCode: fmt.Sprintf("PRJ-%v", faker.UnixTime()),
		ProjectName: faker.Sentence(),
		ClientName:  faker.Name(),
		Division:    faker.Word(),
		Region:      faker.Word(),
		LeadID:      faker.UUIDDigit(),
		RequestedBy: faker.Email(),
	}
}

type testHarness struct {
	orchestrator *Orchestrator
	store        *recordingStore
	audit        *recordingAuditSink
	broadcaster  *recordingBroadcaster
	recorder     *stepRecorder
}

func newTestHarness(t *testing.T, n int, behaviours map[int]testStepBehaviour, opts ...Option) *testHarness {
	t.Helper()
	ctrl := gomock.NewController(t)
	h := &testHarness{
		store:       newRecordingStore(),
		audit:       &recordingAuditSink{},
		broadcaster: &recordingBroadcaster{},
		recorder:    &stepRecorder{},
	}
	options := append([]Option{
		WithConfiguration(fastConfiguration()),
		WithAuditSink(h.audit),
		WithStatusBroadcaster(h.broadcaster.broadcast),
		WithLogger(logstest.NewTestLogger(t)),
	}, opts...)
	orchestrator, err := NewOrchestrator(newTestCatalog(t, n, h.recorder, behaviours), newTestPlatform(t, ctrl), h.store, options...)
	require.NoError(t, err)
	h.orchestrator = orchestrator
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = orchestrator.Flush(ctx)
	})
	return h
}

func (h *testHarness) flush(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, h.orchestrator.Flush(ctx))
}

func descending(from int) (steps []int) {
	for i := from; i >= 1; i-- {
		steps = append(steps, i)
	}
	return
}

func resultSteps(results []CompensationResult) (steps []int) {
	for i := range results {
		steps = append(steps, results[i].Step)
	}
	return
}
