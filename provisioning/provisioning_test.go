package provisioning

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"

	"github.com/RMF112018/Project-Controls-sub011/commonerrors"
	"github.com/RMF112018/Project-Controls-sub011/idempotency"
	"github.com/RMF112018/Project-Controls-sub011/logs/logstest"
	"github.com/RMF112018/Project-Controls-sub011/logstore/memory"
	"github.com/RMF112018/Project-Controls-sub011/retry"
	"github.com/RMF112018/Project-Controls-sub011/transaction/saga"
)

func newTestOrchestrator(t *testing.T, ops *MockIPlatformOperations, store *memory.Store) *saga.Orchestrator {
	t.Helper()
	catalog, err := NewCatalog(ops, nil)
	require.NoError(t, err)
	cfg := saga.DefaultConfiguration()
	cfg.StepTimeout = 5 * time.Second
	cfg.CompensationRetry = *retry.DefaultNoRetryPolicyConfiguration()
	orchestrator, err := saga.NewOrchestrator(catalog, ops, store,
		saga.WithConfiguration(cfg),
		saga.WithAuditSink(store),
		saga.WithLogger(logstest.NewTestLogger(t)),
	)
	require.NoError(t, err)
	return orchestrator
}

func TestProvisioning_Complete(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	ops := NewMockIPlatformOperations(ctrl)
	store := memory.NewStore()
	orchestrator := newTestOrchestrator(t, ops, store)

	gomock.InOrder(
		ops.EXPECT().GetHubSiteURL(gomock.Any()).Return(testHubURL, nil),
		ops.EXPECT().CreateSite(gomock.Any(), gomock.Any()).Return(testSiteURL, nil),
		ops.EXPECT().CreateLists(gomock.Any(), testSiteURL, gomock.Any()).Return(nil),
		ops.EXPECT().CreateSecurityGroups(gomock.Any(), testSiteURL, gomock.Any()).Return(nil),
		ops.EXPECT().ApplyTemplate(gomock.Any(), testSiteURL, DefaultTemplate).Return(TemplateInfo{Version: "3.2", Type: "construction"}, nil),
		ops.EXPECT().AssociateHub(gomock.Any(), testSiteURL, testHubURL).Return(nil),
		ops.EXPECT().AddHubNavigationLink(gomock.Any(), testHubURL, gomock.Any()).Return(nil),
		ops.EXPECT().LinkLeadRecord(gomock.Any(), "42", "P-1001", testSiteURL).Return(nil),
	)

	result := orchestrator.Execute(ctx, newTestInput())
	require.NoError(t, orchestrator.Flush(ctx))
	require.True(t, result.Success)
	assert.Equal(t, NumberOfSteps, result.CompletedSteps)

	log, err := store.GetProvisioningLogByToken(ctx, result.IdempotencyToken)
	require.NoError(t, err)
	assert.Equal(t, saga.StatusCompleted, log.Status)
	assert.Equal(t, testSiteURL, log.SiteURL)
	assert.Equal(t, "3.2", log.TemplateVersion)
	assert.Equal(t, "construction", log.TemplateType)
	assert.NotNil(t, log.CompletedAt)

	entries, err := store.AuditEntries(ctx, "P-1001")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, saga.AuditProvisioningCompleted, entries[0].Action)

	logs, err := store.ListProvisioningLogs(ctx, "P-1001")
	require.NoError(t, err)
	validation := idempotency.NewTokenService().Validate(result.IdempotencyToken, "P-1001", saga.RunReferences(logs))
	assert.True(t, validation.Has(idempotency.IssueReplay))
}

func TestProvisioning_TemplateFailureThenRollback(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	ops := NewMockIPlatformOperations(ctrl)
	store := memory.NewStore()
	orchestrator := newTestOrchestrator(t, ops, store)

	gomock.InOrder(
		ops.EXPECT().GetHubSiteURL(gomock.Any()).Return(testHubURL, nil),
		ops.EXPECT().CreateSite(gomock.Any(), gomock.Any()).Return(testSiteURL, nil),
		ops.EXPECT().CreateLists(gomock.Any(), testSiteURL, gomock.Any()).Return(nil),
		ops.EXPECT().CreateSecurityGroups(gomock.Any(), testSiteURL, gomock.Any()).Return(nil),
		ops.EXPECT().ApplyTemplate(gomock.Any(), testSiteURL, DefaultTemplate).Return(TemplateInfo{}, commonerrors.New(commonerrors.ErrTimeout, "template service")),
		ops.EXPECT().DeleteSecurityGroups(gomock.Any(), testSiteURL, gomock.Any()).Return(commonerrors.New(commonerrors.ErrForbidden, "group owner")),
		ops.EXPECT().DeleteLists(gomock.Any(), testSiteURL, gomock.Any()).Return(nil),
		ops.EXPECT().DeleteSite(gomock.Any(), testSiteURL).Return(nil),
	)

	result := orchestrator.Execute(ctx, newTestInput())
	require.NoError(t, orchestrator.Flush(ctx))
	require.False(t, result.Success)
	require.NotNil(t, result.FailedStep)
	assert.Equal(t, StepApplyTemplate, *result.FailedStep)
	assert.Equal(t, 3, result.CompletedSteps)
	require.Len(t, result.CompensationResults, 3)
	assert.Equal(t, StepCreateSecurityGroups, result.CompensationResults[0].Step)
	assert.False(t, result.CompensationResults[0].Success)
	assert.True(t, result.CompensationResults[0].RequiresManualIntervention)
	assert.True(t, result.CompensationResults[1].Success)
	assert.True(t, result.CompensationResults[2].Success)

	log, err := store.GetProvisioningLogByToken(ctx, result.IdempotencyToken)
	require.NoError(t, err)
	require.NotNil(t, log.FailedStep)
	assert.Equal(t, StepApplyTemplate, *log.FailedStep)
	assert.Equal(t, []int{StepCreateSite, StepCreateLists, StepCreateSecurityGroups}, log.CompletedStepNumbers)
	assert.Len(t, log.CompensationLog, 3)

	// Only the security groups are left: a manual rollback retries the steps recorded as completed.
	gomock.InOrder(
		ops.EXPECT().GetHubSiteURL(gomock.Any()).Return(testHubURL, nil),
		ops.EXPECT().DeleteSecurityGroups(gomock.Any(), testSiteURL, gomock.Any()).Return(nil),
		ops.EXPECT().DeleteLists(gomock.Any(), testSiteURL, gomock.Any()).Return(nil),
		ops.EXPECT().DeleteSite(gomock.Any(), testSiteURL).Return(nil),
	)
	results, err := orchestrator.Rollback(ctx, "P-1001", result.IdempotencyToken)
	require.NoError(t, orchestrator.Flush(ctx))
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i := range results {
		assert.True(t, results[i].Success)
		assert.Equal(t, saga.ManualRollback, results[i].CompensationType)
	}

	log, err = store.GetProvisioningLogByToken(ctx, result.IdempotencyToken)
	require.NoError(t, err)
	assert.Equal(t, result.IdempotencyToken, log.RollbackFromToken)

	entries, err := store.AuditEntries(ctx, "P-1001")
	require.NoError(t, err)
	var actions []saga.AuditAction
	for i := range entries {
		actions = append(actions, entries[i].Action)
	}
	assert.Contains(t, actions, saga.AuditCompensationStarted)
	assert.Contains(t, actions, saga.AuditCompensationFailed)
	assert.Contains(t, actions, saga.AuditManualRollbackInitiated)
	assert.Contains(t, actions, saga.AuditManualRollbackCompleted)
}
