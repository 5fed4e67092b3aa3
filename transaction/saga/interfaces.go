// Package saga provides an implementation of the [SAGA pattern](https://microservices.io/patterns/data/saga.html) for provisioning project workspaces across an external collaboration platform without relying on a global ACID transaction.
// The orchestrator breaks the provisioning into a fixed sequence of steps. Each step executes independently, and if any step fails, the orchestrator triggers compensating transactions in strict reverse order to undo completed work, following the [Compensating Transaction pattern](https://learn.microsoft.com/en-us/azure/architecture/patterns/compensating-transaction).
// Every run is identified by an idempotency token (see the idempotency package) and its progress is persisted at every step boundary so that a run can later be rolled back manually.
package saga

//go:generate go tool mockgen -destination=./mock_test.go -package=saga github.com/RMF112018/Project-Controls-sub011/transaction/$GOPACKAGE IPlatform,ILogStore,IAuditSink,IRateLimiter,IListThresholdGuard

import (
	"context"
)

// IPlatform gives access to the platform information the orchestrator needs regardless of the steps.
type IPlatform interface {
	// GetHubSiteURL returns the URL of the hub site new project sites are associated with.
	GetHubSiteURL(ctx context.Context) (string, error)
}

// ILogStore persists the provisioning logs.
type ILogStore interface {
	// UpdateProvisioningLog applies a partial update to the log of the run identified by update.IdempotencyToken. The log is created if it does not exist.
	UpdateProvisioningLog(ctx context.Context, projectCode string, update ProvisioningLogUpdate) error
	// GetProvisioningLogByToken returns the log of a run. An error of type commonerrors.ErrNotFound is returned if there is none.
	GetProvisioningLogByToken(ctx context.Context, token string) (*ProvisioningLog, error)
	// ListProvisioningLogs returns all the logs of a project, oldest first.
	ListProvisioningLogs(ctx context.Context, projectCode string) ([]ProvisioningLog, error)
}

// IAuditSink records audit entries.
type IAuditSink interface {
	LogAudit(ctx context.Context, entry AuditEntry) error
}

// IRateLimiter throttles calls to the platform.
type IRateLimiter interface {
	// Wait blocks until a call is allowed.
	Wait(ctx context.Context) error
}

// IListThresholdGuard checks that list operations of a step would not exceed platform limits.
type IListThresholdGuard interface {
	CheckThreshold(ctx context.Context, rc *RunContext, step int) error
}

// IOrchestrator runs provisioning sagas.
type IOrchestrator interface {
	// Execute runs every step of the catalog in order. It never fails: any failure is reported in the result returned, along with the compensations performed.
	Execute(ctx context.Context, input ProvisioningInput) SagaExecutionResult
	// Compensate undoes the steps specified in strict reverse order. It never fails: every compensation attempted has a result.
	Compensate(ctx context.Context, rc *RunContext, steps []int, compensationType CompensationType) []CompensationResult
	// Rollback compensates a persisted run. ErrRunNotFound is returned if no run corresponds to the token.
	Rollback(ctx context.Context, projectCode, token string) ([]CompensationResult, error)
}
