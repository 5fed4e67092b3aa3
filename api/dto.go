package api

import (
	"github.com/RMF112018/Project-Controls-sub011/idempotency"
	"github.com/RMF112018/Project-Controls-sub011/transaction/saga"
)

// ProvisioningRequest requests the provisioning of a project. IdempotencyToken is optional: when set, the token is
// admitted before the run, which then adopts it, so that a request cannot be processed twice.
type ProvisioningRequest struct {
	saga.ProvisioningInput
}

type RollbackRequest struct {
	IdempotencyToken string `json:"idempotencyToken"`
}

type RollbackResponse struct {
	ProjectCode         string                    `json:"projectCode"`
	IdempotencyToken    string                    `json:"idempotencyToken"`
	Summary             string                    `json:"summary"`
	CompensationResults []saga.CompensationResult `json:"compensationResults"`
}

type TokenRequest struct {
	ProjectCode string `json:"projectCode"`
}

type TokenResponse struct {
	ProjectCode      string `json:"projectCode"`
	IdempotencyToken string `json:"idempotencyToken"`
}

type TokenValidationRequest struct {
	ProjectCode      string `json:"projectCode"`
	IdempotencyToken string `json:"idempotencyToken"`
}

type TokenValidationResponse struct {
	idempotency.ValidationResult
}

type LogsResponse struct {
	ProjectCode string                 `json:"projectCode"`
	Logs        []saga.ProvisioningLog `json:"logs"`
}

type ErrorResponse struct {
	Error   string              `json:"error"`
	Message string              `json:"message"`
	Issues  []idempotency.Issue `json:"issues,omitempty"`
}
