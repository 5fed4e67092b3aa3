package saga

import (
	"slices"
	"strings"
	"time"

	"github.com/RMF112018/Project-Controls-sub011/commonerrors"
	"github.com/RMF112018/Project-Controls-sub011/idempotency"
)

type ProvisioningStatus string

const (
	StatusInProgress   ProvisioningStatus = "InProgress"
	StatusFailed       ProvisioningStatus = "Failed"
	StatusCompensating ProvisioningStatus = "Compensating"
	StatusCompleted    ProvisioningStatus = "Completed"
)

// ProvisioningLog is the persisted state of a run.
type ProvisioningLog struct {
	ProjectCode    string             `json:"projectCode"`
	Status         ProvisioningStatus `json:"status"`
	CurrentStep    int                `json:"currentStep"`
	CompletedSteps int                `json:"completedSteps"`
	// CompletedStepNumbers is the exact set of steps which were completed. Logs written by older versions only have a count.
	CompletedStepNumbers []int                `json:"completedStepNumbers,omitempty"`
	FailedStep           *int                 `json:"failedStep,omitempty"`
	ErrorMessage         string               `json:"errorMessage,omitempty"`
	CompensationLog      []CompensationResult `json:"compensationLog,omitempty"`
	IdempotencyToken     string               `json:"idempotencyToken"`
	RollbackFromToken    string               `json:"rollbackFromToken,omitempty"`
	SiteURL              string               `json:"siteUrl,omitempty"`
	CompletedAt          *time.Time           `json:"completedAt,omitempty"`
	TemplateVersion      string               `json:"templateVersion,omitempty"`
	TemplateType         string               `json:"templateType,omitempty"`
	Input                *ProvisioningInput   `json:"input,omitempty"`
	CreatedAt            time.Time            `json:"createdAt"`
	UpdatedAt            time.Time            `json:"updatedAt"`
}

// ProvisioningLogUpdate is a partial update of a log: only the fields which are set are applied.
type ProvisioningLogUpdate struct {
	Status               *ProvisioningStatus
	CurrentStep          *int
	CompletedSteps       *int
	CompletedStepNumbers []int
	FailedStep           *int
	ErrorMessage         *string
	CompensationLog      []CompensationResult
	IdempotencyToken     *string
	RollbackFromToken    *string
	SiteURL              *string
	CompletedAt          *time.Time
	TemplateVersion      *string
	TemplateType         *string
	Input                *ProvisioningInput
}

// Apply applies an update to the log.
func (l *ProvisioningLog) Apply(projectCode string, update ProvisioningLogUpdate, now time.Time) {
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	l.UpdatedAt = now
	if projectCode != "" {
		l.ProjectCode = projectCode
	}
	if update.Status != nil {
		l.Status = *update.Status
	}
	if update.CurrentStep != nil {
		l.CurrentStep = *update.CurrentStep
	}
	if update.CompletedSteps != nil {
		l.CompletedSteps = *update.CompletedSteps
	}
	if update.CompletedStepNumbers != nil {
		l.CompletedStepNumbers = slices.Clone(update.CompletedStepNumbers)
	}
	if update.FailedStep != nil {
		failed := *update.FailedStep
		l.FailedStep = &failed
	}
	if update.ErrorMessage != nil {
		l.ErrorMessage = TruncateMessage(*update.ErrorMessage)
	}
	if update.CompensationLog != nil {
		l.CompensationLog = slices.Clone(update.CompensationLog)
	}
	if update.IdempotencyToken != nil {
		l.IdempotencyToken = *update.IdempotencyToken
	}
	if update.RollbackFromToken != nil {
		l.RollbackFromToken = *update.RollbackFromToken
	}
	if update.SiteURL != nil {
		l.SiteURL = *update.SiteURL
	}
	if update.CompletedAt != nil {
		completedAt := *update.CompletedAt
		l.CompletedAt = &completedAt
	}
	if update.TemplateVersion != nil {
		l.TemplateVersion = *update.TemplateVersion
	}
	if update.TemplateType != nil {
		l.TemplateType = *update.TemplateType
	}
	if update.Input != nil {
		input := *update.Input
		l.Input = &input
	}
}

// Clone returns a deep copy of the log.
func (l *ProvisioningLog) Clone() *ProvisioningLog {
	if l == nil {
		return nil
	}
	c := *l
	c.CompletedStepNumbers = slices.Clone(l.CompletedStepNumbers)
	c.CompensationLog = slices.Clone(l.CompensationLog)
	if l.FailedStep != nil {
		failed := *l.FailedStep
		c.FailedStep = &failed
	}
	if l.CompletedAt != nil {
		completedAt := *l.CompletedAt
		c.CompletedAt = &completedAt
	}
	if l.Input != nil {
		input := *l.Input
		c.Input = &input
	}
	return &c
}

// Err returns the error the run failed with, or nil. The type of the error is restored when the message follows the
// `type: reason` convention e.g. `timeout: step took too long`.
func (l *ProvisioningLog) Err() error {
	if l == nil || strings.TrimSpace(l.ErrorMessage) == "" {
		return nil
	}
	err, dErr := commonerrors.DeserialiseError([]byte(l.ErrorMessage))
	if dErr != nil || err == nil {
		return commonerrors.New(commonerrors.ErrUnexpected, l.ErrorMessage)
	}
	return err
}

// StepsToCompensate returns the steps a rollback of this run must compensate: the exact set recorded if any, the range 1..CompletedSteps otherwise.
func (l *ProvisioningLog) StepsToCompensate() []int {
	if len(l.CompletedStepNumbers) > 0 {
		return slices.Clone(l.CompletedStepNumbers)
	}
	steps := make([]int, 0, l.CompletedSteps)
	for i := 1; i <= l.CompletedSteps; i++ {
		steps = append(steps, i)
	}
	return steps
}

// RunReference returns the reference of the run for token validation.
func (l *ProvisioningLog) RunReference() idempotency.RunReference {
	return idempotency.RunReference{
		ProjectCode:      l.ProjectCode,
		IdempotencyToken: l.IdempotencyToken,
		Status:           string(l.Status),
	}
}

// RunReferences converts logs into run references.
func RunReferences(logs []ProvisioningLog) []idempotency.RunReference {
	references := make([]idempotency.RunReference, 0, len(logs))
	for i := range logs {
		references = append(references, logs[i].RunReference())
	}
	return references
}
