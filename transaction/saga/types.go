package saga

import (
	"slices"
	"time"

	"github.com/RMF112018/Project-Controls-sub011/field"
	"github.com/RMF112018/Project-Controls-sub011/idempotency"
)

type CompensationType string

const (
	ForwardFailure CompensationType = "forward_failure"
	ManualRollback CompensationType = "manual_rollback"
)

// StepOutput holds the values a step hands back to the run.
type StepOutput struct {
	SiteURL         string
	TemplateVersion string
	TemplateType    string
}

// RunContext holds the state of a single run. It is owned by the orchestrator and never shared between runs.
type RunContext struct {
	Input            ProvisioningInput
	SiteURL          string
	HubSiteURL       string
	SiteAlias        string
	IdempotencyToken string
	// CompletedSteps lists the steps which succeeded, in order of completion.
	CompletedSteps  []int
	TemplateVersion string
	TemplateType    string
}

func (rc *RunContext) snapshot() *RunContext {
	c := *rc
	c.CompletedSteps = slices.Clone(rc.CompletedSteps)
	return &c
}

func (rc *RunContext) apply(output *StepOutput) {
	if output == nil {
		return
	}
	if output.SiteURL != "" {
		rc.SiteURL = output.SiteURL
	}
	if output.TemplateVersion != "" {
		rc.TemplateVersion = output.TemplateVersion
	}
	if output.TemplateType != "" {
		rc.TemplateType = output.TemplateType
	}
}

// CompensationResult is the outcome of the compensation of one step. Error is set iff the compensation failed.
type CompensationResult struct {
	Step    int    `json:"step"`
	Label   string `json:"label"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	// Duration in milliseconds
	Duration                   int64            `json:"duration"`
	Timestamp                  string           `json:"timestamp"`
	CompensationType           CompensationType `json:"compensationType"`
	IsCritical                 bool             `json:"isCritical"`
	RequiresManualIntervention bool             `json:"requiresManualIntervention"`
}

func compensationSucceeded(step StepDefinition, compensationType CompensationType, duration time.Duration, at time.Time) CompensationResult {
	return CompensationResult{
		Step:             step.Step,
		Label:            step.Label,
		Success:          true,
		Duration:         duration.Milliseconds(),
		Timestamp:        at.UTC().Format(idempotency.TimestampLayout),
		CompensationType: compensationType,
		IsCritical:       step.IsCritical,
	}
}

func compensationFailed(step StepDefinition, compensationType CompensationType, cause error, duration time.Duration, at time.Time) CompensationResult {
	msg := errorMessage(cause)
	if msg == "" {
		msg = "compensation failed"
	}
	return CompensationResult{
		Step:                       step.Step,
		Label:                      step.Label,
		Success:                    false,
		Error:                      msg,
		Duration:                   duration.Milliseconds(),
		Timestamp:                  at.UTC().Format(idempotency.TimestampLayout),
		CompensationType:           compensationType,
		IsCritical:                 step.IsCritical,
		RequiresManualIntervention: step.IsCritical,
	}
}

// SagaExecutionResult is the outcome of a run.
type SagaExecutionResult struct {
	Success             bool                 `json:"success"`
	CompletedSteps      int                  `json:"completedSteps"`
	FailedStep          *int                 `json:"failedStep,omitempty"`
	Error               *string              `json:"error,omitempty"`
	CompensationResults []CompensationResult `json:"compensationResults,omitempty"`
	IdempotencyToken    string               `json:"idempotencyToken"`
	SiteURL             *string              `json:"siteUrl,omitempty"`
	TemplateVersion     *string              `json:"templateVersion,omitempty"`
	TemplateType        *string              `json:"templateType,omitempty"`
}

func newSucceededResult(rc *RunContext) SagaExecutionResult {
	return SagaExecutionResult{
		Success:          true,
		CompletedSteps:   len(rc.CompletedSteps),
		IdempotencyToken: rc.IdempotencyToken,
		SiteURL:          optionalString(rc.SiteURL),
		TemplateVersion:  optionalString(rc.TemplateVersion),
		TemplateType:     optionalString(rc.TemplateType),
	}
}

func newFailedResult(rc *RunContext, failedStep *int, msg string, compensation []CompensationResult) SagaExecutionResult {
	return SagaExecutionResult{
		Success:             false,
		CompletedSteps:      len(rc.CompletedSteps),
		FailedStep:          failedStep,
		Error:               field.ToOptionalString(msg),
		CompensationResults: compensation,
		IdempotencyToken:    rc.IdempotencyToken,
		SiteURL:             optionalString(rc.SiteURL),
		TemplateVersion:     optionalString(rc.TemplateVersion),
		TemplateType:        optionalString(rc.TemplateType),
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return field.ToOptionalString(s)
}
