package saga

import (
	"context"
	"math"
	"time"

	"github.com/RMF112018/Project-Controls-sub011/idempotency"
)

const StatusMessageType = "ProvisioningStatus"

type StepStatus string

const (
	StepInProgress   StepStatus = "in_progress"
	StepCompleted    StepStatus = "completed"
	StepFailed       StepStatus = "failed"
	StepCompensating StepStatus = "compensating"
)

// StatusMessage reports the progress of a run.
type StatusMessage struct {
	Type             string     `json:"type"`
	ProjectCode      string     `json:"projectCode"`
	CurrentStep      int        `json:"currentStep"`
	TotalSteps       int        `json:"totalSteps"`
	StepStatus       StepStatus `json:"stepStatus"`
	StepLabel        string     `json:"stepLabel"`
	Progress         int        `json:"progress"`
	Timestamp        string     `json:"timestamp"`
	IdempotencyToken string     `json:"idempotencyToken"`
	Error            string     `json:"error,omitempty"`
}

// StatusBroadcaster publishes status messages e.g. to connected clients.
type StatusBroadcaster func(ctx context.Context, msg StatusMessage)

// Progress returns the percentage of completion of a run.
func Progress(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

func newStatusMessage(rc *RunContext, step StepDefinition, status StepStatus, total int, at time.Time, msg string) StatusMessage {
	return StatusMessage{
		Type:             StatusMessageType,
		ProjectCode:      rc.Input.ProjectCode,
		CurrentStep:      step.Step,
		TotalSteps:       total,
		StepStatus:       status,
		StepLabel:        step.Label,
		Progress:         Progress(len(rc.CompletedSteps), total),
		Timestamp:        at.UTC().Format(idempotency.TimestampLayout),
		IdempotencyToken: rc.IdempotencyToken,
		Error:            msg,
	}
}
