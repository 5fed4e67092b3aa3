package saga

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/RMF112018/Project-Controls-sub011/commonerrors"
)

// MaxErrorMessageLength is the maximum length of error messages persisted or returned.
const MaxErrorMessageLength = 2048

const truncationMarker = "... [truncated]"

// ErrRunNotFound is returned when a rollback is requested for a run which cannot be found.
var ErrRunNotFound = commonerrors.New(commonerrors.ErrNotFound, "provisioning run")

// StepError describes the failure of the forward action of a step.
type StepError struct {
	Step  int
	Label string
	Cause error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %v (%v) failed: %v", e.Step, e.Label, e.Cause)
}

func (e *StepError) Unwrap() error {
	return e.Cause
}

// Message returns the message of the underlying failure.
func (e *StepError) Message() string {
	if e.Cause == nil {
		return commonerrors.ErrUnknown.Error()
	}
	return e.Cause.Error()
}

func newStepError(step StepDefinition, cause error) *StepError {
	return &StepError{Step: step.Step, Label: step.Label, Cause: cause}
}

func asStepError(err error) (*StepError, bool) {
	var stepErr *StepError
	if errors.As(err, &stepErr) {
		return stepErr, true
	}
	return nil, false
}

// TruncateMessage ensures a message does not exceed MaxErrorMessageLength bytes. Messages are only cut on rune
// boundaries.
func TruncateMessage(msg string) string {
	if len(msg) <= MaxErrorMessageLength {
		return msg
	}
	cut := MaxErrorMessageLength - len(truncationMarker)
	for cut > 0 && !utf8.RuneStart(msg[cut]) {
		cut--
	}
	return msg[:cut] + truncationMarker
}

func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	if stepErr, ok := asStepError(err); ok {
		return TruncateMessage(stepErr.Message())
	}
	text, _ := commonerrors.SerialiseError(err)
	return TruncateMessage(string(text))
}
