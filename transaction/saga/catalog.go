package saga

import (
	"context"
	"slices"
	"strings"

	"github.com/RMF112018/Project-Controls-sub011/commonerrors"
)

// StepFunc performs the forward action of a step. The run context is read-only: any value to hand back to the run must be returned as output.
type StepFunc func(ctx context.Context, rc *RunContext) (*StepOutput, error)

// CompensateFunc undoes the forward action of a step.
type CompensateFunc func(ctx context.Context, rc *RunContext) error

// StepDefinition defines a step of the provisioning.
type StepDefinition struct {
	// Step is the position of the step in the catalog, starting at 1.
	Step  int
	Label string
	// IsCritical states whether a failed compensation of this step requires manual intervention.
	IsCritical bool
	Execute    StepFunc
	Compensate CompensateFunc
}

// StepCatalog is a fixed and ordered set of steps indexed by step number.
type StepCatalog struct {
	steps []StepDefinition
}

// NewStepCatalog builds a catalog. Step numbers must be unique and form the contiguous range 1..N.
func NewStepCatalog(steps ...StepDefinition) (*StepCatalog, error) {
	if len(steps) == 0 {
		return nil, commonerrors.New(commonerrors.ErrInvalid, "a step catalog requires at least one step")
	}
	indexed := make([]StepDefinition, len(steps))
	found := make([]bool, len(steps))
	for i := range steps {
		step := steps[i]
		if step.Step < 1 || step.Step > len(steps) {
			return nil, commonerrors.Newf(commonerrors.ErrInvalid, "step number %v is outside of the range 1..%v", step.Step, len(steps))
		}
		if found[step.Step-1] {
			return nil, commonerrors.Newf(commonerrors.ErrInvalid, "step number %v is defined more than once", step.Step)
		}
		if strings.TrimSpace(step.Label) == "" {
			return nil, commonerrors.Newf(commonerrors.ErrInvalid, "step %v has no label", step.Step)
		}
		if step.Execute == nil {
			return nil, commonerrors.Newf(commonerrors.ErrInvalid, "step %v (%v) has no forward action", step.Step, step.Label)
		}
		found[step.Step-1] = true
		indexed[step.Step-1] = step
	}
	return &StepCatalog{steps: indexed}, nil
}

// Get returns the definition of a step.
func (c *StepCatalog) Get(step int) (StepDefinition, bool) {
	if c == nil || step < 1 || step > len(c.steps) {
		return StepDefinition{}, false
	}
	return c.steps[step-1], true
}

func (c *StepCatalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.steps)
}

// Steps returns all the steps in ascending order.
func (c *StepCatalog) Steps() []StepDefinition {
	if c == nil {
		return nil
	}
	return slices.Clone(c.steps)
}
