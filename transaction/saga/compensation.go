package saga

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/go-logr/logr"

	"github.com/RMF112018/Project-Controls-sub011/commonerrors"
	"github.com/RMF112018/Project-Controls-sub011/field"
	"github.com/RMF112018/Project-Controls-sub011/parallelisation"
	"github.com/RMF112018/Project-Controls-sub011/retry"
)

// Compensate undoes the steps specified in strict descending order. Compensation carries on after a failure and is
// not interrupted by the cancellation of ctx.
func (o *Orchestrator) Compensate(ctx context.Context, rc *RunContext, steps []int, compensationType CompensationType) (results []CompensationResult) {
	ctx = context.WithoutCancel(ctx)
	ctx, span := o.startSpan(ctx, "provisioning.compensate", attrToken.String(rc.IdempotencyToken), attrCompensationType.String(string(compensationType)))
	defer func() { endSpan(span, nil) }()
	logger := o.logger.WithValues("projectCode", rc.Input.ProjectCode, "token", rc.IdempotencyToken, "compensationType", compensationType)

	ordered := slices.Clone(steps)
	slices.Sort(ordered)
	ordered = slices.Compact(ordered)
	results = make([]CompensationResult, 0, len(ordered))

	o.persist(ctx, logger, rc.Input.ProjectCode, ProvisioningLogUpdate{
		Status:           statusPtr(StatusCompensating),
		IdempotencyToken: field.ToOptionalString(rc.IdempotencyToken),
	})

	group := parallelisation.NewExecutionGroup[int](func(cCtx context.Context, stepNumber int) error {
		results = append(results, o.compensateStep(cCtx, logger, rc, stepNumber, compensationType))
		return nil
	}, parallelisation.SequentialInReverse, parallelisation.ExecuteAll)
	group.RegisterFunction(ordered...)
	if err := group.Execute(ctx); err != nil {
		logger.Error(err, "compensation interrupted")
	}
	return
}

func (o *Orchestrator) compensateStep(ctx context.Context, logger logr.Logger, rc *RunContext, stepNumber int, compensationType CompensationType) (result CompensationResult) {
	ctx, span := o.startSpan(ctx, "provisioning.compensate_step", attrStep.Int(stepNumber))
	start := time.Now()
	var err error
	defer func() { endSpan(span, err) }()

	step, found := o.catalog.Get(stepNumber)
	if !found {
		step = StepDefinition{Step: stepNumber, Label: fmt.Sprintf("unknown step %v", stepNumber)}
		err = commonerrors.Newf(commonerrors.ErrNotFound, "unknown step %v", stepNumber)
	} else {
		o.broadcast(ctx, newStatusMessage(rc, step, StepCompensating, o.catalog.Len(), o.clock.Now(), ""))
		err = o.runCompensation(ctx, logger, rc, step)
	}

	if err == nil {
		result = compensationSucceeded(step, compensationType, time.Since(start), o.clock.Now())
		logger.Info("step compensated", "step", step.Step, "label", step.Label)
		o.audit.Dispatch(ctx, AuditEntry{
			Action:           AuditStepCompensated,
			ProjectCode:      rc.Input.ProjectCode,
			IdempotencyToken: rc.IdempotencyToken,
			Step:             step.Step,
			Details: map[string]any{
				"label":            step.Label,
				"duration":         result.Duration,
				"compensationType": compensationType,
			},
		})
		return
	}

	result = compensationFailed(step, compensationType, err, time.Since(start), o.clock.Now())
	logger.Error(err, "compensation failed", "step", step.Step, "label", step.Label, "critical", step.IsCritical)
	o.audit.Dispatch(ctx, AuditEntry{
		Action:                     AuditCompensationFailed,
		ProjectCode:                rc.Input.ProjectCode,
		IdempotencyToken:           rc.IdempotencyToken,
		Step:                       step.Step,
		RequiresManualIntervention: result.RequiresManualIntervention,
		Details: map[string]any{
			"label":            step.Label,
			"error":            result.Error,
			"isCritical":       step.IsCritical,
			"compensationType": compensationType,
		},
	})
	return
}

func (o *Orchestrator) runCompensation(ctx context.Context, logger logr.Logger, rc *RunContext, step StepDefinition) error {
	if step.Compensate == nil {
		return nil
	}
	snapshot := rc.snapshot()
	return retry.RetryOnAnyError(ctx, logger, &o.cfg.CompensationRetry, func() error {
		return parallelisation.RunActionWithTimeout(ctx, o.cfg.CompensationTimeout, func(cCtx context.Context) error {
			return step.Compensate(cCtx, snapshot)
		})
	}, fmt.Sprintf("compensation of step %v (%v) failed", step.Step, step.Label))
}
