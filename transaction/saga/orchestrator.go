package saga

import (
	"context"
	"strings"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/trace"

	"github.com/RMF112018/Project-Controls-sub011/commonerrors"
	"github.com/RMF112018/Project-Controls-sub011/field"
	"github.com/RMF112018/Project-Controls-sub011/idempotency"
	"github.com/RMF112018/Project-Controls-sub011/parallelisation"
)

var _ IOrchestrator = &Orchestrator{}

// Orchestrator runs the steps of a catalog as a saga.
type Orchestrator struct {
	catalog     *StepCatalog
	platform    IPlatform
	store       ILogStore
	tokens      *idempotency.TokenService
	audit       *AuditDispatcher
	auditSink   IAuditSink
	broadcaster StatusBroadcaster
	limiter     IRateLimiter
	guard       IListThresholdGuard
	cfg         Configuration
	clock       idempotency.Clock
	logger      logr.Logger
	tracer      trace.Tracer
}

type Option func(*Orchestrator)

func WithLogger(logger logr.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

func WithAuditSink(sink IAuditSink) Option {
	return func(o *Orchestrator) {
		o.auditSink = sink
	}
}

func WithStatusBroadcaster(broadcaster StatusBroadcaster) Option {
	return func(o *Orchestrator) {
		o.broadcaster = broadcaster
	}
}

func WithRateLimiter(limiter IRateLimiter) Option {
	return func(o *Orchestrator) {
		o.limiter = limiter
	}
}

func WithListThresholdGuard(guard IListThresholdGuard) Option {
	return func(o *Orchestrator) {
		o.guard = guard
	}
}

func WithTokenService(tokens *idempotency.TokenService) Option {
	return func(o *Orchestrator) {
		if tokens != nil {
			o.tokens = tokens
		}
	}
}

func WithConfiguration(cfg *Configuration) Option {
	return func(o *Orchestrator) {
		if cfg != nil {
			o.cfg = *cfg
		}
	}
}

func WithClock(clock idempotency.Clock) Option {
	return func(o *Orchestrator) {
		if clock != nil {
			o.clock = clock
		}
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(o *Orchestrator) {
		if tracer != nil {
			o.tracer = tracer
		}
	}
}

// NewOrchestrator returns an orchestrator running the steps of catalog.
func NewOrchestrator(catalog *StepCatalog, platform IPlatform, store ILogStore, opts ...Option) (*Orchestrator, error) {
	if catalog == nil || catalog.Len() == 0 {
		return nil, commonerrors.UndefinedVariable("step catalog")
	}
	if platform == nil {
		return nil, commonerrors.UndefinedVariable("platform")
	}
	if store == nil {
		return nil, commonerrors.UndefinedVariable("log store")
	}
	o := &Orchestrator{
		catalog:  catalog,
		platform: platform,
		store:    store,
		tokens:   idempotency.NewTokenService(),
		cfg:      *DefaultConfiguration(),
		clock:    idempotency.RealClock(),
		logger:   logr.Discard(),
		tracer:   defaultTracer(),
	}
	for i := range opts {
		opts[i](o)
	}
	o.audit = NewAuditDispatcher(o.auditSink, o.logger.WithName("audit"), o.cfg.AuditTimeout)
	o.audit.clock = o.clock.Now
	return o, nil
}

// Catalog returns the steps the orchestrator runs.
func (o *Orchestrator) Catalog() *StepCatalog {
	return o.catalog
}

// Flush waits for pending audit writes.
func (o *Orchestrator) Flush(ctx context.Context) error {
	return o.audit.Flush(ctx)
}

// Close waits for pending audit writes. Audit entries of runs still in progress are dropped afterwards.
func (o *Orchestrator) Close(ctx context.Context) error {
	return o.audit.Close(ctx)
}

func (o *Orchestrator) Execute(ctx context.Context, input ProvisioningInput) (result SagaExecutionResult) {
	ctx, span := o.startSpan(ctx, "provisioning.execute", attrProjectCode.String(input.ProjectCode))
	var spanErr error
	defer func() { endSpan(span, spanErr) }()

	rc := &RunContext{Input: input, SiteAlias: ResolveSiteAlias(input)}
	defer func() {
		if r := recover(); r != nil {
			spanErr = commonerrors.Newf(commonerrors.ErrUnexpected, "provisioning panicked: %v", r)
			o.logger.Error(spanErr, "unexpected failure", "projectCode", input.ProjectCode)
			result = newFailedResult(rc, nil, errorMessage(spanErr), nil)
		}
	}()

	if err := input.Validate(); err != nil {
		spanErr = err
		return newFailedResult(rc, nil, errorMessage(err), nil)
	}
	token, err := o.runToken(input)
	if err != nil {
		spanErr = err
		return newFailedResult(rc, nil, errorMessage(err), nil)
	}
	rc.IdempotencyToken = token
	span.SetAttributes(attrToken.String(rc.IdempotencyToken))
	logger := o.logger.WithValues("projectCode", input.ProjectCode, "token", rc.IdempotencyToken)

	hubSiteURL, err := o.platform.GetHubSiteURL(ctx)
	if err != nil {
		spanErr = commonerrors.WrapError(commonerrors.ErrUnavailable, err, "could not determine hub site")
		logger.Error(spanErr, "provisioning aborted before any step")
		o.persist(ctx, logger, input.ProjectCode, ProvisioningLogUpdate{
			Status:           statusPtr(StatusFailed),
			ErrorMessage:     field.ToOptionalString(errorMessage(spanErr)),
			IdempotencyToken: field.ToOptionalString(rc.IdempotencyToken),
			Input:            &rc.Input,
		})
		return newFailedResult(rc, nil, errorMessage(spanErr), nil)
	}
	rc.HubSiteURL = hubSiteURL

	forward := parallelisation.NewExecutionGroup[StepDefinition](func(stepCtx context.Context, step StepDefinition) error {
		return o.executeStep(stepCtx, logger, rc, step)
	}, parallelisation.Sequential, parallelisation.StopOnFirstError)
	forward.RegisterFunction(o.catalog.Steps()...)

	err = forward.Execute(ctx)
	if err != nil {
		spanErr = err
		return o.handleForwardFailure(ctx, logger, rc, err)
	}
	return o.complete(ctx, logger, rc)
}

// runToken returns the token identifying the run: the canonical form of the token carried by the input, which must
// be valid for the project, or a newly generated one.
func (o *Orchestrator) runToken(input ProvisioningInput) (string, error) {
	token := strings.TrimSpace(input.IdempotencyToken)
	if token == "" {
		return o.tokens.Generate(input.ProjectCode), nil
	}
	if err := o.tokens.Validate(token, input.ProjectCode, nil).Err(); err != nil {
		return "", commonerrors.WrapError(commonerrors.ErrInvalid, err, "the run cannot adopt the idempotency token")
	}
	return idempotency.Canonical(token), nil
}

func (o *Orchestrator) executeStep(ctx context.Context, logger logr.Logger, rc *RunContext, step StepDefinition) (err error) {
	ctx, span := o.startSpan(ctx, "provisioning.step", attrStep.Int(step.Step), attrStepLabel.String(step.Label))
	defer func() { endSpan(span, err) }()
	total := o.catalog.Len()
	o.broadcast(ctx, newStatusMessage(rc, step, StepInProgress, total, o.clock.Now(), ""))
	o.throttle(ctx, logger, rc, step)

	var output *StepOutput
	snapshot := rc.snapshot()
	err = parallelisation.RunActionWithTimeout(ctx, o.cfg.StepTimeout, func(sCtx context.Context) (stepErr error) {
		output, stepErr = step.Execute(sCtx, snapshot)
		return
	})
	if err != nil {
		logger.Error(err, "step failed", "step", step.Step, "label", step.Label)
		return newStepError(step, err)
	}

	rc.apply(output)
	rc.CompletedSteps = append(rc.CompletedSteps, step.Step)
	logger.Info("step completed", "step", step.Step, "label", step.Label)
	o.broadcast(ctx, newStatusMessage(rc, step, StepCompleted, total, o.clock.Now(), ""))
	err = o.store.UpdateProvisioningLog(context.WithoutCancel(ctx), rc.Input.ProjectCode, ProvisioningLogUpdate{
		Status:               statusPtr(StatusInProgress),
		CurrentStep:          field.ToOptionalInt(step.Step),
		CompletedSteps:       field.ToOptionalInt(len(rc.CompletedSteps)),
		CompletedStepNumbers: rc.CompletedSteps,
		IdempotencyToken:     field.ToOptionalString(rc.IdempotencyToken),
		SiteURL:              optionalString(rc.SiteURL),
		Input:                &rc.Input,
	})
	if err != nil {
		err = commonerrors.WrapErrorf(commonerrors.ErrUnexpected, err, "could not persist the progress of step %v", step.Step)
		logger.Error(err, "persistence failed", "step", step.Step)
		return newStepError(step, err)
	}
	return nil
}

func (o *Orchestrator) handleForwardFailure(ctx context.Context, logger logr.Logger, rc *RunContext, err error) SagaExecutionResult {
	total := o.catalog.Len()
	failedStep := len(rc.CompletedSteps) + 1
	if stepErr, ok := asStepError(err); ok {
		failedStep = stepErr.Step
	}
	failedStep = min(failedStep, total)
	msg := errorMessage(err)
	step, _ := o.catalog.Get(failedStep)
	o.broadcast(ctx, newStatusMessage(rc, step, StepFailed, total, o.clock.Now(), msg))
	o.persist(ctx, logger, rc.Input.ProjectCode, ProvisioningLogUpdate{
		Status:               statusPtr(StatusFailed),
		FailedStep:           field.ToOptionalInt(failedStep),
		ErrorMessage:         field.ToOptionalString(msg),
		CompletedSteps:       field.ToOptionalInt(len(rc.CompletedSteps)),
		CompletedStepNumbers: rc.CompletedSteps,
		IdempotencyToken:     field.ToOptionalString(rc.IdempotencyToken),
		Input:                &rc.Input,
	})
	o.audit.Dispatch(ctx, AuditEntry{
		Action:           AuditCompensationStarted,
		ProjectCode:      rc.Input.ProjectCode,
		IdempotencyToken: rc.IdempotencyToken,
		Step:             failedStep,
		Details: map[string]any{
			"error":          msg,
			"completedSteps": len(rc.CompletedSteps),
		},
	})

	compensation := o.Compensate(ctx, rc, rc.CompletedSteps, ForwardFailure)
	o.persist(ctx, logger, rc.Input.ProjectCode, ProvisioningLogUpdate{
		CompensationLog:  compensation,
		IdempotencyToken: field.ToOptionalString(rc.IdempotencyToken),
	})
	return newFailedResult(rc, field.ToOptionalInt(failedStep), msg, compensation)
}

func (o *Orchestrator) complete(ctx context.Context, logger logr.Logger, rc *RunContext) SagaExecutionResult {
	total := o.catalog.Len()
	completedAt := o.clock.Now().UTC()
	err := o.store.UpdateProvisioningLog(context.WithoutCancel(ctx), rc.Input.ProjectCode, ProvisioningLogUpdate{
		Status:               statusPtr(StatusCompleted),
		CurrentStep:          field.ToOptionalInt(total),
		CompletedSteps:       field.ToOptionalInt(total),
		CompletedStepNumbers: rc.CompletedSteps,
		SiteURL:              field.ToOptionalString(rc.SiteURL),
		CompletedAt:          field.ToOptionalTime(completedAt),
		IdempotencyToken:     field.ToOptionalString(rc.IdempotencyToken),
		TemplateVersion:      optionalString(rc.TemplateVersion),
		TemplateType:         optionalString(rc.TemplateType),
		Input:                &rc.Input,
	})
	if err != nil {
		last, _ := o.catalog.Get(total)
		err = commonerrors.WrapError(commonerrors.ErrUnexpected, err, "could not persist the completion of the provisioning")
		logger.Error(err, "persistence failed", "step", total)
		return o.handleForwardFailure(ctx, logger, rc, newStepError(last, err))
	}
	o.audit.Dispatch(ctx, AuditEntry{
		Action:           AuditProvisioningCompleted,
		ProjectCode:      rc.Input.ProjectCode,
		IdempotencyToken: rc.IdempotencyToken,
		Step:             total,
		Details: map[string]any{
			"siteUrl":         rc.SiteURL,
			"templateVersion": rc.TemplateVersion,
			"templateType":    rc.TemplateType,
		},
	})
	logger.Info("provisioning completed", "siteUrl", rc.SiteURL)
	return newSucceededResult(rc)
}

// persist writes a log update whose failure must not change the outcome of the run.
func (o *Orchestrator) persist(ctx context.Context, logger logr.Logger, projectCode string, update ProvisioningLogUpdate) {
	if err := o.store.UpdateProvisioningLog(context.WithoutCancel(ctx), projectCode, update); err != nil {
		logger.Error(err, "could not update provisioning log")
	}
}

func (o *Orchestrator) broadcast(ctx context.Context, msg StatusMessage) {
	if o.broadcaster == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error(commonerrors.Newf(commonerrors.ErrUnexpected, "%v", r), "status broadcast panicked", "projectCode", msg.ProjectCode)
		}
	}()
	o.broadcaster(ctx, msg)
}

// throttle consults the optional rate limiter and list threshold guard. Their failures are only logged.
func (o *Orchestrator) throttle(ctx context.Context, logger logr.Logger, rc *RunContext, step StepDefinition) {
	if o.limiter != nil {
		if err := o.limiter.Wait(ctx); err != nil {
			logger.Error(err, "rate limiter failure ignored", "step", step.Step)
		}
	}
	if o.guard != nil {
		if err := o.guard.CheckThreshold(ctx, rc.snapshot(), step.Step); err != nil {
			logger.Error(err, "list threshold check failure ignored", "step", step.Step)
		}
	}
}

func statusPtr(s ProvisioningStatus) *ProvisioningStatus {
	return &s
}
