package saga

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/RMF112018/Project-Controls-sub011/transaction/saga"

const (
	attrProjectCode      = attribute.Key("provisioning.project_code")
	attrToken            = attribute.Key("provisioning.idempotency_token")
	attrStep             = attribute.Key("provisioning.step")
	attrStepLabel        = attribute.Key("provisioning.step_label")
	attrCompensationType = attribute.Key("provisioning.compensation_type")
)

func defaultTracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, errorMessage(err))
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

func (o *Orchestrator) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return o.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}
