package saga

import (
	"context"
	"fmt"

	"github.com/RMF112018/Project-Controls-sub011/commonerrors"
	"github.com/RMF112018/Project-Controls-sub011/field"
	"github.com/RMF112018/Project-Controls-sub011/idempotency"
)

// Rollback compensates the steps a persisted run completed. It is meant for operators cleaning up runs which
// failed to compensate or which must be undone after completion. Runs are looked up by the canonical spelling of token.
func (o *Orchestrator) Rollback(ctx context.Context, projectCode, token string) (results []CompensationResult, err error) {
	token = idempotency.Canonical(token)
	ctx, span := o.startSpan(ctx, "provisioning.rollback", attrProjectCode.String(projectCode), attrToken.String(token))
	defer func() { endSpan(span, err) }()
	logger := o.logger.WithValues("projectCode", projectCode, "token", token)

	o.audit.Dispatch(ctx, AuditEntry{
		Action:           AuditManualRollbackInitiated,
		ProjectCode:      projectCode,
		IdempotencyToken: token,
	})

	log, err := o.store.GetProvisioningLogByToken(ctx, token)
	if err != nil {
		if commonerrors.Any(err, commonerrors.ErrNotFound) {
			err = commonerrors.Newf(ErrRunNotFound, "no run with token %v", token)
		}
		return
	}
	if log == nil || log.ProjectCode != projectCode {
		err = commonerrors.Newf(ErrRunNotFound, "no run of project %v with token %v", projectCode, token)
		return
	}

	hubSiteURL, err := o.platform.GetHubSiteURL(ctx)
	if err != nil {
		err = commonerrors.WrapError(commonerrors.ErrUnavailable, err, "could not determine hub site")
		return
	}

	input := ProvisioningInput{ProjectCode: projectCode}
	if log.Input != nil {
		input = *log.Input
	}
	rc := &RunContext{
		Input:            input,
		SiteURL:          log.SiteURL,
		HubSiteURL:       hubSiteURL,
		SiteAlias:        ResolveSiteAlias(input),
		IdempotencyToken: token,
		CompletedSteps:   log.StepsToCompensate(),
		TemplateVersion:  log.TemplateVersion,
		TemplateType:     log.TemplateType,
	}
	logger.Info("manual rollback started", "steps", rc.CompletedSteps, "status", log.Status, "runError", log.Err())

	results = o.Compensate(ctx, rc, rc.CompletedSteps, ManualRollback)
	successCount := 0
	for i := range results {
		results[i].CompensationType = ManualRollback
		if results[i].Success {
			successCount++
		}
	}

	o.persist(ctx, logger, projectCode, ProvisioningLogUpdate{
		IdempotencyToken:  field.ToOptionalString(token),
		RollbackFromToken: field.ToOptionalString(token),
		CompensationLog:   results,
	})
	o.audit.Dispatch(ctx, AuditEntry{
		Action:                     AuditManualRollbackCompleted,
		ProjectCode:                projectCode,
		IdempotencyToken:           token,
		RequiresManualIntervention: requiresManualIntervention(results),
		Details: map[string]any{
			"summary":      fmt.Sprintf("%v/%v", successCount, len(results)),
			"successCount": successCount,
			"total":        len(results),
		},
	})
	logger.Info("manual rollback completed", "successCount", successCount, "total", len(results))
	return
}

func requiresManualIntervention(results []CompensationResult) bool {
	for i := range results {
		if results[i].RequiresManualIntervention {
			return true
		}
	}
	return false
}
