// Package api exposes the provisioning service over HTTP.
package api

//go:generate go tool mockgen -destination=mock_test.go -package=$GOPACKAGE github.com/RMF112018/Project-Controls-sub011/transaction/saga IOrchestrator,ILogStore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-http-utils/headers"
	"github.com/go-logr/logr"

	"github.com/RMF112018/Project-Controls-sub011/commonerrors"
	httperrors "github.com/RMF112018/Project-Controls-sub011/http/errors"
	"github.com/RMF112018/Project-Controls-sub011/idempotency"
	"github.com/RMF112018/Project-Controls-sub011/transaction/saga"
)

const (
	ProjectCodeParameter = "projectCode"
	maxRequestBody       = 1 << 20
	contentTypeJSON      = "application/json"
)

// Handler serves the provisioning API.
type Handler struct {
	orchestrator saga.IOrchestrator
	store        saga.ILogStore
	tokens       *idempotency.TokenService
	admission    *idempotency.Admission
	events       http.Handler
	logger       logr.Logger
}

type Option func(*Handler)

// WithTokenService sets the service generating and validating tokens. It should be the one the orchestrator uses.
func WithTokenService(tokens *idempotency.TokenService) Option {
	return func(h *Handler) {
		if tokens != nil {
			h.tokens = tokens
		}
	}
}

// WithAdmission sets how client tokens are admitted. Without it, client tokens are validated but not reserved.
func WithAdmission(admission *idempotency.Admission) Option {
	return func(h *Handler) {
		h.admission = admission
	}
}

// WithEvents sets the handler streaming status messages.
func WithEvents(events http.Handler) Option {
	return func(h *Handler) {
		h.events = events
	}
}

func WithLogger(logger logr.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

func NewHandler(orchestrator saga.IOrchestrator, store saga.ILogStore, opts ...Option) (*Handler, error) {
	if orchestrator == nil {
		return nil, commonerrors.UndefinedVariable("orchestrator")
	}
	if store == nil {
		return nil, commonerrors.UndefinedVariable("log store")
	}
	h := &Handler{
		orchestrator: orchestrator,
		store:        store,
		tokens:       idempotency.NewTokenService(),
		logger:       logr.Discard(),
	}
	for i := range opts {
		opts[i](h)
	}
	if h.admission == nil {
		h.admission = idempotency.NewAdmission(h.tokens, nil, 0)
	}
	return h, nil
}

// Provision runs a provisioning. The run is detached from the request so that a client going away does not
// trigger the compensation of a run which is progressing.
func (h *Handler) Provision(w http.ResponseWriter, r *http.Request) {
	var req ProvisioningRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := req.ProvisioningInput.Validate(); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", err)
		return
	}
	ctx := r.Context()
	req.IdempotencyToken = strings.TrimSpace(req.IdempotencyToken)
	if token := req.IdempotencyToken; token != "" {
		logs, err := h.store.ListProvisioningLogs(ctx, req.ProjectCode)
		if err != nil {
			h.writeError(w, httperrors.MapErrorToStatusCode(err), "log_store_error", err)
			return
		}
		result, err := h.admission.Admit(ctx, token, req.ProjectCode, saga.RunReferences(logs))
		if err != nil {
			status := http.StatusServiceUnavailable
			code := "admission_error"
			switch {
			case commonerrors.Any(err, commonerrors.ErrConflict):
				status, code = http.StatusConflict, "token_replay"
			case commonerrors.Any(err, commonerrors.ErrInvalid):
				status, code = http.StatusUnprocessableEntity, "invalid_token"
			}
			h.writeJSON(w, status, ErrorResponse{Error: code, Message: err.Error(), Issues: result.Errors})
			return
		}
		req.IdempotencyToken = idempotency.Canonical(token)
	}

	result := h.orchestrator.Execute(context.WithoutCancel(ctx), req.ProvisioningInput)
	status := http.StatusCreated
	if !result.Success {
		status = http.StatusInternalServerError
	}
	h.logger.Info("provisioning processed", "projectCode", req.ProjectCode, "token", result.IdempotencyToken, "success", result.Success)
	h.writeJSON(w, status, result)
}

func (h *Handler) Rollback(w http.ResponseWriter, r *http.Request) {
	projectCode := chi.URLParam(r, ProjectCodeParameter)
	var req RollbackRequest
	if !h.decode(w, r, &req) {
		return
	}
	token := strings.TrimSpace(req.IdempotencyToken)
	if token == "" {
		h.writeError(w, http.StatusBadRequest, "invalid_request", commonerrors.UndefinedVariable("idempotency token"))
		return
	}
	results, err := h.orchestrator.Rollback(context.WithoutCancel(r.Context()), projectCode, token)
	if err != nil {
		code := "rollback_error"
		if commonerrors.Any(err, saga.ErrRunNotFound, commonerrors.ErrNotFound) {
			code = "run_not_found"
		}
		h.writeError(w, httperrors.MapErrorToStatusCode(err), code, err)
		return
	}
	succeeded := 0
	for i := range results {
		if results[i].Success {
			succeeded++
		}
	}
	if results == nil {
		results = []saga.CompensationResult{}
	}
	h.writeJSON(w, http.StatusOK, RollbackResponse{
		ProjectCode:         projectCode,
		IdempotencyToken:    token,
		Summary:             fmt.Sprintf("%v/%v", succeeded, len(results)),
		CompensationResults: results,
	})
}

func (h *Handler) Logs(w http.ResponseWriter, r *http.Request) {
	projectCode := chi.URLParam(r, ProjectCodeParameter)
	logs, err := h.store.ListProvisioningLogs(r.Context(), projectCode)
	if err != nil {
		h.writeError(w, httperrors.MapErrorToStatusCode(err), "log_store_error", err)
		return
	}
	h.writeJSON(w, http.StatusOK, LogsResponse{ProjectCode: projectCode, Logs: logs})
}

func (h *Handler) GenerateToken(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if !h.decode(w, r, &req) {
		return
	}
	input := saga.ProvisioningInput{ProjectCode: req.ProjectCode}
	if err := input.Validate(); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, TokenResponse{
		ProjectCode:      req.ProjectCode,
		IdempotencyToken: h.tokens.Generate(req.ProjectCode),
	})
}

// ValidateToken reports whether a token may be used for a new run of a project. Issues are part of a successful
// response: only malformed requests are rejected.
func (h *Handler) ValidateToken(w http.ResponseWriter, r *http.Request) {
	var req TokenValidationRequest
	if !h.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.ProjectCode) == "" {
		h.writeError(w, http.StatusBadRequest, "invalid_request", commonerrors.UndefinedVariable("project code"))
		return
	}
	logs, err := h.store.ListProvisioningLogs(r.Context(), req.ProjectCode)
	if err != nil {
		h.writeError(w, httperrors.MapErrorToStatusCode(err), "log_store_error", err)
		return
	}
	result := h.tokens.Validate(req.IdempotencyToken, req.ProjectCode, saga.RunReferences(logs))
	h.writeJSON(w, http.StatusOK, TokenValidationResponse{ValidationResult: result})
}

func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	if h.events == nil {
		h.writeError(w, http.StatusNotImplemented, "not_implemented", commonerrors.New(commonerrors.ErrNotImplemented, "status events"))
		return
	}
	h.events.ServeHTTP(w, r)
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := decoder.Decode(v); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_json", commonerrors.WrapError(commonerrors.ErrMarshalling, err, "could not decode request"))
		return false
	}
	return true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(headers.ContentType, contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error(err, "could not write response", "status", status)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code string, err error) {
	if status >= http.StatusInternalServerError {
		h.logger.Error(err, "request failed", "code", code)
	}
	h.writeJSON(w, status, ErrorResponse{Error: code, Message: saga.TruncateMessage(err.Error())})
}
