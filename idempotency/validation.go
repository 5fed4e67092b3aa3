package idempotency

import (
	"fmt"
	"strings"
	"time"

	"github.com/RMF112018/Project-Controls-sub011/commonerrors"
)

const (
	DefaultMaxAge    = 24 * time.Hour
	DefaultClockSkew = 5 * time.Minute
)

type IssueKind string

const (
	IssueFormat   IssueKind = "format"
	IssueMismatch IssueKind = "mismatch"
	IssueExpired  IssueKind = "expired"
	IssueFuture   IssueKind = "future"
	IssueReplay   IssueKind = "replay"
)

// Issue describes one reason a token was rejected.
type Issue struct {
	Kind    IssueKind `json:"kind"`
	Message string    `json:"message"`
}

// ValidationResult is the outcome of a token validation. The token is valid iff there are no issues.
type ValidationResult struct {
	IsValid bool    `json:"isValid"`
	Errors  []Issue `json:"errors"`
}

// Has states whether an issue of a certain kind was found.
func (r ValidationResult) Has(kind IssueKind) bool {
	for i := range r.Errors {
		if r.Errors[i].Kind == kind {
			return true
		}
	}
	return false
}

// Err returns nil if the token is valid; otherwise an error of type commonerrors.ErrInvalid listing every issue.
func (r ValidationResult) Err() error {
	if r.IsValid || len(r.Errors) == 0 {
		return nil
	}
	messages := make([]string, 0, len(r.Errors))
	for i := range r.Errors {
		messages = append(messages, fmt.Sprintf("[%v] %v", r.Errors[i].Kind, r.Errors[i].Message))
	}
	return commonerrors.New(commonerrors.ErrInvalid, strings.Join(messages, "; "))
}

// RunReference describes a run which already consumed a token.
type RunReference struct {
	ProjectCode      string
	IdempotencyToken string
	Status           string
}

func (r RunReference) String() string {
	if r.Status == "" {
		return fmt.Sprintf("run of project %v", r.ProjectCode)
	}
	return fmt.Sprintf("run of project %v (%v)", r.ProjectCode, r.Status)
}

type ValidationOptions struct {
	MaxAge    time.Duration
	ClockSkew time.Duration
}

func DefaultValidationOptions() *ValidationOptions {
	return &ValidationOptions{
		MaxAge:    DefaultMaxAge,
		ClockSkew: DefaultClockSkew,
	}
}

type ValidationOption func(*ValidationOptions)

// MaxAge sets how old a token may be before being considered expired.
func MaxAge(d time.Duration) ValidationOption {
	return func(o *ValidationOptions) {
		if d > 0 {
			o.MaxAge = d
		}
	}
}

// ClockSkew sets how far in the future a token timestamp may be.
func ClockSkew(d time.Duration) ValidationOption {
	return func(o *ValidationOptions) {
		if d >= 0 {
			o.ClockSkew = d
		}
	}
}

// Validate checks a token against the expected project code, its age and the runs which already used a token.
// A malformed token only reports a format issue; otherwise every issue found is reported.
func (s *TokenService) Validate(token, expectedProjectCode string, existingRuns []RunReference, opts ...ValidationOption) ValidationResult {
	options := s.validation
	for i := range opts {
		opts[i](&options)
	}
	parsed, err := Parse(token)
	if err != nil {
		return newValidationResult(Issue{Kind: IssueFormat, Message: err.Error()})
	}
	var issues []Issue
	if parsed.ProjectCode != expectedProjectCode {
		issues = append(issues, Issue{
			Kind:    IssueMismatch,
			Message: fmt.Sprintf("token was issued for project %q but %q was expected", parsed.ProjectCode, expectedProjectCode),
		})
	}
	now := s.clock.Now()
	if age := now.Sub(parsed.Timestamp); age > options.MaxAge {
		issues = append(issues, Issue{
			Kind:    IssueExpired,
			Message: fmt.Sprintf("token is %v old which exceeds the maximum age of %v", age.Truncate(time.Second), options.MaxAge),
		})
	}
	if parsed.Timestamp.After(now.Add(options.ClockSkew)) {
		issues = append(issues, Issue{
			Kind:    IssueFuture,
			Message: fmt.Sprintf("token timestamp %v is in the future beyond the allowed skew of %v", parsed.Timestamp.Format(TimestampLayout), options.ClockSkew),
		})
	}
	canonical := parsed.String()
	for i := range existingRuns {
		if Canonical(existingRuns[i].IdempotencyToken) == canonical {
			issues = append(issues, Issue{
				Kind:    IssueReplay,
				Message: fmt.Sprintf("token was already used by the %v", existingRuns[i]),
			})
			break
		}
	}
	return newValidationResult(issues...)
}

// Canonical returns the canonical spelling of a token, or the token itself when it cannot be parsed.
func Canonical(token string) string {
	parsed, err := Parse(token)
	if err != nil {
		return token
	}
	return parsed.String()
}

func newValidationResult(issues ...Issue) ValidationResult {
	if issues == nil {
		issues = []Issue{}
	}
	return ValidationResult{
		IsValid: len(issues) == 0,
		Errors:  issues,
	}
}
