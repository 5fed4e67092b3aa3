package idempotency

import (
	"context"
	"time"

	"github.com/RMF112018/Project-Controls-sub011/commonerrors"
)

//go:generate go tool mockgen -destination=mock_test.go -package=$GOPACKAGE github.com/RMF112018/Project-Controls-sub011/$GOPACKAGE IReserver

// IReserver records tokens which were admitted so that they cannot be admitted again.
type IReserver interface {
	// Reserve reserves a token for a project for the time specified. If the token is already reserved, an error of
	// type commonerrors.ErrConflict is returned.
	Reserve(ctx context.Context, token, projectCode string, ttl time.Duration) error
}

// Admission validates a token and reserves it. It is meant to be placed in front of a provisioning run so that the
// same request is not processed twice.
type Admission struct {
	tokens   *TokenService
	reserver IReserver
	ttl      time.Duration
}

// NewAdmission returns an admission. reserver may be nil in which case only validation takes place.
func NewAdmission(tokens *TokenService, reserver IReserver, ttl time.Duration) *Admission {
	if tokens == nil {
		tokens = NewTokenService()
	}
	if ttl <= 0 {
		ttl = DefaultMaxAge + DefaultClockSkew
	}
	return &Admission{tokens: tokens, reserver: reserver, ttl: ttl}
}

// Admit validates the token and reserves it. The error returned is of type commonerrors.ErrConflict if the token
// was already used or reserved, or commonerrors.ErrInvalid if the token is not valid for the project. Tokens are
// reserved in their canonical spelling.
func (a *Admission) Admit(ctx context.Context, token, projectCode string, existingRuns []RunReference) (result ValidationResult, err error) {
	result = a.tokens.Validate(token, projectCode, existingRuns)
	if !result.IsValid {
		err = result.Err()
		if result.Has(IssueReplay) {
			err = commonerrors.WrapError(commonerrors.ErrConflict, err, "")
		}
		return
	}
	if a.reserver == nil {
		return
	}
	err = a.reserver.Reserve(ctx, Canonical(token), projectCode, a.ttl)
	if err != nil && commonerrors.Any(err, commonerrors.ErrConflict) {
		result = newValidationResult(Issue{Kind: IssueReplay, Message: "token was already admitted"})
	}
	return
}
