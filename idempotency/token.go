// Package idempotency manages the lifecycle of provisioning idempotency tokens: generation, parsing and validation.
//
// A token has the form `projectCode::timestamp::suffix` where the timestamp is the UTC generation time in RFC3339
// format with millisecond precision and the suffix is made of 4 random hexadecimal characters.
package idempotency

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	mrand "math/rand/v2"
	"regexp"
	"strings"
	"time"

	"github.com/RMF112018/Project-Controls-sub011/commonerrors"
)

const (
	// Delimiter separates the token fields. Project codes must not contain it.
	Delimiter       = "::"
	TimestampLayout = "2006-01-02T15:04:05.000Z07:00"
	suffixBytes     = 2
)

var (
	timestampRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?Z$`)
	suffixRegex    = regexp.MustCompile(`^[0-9a-f]{4}$`)
)

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc converts a function into a Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

// RealClock returns the system clock.
func RealClock() Clock {
	return ClockFunc(time.Now)
}

// Token is a parsed idempotency token.
type Token struct {
	ProjectCode string
	Timestamp   time.Time
	Suffix      string
}

// String returns the canonical spelling of the token, which is the one Generate emits.
func (t Token) String() string {
	return strings.Join([]string{t.ProjectCode, t.Timestamp.UTC().Format(TimestampLayout), t.Suffix}, Delimiter)
}

// Parse parses a token. The error returned is of type commonerrors.ErrInvalid if the token is malformed.
func Parse(token string) (t Token, err error) {
	parts := strings.Split(token, Delimiter)
	if len(parts) != 3 {
		err = commonerrors.Newf(commonerrors.ErrInvalid, "token must have exactly 3 parts separated by %q, found %v", Delimiter, len(parts))
		return
	}
	if strings.TrimSpace(parts[0]) == "" {
		err = commonerrors.New(commonerrors.ErrInvalid, "token has an empty project code")
		return
	}
	if !timestampRegex.MatchString(parts[1]) {
		err = commonerrors.Newf(commonerrors.ErrInvalid, "token timestamp %q is not a UTC timestamp of the form YYYY-MM-DDThh:mm:ss[.fff]Z", parts[1])
		return
	}
	ts, subErr := time.Parse(time.RFC3339Nano, parts[1])
	if subErr != nil {
		err = commonerrors.WrapError(commonerrors.ErrInvalid, subErr, "token has an invalid timestamp")
		return
	}
	if !suffixRegex.MatchString(parts[2]) {
		err = commonerrors.Newf(commonerrors.ErrInvalid, "token suffix %q is not made of 4 lowercase hexadecimal characters", parts[2])
		return
	}
	t = Token{
		ProjectCode: parts[0],
		Timestamp:   ts.UTC(),
		Suffix:      parts[2],
	}
	return
}

// TokenService generates and validates idempotency tokens.
type TokenService struct {
	clock      Clock
	entropy    io.Reader
	validation ValidationOptions
}

type ServiceOption func(*TokenService)

// WithClock sets the clock used for generating and validating tokens.
func WithClock(clock Clock) ServiceOption {
	return func(s *TokenService) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithEntropy sets the source of randomness used for token suffixes.
func WithEntropy(reader io.Reader) ServiceOption {
	return func(s *TokenService) {
		if reader != nil {
			s.entropy = reader
		}
	}
}

// WithValidationOptions sets the default validation options of the service.
func WithValidationOptions(opts ...ValidationOption) ServiceOption {
	return func(s *TokenService) {
		for i := range opts {
			opts[i](&s.validation)
		}
	}
}

// NewTokenService returns a token service using the system clock and crypto/rand unless specified otherwise.
func NewTokenService(opts ...ServiceOption) *TokenService {
	s := &TokenService{
		clock:      RealClock(),
		entropy:    rand.Reader,
		validation: *DefaultValidationOptions(),
	}
	for i := range opts {
		opts[i](s)
	}
	return s
}

// Generate mints a new token for a project. It never fails: if the entropy source errors, a pseudo-random suffix is used instead.
func (s *TokenService) Generate(projectCode string) string {
	return Token{
		ProjectCode: projectCode,
		Timestamp:   s.clock.Now(),
		Suffix:      s.suffix(),
	}.String()
}

func (s *TokenService) suffix() string {
	b := make([]byte, suffixBytes)
	if _, err := io.ReadFull(s.entropy, b); err == nil {
		return hex.EncodeToString(b)
	}
	return fmt.Sprintf("%04x", mrand.Uint32()&0xffff)
}
