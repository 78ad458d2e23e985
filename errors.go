package utilcss

import (
	"errors"
	"fmt"

	"github.com/yacobolo/utilcss/internal/sanitize"
	"github.com/yacobolo/utilcss/internal/serialize"
	"github.com/yacobolo/utilcss/rule"
	"github.com/yacobolo/utilcss/variant"
)

// Error taxonomy. Invalid configuration is reported through the
// rule/variant/serializer sentinels; ErrGeneration is the runtime catch-all.
// An unmatched token is never an error.
var (
	ErrGeneration = errors.New("generation failed")

	ErrInvalidRule    = rule.ErrInvalidRule
	ErrInvalidVariant = variant.ErrInvalidVariant
	ErrNonFinite      = serialize.ErrNonFinite
	ErrInvalidValue   = serialize.ErrInvalidValue
	ErrUnsafeValue    = sanitize.ErrUnsafeValue
)

// UnsafeValueError is the structured sanitizer rejection.
type UnsafeValueError = sanitize.UnsafeValueError

// TokenError ties a generation error to the token that caused it.
type TokenError struct {
	Token string
	Err   error
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("%s: %v", e.Token, e.Err)
}

func (e *TokenError) Unwrap() error {
	return e.Err
}

// IsUnsafe reports whether err contains a sanitizer rejection.
func IsUnsafe(err error) bool {
	return errors.Is(err, ErrUnsafeValue)
}

// IsDangerous classifies a CSS value with the default sanitizer policy.
func IsDangerous(value string) bool {
	return sanitize.IsDangerous(value)
}

// CheckValue validates a value for property with the default sanitizer
// policy. Rejections are *UnsafeValueError.
func CheckValue(property, value string) error {
	return sanitize.Check(property, value)
}

// recovered converts a panic from a rule or variant callback.
func recovered(r any, where string) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("%s panicked: %w: %w", where, err, ErrGeneration)
	}
	return fmt.Errorf("%s panicked: %v: %w", where, r, ErrGeneration)
}
