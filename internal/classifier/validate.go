package classifier

import (
	"errors"
	"fmt"
	"strings"

	"nimbus/internal/textutil"
)

// Default input bounds, in runes.
const (
	DefaultMinLength = 3
	DefaultMaxLength = 1000
)

// ErrValidation matches every *ValidationError via errors.Is.
var ErrValidation = errors.New("invalid input")

// ValidationKind identifies which input rule failed.
type ValidationKind string

const (
	InvalidType ValidationKind = "invalid_type"
	EmptyInput  ValidationKind = "empty_input"
	TooShort    ValidationKind = "too_short"
	TooLong     ValidationKind = "too_long"
)

// ValidationError describes rejected input. No remote call is made for it.
type ValidationError struct {
	Kind   ValidationKind
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// Is lets errors.Is(err, ErrValidation) match any validation failure.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Bounds are the inclusive rune-length limits enforced on raw input.
type Bounds struct {
	MinLength int
	MaxLength int
}

// DefaultBounds returns the stock 3..1000 limits.
func DefaultBounds() Bounds {
	return Bounds{MinLength: DefaultMinLength, MaxLength: DefaultMaxLength}
}

func (b Bounds) withDefaults() Bounds {
	if b.MinLength <= 0 {
		b.MinLength = DefaultMinLength
	}
	if b.MaxLength <= 0 {
		b.MaxLength = DefaultMaxLength
	}
	return b
}

// Validate checks input against the type, emptiness and length rules, in
// that order, and returns the first failure. Length is measured on the raw
// text, untrimmed.
func Validate(input any, bounds Bounds) error {
	bounds = bounds.withDefaults()
	text, ok := input.(string)
	if !ok {
		return &ValidationError{
			Kind:   InvalidType,
			Reason: fmt.Sprintf("text must be a string, got %T", input),
		}
	}
	if strings.TrimSpace(text) == "" {
		return &ValidationError{Kind: EmptyInput, Reason: "text must not be empty"}
	}
	length := textutil.RuneLength(text)
	if length < bounds.MinLength {
		return &ValidationError{
			Kind:   TooShort,
			Reason: fmt.Sprintf("text must be at least %d characters", bounds.MinLength),
		}
	}
	if length > bounds.MaxLength {
		return &ValidationError{
			Kind:   TooLong,
			Reason: fmt.Sprintf("text must be at most %d characters", bounds.MaxLength),
		}
	}
	return nil
}
