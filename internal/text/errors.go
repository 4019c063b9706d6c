package text

import (
	"fmt"
	"math"
)

// DomainError reports a value outside the domain of a computation.
// The duration and progress computations never return it themselves; hosts
// that want strict validation call ValidateRate before using a rate.
type DomainError struct {
	// Field names the offending input.
	Field string

	// Value is the rejected value.
	Value float64

	// Reason is a human-readable explanation.
	Reason string
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	return fmt.Sprintf("domain error: %s=%v: %s", e.Field, e.Value, e.Reason)
}

// ValidateRate returns a *DomainError if wpm is not a positive finite number.
func ValidateRate(wpm float64) error {
	switch {
	case math.IsNaN(wpm) || math.IsInf(wpm, 0):
		return &DomainError{Field: "rate", Value: wpm, Reason: "must be finite"}
	case wpm <= 0:
		return &DomainError{Field: "rate", Value: wpm, Reason: "must be positive"}
	}
	return nil
}
