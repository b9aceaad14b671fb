package option

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidContract is wrapped by every ValidationError.
	ErrInvalidContract = errors.New("invalid contract")

	// ErrDegenerateInput marks inputs for which a closed form is undefined and
	// the model falls back to a limit value.
	ErrDegenerateInput = errors.New("degenerate input")

	// ErrUnstableLattice marks a lattice whose risk-neutral probability lies
	// outside [0,1].
	ErrUnstableLattice = errors.New("unstable lattice")
)

// ValidationError names the parameter that violated its domain.
type ValidationError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidContract
}

// ValidateCount rejects step and simulation counts below one.
func ValidateCount(field string, n int) error {
	if n < 1 {
		return &ValidationError{Field: field, Value: float64(n), Reason: "must be at least 1"}
	}
	return nil
}

// Warner is implemented by models that detect non-fatal numerical conditions
// at construction.
type Warner interface {
	Warnings() []error
}
