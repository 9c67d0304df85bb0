package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAssumptions marks malformed or out-of-domain inputs.
	ErrInvalidAssumptions = errors.New("invalid assumptions")
	// ErrIRRUndefined is returned when a cash-flow sequence has no IRR (no sign change, no root).
	ErrIRRUndefined = errors.New("irr undefined")
	// ErrSolverDidNotConverge is informational: the solver still returns its best estimate.
	ErrSolverDidNotConverge = errors.New("solver did not converge")
)

// InvalidAssumptionsError identifies the offending field.
// Field uses the snake_case names of the YAML/JSON front ends.
type InvalidAssumptionsError struct {
	Field  string
	Reason string
}

func (e *InvalidAssumptionsError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidAssumptions, e.Field, e.Reason)
}

func (e *InvalidAssumptionsError) Is(target error) bool {
	return target == ErrInvalidAssumptions
}

func invalid(field, reason string) error {
	return &InvalidAssumptionsError{Field: field, Reason: reason}
}

// InvalidField returns a field-level validation error for callers outside this package.
func InvalidField(field, reason string) error {
	return invalid(field, reason)
}
