package calculation

import (
	"fmt"
	"strings"
)

// ValidationError rejects an input the caller can correct. Errors holds the
// field messages verbatim.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("quote input is invalid: %s", strings.Join(e.Errors, "; "))
}

// CalculationError is an unexpected internal failure. Its message is opaque;
// the cause is logged with the reference and only reachable through Unwrap.
type CalculationError struct {
	Reference string
	cause     error
}

func (e *CalculationError) Error() string {
	return fmt.Sprintf("quote calculation failed (reference %s)", e.Reference)
}

func (e *CalculationError) Unwrap() error {
	return e.cause
}
