package domain

import (
	"errors"
	"fmt"
)

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Field  string // Wire-level field name (e.g. "foods[2].cost_per_100g")
	Reason string // Human-readable reason for failure
	Value  any    // The value that failed validation, when known
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("field %q: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("field %q: %s (got %v)", e.Field, e.Reason, e.Value)
}

// AggregateError represents multiple validation failures reported together,
// so a caller can fix a whole malformed request in one round trip.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// ValidationErrors unwraps err into its individual field failures.
// A bare *ValidationError yields a single-element slice; anything that is
// not a validation failure yields nil.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	var single *ValidationError
	if errors.As(err, &single) {
		return []error{single}
	}
	return nil
}

// IsValidation reports whether err is a request validation failure,
// as opposed to an engine or solver fault.
func IsValidation(err error) bool {
	return ValidationErrors(err) != nil
}
