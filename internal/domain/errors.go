package domain

import "fmt"

// ValidationError reports bad input shape, such as an end date before the
// start date.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// InvalidTransitionError reports a state-machine precondition violation.
type InvalidTransitionError struct {
	From RentalStatus
	To   RentalStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition rental request from %q to %q", e.From, e.To)
}

// ConfigurationError reports missing required reference data, such as an
// absent status-catalog row. Callers must treat it as a hard failure.
type ConfigurationError struct {
	Missing string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: missing " + e.Missing
}

// NotFoundError reports an unresolvable entity reference.
type NotFoundError struct {
	Entity string
	ID     int32
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// InvalidStatusError reports an attempt to assign a status code that is not
// a known active catalog entry.
type InvalidStatusError struct {
	Code CarStatusCode
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("car status %q is not an assignable status code", e.Code)
}
