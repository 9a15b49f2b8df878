package models

import "fmt"

// ValidationError reports a record that failed creation-time validation.
// Mutators return it before anything is written to storage.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
