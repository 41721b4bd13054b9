package finance

import "fmt"

// ValidationError reports a calculator input outside its documented bound.
// The calculator performs no computation once one is returned.
type ValidationError struct {
	Field string
	Bound string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("finance: %s %s", e.Field, e.Bound)
}

func invalid(field, bound string) error {
	return &ValidationError{Field: field, Bound: bound}
}
