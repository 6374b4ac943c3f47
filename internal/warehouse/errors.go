package warehouse

import "errors"

// ErrInvalidArgument is the class of every rejected input. Failures never
// leave partial state behind.
var ErrInvalidArgument = errors.New("invalid argument")

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

func (e *ValidationError) Unwrap() error { return ErrInvalidArgument }

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
