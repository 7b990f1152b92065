package nexus

import (
	"errors"
	"fmt"
	"reflect"
)

// errNilFactoryResult signals a factory that returned neither an instance
// nor an error.
var errNilFactoryResult = errors.New("factory returned a nil instance with no error")

// ConstructionError is the panic value raised by the panicking accessors
// (Get) when the instance factory fails. The factory's own error is
// carried unmodified and exposed through Unwrap; the error-returning
// accessors (GetSafe) propagate that cause verbatim instead.
type ConstructionError struct {
	Type  reflect.Type
	Cause error
}

func (e *ConstructionError) Error() string {
	typeStr := "unknown"
	if e.Type != nil {
		typeStr = e.Type.String()
	}
	return fmt.Sprintf("failed to construct singleton of type %s: %v", typeStr, e.Cause)
}

// Unwrap returns the factory's original error.
func (e *ConstructionError) Unwrap() error {
	return e.Cause
}

// InvalidIdentifierError is returned when a process nexus is created with
// an unusable identifier.
type InvalidIdentifierError struct {
	Reason string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid process nexus identifier: %s", e.Reason)
}

// IdentifierConflictError is returned when two process nexuses share an
// identifier but disagree on the instance type. The identifier names one
// logical singleton for the whole process; binding it to a second type is
// a usage error, surfaced to the caller and never retried.
type IdentifierConflictError struct {
	Identifier string
	Expected   reflect.Type
	Actual     reflect.Type
}

func (e *IdentifierConflictError) Error() string {
	return fmt.Sprintf("process nexus identifier %q already holds an instance of %v, not %v. Pick a distinct identifier per logical singleton.",
		e.Identifier, e.Actual, e.Expected)
}
