package nexus

import (
	"errors"
	"reflect"

	"github.com/toutaio/toutago-nexus-singleton/registry"
)

// ProcessNexus guards one instance of T per identifier string for the
// whole process. Every ProcessNexus built with a byte-equal identifier -
// in any package, created in any order - resolves to the same registry
// entry, the same construction lock, and the same instance. That makes it
// the scope of choice when separately assembled components must converge
// on one shared object identified purely by name.
//
// Unlike module scope, process-scope instances are never destroyed: the
// registry entry persists for the process lifetime and there is no Reset.
type ProcessNexus[T any] struct {
	entry   *registry.Entry
	factory func() (*T, error)
}

// NewProcess creates a process nexus bound to identifier. The identifier
// is compared by content and must be unique per logical singleton across
// the whole process; an empty identifier is a usage error.
//
// Example:
//
//	hub, err := nexus.NewProcess[MetricsHub]("app.metrics")
func NewProcess[T any](identifier string, opts ...Option[T]) (*ProcessNexus[T], error) {
	if identifier == "" {
		return nil, &InvalidIdentifierError{Reason: "identifier must not be empty"}
	}
	cfg := applyOptions(opts)
	return &ProcessNexus[T]{
		entry:   registry.Shared().Lookup(identifier),
		factory: cfg.factory,
	}, nil
}

// MustProcess is NewProcess panicking on usage errors. Useful for
// package-level declarations:
//
//	var hub = nexus.MustProcess[MetricsHub]("app.metrics")
func MustProcess[T any](identifier string, opts ...Option[T]) *ProcessNexus[T] {
	n, err := NewProcess[T](identifier, opts...)
	if err != nil {
		panic(err)
	}
	return n
}

// Identifier returns the name this nexus shares its instance under.
func (n *ProcessNexus[T]) Identifier() string {
	return n.entry.Identifier()
}

// Get returns the shared instance, constructing it if needed. It panics
// with the usage error on an identifier conflict, or with a
// *ConstructionError if the factory fails.
func (n *ProcessNexus[T]) Get() *T {
	instance, err := n.GetSafe()
	if err != nil {
		var conflict *IdentifierConflictError
		if errors.As(err, &conflict) {
			panic(err)
		}
		panic(&ConstructionError{Type: reflect.TypeOf(instance), Cause: err})
	}
	return instance
}

// GetSafe returns the shared instance, constructing it under the entry's
// lock if needed. A factory error propagates verbatim and leaves the
// entry empty for the next caller to retry. If the identifier already
// holds an instance of a different type, GetSafe returns an
// *IdentifierConflictError - the identifiers of two logical singletons
// have collided, which retrying cannot fix.
func (n *ProcessNexus[T]) GetSafe() (*T, error) {
	object, err := n.entry.Create(func() (any, error) {
		instance, err := construct(n.factory)
		if err != nil {
			return nil, err
		}
		trace("nexus: constructed", "scope", "process", "identifier", n.entry.Identifier(), "type", typeName(instance))
		return instance, nil
	})
	if err != nil {
		return nil, err
	}

	instance, ok := object.(*T)
	if !ok {
		return nil, &IdentifierConflictError{
			Identifier: n.entry.Identifier(),
			Expected:   reflect.TypeOf((*T)(nil)),
			Actual:     reflect.TypeOf(object),
		}
	}
	return instance, nil
}
