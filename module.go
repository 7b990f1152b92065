package nexus

import (
	"reflect"
	"sync/atomic"
)

// ModuleNexus guards one instance of T for the whole process, for the
// lifetime of the nexus variable. The zero value is ready to use, so a
// package-level declaration needs no init code:
//
//	var sessions nexus.ModuleNexus[SessionCache]
//
// The instance is constructed on first access and intentionally not
// destroyed at process exit: module singletons routinely reference each
// other, and teardown ordering between unrelated globals is exactly the
// hazard this type avoids. Use CleanModuleNexus where deterministic
// cleanup is needed, or call Reset explicitly.
type ModuleNexus[T any] struct {
	core    atomicCore
	locked  *lockedCore
	factory func() (*T, error)
}

// NewModule creates a module nexus with custom settings. Plain
// declarations should prefer the zero value; NewModule exists for the
// options.
//
// Example:
//
//	pool := nexus.NewModule(nexus.WithFactory(newPool), nexus.WithLockedInit[ConnPool]())
func NewModule[T any](opts ...Option[T]) *ModuleNexus[T] {
	cfg := applyOptions(opts)
	n := &ModuleNexus[T]{factory: cfg.factory}
	if cfg.lockedInit {
		n.locked = &lockedCore{}
	}
	return n
}

func (n *ModuleNexus[T]) initCore() initCore {
	if n.locked != nil {
		return n.locked
	}
	return &n.core
}

// Get returns the singleton, constructing it if needed. It panics with a
// *ConstructionError if the factory fails; use GetSafe to handle the
// error instead.
func (n *ModuleNexus[T]) Get() *T {
	instance, err := n.GetSafe()
	if err != nil {
		panic(&ConstructionError{Type: reflect.TypeOf(instance), Cause: err})
	}
	return instance
}

// GetSafe returns the singleton, constructing it if needed. When several
// goroutines race the first access, exactly one runs the factory and all
// of them receive the same instance; a reference is only handed out after
// construction has fully completed. A factory error is returned verbatim
// and re-opens the nexus so the next call retries.
func (n *ModuleNexus[T]) GetSafe() (*T, error) {
	object, err := n.initCore().create(func() (any, error) {
		instance, err := construct(n.factory)
		if err != nil {
			return nil, err
		}
		return instance, nil
	})
	if err != nil {
		return nil, err
	}
	return object.(*T), nil
}

// Exists reports whether the instance definitely exists already. It never
// blocks; a false result may already be stale.
func (n *ModuleNexus[T]) Exists() bool {
	return n.initCore().created()
}

// Reset destroys the instance (disposing it if it implements Disposable)
// and returns the nexus to its never-constructed state; the next access
// builds a fresh instance. Reset must not run concurrently with other
// accessors - that exclusivity is the caller's contract.
func (n *ModuleNexus[T]) Reset() {
	old := n.initCore().reset()
	if old == nil {
		return
	}
	if err := dispose(old); err != nil {
		trace("nexus: dispose failed on reset", "type", typeName(old), "error", err)
	}
}

// CleanModuleNexus is a ModuleNexus with deterministic teardown: Close
// destroys the instance when the owning component shuts down. Use it
// where leaving the singleton alive until process exit is not acceptable
// (held file handles, network connections, test fixtures).
type CleanModuleNexus[T any] struct {
	ModuleNexus[T]
	closed atomic.Bool
}

// NewCleanModule creates a clean module nexus with custom settings.
func NewCleanModule[T any](opts ...Option[T]) *CleanModuleNexus[T] {
	cfg := applyOptions(opts)
	n := &CleanModuleNexus[T]{}
	n.factory = cfg.factory
	if cfg.lockedInit {
		n.locked = &lockedCore{}
	}
	return n
}

// Close destroys the current instance, if any, disposing it if it
// implements Disposable. Close is idempotent; like Reset it requires that
// no access is in flight. A nexus that has been closed stays usable - a
// later access constructs anew - but that is a caller decision, not
// something Close encourages.
func (n *CleanModuleNexus[T]) Close() error {
	if !n.closed.CompareAndSwap(false, true) {
		return nil
	}
	old := n.initCore().reset()
	if old == nil {
		return nil
	}
	trace("nexus: clean teardown", "type", typeName(old))
	return dispose(old)
}
