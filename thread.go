package nexus

import (
	"reflect"
	"sync"
)

// ThreadNexus guards one instance of T per goroutine per nexus variable.
// "First access" is evaluated per goroutine, so the construction race the
// other scopes solve does not exist here: a slot is only ever read and
// written by its owning goroutine. The zero value is ready to use.
//
// Go offers no goroutine-local storage cell, so the slots live in a map
// keyed by goroutine ID. The map itself is guarded by an RWMutex - that
// lock protects the bookkeeping only, never an instance; instances are
// never shared between goroutines.
//
// Lifetime contract: Go has no goroutine-exit hook, so a slot is NOT torn
// down automatically when its goroutine ends. A goroutine that is done
// with its instance calls Release; otherwise the slot (and instance) live
// until process exit. There is no Reset - no goroutine may destroy
// another goroutine's instance.
type ThreadNexus[T any] struct {
	mu      sync.RWMutex
	slots   map[int64]*T
	factory func() (*T, error)
}

// NewThread creates a goroutine-confined nexus with custom settings.
// Plain declarations should prefer the zero value.
func NewThread[T any](opts ...Option[T]) *ThreadNexus[T] {
	cfg := applyOptions(opts)
	return &ThreadNexus[T]{factory: cfg.factory}
}

// Get returns the calling goroutine's instance, constructing it if this
// is the goroutine's first access. It panics with a *ConstructionError if
// the factory fails.
func (n *ThreadNexus[T]) Get() *T {
	instance, err := n.GetSafe()
	if err != nil {
		panic(&ConstructionError{Type: reflect.TypeOf(instance), Cause: err})
	}
	return instance
}

// GetSafe returns the calling goroutine's instance, constructing it if
// this is the goroutine's first access. A factory error leaves the slot
// empty, so the goroutine's next access retries.
func (n *ThreadNexus[T]) GetSafe() (*T, error) {
	id := goroutineID()

	n.mu.RLock()
	instance, ok := n.slots[id]
	n.mu.RUnlock()
	if ok {
		return instance, nil
	}

	// First access on this goroutine. Nobody else constructs for this
	// slot, so the factory runs outside the lock without any exactly-once
	// machinery.
	instance, err := construct(n.factory)
	if err != nil {
		return nil, err
	}

	n.mu.Lock()
	if n.slots == nil {
		n.slots = make(map[int64]*T)
	}
	n.slots[id] = instance
	n.mu.Unlock()

	trace("nexus: constructed", "scope", "thread", "goroutine", id, "type", typeName(instance))
	return instance, nil
}

// Release drops the calling goroutine's slot, disposing the instance if
// it implements Disposable. It is the explicit stand-in for thread-local
// teardown and is a no-op when the goroutine never accessed the nexus.
func (n *ThreadNexus[T]) Release() error {
	id := goroutineID()

	n.mu.Lock()
	instance, ok := n.slots[id]
	delete(n.slots, id)
	n.mu.Unlock()

	if !ok {
		return nil
	}
	return dispose(instance)
}
