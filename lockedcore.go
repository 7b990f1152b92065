package nexus

import (
	"sync"
	"sync/atomic"
)

// lockedCore is the mutex-based fallback init core. It honors the same
// contract as atomicCore, trading the CAS claim and spin-wait for a
// blocking lock: losers of a first-access race sleep on the mutex instead
// of spinning.
//
// The original formulation of this pattern reads the bare pointer
// unsynchronized on the fast path and trusts the platform to make that
// safe. That is a data race under the Go memory model, so the fast path
// here is an atomic load; it costs the same and is actually defined.
type lockedCore struct {
	mu  sync.Mutex
	ptr atomic.Pointer[cell]
}

func (c *lockedCore) create(factory func() (any, error)) (any, error) {
	if p := c.ptr.Load(); p != nil {
		return p.object, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Re-check under the lock; another goroutine may have constructed
	// while this one was waiting for the mutex.
	if p := c.ptr.Load(); p != nil {
		return p.object, nil
	}

	object, err := factory()
	if err != nil {
		// The pointer was never stored, so the core stays empty and the
		// next caller retries.
		return nil, err
	}
	c.ptr.Store(&cell{object: object})
	return object, nil
}

func (c *lockedCore) created() bool {
	return c.ptr.Load() != nil
}

func (c *lockedCore) reset() any {
	p := c.ptr.Load()
	if p == nil {
		return nil
	}
	c.ptr.Store(nil)
	return p.object
}
