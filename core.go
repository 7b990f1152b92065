package nexus

import (
	"runtime"
	"sync/atomic"
	"time"
)

// cell carries a published instance handle. The init cores treat the
// handle as opaque; typed wrappers own construction and disposal.
type cell struct {
	object any
}

// constructing is the sentinel state marking an in-flight construction.
// The state word of an atomicCore takes exactly three values:
//
//	nil          - empty, never constructed (or reverted after a failure)
//	constructing - a winner is running the factory; losers wait
//	anything else - ready; the cell holds the instance handle
var constructing = new(cell)

// initCore is the contract shared by the two exactly-once construction
// primitives. create constructs via the factory if needed and returns the
// handle, created probes readiness without blocking, and reset re-opens
// the core, returning the previous handle for disposal.
type initCore interface {
	create(factory func() (any, error)) (any, error)
	created() bool
	reset() any
}

// atomicCore is the CAS-based exactly-once construction primitive.
// The zero value is an empty core, ready for use.
//
// The whole lifecycle lives in a single atomically-updated word, so the
// ready fast path is one load with acquire semantics and claiming the
// construction race is one compare-and-swap.
type atomicCore struct {
	state atomic.Pointer[cell]
}

// create returns the instance handle, constructing it via factory if this
// is the first access. Exactly one concurrent caller runs the factory;
// the rest spin with bounded backoff until the handle is published.
//
// If the factory fails, the state reverts to empty before the error is
// returned, so waiters (and the next caller) retry construction from
// scratch rather than spinning forever on a dead winner.
func (c *atomicCore) create(factory func() (any, error)) (any, error) {
	var spins int
	for {
		switch p := c.state.Load(); p {
		case nil:
			if !c.state.CompareAndSwap(nil, constructing) {
				// Lost the claim; re-read and wait or return.
				continue
			}
			object, err := factory()
			if err != nil {
				c.state.Store(nil)
				return nil, err
			}
			c.state.Store(&cell{object: object})
			trace("nexus: constructed", "scope", "module", "type", typeName(object))
			return object, nil
		case constructing:
			spins = backoff(spins)
		default:
			return p.object, nil
		}
	}
}

// created reports whether the instance definitely exists already. A false
// result may be stale by the time the caller acts on it.
func (c *atomicCore) created() bool {
	p := c.state.Load()
	return p != nil && p != constructing
}

// reset transitions ready back to empty and returns the previous handle,
// or nil if there was nothing to destroy. The caller must guarantee that
// no access is in flight.
func (c *atomicCore) reset() any {
	p := c.state.Load()
	if p == nil || p == constructing {
		return nil
	}
	c.state.Store(nil)
	return p.object
}

// spinLimit is how many times a losing racer yields the processor before
// it starts sleeping between re-reads of the state word.
const spinLimit = 64

// backoff makes a losing racer progressively cheaper to run: first plain
// scheduler yields, then short sleeps so a long-running factory does not
// burn a core under the waiters.
func backoff(spins int) int {
	if spins < spinLimit {
		runtime.Gosched()
	} else {
		time.Sleep(10 * time.Microsecond)
	}
	return spins + 1
}
