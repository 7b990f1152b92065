// Package nexus provides lazy, thread-safe, exactly-once singleton access
// points for Go.
//
// A nexus is an access point to the single instance of a type within a
// defined scope. The instance is constructed lazily on first access; when
// several goroutines race for that first access, exactly one of them runs
// the factory and every caller receives the same fully-constructed
// instance. Construction happens-before every use, for every observer,
// regardless of which goroutine constructed it.
//
// # Scopes
//
// Three scopes are supported, each with its own nexus type:
//
//   - ModuleNexus[T]: one instance per process per nexus variable.
//   - ThreadNexus[T]: one instance per goroutine per nexus variable.
//   - ProcessNexus[T]: one instance per identifier string, shared by every
//     nexus built with that identifier anywhere in the process.
//
// # Quick Start
//
// A ModuleNexus is usable as a zero value:
//
//	var sessions nexus.ModuleNexus[SessionCache]
//
//	func handle() {
//	    cache := sessions.Get() // constructed on first call, shared after
//	    cache.Put(...)
//	}
//
// # Factories
//
// By default a nexus constructs its instance with new(T). A custom factory
// can be attached with options:
//
//	pool := nexus.NewModule(nexus.WithFactory(func() (*ConnPool, error) {
//	    return Dial(addr)
//	}))
//	conn, err := pool.GetSafe()
//
// Get panics on construction failure (wrapping the factory's error in a
// *ConstructionError); GetSafe returns the factory's error verbatim. Either
// way a failed construction re-opens the nexus, so the next access retries
// instead of observing a broken instance.
//
// # Goroutine Confinement
//
// A ThreadNexus hands each goroutine its own private instance. Because a
// slot is only ever touched by its owning goroutine, the instance needs no
// internal locking:
//
//	var scratch nexus.ThreadNexus[Buffer]
//
//	buf := scratch.Get()     // this goroutine's buffer
//	defer scratch.Release()  // drop it when the goroutine is done
//
// # Named Process Scope
//
// A ProcessNexus converges on one shared instance identified purely by a
// name, compared by content. Independently written packages that agree on
// the identifier agree on the instance:
//
//	reg, err := nexus.NewProcess[MetricsHub]("app.metrics")
//	hub := reg.Get()
//
// # Lifecycle
//
// Instances implementing Initializable are initialized inside the winning
// construction; instances implementing Disposable are disposed by Reset,
// Close (CleanModuleNexus) and Release (ThreadNexus).
//
// # Thread Safety
//
// All access operations are safe for concurrent use. Reset and Close
// require that no other access is in flight; that exclusivity is the
// caller's contract, not detected by the nexus.
package nexus
