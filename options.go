package nexus

// config collects per-nexus construction settings.
type config[T any] struct {
	factory    func() (*T, error)
	lockedInit bool
}

// Option configures a nexus at creation time.
type Option[T any] func(*config[T])

// WithFactory replaces the default new(T) factory. The factory runs at
// most once per scope instance; its error propagates to the accessor that
// triggered construction and re-opens the nexus for a retry.
//
// Example:
//
//	pool := nexus.NewModule(nexus.WithFactory(func() (*ConnPool, error) {
//	    return Dial(addr)
//	}))
func WithFactory[T any](factory func() (*T, error)) Option[T] {
	return func(c *config[T]) {
		c.factory = factory
	}
}

// WithInstance installs an already-built instance as the factory result.
// Useful for tests and for singletons whose construction happens during
// program assembly rather than on first access.
func WithInstance[T any](instance *T) Option[T] {
	return func(c *config[T]) {
		c.factory = func() (*T, error) { return instance, nil }
	}
}

// WithLockedInit switches a module nexus from the CAS-based init core to
// the mutex-based one: losers of a first-access race block on a lock
// instead of spinning. Useful when factories are slow enough that
// spin-waiting peers would waste meaningful CPU.
func WithLockedInit[T any]() Option[T] {
	return func(c *config[T]) {
		c.lockedInit = true
	}
}

func applyOptions[T any](opts []Option[T]) config[T] {
	var c config[T]
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
