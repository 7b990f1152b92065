package nexus

import "reflect"

// Disposable represents an instance that requires cleanup.
// Instances implementing this interface have Dispose called when their
// nexus tears them down: by Reset, by CleanModuleNexus.Close, or by
// ThreadNexus.Release.
//
// Example:
//
//	type ConnPool struct{ ... }
//	func (p *ConnPool) Dispose() error {
//	    return p.closeAll()
//	}
type Disposable interface {
	Dispose() error
}

// Initializable represents an instance that requires initialization.
// Instances implementing this interface have Initialize called inside the
// winning construction, before the instance is published; an
// initialization error counts as a construction failure and re-opens the
// nexus.
//
// Example:
//
//	type Cache struct{ ... }
//	func (c *Cache) Initialize() error {
//	    return c.warm()
//	}
type Initializable interface {
	Initialize() error
}

// construct runs the configured factory (or new(T) when none is set) and
// the optional Initialize hook. This is the body every winning accessor
// executes, whichever scope it races in.
func construct[T any](factory func() (*T, error)) (*T, error) {
	var instance *T
	if factory != nil {
		var err error
		instance, err = factory()
		if err != nil {
			return nil, err
		}
		if instance == nil {
			return nil, &ConstructionError{Type: reflect.TypeOf(instance), Cause: errNilFactoryResult}
		}
	} else {
		instance = new(T)
	}

	if hook, ok := any(instance).(Initializable); ok {
		if err := hook.Initialize(); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// dispose tears an instance down if it knows how to. Errors are returned
// for callers that can surface them (Close, Release); Reset traces and
// drops them.
func dispose(instance any) error {
	if d, ok := instance.(Disposable); ok {
		return d.Dispose()
	}
	return nil
}

// typeName names an instance's dynamic type for trace output.
func typeName(instance any) string {
	t := reflect.TypeOf(instance)
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
