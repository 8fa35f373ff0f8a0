// Package options implements a generic functional-options pattern shared by
// every configurable constructor in the module (bitcode.NewBuffer,
// envelope's codec selection): WithXxx helpers return an Option[T] that a
// constructor applies to the value it is building.
package options

// Option configures a T. Implementations are built via New or NoError, not
// by hand — apply is unexported so the interface can't be satisfied from
// outside the package.
type Option[T any] interface {
	apply(T) error
}

// Func adapts a plain function to Option.
type Func[T any] struct {
	fn func(T) error
}

func (f *Func[T]) apply(target T) error { return f.fn(target) }

// New builds an Option from a function that can reject its input (for
// example, a WithCapacity option rejecting a negative size).
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{fn: fn}
}

// NoError builds an Option from a function that cannot fail, which is most
// WithXxx helpers: setting a field has no invariant to violate.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{fn: func(target T) error {
		fn(target)
		return nil
	}}
}

// Apply runs opts against target in order, stopping at the first error.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}
