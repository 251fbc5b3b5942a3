// Package options implements the generic functional-options mechanism
// writer.Option and stream.ReaderOption are built on: each configures its
// own private config struct (writer's plan-cache wiring, stream's chunk
// size/batch size/list safety cap) through the same Option[T]/Apply pair,
// rather than each package hand-rolling its own option plumbing.
package options

// Option configures a *config struct T, typically writer's or stream's own
// unexported config type. Construct one via New or NoError, never by
// implementing apply directly.
type Option[T any] interface {
	apply(T) error
}

// Func is the concrete Option[T]; New and NoError are its only constructors.
type Func[T any] struct {
	applyFunc func(T) error
}

// apply implements the Option interface.
func (f *Func[T]) apply(target T) error {
	return f.applyFunc(target)
}

// New builds an Option from a function that can fail, e.g. one that
// validates a caller-supplied value before storing it on the config.
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{applyFunc: fn}
}

// Apply runs opts against target in order, stopping at the first error.
// writer.New and stream's blocking ReadAll both call this once, at
// construction, against their own config struct.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}

// NoError builds an Option from a plain setter that cannot fail — the
// common case: most of writer.Option and stream.ReaderOption just assign a
// field (WithChunkSize, WithBatchSize, WithListSafetyCap, WithPlanCache).
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{
		applyFunc: func(target T) error {
			fn(target)
			return nil
		},
	}
}
