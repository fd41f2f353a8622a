package stream

import (
	"context"
	"errors"
)

// ErrInvalidContext is returned by an Invoker whose owning context is not ready
// yet or has already been torn down.
var ErrInvalidContext = errors.New("owner context unavailable")

// Invoker schedules a callback on the execution context that owns a resource.
type Invoker interface {
	Invoke(fn func()) error
}

// InvokerFunc adapts a function to an Invoker.
type InvokerFunc func(fn func()) error

// Invoke calls f.
func (f InvokerFunc) Invoke(fn func()) error {
	return f(fn)
}

// Immediate runs callbacks on the caller's goroutine.
var Immediate Invoker = InvokerFunc(func(fn func()) error {
	fn()
	return nil
})

// ObserveOn delivers the values and the completion of s through inv. If inv
// rejects a callback the subscription ends quietly, without completion.
func ObserveOn[T any](s Stream[T], inv Invoker) Stream[T] {
	return Func[T](func(parent context.Context, o Observer[T]) {
		ctx, cancel := context.WithCancel(parent)
		dispatch := func(fn func()) {
			if ctx.Err() != nil {
				return
			}
			err := inv.Invoke(func() {
				if ctx.Err() == nil {
					fn()
				}
			})
			if err != nil {
				cancel()
			}
		}

		s.Subscribe(ctx, Observer[T]{
			OnNext: func(v T) {
				dispatch(func() { o.next(v) })
			},
			OnCompleted: func() {
				dispatch(func() {
					cancel()
					o.completed()
				})
			},
		})
	})
}
