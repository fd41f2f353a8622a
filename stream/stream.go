// Package stream implements push-based value streams used to wire animations
// together: subjects that broadcast values, and operators that combine them.
//
// A subscription lives for as long as the context passed to Subscribe. Once the
// context is cancelled no further values are delivered to the observer.
package stream

import (
	"context"
)

// Observer receives the values and the completion signal of a Stream.
type Observer[T any] struct {
	OnNext      func(T)
	OnCompleted func()
}

func (o Observer[T]) next(v T) {
	if o.OnNext != nil {
		o.OnNext(v)
	}
}

func (o Observer[T]) completed() {
	if o.OnCompleted != nil {
		o.OnCompleted()
	}
}

// Stream is a read-only source of values.
type Stream[T any] interface {
	Subscribe(ctx context.Context, o Observer[T])
}

// Func adapts a subscribe function to a Stream.
type Func[T any] func(ctx context.Context, o Observer[T])

// Subscribe calls f.
func (f Func[T]) Subscribe(ctx context.Context, o Observer[T]) {
	f(ctx, o)
}

// Just emits v and completes.
func Just[T any](v T) Stream[T] {
	return Func[T](func(ctx context.Context, o Observer[T]) {
		if ctx.Err() != nil {
			return
		}
		o.next(v)
		o.completed()
	})
}

// Never never emits and never completes.
func Never[T any]() Stream[T] {
	return Func[T](func(context.Context, Observer[T]) {})
}

// Collect subscribes to s and appends every value to a slice until s completes
// or ctx is cancelled. The returned function reports the values seen so far and
// whether the stream completed.
func Collect[T any](ctx context.Context, s Stream[T]) func() ([]T, bool) {
	c := &collector[T]{}
	s.Subscribe(ctx, Observer[T]{
		OnNext:      c.add,
		OnCompleted: c.complete,
	})
	return c.snapshot
}
