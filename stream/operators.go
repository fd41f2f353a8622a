package stream

import (
	"context"
	"sync"
)

// Map applies fn to every value of s.
func Map[T, R any](s Stream[T], fn func(T) R) Stream[R] {
	return Func[R](func(ctx context.Context, o Observer[R]) {
		s.Subscribe(ctx, Observer[T]{
			OnNext:      func(v T) { o.next(fn(v)) },
			OnCompleted: o.completed,
		})
	})
}

// Filter passes on the values of s for which keep returns true.
func Filter[T any](s Stream[T], keep func(T) bool) Stream[T] {
	return Func[T](func(ctx context.Context, o Observer[T]) {
		s.Subscribe(ctx, Observer[T]{
			OnNext: func(v T) {
				if keep(v) {
					o.next(v)
				}
			},
			OnCompleted: o.completed,
		})
	})
}

// DistinctFunc suppresses values equal, according to eq, to the value emitted
// just before them.
func DistinctFunc[T any](s Stream[T], eq func(a, b T) bool) Stream[T] {
	return Func[T](func(ctx context.Context, o Observer[T]) {
		var (
			mu   sync.Mutex
			last T
			seen bool
		)
		s.Subscribe(ctx, Observer[T]{
			OnNext: func(v T) {
				mu.Lock()
				if seen && eq(last, v) {
					mu.Unlock()
					return
				}
				last, seen = v, true
				mu.Unlock()
				o.next(v)
			},
			OnCompleted: o.completed,
		})
	})
}

// Distinct suppresses consecutive duplicate values.
func Distinct[T comparable](s Stream[T]) Stream[T] {
	return DistinctFunc(s, func(a, b T) bool { return a == b })
}

// DistinctBy suppresses values whose key equals the key of the previous value.
func DistinctBy[T any, K comparable](s Stream[T], key func(T) K) Stream[T] {
	return DistinctFunc(s, func(a, b T) bool { return key(a) == key(b) })
}

// WithPrevious pairs every value with the one before it. The first value is
// paired with the zero value of T.
func WithPrevious[T, R any](s Stream[T], fn func(prev, cur T) R) Stream[R] {
	return Func[R](func(ctx context.Context, o Observer[R]) {
		var (
			mu   sync.Mutex
			prev T
		)
		s.Subscribe(ctx, Observer[T]{
			OnNext: func(v T) {
				mu.Lock()
				p := prev
				prev = v
				mu.Unlock()
				o.next(fn(p, v))
			},
			OnCompleted: o.completed,
		})
	})
}

// Skip drops the first n values of s.
func Skip[T any](s Stream[T], n int) Stream[T] {
	return Func[T](func(ctx context.Context, o Observer[T]) {
		var (
			mu      sync.Mutex
			skipped int
		)
		s.Subscribe(ctx, Observer[T]{
			OnNext: func(v T) {
				mu.Lock()
				if skipped < n {
					skipped++
					mu.Unlock()
					return
				}
				mu.Unlock()
				o.next(v)
			},
			OnCompleted: o.completed,
		})
	})
}

// StartWith emits the result of get at subscription time, then the values of s.
func StartWith[T any](s Stream[T], get func() T) Stream[T] {
	return Func[T](func(ctx context.Context, o Observer[T]) {
		if ctx.Err() != nil {
			return
		}
		o.next(get())
		s.Subscribe(ctx, o)
	})
}

type latest3[A, B, C any] struct {
	mu       sync.Mutex
	a        A
	b        B
	c        C
	has      [3]bool
	done     [3]bool
	finished bool
}

func (l *latest3[A, B, C]) ready() bool {
	return l.has[0] && l.has[1] && l.has[2]
}

// finish marks source i as completed and reports whether the combined stream
// has now completed.
func (l *latest3[A, B, C]) finish(i int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.finished {
		return false
	}
	l.done[i] = true
	if !l.has[i] || (l.done[0] && l.done[1] && l.done[2]) {
		l.finished = true
		return true
	}
	return false
}

// CombineLatest3 emits fn of the latest value of every source each time any of
// them emits, once all three have emitted at least once. It completes when all
// sources complete, or when a source completes without ever emitting.
func CombineLatest3[A, B, C, R any](a Stream[A], b Stream[B], c Stream[C], fn func(A, B, C) R) Stream[R] {
	return Func[R](func(parent context.Context, o Observer[R]) {
		ctx, cancel := context.WithCancel(parent)
		l := new(latest3[A, B, C])

		emit := func(set func()) {
			l.mu.Lock()
			if l.finished {
				l.mu.Unlock()
				return
			}
			set()
			if !l.ready() {
				l.mu.Unlock()
				return
			}
			va, vb, vc := l.a, l.b, l.c
			l.mu.Unlock()
			if ctx.Err() == nil {
				o.next(fn(va, vb, vc))
			}
		}
		complete := func(i int) func() {
			return func() {
				if l.finish(i) {
					cancel()
					if parent.Err() == nil {
						o.completed()
					}
				}
			}
		}

		a.Subscribe(ctx, Observer[A]{
			OnNext:      func(v A) { emit(func() { l.a, l.has[0] = v, true }) },
			OnCompleted: complete(0),
		})
		b.Subscribe(ctx, Observer[B]{
			OnNext:      func(v B) { emit(func() { l.b, l.has[1] = v, true }) },
			OnCompleted: complete(1),
		})
		c.Subscribe(ctx, Observer[C]{
			OnNext:      func(v C) { emit(func() { l.c, l.has[2] = v, true }) },
			OnCompleted: complete(2),
		})
	})
}
