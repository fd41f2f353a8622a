package stream

import (
	"context"
	"sync"
)

type subscriber[T any] struct {
	id       uint64
	ctx      context.Context
	observer Observer[T]
	stop     func() bool
}

// Subject broadcasts values to every attached observer. Completion ends the
// current group of observers; observers that attach afterwards start a new
// group. A disposed subject completes new observers immediately.
type Subject[T any] struct {
	mu          sync.Mutex
	subscribers []*subscriber[T]
	nextID      uint64
	disposed    bool
}

// NewSubject creates an instance of a Subject.
func NewSubject[T any]() *Subject[T] {
	s := new(Subject[T])
	return s
}

// Subscribe attaches o until ctx is done or the subject completes.
func (s *Subject[T]) Subscribe(ctx context.Context, o Observer[T]) {
	if ctx.Err() != nil {
		return
	}

	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		o.completed()
		return
	}
	s.nextID++
	id := s.nextID
	sub := &subscriber[T]{id: id, ctx: ctx, observer: o}
	sub.stop = context.AfterFunc(ctx, func() {
		s.remove(id)
	})
	s.subscribers = append(s.subscribers, sub)
	s.mu.Unlock()
}

func (s *Subject[T]) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subscribers {
		if sub.id == id {
			s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
			return
		}
	}
}

func (s *Subject[T]) snapshot() []*subscriber[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*subscriber[T](nil), s.subscribers...)
}

func (s *Subject[T]) detachAll() []*subscriber[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	subs := s.subscribers
	s.subscribers = nil
	return subs
}

// Next delivers v to every attached observer.
func (s *Subject[T]) Next(v T) {
	for _, sub := range s.snapshot() {
		if sub.ctx.Err() == nil {
			sub.observer.next(v)
		}
	}
}

// Complete signals completion to, and detaches, every attached observer.
func (s *Subject[T]) Complete() {
	for _, sub := range s.detachAll() {
		sub.stop()
		if sub.ctx.Err() == nil {
			sub.observer.completed()
		}
	}
}

// Dispose completes the attached observers and closes the subject.
func (s *Subject[T]) Dispose() {
	s.mu.Lock()
	s.disposed = true
	s.mu.Unlock()
	s.Complete()
}

// Len reports the number of attached observers.
func (s *Subject[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subscribers)
}

// Stream hides the subject behind a subscribe-only view.
func (s *Subject[T]) Stream() Stream[T] {
	return Func[T](s.Subscribe)
}

type collector[T any] struct {
	mu     sync.Mutex
	values []T
	done   bool
}

func (c *collector[T]) add(v T) {
	c.mu.Lock()
	c.values = append(c.values, v)
	c.mu.Unlock()
}

func (c *collector[T]) complete() {
	c.mu.Lock()
	c.done = true
	c.mu.Unlock()
}

func (c *collector[T]) snapshot() ([]T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.values...), c.done
}
