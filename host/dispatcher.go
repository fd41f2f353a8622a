package host

import (
	"context"
	"fmt"
	"sync"

	"github.com/matt-g-everett/rxanim/stream"
)

// Dispatcher is a single-goroutine execution context. Callbacks passed to
// Invoke run in order on the goroutine that called Run.
type Dispatcher struct {
	queue chan func()

	mu      sync.Mutex
	running bool
	closed  bool
	done    chan struct{}
}

// NewDispatcher creates a Dispatcher that queues up to backlog callbacks.
func NewDispatcher(backlog int) *Dispatcher {
	d := new(Dispatcher)
	d.queue = make(chan func(), backlog)
	d.done = make(chan struct{})
	return d
}

// Run processes callbacks until ctx is done or the dispatcher is closed.
func (d *Dispatcher) Run(ctx context.Context) {
	d.mu.Lock()
	if d.closed || d.running {
		d.mu.Unlock()
		return
	}
	d.running = true
	d.mu.Unlock()

	defer d.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case <-d.done:
			return
		case fn := <-d.queue:
			fn()
		}
	}
}

// ErrBacklogFull is returned by Invoke when the queue cannot take another
// callback. It matches stream.ErrInvalidContext.
var ErrBacklogFull = fmt.Errorf("%w: dispatcher backlog full", stream.ErrInvalidContext)

// Invoke queues fn without blocking. It fails with stream.ErrInvalidContext if
// the dispatcher is not running, and with ErrBacklogFull if the queue is full.
func (d *Dispatcher) Invoke(fn func()) error {
	d.mu.Lock()
	ok := d.running && !d.closed
	d.mu.Unlock()
	if !ok {
		return stream.ErrInvalidContext
	}

	select {
	case d.queue <- fn:
		return nil
	case <-d.done:
		return stream.ErrInvalidContext
	default:
		return ErrBacklogFull
	}
}

// Close stops the dispatcher. Queued callbacks are dropped.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	close(d.done)
}
