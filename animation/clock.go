package animation

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/matt-g-everett/rxanim/stream"
)

// FrameRate is the number of frames per second of every animation.
const FrameRate = 60

// FrameInterval is the time between two frames.
const FrameInterval = time.Second / FrameRate

// FramesFromSeconds converts a number of seconds to a whole number of frames.
func FramesFromSeconds(seconds float64) int {
	return int(seconds * FrameRate)
}

// FramesFromDuration converts d to a whole number of frames.
func FramesFromDuration(d time.Duration) int {
	return FramesFromSeconds(d.Seconds())
}

// Ticker is the periodic pulse behind a Clock.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct {
	*time.Ticker
}

func (t timeTicker) C() <-chan time.Time {
	return t.Ticker.C
}

func newTimeTicker(d time.Duration) Ticker {
	return timeTicker{time.NewTicker(d)}
}

type clockSubscriber struct {
	id       uint64
	ctx      context.Context
	observer stream.Observer[int64]
}

// Clock is a shared pulse that emits an increasing frame number at a fixed
// interval. It only ticks while at least one observer is attached, and every
// attached observer sees the same frame numbers. A Clock that stops and starts
// again counts from zero.
type Clock struct {
	interval  time.Duration
	newTicker func(time.Duration) Ticker
	logger    *slog.Logger

	mu          sync.Mutex
	subscribers []*clockSubscriber
	nextID      uint64
	stop        chan struct{}
}

// ClockOption configures a Clock.
type ClockOption func(*Clock)

// WithTicker replaces the time.Ticker that drives the clock.
func WithTicker(newTicker func(time.Duration) Ticker) ClockOption {
	return func(c *Clock) {
		c.newTicker = newTicker
	}
}

// WithClockLogger sets the logger used for lifecycle messages.
func WithClockLogger(logger *slog.Logger) ClockOption {
	return func(c *Clock) {
		c.logger = logger
	}
}

// NewClock creates an instance of a Clock.
func NewClock(interval time.Duration, opts ...ClockOption) *Clock {
	c := new(Clock)
	c.interval = interval
	c.newTicker = newTimeTicker
	c.logger = slog.Default()
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// EveryFrame is the clock shared by all animations of the process.
var EveryFrame = NewClock(FrameInterval)

// Subscribe attaches o until ctx is done, starting the clock if o is the first
// observer.
func (c *Clock) Subscribe(ctx context.Context, o stream.Observer[int64]) {
	if ctx.Err() != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	id := c.nextID
	c.subscribers = append(c.subscribers, &clockSubscriber{id: id, ctx: ctx, observer: o})
	context.AfterFunc(ctx, func() {
		c.detach(id)
	})

	if c.stop == nil {
		c.stop = make(chan struct{})
		go c.run(c.newTicker(c.interval), c.stop)
		c.logger.Debug("frame clock started", slog.Duration("interval", c.interval))
	}
}

func (c *Clock) detach(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, sub := range c.subscribers {
		if sub.id == id {
			c.subscribers = append(c.subscribers[:i:i], c.subscribers[i+1:]...)
			break
		}
	}
	if len(c.subscribers) == 0 && c.stop != nil {
		close(c.stop)
		c.stop = nil
		c.logger.Debug("frame clock stopped")
	}
}

// snapshot returns the observers of the connection identified by stop, or
// false if that connection has ended.
func (c *Clock) snapshot(stop chan struct{}) ([]*clockSubscriber, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != stop {
		return nil, false
	}
	return append([]*clockSubscriber(nil), c.subscribers...), true
}

func (c *Clock) run(t Ticker, stop chan struct{}) {
	defer t.Stop()

	var frame int64
	for {
		select {
		case <-stop:
			return
		case <-t.C():
			subs, ok := c.snapshot(stop)
			if !ok {
				return
			}
			for _, sub := range subs {
				if sub.ctx.Err() == nil && sub.observer.OnNext != nil {
					sub.observer.OnNext(frame)
				}
			}
			frame++
		}
	}
}

// Subscribers reports the number of attached observers.
func (c *Clock) Subscribers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subscribers)
}

// Running reports whether the clock is ticking.
func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stop != nil
}
