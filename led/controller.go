package led

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/matt-g-everett/rxanim/animation"
	"github.com/matt-g-everett/rxanim/stream"
)

// BrightnessKey names the animated brightness value.
const BrightnessKey = "Brightness"

// Status describes what a Controller is rendering.
type Status struct {
	Pattern    string  `json:"pattern"`
	Next       string  `json:"next,omitempty"`
	Transition float64 `json:"transition"`
	Brightness float64 `json:"brightness"`
}

// Controller that manages patterns, cross-fading from one to the next.
type Controller struct {
	clock            stream.Stream[int64]
	transitionFrames int
	easing           animation.EasingFunc
	logger           *slog.Logger

	mu         sync.Mutex
	pattern    Pattern
	next       Pattern
	transition float64
	brightness float64
	cycle      int
	stopFade   context.CancelFunc
	stopSwap   context.CancelFunc
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithControllerClock drives transitions from clock instead of
// animation.EveryFrame.
func WithControllerClock(clock stream.Stream[int64]) ControllerOption {
	return func(c *Controller) {
		c.clock = clock
	}
}

// WithTransition sets the length and the easing of cross-fades.
func WithTransition(d time.Duration, easing animation.EasingFunc) ControllerOption {
	return func(c *Controller) {
		c.transitionFrames = animation.FramesFromDuration(d)
		c.easing = easing
	}
}

// WithControllerLogger sets the logger.
func WithControllerLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

// NewController creates an instance of a Controller showing pattern at full
// brightness.
func NewController(pattern Pattern, opts ...ControllerOption) *Controller {
	c := new(Controller)
	c.clock = animation.EveryFrame
	c.transitionFrames = animation.FramesFromSeconds(5.0)
	c.easing = animation.Linear
	c.logger = slog.Default()
	c.pattern = pattern
	c.brightness = 1.0
	for _, opt := range opts {
		opt(c)
	}
	if c.transitionFrames < 1 {
		c.transitionFrames = 1
	}
	return c
}

func (c *Controller) newAnimation(frames int) *animation.Animation {
	a := animation.NewAnimation(
		animation.WithClock(c.clock),
		animation.WithEasing(c.easing),
		animation.WithLogger(c.logger))
	if frames < 1 {
		frames = 1
	}
	// frames is at least one and nothing has elapsed yet
	_ = a.SetDuration(frames)
	return a
}

// CalculateFrame renders the current pattern, blended with the next one while
// a transition is running.
func (c *Controller) CalculateFrame(frame int64) *Frame {
	c.mu.Lock()
	pattern, next := c.pattern, c.next
	transition, brightness := c.transition, c.brightness
	c.mu.Unlock()

	f := pattern.CalculateFrame(frame)
	if next != nil {
		f = f.InterpolateFrame(next.CalculateFrame(frame), transition)
	}

	return f.Scale(brightness)
}

// Transition cross-fades to next. A transition that is already running is
// completed first.
func (c *Controller) Transition(next Pattern) {
	c.mu.Lock()
	if c.stopSwap != nil {
		c.stopSwap()
	}
	if c.next != nil {
		c.pattern = c.next
	}
	c.next = next
	c.transition = 0
	ctx, cancel := context.WithCancel(context.Background())
	c.stopSwap = cancel
	c.mu.Unlock()

	c.logger.Info("transition", slog.String("from", c.Status().Pattern), slog.String("to", next.Name()))

	a := c.newAnimation(c.transitionFrames)
	a.Progress().Subscribe(ctx, stream.Observer[float64]{
		OnNext: func(p float64) {
			c.mu.Lock()
			if ctx.Err() == nil {
				c.transition = p
			}
			c.mu.Unlock()
		},
		OnCompleted: func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if ctx.Err() != nil {
				return
			}
			c.pattern = c.next
			c.next = nil
			c.transition = 0
			c.stopSwap = nil
			cancel()
		},
	})
	context.AfterFunc(ctx, a.Pause)
	a.Start()
}

// FadeTo animates the brightness to level over d.
func (c *Controller) FadeTo(level float64, d time.Duration) {
	c.mu.Lock()
	if c.stopFade != nil {
		c.stopFade()
	}
	from := c.brightness
	ctx, cancel := context.WithCancel(context.Background())
	c.stopFade = cancel
	c.mu.Unlock()

	a := c.newAnimation(animation.FramesFromDuration(d))
	values := a.CombineValue(stream.Just(from), stream.Just(level), BrightnessKey)
	values.Subscribe(ctx, stream.Observer[[]animation.Progress]{
		OnNext: func(frame []animation.Progress) {
			for _, v := range frame {
				if v.Key != BrightnessKey {
					continue
				}
				c.mu.Lock()
				if ctx.Err() == nil {
					c.brightness = v.Current()
				}
				c.mu.Unlock()
			}
		},
		OnCompleted: cancel,
	})
	context.AfterFunc(ctx, a.Pause)
	a.Start()
}

// Advance cross-fades to the pattern after the last one shown from patterns.
func (c *Controller) Advance(patterns []Pattern) {
	if len(patterns) == 0 {
		return
	}
	c.mu.Lock()
	c.cycle = (c.cycle + 1) % len(patterns)
	next := patterns[c.cycle]
	c.mu.Unlock()
	c.Transition(next)
}

// Run causes the Controller to cycle through patterns until ctx is done.
func (c *Controller) Run(ctx context.Context, patterns []Pattern, every time.Duration) {
	publishTimer := time.NewTicker(every)
	defer publishTimer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-publishTimer.C:
			c.Advance(patterns)
		}
	}
}

// Status reports the current state of the controller.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := Status{
		Pattern:    c.pattern.Name(),
		Transition: c.transition,
		Brightness: c.brightness,
	}
	if c.next != nil {
		s.Next = c.next.Name()
	}
	return s
}
