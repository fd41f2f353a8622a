// Package animation drives values from one state to another over a fixed
// number of frames.
//
// An Animation counts frames of the shared Clock and publishes its eased
// progress in [0, 1] on every frame. Progress streams are combined with the
// values to animate from and to, producing an interpolated value per key on
// every frame:
//
//	a := animation.NewAnimation(animation.WithEasing(ease.InOutQuad))
//	a.SetDurationFromTime(500 * time.Millisecond)
//	values := a.Combine(from, to)
//	values.Subscribe(ctx, stream.Observer[[]animation.Progress]{OnNext: apply})
//	a.Start()
//
// The progress stream completes once the last frame has been published, which
// ends every subscription made through it.
package animation

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/matt-g-everett/rxanim/stream"
)

// State of an Animation.
type State int

const (
	Idle State = iota
	Running
	Completed
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Completed:
		return "completed"
	default:
		return "idle"
	}
}

// An Animation advances one frame on every tick of its clock until its
// duration has elapsed.
type Animation struct {
	clock    stream.Stream[int64]
	owner    stream.Invoker
	logger   *slog.Logger
	progress *stream.Subject[float64]

	mu       sync.Mutex
	elapsed  int
	duration int
	easing   EasingFunc
	ctx      context.Context
	cancel   context.CancelFunc
}

// Option configures an Animation.
type Option func(*Animation)

// WithClock drives the animation from clock instead of EveryFrame.
func WithClock(clock stream.Stream[int64]) Option {
	return func(a *Animation) {
		a.clock = clock
	}
}

// WithEasing sets the easing function.
func WithEasing(fn EasingFunc) Option {
	return func(a *Animation) {
		a.easing = fn
	}
}

// WithOwner processes every frame on the context run by owner.
func WithOwner(owner stream.Invoker) Option {
	return func(a *Animation) {
		a.owner = owner
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Animation) {
		a.logger = logger
	}
}

// NewAnimation creates an idle Animation lasting one second.
func NewAnimation(opts ...Option) *Animation {
	a := new(Animation)
	a.clock = EveryFrame
	a.logger = slog.Default()
	a.progress = stream.NewSubject[float64]()
	a.duration = FrameRate
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Progress returns the stream of eased progress values.
func (a *Animation) Progress() stream.Stream[float64] {
	return a.progress.Stream()
}

// Duration returns the duration in frames.
func (a *Animation) Duration() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.duration
}

// SetDuration changes the duration in frames. It cannot be shorter than one
// frame or than the frames that have already elapsed. A duration equal to the
// elapsed frames completes the animation at once.
func (a *Animation) SetDuration(frames int) error {
	a.mu.Lock()
	if frames < 1 {
		a.mu.Unlock()
		return &RangeError{Name: "duration", Value: frames, Min: 1, Max: maxInt,
			Hint: "duration cannot be less than one frame"}
	}
	if frames < a.elapsed {
		err := &RangeError{Name: "duration", Value: frames, Min: a.elapsed, Max: maxInt,
			Hint: "duration cannot be less than elapsed frames, restart the animation for a shorter duration"}
		a.mu.Unlock()
		return err
	}
	changed := a.duration != frames
	a.duration = frames
	completes := changed && frames == a.elapsed
	a.mu.Unlock()

	if completes {
		a.updateProgress()
	}
	return nil
}

// SetDurationFromTime changes the duration to the frames in d.
func (a *Animation) SetDurationFromTime(d time.Duration) error {
	return a.SetDuration(FramesFromDuration(d))
}

// Elapsed returns the number of frames played.
func (a *Animation) Elapsed() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.elapsed
}

// SetEasing replaces the easing function. A nil function means linear.
func (a *Animation) SetEasing(fn EasingFunc) {
	a.mu.Lock()
	a.easing = fn
	a.mu.Unlock()
}

// IsRunning reports whether the animation is attached to its clock.
func (a *Animation) IsRunning() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.runningLocked()
}

func (a *Animation) runningLocked() bool {
	return a.ctx != nil && a.ctx.Err() == nil
}

// State returns the lifecycle state.
func (a *Animation) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	switch {
	case a.runningLocked():
		return Running
	case a.elapsed == a.duration:
		return Completed
	default:
		return Idle
	}
}

// Start attaches the animation to its clock and plays from the current frame.
// Starting a running animation re-arms it.
func (a *Animation) Start() {
	a.Pause()

	a.mu.Lock()
	ctx, cancel := context.WithCancel(context.Background())
	a.ctx, a.cancel = ctx, cancel
	if a.easing == nil {
		a.easing = func(t float64) float64 {
			return EaseInOut(t, EasingLinear)
		}
	}
	a.mu.Unlock()

	a.clock.Subscribe(ctx, stream.Observer[int64]{
		OnNext: func(int64) {
			a.dispatch(ctx, func() { a.onFrame(ctx) })
		},
	})
}

func (a *Animation) dispatch(ctx context.Context, fn func()) {
	if a.owner == nil {
		fn()
		return
	}
	if err := a.owner.Invoke(fn); err != nil {
		a.abandon(ctx, err)
	}
}

// abandon stops the run identified by ctx because its owner cannot accept
// work. The animation is left idle.
func (a *Animation) abandon(ctx context.Context, err error) {
	a.mu.Lock()
	current := a.ctx == ctx
	a.mu.Unlock()
	if !current {
		return
	}
	a.Pause()
	if errors.Is(err, stream.ErrInvalidContext) {
		a.logger.Debug("animation abandoned, owner unavailable", slog.Any("err", err))
		return
	}
	a.logger.Warn("animation abandoned", slog.Any("err", err))
}

func (a *Animation) onFrame(ctx context.Context) {
	a.mu.Lock()
	if a.elapsed == a.duration {
		a.mu.Unlock()
		a.finish(ctx)
		return
	}
	if ctx.Err() != nil {
		a.mu.Unlock()
		return
	}
	a.elapsed++
	p, done := a.progressLocked()
	a.mu.Unlock()

	a.publish(p, done)
}

// finish detaches the completed run from the clock. It happens one frame after
// the completion was published so that observers have processed it.
func (a *Animation) finish(ctx context.Context) {
	a.mu.Lock()
	if a.ctx != ctx {
		a.mu.Unlock()
		return
	}
	a.mu.Unlock()
	a.Pause()
	a.logger.Debug("animation completed", slog.Int("frames", a.Duration()))
}

func (a *Animation) progressLocked() (float64, bool) {
	percentComplete := float64(a.elapsed) / float64(a.duration)
	easing := a.easing
	if easing == nil {
		easing = Linear
	}
	return easing(percentComplete), a.elapsed == a.duration
}

func (a *Animation) publish(p float64, done bool) {
	a.progress.Next(p)
	if done {
		a.progress.Complete()
	}
}

func (a *Animation) updateProgress() {
	a.mu.Lock()
	p, done := a.progressLocked()
	a.mu.Unlock()
	a.publish(p, done)
}

// Pause detaches the animation from its clock. Pausing an idle animation does
// nothing.
func (a *Animation) Pause() {
	a.mu.Lock()
	cancel := a.cancel
	a.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// GoToFrame moves to frame and publishes the progress at that frame. It does
// not pause the animation; pause first, or a running clock may advance past the
// requested frame concurrently.
func (a *Animation) GoToFrame(frame int) error {
	a.mu.Lock()
	if frame < 0 || frame > a.duration {
		err := &RangeError{Name: "frame", Value: frame, Min: 0, Max: a.duration}
		a.mu.Unlock()
		return err
	}
	a.elapsed = frame
	a.mu.Unlock()

	a.updateProgress()
	return nil
}

// Restart plays the animation again from the first frame.
func (a *Animation) Restart() {
	a.Pause()
	a.mu.Lock()
	a.elapsed = 0
	a.mu.Unlock()
	a.updateProgress()
	a.Start()
}

// SkipToCompletion pauses and publishes the final frame, completing the
// progress stream.
func (a *Animation) SkipToCompletion() {
	a.Pause()
	a.mu.Lock()
	a.elapsed = a.duration
	a.mu.Unlock()
	a.updateProgress()
}

// Dispose pauses the animation and closes its progress stream.
func (a *Animation) Dispose() {
	a.Pause()
	a.progress.Dispose()
}

const maxInt = int(^uint(0) >> 1)
