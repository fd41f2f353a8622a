package animation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fogleman/ease"
	"github.com/matt-g-everett/rxanim/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pulse drives animations synchronously in tests.
type pulse struct {
	*stream.Subject[int64]
	frame int64
}

func newPulse() *pulse {
	return &pulse{Subject: stream.NewSubject[int64]()}
}

func (p *pulse) tick(n int) {
	for i := 0; i < n; i++ {
		p.Next(p.frame)
		p.frame++
	}
}

func newTestAnimation(t *testing.T, frames int, opts ...Option) (*Animation, *pulse) {
	t.Helper()
	p := newPulse()
	a := NewAnimation(append([]Option{WithClock(p)}, opts...)...)
	require.NoError(t, a.SetDuration(frames))
	return a, p
}

func TestFramesFromSeconds(t *testing.T) {
	assert.Equal(t, 60, FramesFromSeconds(1))
	assert.Equal(t, 30, FramesFromSeconds(0.5))
	assert.Equal(t, 1, FramesFromSeconds(0.02))
	assert.Equal(t, 0, FramesFromSeconds(0.01))
	assert.Equal(t, 90, FramesFromDuration(1500*time.Millisecond))
	assert.Equal(t, 16666666*time.Nanosecond, FrameInterval)
}

func TestNewAnimationDefaults(t *testing.T) {
	a := NewAnimation()

	assert.Equal(t, FrameRate, a.Duration())
	assert.Equal(t, 0, a.Elapsed())
	assert.Equal(t, Idle, a.State())
	assert.False(t, a.IsRunning())
}

func TestAnimationRunsToCompletion(t *testing.T) {
	const frames = 4
	a, p := newTestAnimation(t, frames)
	completions := 0
	var values []float64
	a.Progress().Subscribe(context.Background(), stream.Observer[float64]{
		OnNext: func(v float64) {
			assert.Zero(t, completions, "progress after completion")
			values = append(values, v)
		},
		OnCompleted: func() { completions++ },
	})

	a.Start()
	assert.Equal(t, Running, a.State())
	p.tick(frames)

	assert.Equal(t, []float64{0.25, 0.5, 0.75, 1}, values)
	assert.Equal(t, 1, completions)
	assert.Equal(t, frames, a.Elapsed())

	// the run detaches on the frame after the last one without stepping
	p.tick(1)
	assert.False(t, a.IsRunning())
	assert.Equal(t, Completed, a.State())
	assert.Equal(t, frames, a.Elapsed())

	p.tick(3)
	assert.Len(t, values, frames)
	assert.Equal(t, 1, completions)
}

func TestAnimationProgressIsMonotonic(t *testing.T) {
	for name, fn := range map[string]EasingFunc{
		"linear":    Linear,
		"inOutQuad": ease.InOutQuad,
		"outCubic":  ease.OutCubic,
		"inSine":    ease.InSine,
	} {
		t.Run(name, func(t *testing.T) {
			a, p := newTestAnimation(t, 37, WithEasing(fn))
			values := collect(a.Progress())

			a.Start()
			p.tick(37)

			got, done := values()
			require.Len(t, got, 37)
			assert.True(t, done)
			for i, v := range got {
				assert.GreaterOrEqual(t, v, 0.0)
				assert.LessOrEqual(t, v, 1.0)
				if i > 0 {
					assert.GreaterOrEqual(t, v, got[i-1], "frame %d", i)
				}
			}
			assert.InDelta(t, 1.0, got[len(got)-1], 1e-9)
		})
	}
}

func TestAnimationEasingApplied(t *testing.T) {
	a, p := newTestAnimation(t, 2, WithEasing(func(t float64) float64 { return t * t }))
	values := collect(a.Progress())

	a.Start()
	p.tick(2)

	got, _ := values()
	assert.Equal(t, []float64{0.25, 1}, got)
}

func TestAnimationPauseStopsProgress(t *testing.T) {
	a, p := newTestAnimation(t, 10)
	values := collect(a.Progress())

	a.Start()
	p.tick(3)
	a.Pause()
	p.tick(5)

	got, done := values()
	assert.Len(t, got, 3)
	assert.False(t, done, "a cancelled animation does not complete")
	assert.Equal(t, 3, a.Elapsed())
	assert.Equal(t, Idle, a.State())

	// resuming continues from the paused frame
	a.Start()
	p.tick(7)
	got, done = values()
	assert.Len(t, got, 10)
	assert.True(t, done)
}

func TestAnimationPauseIdle(t *testing.T) {
	a := NewAnimation()
	assert.NotPanics(t, a.Pause)
	assert.NotPanics(t, a.Pause)
	assert.False(t, a.IsRunning())
}

func TestAnimationStartTwiceRearms(t *testing.T) {
	a, p := newTestAnimation(t, 10)
	values := collect(a.Progress())

	a.Start()
	a.Start()
	p.tick(2)

	got, _ := values()
	assert.Len(t, got, 2, "one step per tick after re-arming")
	assert.Equal(t, 2, a.Elapsed())
}

func TestGoToFrame(t *testing.T) {
	a, _ := newTestAnimation(t, 8)
	values := collect(a.Progress())

	require.NoError(t, a.GoToFrame(2))
	require.NoError(t, a.GoToFrame(2))

	got, _ := values()
	assert.Equal(t, []float64{0.25, 0.25}, got)
	assert.Equal(t, 2, a.Elapsed())
}

func TestGoToFrameOutOfRange(t *testing.T) {
	a, _ := newTestAnimation(t, 8)

	for _, frame := range []int{-1, 9} {
		err := a.GoToFrame(frame)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrOutOfRange))

		var rangeErr *RangeError
		require.True(t, errors.As(err, &rangeErr))
		assert.Equal(t, frame, rangeErr.Value)
	}
	assert.NoError(t, a.GoToFrame(8))
}

func TestGoToLastFrameCompletes(t *testing.T) {
	a, _ := newTestAnimation(t, 8)
	values := collect(a.Progress())

	require.NoError(t, a.GoToFrame(8))

	got, done := values()
	assert.Equal(t, []float64{1}, got)
	assert.True(t, done)
}

func TestSetDuration(t *testing.T) {
	a, p := newTestAnimation(t, 10)
	a.Start()
	p.tick(5)

	assert.ErrorIs(t, a.SetDuration(0), ErrOutOfRange)
	assert.ErrorIs(t, a.SetDuration(4), ErrOutOfRange)
	assert.Equal(t, 10, a.Duration())

	assert.NoError(t, a.SetDuration(5))
	assert.NoError(t, a.SetDuration(20))
	assert.Equal(t, 20, a.Duration())

	require.NoError(t, a.SetDurationFromTime(time.Second))
	assert.Equal(t, FrameRate, a.Duration())
}

func TestSetDurationToElapsedCompletes(t *testing.T) {
	a, p := newTestAnimation(t, 10)
	values := collect(a.Progress())
	a.Start()
	p.tick(4)

	require.NoError(t, a.SetDuration(4))
	p.tick(4)

	got, done := values()
	assert.Equal(t, []float64{0.1, 0.2, 0.3, 0.4, 1}, got)
	assert.True(t, done)
	assert.Equal(t, Completed, a.State())
	assert.False(t, a.IsRunning())
}

func TestProgressMatchesElapsedOnEveryTick(t *testing.T) {
	a, p := newTestAnimation(t, 8)
	ticks := 0
	a.Progress().Subscribe(context.Background(), stream.Observer[float64]{
		OnNext: func(v float64) {
			ticks++
			assert.Equal(t, float64(a.Elapsed())/8, v)
		},
	})

	a.Start()
	for i := 1; i <= 8; i++ {
		p.tick(1)
		assert.Equal(t, i, ticks, "progress is published before the tick returns")
	}
}

func TestRestart(t *testing.T) {
	a, p := newTestAnimation(t, 2)
	first := collect(a.Progress())

	a.Start()
	p.tick(3)
	assert.Equal(t, Completed, a.State())

	second := collect(a.Progress())
	a.Restart()
	p.tick(2)

	got, done := first()
	assert.Equal(t, []float64{0.5, 1}, got)
	assert.True(t, done)

	got, done = second()
	assert.Equal(t, []float64{0, 0.5, 1}, got)
	assert.True(t, done)
}

func TestSkipToCompletion(t *testing.T) {
	a, p := newTestAnimation(t, 10)
	values := collect(a.Progress())

	a.Start()
	p.tick(2)
	a.SkipToCompletion()
	p.tick(2)

	got, done := values()
	assert.Equal(t, []float64{0.1, 0.2, 1}, got)
	assert.True(t, done)
	assert.False(t, a.IsRunning())
	assert.Equal(t, Completed, a.State())
}

func TestDispose(t *testing.T) {
	a, p := newTestAnimation(t, 10)
	values := collect(a.Progress())

	a.Start()
	p.tick(1)
	a.Dispose()
	p.tick(1)

	got, done := values()
	assert.Len(t, got, 1)
	assert.True(t, done)
	assert.False(t, a.IsRunning())
}

func TestOwnerContextUnavailable(t *testing.T) {
	owner := stream.InvokerFunc(func(func()) error { return stream.ErrInvalidContext })
	a, p := newTestAnimation(t, 10, WithOwner(owner))
	values := collect(a.Progress())

	a.Start()
	assert.NotPanics(t, func() { p.tick(2) })

	got, _ := values()
	assert.Empty(t, got)
	assert.Equal(t, Idle, a.State())
	assert.Equal(t, 0, a.Elapsed())
}

func TestOwnerContextRunsFrames(t *testing.T) {
	var queued []func()
	owner := stream.InvokerFunc(func(fn func()) error {
		queued = append(queued, fn)
		return nil
	})
	a, p := newTestAnimation(t, 2, WithOwner(owner))
	values := collect(a.Progress())

	a.Start()
	p.tick(2)
	assert.Equal(t, 0, a.Elapsed(), "frames wait for the owner")

	for _, fn := range queued {
		fn()
	}
	got, done := values()
	assert.Equal(t, []float64{0.5, 1}, got)
	assert.True(t, done)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "completed", Completed.String())
}

func collect[T any](s stream.Stream[T]) func() ([]T, bool) {
	return stream.Collect(context.Background(), s)
}
