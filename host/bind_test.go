package host

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/matt-g-everett/rxanim/animation"
	"github.com/matt-g-everett/rxanim/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

func TestAnimateBounds(t *testing.T) {
	_, child := newWindow()
	p := newPulse()
	a := animation.NewAnimation(animation.WithClock(p))
	require.NoError(t, a.SetDuration(4))

	completed := false
	target := animation.Rectangle{Left: 300, Top: 150, Width: 60, Height: 10}
	AnimateBounds(context.Background(), a, child, FixedValue(child.Bounds()), FixedValue(target),
		func() { completed = true })

	a.Start()
	p.tick(2)
	assert.Equal(t, animation.Rectangle{Left: 200, Top: 100, Width: 40, Height: 10}, child.Bounds())
	assert.False(t, completed)

	p.tick(2)
	assert.Equal(t, target, child.Bounds())
	assert.True(t, completed)
	assert.Greater(t, child.parent.Refreshes(), 0)
}

func TestAnimateValueOn(t *testing.T) {
	p := newPulse()
	a := animation.NewAnimation(animation.WithClock(p))
	require.NoError(t, a.SetDuration(2))

	var got []float64
	AnimateValueOn(context.Background(), a, stream.Immediate, FixedValue(1.0), FixedValue(2.0),
		func(v animation.Progress) {
			assert.Equal(t, animation.DefaultValueKey, v.Key)
			got = append(got, v.Current())
		}, nil)

	a.Start()
	p.tick(3)

	assert.Equal(t, []float64{1.5, 2}, got)
}

func TestAnimateOnDisposedOwner(t *testing.T) {
	_, child := newWindow()
	p := newPulse()
	a := animation.NewAnimation(animation.WithClock(p))
	require.NoError(t, a.SetDuration(4))

	calls := 0
	AnimateOn(context.Background(), child, a.CombineValue(FixedValue(0.0), FixedValue(1.0), ""),
		func([]animation.Progress) { calls++ }, nil)

	a.Start()
	p.tick(1)
	child.Dispose()
	p.tick(3)

	assert.Equal(t, 1, calls)
}

func TestAnimationOwnedByDisposedWidget(t *testing.T) {
	_, child := newWindow()
	child.Dispose()
	p := newPulse()
	a := animation.NewAnimation(animation.WithClock(p), animation.WithOwner(child))

	a.Start()
	p.tick(1)

	assert.Equal(t, animation.Idle, a.State())
	assert.Equal(t, 0, a.Elapsed())
}

func TestMoveControl(t *testing.T) {
	_, child := newWindow()
	p := newPulse()

	MoveControl(context.Background(), p, child, FixedValue(animation.Point{X: 110, Y: 40}), FixedValue(4), false)

	p.tick(1)
	assert.Equal(t, animation.Point{X: 104, Y: 46}, child.Position())

	p.tick(2)
	assert.Equal(t, animation.Point{X: 110, Y: 40}, child.Position())

	// arrival cancels the movement
	child.SetPosition(animation.Point{X: 0, Y: 0})
	p.tick(2)
	assert.Equal(t, animation.Point{X: 0, Y: 0}, child.Position())
}

func TestMoveControlCancel(t *testing.T) {
	_, child := newWindow()
	p := newPulse()

	cancel := MoveControl(context.Background(), p, child, FixedValue(animation.Point{X: 200, Y: 50}), FixedValue(10), false)
	p.tick(1)
	cancel()
	p.tick(5)

	assert.Equal(t, animation.Point{X: 110, Y: 50}, child.Position())
}

func TestKeepRelativePosition(t *testing.T) {
	_, child := newWindow()
	reference := stream.NewSubject[animation.Point]()

	cancel := KeepRelativePosition(context.Background(), child, reference)
	defer cancel()

	reference.Next(animation.Point{X: 400, Y: 200})
	reference.Next(animation.Point{X: 800, Y: 100})

	assert.Equal(t, animation.Point{X: 200, Y: 25}, child.Position())
	assert.Equal(t, 1, child.parent.Refreshes())
}

// ownerCheck is an immediate owner that records reads made outside of it.
type ownerCheck struct {
	depth   atomic.Int32
	outside atomic.Int32
}

func (o *ownerCheck) Invoke(fn func()) error {
	o.depth.Add(1)
	defer o.depth.Add(-1)
	fn()
	return nil
}

type checkedWidget struct {
	*Widget
	owner *ownerCheck
}

func (c checkedWidget) Position() animation.Point {
	if c.owner.depth.Load() == 0 {
		c.owner.outside.Add(1)
	}
	return c.Widget.Position()
}

func newCheckedChild() checkedWidget {
	owner := new(ownerCheck)
	window := NewWidget(owner, nil, animation.Rectangle{Width: 400, Height: 200})
	child := NewWidget(owner, window, animation.Rectangle{Left: 100, Top: 50, Width: 20, Height: 10})
	return checkedWidget{Widget: child, owner: owner}
}

func TestMoveControlReadsOnOwner(t *testing.T) {
	child := newCheckedChild()
	p := newPulse()
	to := stream.NewSubject[animation.Point]()

	MoveControl(context.Background(), p, child, to, FixedValue(4), false)
	to.Next(animation.Point{X: 110, Y: 40})
	p.tick(1)
	to.Next(animation.Point{X: 110, Y: 50})
	p.tick(2)

	assert.Zero(t, child.owner.outside.Load())
	assert.Equal(t, animation.Point{X: 110, Y: 50}, child.Position())
}

func TestKeepRelativePositionReadsOnOwner(t *testing.T) {
	child := newCheckedChild()
	reference := stream.NewSubject[animation.Point]()
	cancel := KeepRelativePosition(context.Background(), child, reference)
	defer cancel()

	reference.Next(animation.Point{X: 400, Y: 200})
	reference.Next(animation.Point{X: 800, Y: 100})

	assert.Zero(t, child.owner.outside.Load())
	assert.Equal(t, animation.Point{X: 200, Y: 25}, child.Position())
}
