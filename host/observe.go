package host

import (
	"github.com/matt-g-everett/rxanim/animation"
	"github.com/matt-g-everett/rxanim/stream"
)

// FixedValue returns a stream holding v.
func FixedValue[T any](v T) stream.Stream[T] {
	return stream.Just(v)
}

func positionBasedOn(events stream.Stream[struct{}], ctrl Control, get func(Control) animation.Rectangle) stream.Stream[animation.Rectangle] {
	primed := stream.StartWith(events, func() struct{} { return struct{}{} })
	return stream.Map(stream.ObserveOn(primed, ctrl), func(struct{}) animation.Rectangle { return get(ctrl) })
}

// PositionBasedOnControl emits get(ctrl) on subscription and again every time
// ctrl moves.
func PositionBasedOnControl(ctrl Control, get func(Control) animation.Rectangle) stream.Stream[animation.Rectangle] {
	return positionBasedOn(ctrl.Moved(), ctrl, get)
}

// PositionBasedOnParent emits get(ctrl) on subscription and again every time
// the parent of ctrl is resized.
func PositionBasedOnParent(ctrl Control, get func(Control) animation.Rectangle) stream.Stream[animation.Rectangle] {
	return positionBasedOn(ctrl.ParentResized(), ctrl, get)
}

// FixedPositionRelativeToParent emits the bounds ctrl needs to keep its
// current proportional place in its parent as the parent is resized.
func FixedPositionRelativeToParent(ctrl Control) stream.Stream[animation.Rectangle] {
	size := ctrl.ParentSize()
	pos := ctrl.Position()
	var xPerc, yPerc float64
	if size.Width != 0 {
		xPerc = float64(pos.X) / float64(size.Width)
	}
	if size.Height != 0 {
		yPerc = float64(pos.Y) / float64(size.Height)
	}
	return PositionBasedOnParent(ctrl, func(c Control) animation.Rectangle {
		ps := c.ParentSize()
		b := c.Bounds()
		return animation.Rectangle{
			Left:   int(float64(ps.Width) * xPerc),
			Top:    int(float64(ps.Height) * yPerc),
			Width:  b.Width,
			Height: b.Height,
		}
	})
}
