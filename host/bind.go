package host

import (
	"context"

	"github.com/matt-g-everett/rxanim/animation"
	"github.com/matt-g-everett/rxanim/stream"
)

// AnimateOn delivers the frames of s, and its completion, on the context of
// owner. The subscription ends with s, with ctx, or when owner goes away.
func AnimateOn(ctx context.Context, owner stream.Invoker, s stream.Stream[[]animation.Progress], onNext func([]animation.Progress), onCompleted func()) {
	stream.ObserveOn(s, owner).Subscribe(ctx, stream.Observer[[]animation.Progress]{
		OnNext:      onNext,
		OnCompleted: onCompleted,
	})
}

// AnimateValueOn animates a single value on the context of owner.
func AnimateValueOn(ctx context.Context, a *animation.Animation, owner stream.Invoker, from, to stream.Stream[float64], onNext func(animation.Progress), onCompleted func()) {
	AnimateOn(ctx, owner, a.CombineValue(from, to, ""), func(values []animation.Progress) {
		if len(values) > 0 {
			onNext(values[0])
		}
	}, onCompleted)
}

// UpdateBounds applies r to ctrl and redraws its parent.
func UpdateBounds(ctrl Control, r animation.Rectangle) {
	ctrl.SetBounds(r)
	ctrl.Refresh()
}

func rectangleValues(s stream.Stream[animation.Rectangle]) stream.Stream[[]animation.Value] {
	return stream.Map(s, animation.RectangleValues)
}

// AnimateBounds moves and resizes ctrl from the latest from rectangle to the
// latest to rectangle on the progress of a.
func AnimateBounds(ctx context.Context, a *animation.Animation, ctrl Control, from, to stream.Stream[animation.Rectangle], onCompleted func()) {
	frames := a.Combine(rectangleValues(from), rectangleValues(to))
	AnimateOn(ctx, ctrl, frames, func(values []animation.Progress) {
		if r, ok := animation.RectangleFromProgress(values); ok {
			UpdateBounds(ctrl, r)
		}
	}, onCompleted)
}

// MoveControl moves ctrl towards the latest position of to, at the latest
// speed, one step per frame of clock. It stops once ctrl arrives or when the
// returned function is called. With keepRelative the destination is also kept
// proportional to changes of to.
func MoveControl(ctx context.Context, clock stream.Stream[int64], ctrl Control, to stream.Stream[animation.Point], speed stream.Stream[int], keepRelative bool) context.CancelFunc {
	ctx, cancel := context.WithCancel(ctx)
	if keepRelative {
		KeepRelativePosition(ctx, ctrl, to)
	}

	current := func(c Control) animation.Point { return c.Position() }
	steps := animation.Follow(stream.ObserveOn(clock, ctrl), ctrl, current,
		stream.ObserveOn(to, ctrl), stream.ObserveOn(speed, ctrl))
	steps.Subscribe(ctx, stream.Observer[animation.Position[Control]]{
		OnNext: func(p animation.Position[Control]) {
			p.Target.SetPosition(p.NewPosition)
			if p.Arrived() {
				cancel()
			}
		},
	})
	return cancel
}

// KeepRelativePosition keeps ctrl at its proportional place as relativeTo
// changes, until the returned function is called.
func KeepRelativePosition(ctx context.Context, ctrl Control, relativeTo stream.Stream[animation.Point]) context.CancelFunc {
	ctx, cancel := context.WithCancel(ctx)
	moves := animation.TrackRelative(stream.ObserveOn(relativeTo, ctrl), ctrl.Position)
	moves.Subscribe(ctx, stream.Observer[animation.Point]{
		OnNext: func(p animation.Point) {
			if p != ctrl.Position() {
				ctrl.SetPosition(p)
				ctrl.Refresh()
			}
		},
	})
	return cancel
}
