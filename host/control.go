// Package host binds animations to on-screen objects.
//
// The engine only needs a small set of capabilities from the host environment,
// captured by Control. Widget is a headless implementation that owns its state
// on a Dispatcher.
package host

import (
	"github.com/matt-g-everett/rxanim/animation"
	"github.com/matt-g-everett/rxanim/stream"
)

// Control is an on-screen object that can be animated. Its methods other than
// Invoke must only be called on the context Invoke schedules onto.
type Control interface {
	stream.Invoker

	Bounds() animation.Rectangle
	SetBounds(r animation.Rectangle)
	Position() animation.Point
	SetPosition(p animation.Point)

	// ParentSize is the client area of the control's parent.
	ParentSize() animation.Size

	// Refresh redraws the control's parent.
	Refresh()

	// Moved notifies every change of position.
	Moved() stream.Stream[struct{}]

	// ParentResized notifies every change of the parent's client area.
	ParentResized() stream.Stream[struct{}]
}
