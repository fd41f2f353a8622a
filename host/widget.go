package host

import (
	"sync"

	"github.com/matt-g-everett/rxanim/animation"
	"github.com/matt-g-everett/rxanim/stream"
)

// Widget is a headless Control. A widget without a parent acts as a window
// whose client area is its own size.
type Widget struct {
	owner   stream.Invoker
	parent  *Widget
	moved   *stream.Subject[struct{}]
	resized *stream.Subject[struct{}]

	mu        sync.Mutex
	bounds    animation.Rectangle
	refreshes int
	disposed  bool
}

// NewWidget creates a Widget owned by owner. parent may be nil.
func NewWidget(owner stream.Invoker, parent *Widget, bounds animation.Rectangle) *Widget {
	w := new(Widget)
	w.owner = owner
	w.parent = parent
	w.bounds = bounds
	w.moved = stream.NewSubject[struct{}]()
	w.resized = stream.NewSubject[struct{}]()
	return w
}

// Invoke runs fn on the widget's owner context.
func (w *Widget) Invoke(fn func()) error {
	w.mu.Lock()
	disposed := w.disposed
	w.mu.Unlock()
	if disposed {
		return stream.ErrInvalidContext
	}
	return w.owner.Invoke(fn)
}

// Bounds returns the widget's rectangle.
func (w *Widget) Bounds() animation.Rectangle {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.bounds
}

// SetBounds moves and resizes the widget, notifying Moved and the client size
// listeners of its children.
func (w *Widget) SetBounds(r animation.Rectangle) {
	w.mu.Lock()
	if w.disposed {
		w.mu.Unlock()
		return
	}
	old := w.bounds
	w.bounds = r
	w.mu.Unlock()

	if old.Location() != r.Location() {
		w.moved.Next(struct{}{})
	}
	if old.Size() != r.Size() {
		w.resized.Next(struct{}{})
	}
}

// Position returns the top-left corner of the widget.
func (w *Widget) Position() animation.Point {
	return w.Bounds().Location()
}

// SetPosition moves the widget.
func (w *Widget) SetPosition(p animation.Point) {
	r := w.Bounds()
	r.Left, r.Top = p.X, p.Y
	w.SetBounds(r)
}

// ParentSize returns the size of the parent, or of the widget itself if it
// has no parent.
func (w *Widget) ParentSize() animation.Size {
	if w.parent == nil {
		return w.Bounds().Size()
	}
	return w.parent.Bounds().Size()
}

// Refresh records a redraw of the parent.
func (w *Widget) Refresh() {
	target := w
	if w.parent != nil {
		target = w.parent
	}
	target.mu.Lock()
	target.refreshes++
	target.mu.Unlock()
}

// Refreshes reports how many redraws the widget received.
func (w *Widget) Refreshes() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.refreshes
}

// Moved notifies every change of position.
func (w *Widget) Moved() stream.Stream[struct{}] {
	return w.moved.Stream()
}

// ParentResized notifies every change of the parent's size.
func (w *Widget) ParentResized() stream.Stream[struct{}] {
	if w.parent == nil {
		return w.resized.Stream()
	}
	return w.parent.resized.Stream()
}

// Dispose detaches every listener of the widget and rejects further work on
// its owner context.
func (w *Widget) Dispose() {
	w.mu.Lock()
	if w.disposed {
		w.mu.Unlock()
		return
	}
	w.disposed = true
	w.mu.Unlock()

	w.moved.Dispose()
	w.resized.Dispose()
}

// Disposed reports whether Dispose was called.
func (w *Widget) Disposed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.disposed
}
