package animation

import (
	"slices"

	"github.com/matt-g-everett/rxanim/stream"
)

// DefaultValueKey names the value of a single-value animation.
const DefaultValueKey = "Value"

// Rectangle value keys.
const (
	KeyLeft   = "Left"
	KeyTop    = "Top"
	KeyWidth  = "Width"
	KeyHeight = "Height"
)

// Value is a named scalar that can be animated.
type Value struct {
	Key   string
	Value float64
}

// Progress is the state of one animated value at one frame.
type Progress struct {
	Key      string
	Progress float64
	From     float64
	To       float64
}

// Current interpolates between From and To.
func (p Progress) Current() float64 {
	return p.From + (p.To-p.From)*p.Progress
}

// Join pairs the values of from and to that share a key, in the order of from.
// Keys present in only one of the sets are dropped.
func Join(progress float64, from, to []Value) []Progress {
	targets := make(map[string]float64, len(to))
	for _, v := range to {
		targets[v.Key] = v.Value
	}

	out := make([]Progress, 0, len(from))
	for _, v := range from {
		target, ok := targets[v.Key]
		if !ok {
			continue
		}
		out = append(out, Progress{Key: v.Key, Progress: progress, From: v.Value, To: target})
	}
	return out
}

// Combine joins the latest from and to values on every progress value. A new
// from or to set recomputes the result with the latest progress, unless it is
// equal to the set it replaces.
func Combine(progress stream.Stream[float64], from, to stream.Stream[[]Value]) stream.Stream[[]Progress] {
	eq := func(a, b []Value) bool { return slices.Equal(a, b) }
	return stream.CombineLatest3(progress, stream.DistinctFunc(from, eq), stream.DistinctFunc(to, eq), Join)
}

// CombineValue animates a single value named key, or DefaultValueKey if key is
// empty.
func CombineValue(progress, from, to stream.Stream[float64], key string) stream.Stream[[]Progress] {
	if key == "" {
		key = DefaultValueKey
	}
	single := func(v float64) []Value {
		return []Value{{Key: key, Value: v}}
	}
	return Combine(progress, stream.Map(from, single), stream.Map(to, single))
}

// Combine joins from and to on the progress of a.
func (a *Animation) Combine(from, to stream.Stream[[]Value]) stream.Stream[[]Progress] {
	return Combine(a.Progress(), from, to)
}

// CombineValue animates a single value on the progress of a.
func (a *Animation) CombineValue(from, to stream.Stream[float64], key string) stream.Stream[[]Progress] {
	return CombineValue(a.Progress(), from, to, key)
}

// RectangleValues splits r into values keyed by KeyLeft, KeyTop, KeyWidth and
// KeyHeight.
func RectangleValues(r Rectangle) []Value {
	return []Value{
		{Key: KeyLeft, Value: float64(r.Left)},
		{Key: KeyTop, Value: float64(r.Top)},
		{Key: KeyWidth, Value: float64(r.Width)},
		{Key: KeyHeight, Value: float64(r.Height)},
	}
}

// RectangleFromProgress assembles the current values of a rectangle. It
// reports false unless every rectangle key is present.
func RectangleFromProgress(values []Progress) (Rectangle, bool) {
	var (
		r    Rectangle
		seen int
	)
	for _, p := range values {
		v := int(p.Current())
		switch p.Key {
		case KeyLeft:
			r.Left = v
		case KeyTop:
			r.Top = v
		case KeyWidth:
			r.Width = v
		case KeyHeight:
			r.Height = v
		default:
			continue
		}
		seen++
	}
	return r, seen == 4
}
