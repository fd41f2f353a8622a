package animation

import (
	"math"

	"github.com/matt-g-everett/rxanim/stream"
)

// RelativeCoordinate scales current by next/previous so that it keeps its
// proportional place when a reference extent changes from previous to next.
func RelativeCoordinate(current, previous, next int) int {
	if previous == 0 {
		return current
	}
	return int(math.Round(float64(current) * (float64(next) / float64(previous))))
}

// RelativePoint applies RelativeCoordinate to both axes.
func RelativePoint(current, previous, next Point) Point {
	return Point{
		X: RelativeCoordinate(current.X, previous.X, next.X),
		Y: RelativeCoordinate(current.Y, previous.Y, next.Y),
	}
}

type referenceChange struct {
	previous Point
	next     Point
}

// TrackRelative emits a new position for a dependent object every time
// reference changes, keeping the object's position proportional to the
// reference. The first reference value only seeds the tracker. Positions equal
// to the one reported by current are not emitted.
func TrackRelative(reference stream.Stream[Point], current func() Point) stream.Stream[Point] {
	changes := stream.Skip(stream.WithPrevious(stream.Distinct(reference), func(prev, next Point) referenceChange {
		return referenceChange{previous: prev, next: next}
	}), 1)
	moved := stream.Filter(changes, func(c referenceChange) bool { return c.previous != c.next })
	positions := stream.Map(moved, func(c referenceChange) [2]Point {
		cur := current()
		return [2]Point{cur, RelativePoint(cur, c.previous, c.next)}
	})
	return stream.Map(stream.Filter(positions, func(p [2]Point) bool { return p[0] != p[1] }),
		func(p [2]Point) Point { return p[1] })
}
