package animation

import (
	"github.com/matt-g-everett/rxanim/stream"
)

// Position is one step of an object following a target.
type Position[T any] struct {
	Target          T
	NewPosition     Point
	DesiredPosition Point
}

// Arrived reports whether the step reached the desired position.
func (p Position[T]) Arrived() bool {
	return p.NewPosition == p.DesiredPosition
}

// StepTowards moves current one step of speed towards target. A position
// closer than one step snaps to the target instead of overshooting it.
func StepTowards(current, target, speed int) int {
	if speed < 0 {
		speed = -speed
	}
	if current == target {
		return target
	}
	distance := current - target
	if distance < 0 {
		distance = -distance
	}
	if distance < speed {
		return target
	}
	if current > target {
		return current - speed
	}
	return current + speed
}

// StepPoint applies StepTowards to both axes.
func StepPoint(current, target Point, speed int) Point {
	return Point{
		X: StepTowards(current.X, target.X, speed),
		Y: StepTowards(current.Y, target.Y, speed),
	}
}

type followFrame struct {
	frame  int64
	target Point
	speed  int
}

// Follow moves target one step per frame of clock towards the latest position
// of to, at the latest speed. Each step starts from the position reported by
// current. Updates of to or speed within a frame do not add steps.
//
// The stream never completes; cancel the subscription once the returned
// position has arrived.
func Follow[T any](clock stream.Stream[int64], target T, current func(T) Point, to stream.Stream[Point], speed stream.Stream[int]) stream.Stream[Position[T]] {
	frames := stream.CombineLatest3(clock, to, speed, func(f int64, p Point, s int) followFrame {
		return followFrame{frame: f, target: p, speed: s}
	})
	perFrame := stream.DistinctBy(frames, func(f followFrame) int64 { return f.frame })
	return stream.Map(perFrame, func(f followFrame) Position[T] {
		return Position[T]{
			Target:          target,
			DesiredPosition: f.target,
			NewPosition:     StepPoint(current(target), f.target, f.speed),
		}
	})
}
