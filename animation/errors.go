package animation

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is matched by every RangeError.
	ErrOutOfRange = errors.New("value out of range")

	// ErrUnknownEasing is returned when an easing name cannot be resolved.
	ErrUnknownEasing = errors.New("unknown easing function")
)

// RangeError reports an argument outside [Min, Max].
type RangeError struct {
	Name  string
	Value int
	Min   int
	Max   int
	Hint  string
}

func (e *RangeError) Error() string {
	msg := fmt.Sprintf("%s %d outside [%d, %d]", e.Name, e.Value, e.Min, e.Max)
	if e.Hint != "" {
		msg += ": " + e.Hint
	}
	return msg
}

// Is reports whether target is ErrOutOfRange.
func (e *RangeError) Is(target error) bool {
	return target == ErrOutOfRange
}
