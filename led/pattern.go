// Package led renders animations onto an LED strip and streams the frames to
// an ledrx device over MQTT.
package led

import (
	"github.com/lucasb-eyer/go-colorful"
)

// A Pattern renders one frame of an LED animation per clock frame.
type Pattern interface {
	Name() string
	CalculateFrame(frame int64) *Frame
}

// Solid lights every pixel with the same colour.
type Solid struct {
	pixels int
	colour colorful.Color
}

// NewSolid creates an instance of a Solid pattern.
func NewSolid(pixels int, colour colorful.Color) *Solid {
	s := new(Solid)
	s.pixels = pixels
	s.colour = colour
	return s
}

// Name identifies the pattern.
func (s *Solid) Name() string {
	return "solid"
}

// CalculateFrame creates a new Frame instance.
func (s *Solid) CalculateFrame(int64) *Frame {
	f := NewFrame(s.pixels)
	f.Fill(s.colour)
	return f
}
