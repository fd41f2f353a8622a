package led

import (
	"math"
)

// A GradientTrail is a Pattern that cycles a gradient along an led strip.
type GradientTrail struct {
	pixels      int
	gradient    GradientTable
	trailLength int
	step        float64
	saturation  float64
	luminance   float64
}

// NewGradientTrail creates an instance of a GradientTrail object that moves
// step pixels per frame.
func NewGradientTrail(pixels int, gradient GradientTable, trailLength int, step float64) *GradientTrail {
	g := new(GradientTrail)
	g.pixels = pixels
	g.gradient = gradient
	g.trailLength = trailLength
	g.step = step
	g.saturation = 1.0
	g.luminance = 0.05

	return g
}

// Name identifies the pattern.
func (g *GradientTrail) Name() string {
	return "gradientTrail"
}

// CalculateFrame creates a new Frame instance. The trail position derives from
// the frame number so every frame of the clock renders deterministically.
func (g *GradientTrail) CalculateFrame(frame int64) *Frame {
	f := NewFrame(g.pixels)
	trail := float64(g.trailLength)
	current := math.Mod(float64(frame)*g.step, trail)
	for i := 0; i < g.pixels; i++ {
		t := math.Mod(float64(i+g.pixels)-current, trail) / trail
		if t < 0 {
			t += 1
		}
		f.pixels[i] = g.gradient.GetColor(t, g.saturation, g.luminance)
	}

	return f
}
