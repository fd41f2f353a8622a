package led

import (
	"encoding/binary"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultPixels is the length of the strip when none is configured.
const DefaultPixels = 500

// Frame represents a frame of RGB pixels to display on an ledrx device.
type Frame struct {
	pixels []colorful.Color
}

// NewFrame creates a black Frame of n pixels.
func NewFrame(n int) *Frame {
	f := new(Frame)
	f.pixels = make([]colorful.Color, n)
	return f
}

// Len returns the number of pixels.
func (f *Frame) Len() int {
	return len(f.pixels)
}

// At returns pixel i.
func (f *Frame) At(i int) colorful.Color {
	return f.pixels[i]
}

// Set changes pixel i.
func (f *Frame) Set(i int, c colorful.Color) {
	f.pixels[i] = c
}

// Fill sets every pixel to c.
func (f *Frame) Fill(c colorful.Color) {
	for i := range f.pixels {
		f.pixels[i] = c
	}
}

// InterpolateFrame blends f towards f2 by transitionPoint in [0, 1].
func (f *Frame) InterpolateFrame(f2 *Frame, transitionPoint float64) *Frame {
	out := NewFrame(len(f.pixels))
	for i := 0; i < len(f.pixels) && i < len(f2.pixels); i++ {
		out.pixels[i] = f.pixels[i].BlendHcl(f2.pixels[i], transitionPoint)
	}

	return out
}

// Scale dims every pixel by brightness in [0, 1].
func (f *Frame) Scale(brightness float64) *Frame {
	if brightness >= 1 {
		return f
	}
	black := colorful.Color{}
	out := NewFrame(len(f.pixels))
	for i, p := range f.pixels {
		out.pixels[i] = black.BlendRgb(p, brightness)
	}
	return out
}

// MarshalBinary converts a Frame into binary data: the little-endian pixel
// count followed by one RGB triplet per pixel.
func (f *Frame) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 2, (len(f.pixels)*3)+2)
	binary.LittleEndian.PutUint16(data, uint16(len(f.pixels)))
	for _, p := range f.pixels {
		r, g, b := p.Clamped().RGB255()
		data = append(data, r, g, b)
	}

	return data, nil
}
