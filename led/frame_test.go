package led

import (
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameMarshalBinary(t *testing.T) {
	f := NewFrame(3)
	f.Set(0, colorful.Color{R: 1, G: 0, B: 0})
	f.Set(1, colorful.Color{R: 0, G: 1, B: 0})
	f.Set(2, colorful.Color{R: 2, G: -1, B: 1})

	data, err := f.MarshalBinary()
	require.NoError(t, err)

	require.Len(t, data, 2+3*3)
	assert.Equal(t, uint16(3), binary.LittleEndian.Uint16(data))
	assert.Equal(t, []byte{255, 0, 0, 0, 255, 0, 255, 0, 255}, data[2:])
}

func TestFrameInterpolate(t *testing.T) {
	black, white := NewFrame(2), NewFrame(2)
	white.Fill(colorful.Color{R: 1, G: 1, B: 1})

	assert.True(t, black.InterpolateFrame(white, 0).At(0).AlmostEqualRgb(colorful.Color{}))
	assert.True(t, black.InterpolateFrame(white, 1).At(1).AlmostEqualRgb(colorful.Color{R: 1, G: 1, B: 1}))

	_, _, lMid := black.InterpolateFrame(white, 0.5).At(0).Hcl()
	assert.InDelta(t, 0.5, lMid, 0.01)
}

func TestFrameScale(t *testing.T) {
	f := NewFrame(1)
	f.Fill(colorful.Color{R: 1, G: 0.5, B: 0})

	assert.Same(t, f, f.Scale(1))
	assert.True(t, f.Scale(0.5).At(0).AlmostEqualRgb(colorful.Color{R: 0.5, G: 0.25, B: 0}))
	assert.True(t, f.Scale(0).At(0).AlmostEqualRgb(colorful.Color{}))
}

func TestGradientTrailMoves(t *testing.T) {
	g := NewGradientTrail(10, Rainbow, 10, 1)

	first := g.CalculateFrame(0)
	second := g.CalculateFrame(1)

	require.Equal(t, 10, first.Len())
	assert.True(t, first.At(0).AlmostEqualRgb(second.At(1)), "the trail shifts one pixel per frame")
	assert.True(t, first.At(3).AlmostEqualRgb(g.CalculateFrame(10).At(3)), "the trail wraps")
}

func TestSolid(t *testing.T) {
	red := colorful.Color{R: 1}
	f := NewSolid(4, red).CalculateFrame(0)

	require.Equal(t, 4, f.Len())
	for i := 0; i < f.Len(); i++ {
		assert.Equal(t, red, f.At(i))
	}
}

func TestStreak(t *testing.T) {
	back := colorful.Color{}
	s := NewStreak(100, 1, back, colorful.Color{R: 1}, rand.New(rand.NewSource(3)))

	first := s.CalculateFrame(0)
	for i := 0; i < first.Len(); i++ {
		require.Equal(t, back, first.At(i), "the first streak is drawn from the next frame")
	}
	assert.Equal(t, 1, s.Live())

	lit := 0
	for frame := int64(1); frame < 5; frame++ {
		f := s.CalculateFrame(frame)
		for i := 0; i < f.Len(); i++ {
			if f.At(i) != back {
				lit++
			}
		}
	}
	assert.Greater(t, lit, 0)

	quiet := NewStreak(10, 0, back, colorful.Color{R: 1}, rand.New(rand.NewSource(3)))
	for frame := int64(0); frame < 10; frame++ {
		quiet.CalculateFrame(frame)
	}
	assert.Zero(t, quiet.Live())
}
