package util

import (
	"math"
	"math/rand"
)

// RandomBetween returns a random value in [min, max).
func RandomBetween(r *rand.Rand, min float64, max float64) float64 {
	return r.Float64()*(max-min) + min
}

// GenerateLut builds a table that rises through curve over the first half and
// falls back through it over the second half.
func GenerateLut(length int, curve func(float64) float64) []float64 {
	increment := 1.0 / float64(length/2)
	lut := make([]float64, length)
	for i, j := 0, length-1; i < length/2; i, j = i+1, j-1 {
		value := float64(i) * increment
		lut[i] = curve(value)
		lut[j] = curve(value)
	}
	return lut
}

// SampleLut samples curve at n evenly spaced points across [0, 1].
func SampleLut(n int, curve func(float64) float64) []float64 {
	if n < 2 {
		return []float64{curve(0), curve(1)}
	}
	lut := make([]float64, n)
	for i := range lut {
		lut[i] = curve(float64(i) / float64(n-1))
	}
	return lut
}

// LookupLut linearly interpolates a table produced by SampleLut at t.
func LookupLut(lut []float64, t float64) float64 {
	if t <= 0 {
		return lut[0]
	}
	last := len(lut) - 1
	if t >= 1 {
		return lut[last]
	}
	pos := t * float64(last)
	i := int(math.Floor(pos))
	frac := pos - float64(i)
	return lut[i] + (lut[i+1]-lut[i])*frac
}
