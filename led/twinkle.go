package led

import (
	"math/rand"

	"github.com/fogleman/ease"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/rxanim/util"
)

type particle struct {
	lut     []float64
	current int
	running bool
	peak    float64
}

func (p *particle) scintillate(r *rand.Rand, lut []float64) {
	if p.running {
		return
	}
	p.running = true
	p.current = 0
	p.lut = lut
	p.peak = util.RandomBetween(r, 0.4, 0.7)
}

func (p *particle) increment() {
	if !p.running {
		return
	}
	p.current++
	if p.current >= len(p.lut) {
		p.current = 0
		p.running = false
	}
}

func (p *particle) colour(back colorful.Color) colorful.Color {
	if !p.running {
		return back
	}
	gain := p.lut[p.current]
	h, c, l := back.Hcl()

	// Calculate the difference to the max luminance we want
	lumDiff := p.peak - l

	return colorful.Hcl(h, c, l+(lumDiff*gain))
}

// A Twinkle is a Pattern that makes random pixels scintillate.
type Twinkle struct {
	backColour colorful.Color
	chance     int32
	rand       *rand.Rand
	luts       [][]float64
	particles  []particle
}

// NewTwinkle creates an instance of a Twinkle object. On every frame each
// pixel starts to scintillate with a probability of 1/chance.
func NewTwinkle(pixels int, chance int32, backColour colorful.Color, r *rand.Rand) *Twinkle {
	t := new(Twinkle)
	t.backColour = backColour
	t.chance = chance
	t.rand = r
	t.particles = make([]particle, pixels)

	// Scintillations last between 12 and 46 frames
	for length := 12; length <= 46; length += 2 {
		t.luts = append(t.luts, util.GenerateLut(length, ease.InOutQuad))
	}

	return t
}

// Name identifies the pattern.
func (t *Twinkle) Name() string {
	return "twinkle"
}

// CalculateFrame creates a new Frame instance.
func (t *Twinkle) CalculateFrame(int64) *Frame {
	f := NewFrame(len(t.particles))
	for i := range t.particles {
		p := &t.particles[i]
		if t.chance > 0 && t.rand.Int31n(t.chance) == 0 {
			p.scintillate(t.rand, t.luts[t.rand.Intn(len(t.luts))])
		}

		f.pixels[i] = p.colour(t.backColour)

		// Always increment, it'll only affect those pixels that are scintillating
		p.increment()
	}

	return f
}
