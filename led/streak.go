package led

import (
	"math"
	"math/rand"

	"github.com/fogleman/ease"
	"github.com/lucasb-eyer/go-colorful"
)

type streakParticle struct {
	colour   colorful.Color
	start    float64
	current  float64
	speed    float64
	length   float64
	gainRate float64
}

// advance moves the particle and reports whether it is still on the strip.
func (p *streakParticle) advance(pixels float64) bool {
	p.current += p.speed
	return p.current <= pixels && p.current >= -p.length
}

// gain fades the streak in over the first half of its travel and out over the
// second. Zero means the streak has burnt out.
func (p *streakParticle) gain() float64 {
	d := math.Abs(p.current-p.start) * p.gainRate
	if d > 2 {
		return 0
	} else if d > 1 {
		d = 2 - d
	}
	return ease.InOutQuad(d)
}

func (p *streakParticle) draw(f *Frame, gain float64) {
	start := int(math.Max(0, math.Ceil(p.current)))
	end := int(math.Min(float64(f.Len()-1), math.Floor(p.current+p.length)))
	for i := start; i <= end; i++ {
		f.pixels[i] = f.pixels[i].BlendHcl(p.colour, gain)
	}
}

// A Streak is a Pattern that sends streaks along the strip that fade in then
// out.
type Streak struct {
	pixels     int
	chance     int32
	backColour colorful.Color
	colour     colorful.Color
	rand       *rand.Rand
	particles  []*streakParticle
}

// NewStreak creates an instance of a Streak object. On every frame a new streak
// starts with a probability of 1/chance.
func NewStreak(pixels int, chance int32, backColour, colour colorful.Color, r *rand.Rand) *Streak {
	s := new(Streak)
	s.pixels = pixels
	s.chance = chance
	s.backColour = backColour
	s.colour = colour
	s.rand = r
	return s
}

// Name identifies the pattern.
func (s *Streak) Name() string {
	return "streak"
}

// Live returns the number of streaks on the strip.
func (s *Streak) Live() int {
	return len(s.particles)
}

// CalculateFrame creates a new Frame instance.
func (s *Streak) CalculateFrame(int64) *Frame {
	f := NewFrame(s.pixels)
	f.Fill(s.backColour)

	live := s.particles[:0]
	for _, p := range s.particles {
		if !p.advance(float64(s.pixels)) {
			continue
		}
		g := p.gain()
		if g <= 0 {
			continue
		}
		p.draw(f, g)
		live = append(live, p)
	}
	s.particles = live

	if s.chance > 0 && s.rand.Int31n(s.chance) == 0 {
		start := s.rand.Float64() * float64(s.pixels)
		s.particles = append(s.particles, &streakParticle{
			colour:   s.colour,
			start:    start,
			current:  start,
			speed:    0.2,
			length:   10,
			gainRate: 0.05,
		})
	}

	return f
}
