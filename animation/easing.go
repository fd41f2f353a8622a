package animation

import (
	"fmt"
	"strings"

	"github.com/fogleman/ease"
	"github.com/matt-g-everett/rxanim/util"
)

// EasingFunc maps linear progress in [0, 1] to eased progress.
type EasingFunc func(t float64) float64

// Linear is the identity easing and the default of every Animation.
var Linear EasingFunc = ease.Linear

// EasingType selects a family of curves for EaseInOut.
type EasingType int

const (
	EasingLinear EasingType = iota
	EasingQuadratic
	EasingCubic
	EasingQuartic
	EasingQuintic
	EasingSine
)

// EaseInOut eases t in and out with the curve family typ.
func EaseInOut(t float64, typ EasingType) float64 {
	switch typ {
	case EasingQuadratic:
		return ease.InOutQuad(t)
	case EasingCubic:
		return ease.InOutCubic(t)
	case EasingQuartic:
		return ease.InOutQuart(t)
	case EasingQuintic:
		return ease.InOutQuint(t)
	case EasingSine:
		return ease.InOutSine(t)
	default:
		return t
	}
}

var easings = map[string]EasingFunc{
	"linear":       ease.Linear,
	"inquad":       ease.InQuad,
	"outquad":      ease.OutQuad,
	"inoutquad":    ease.InOutQuad,
	"incubic":      ease.InCubic,
	"outcubic":     ease.OutCubic,
	"inoutcubic":   ease.InOutCubic,
	"inquart":      ease.InQuart,
	"outquart":     ease.OutQuart,
	"inoutquart":   ease.InOutQuart,
	"inquint":      ease.InQuint,
	"outquint":     ease.OutQuint,
	"inoutquint":   ease.InOutQuint,
	"insine":       ease.InSine,
	"outsine":      ease.OutSine,
	"inoutsine":    ease.InOutSine,
	"inexpo":       ease.InExpo,
	"outexpo":      ease.OutExpo,
	"inoutexpo":    ease.InOutExpo,
	"incirc":       ease.InCirc,
	"outcirc":      ease.OutCirc,
	"inoutcirc":    ease.InOutCirc,
	"inelastic":    ease.InElastic,
	"outelastic":   ease.OutElastic,
	"inoutelastic": ease.InOutElastic,
	"inback":       ease.InBack,
	"outback":      ease.OutBack,
	"inoutback":    ease.InOutBack,
	"inbounce":     ease.InBounce,
	"outbounce":    ease.OutBounce,
	"inoutbounce":  ease.InOutBounce,
}

// EasingByName resolves a curve such as "inOutQuad". Names are case-insensitive
// and may use dashes or underscores as separators.
func EasingByName(name string) (EasingFunc, error) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(name))
	if key == "" {
		return Linear, nil
	}
	fn, ok := easings[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEasing, name)
	}
	return fn, nil
}

// LutEasing samples fn into a table of n+1 points and interpolates between
// them.
func LutEasing(n int, fn EasingFunc) EasingFunc {
	if n < 1 {
		n = 1
	}
	lut := util.SampleLut(n+1, fn)
	return func(t float64) float64 {
		return util.LookupLut(lut, t)
	}
}
