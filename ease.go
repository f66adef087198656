package bramble

import (
	"math"

	"github.com/tanema/gween/ease"
)

// Ease selects an easing curve for a Tween.
type Ease uint8

const (
	EaseLinear Ease = iota
	EaseSineIn
	EaseSineOut
	EaseSineInOut
	EaseQuadIn
	EaseQuadOut
	EaseQuadInOut
	EaseCubicIn
	EaseCubicOut
	EaseCubicInOut
	EaseQuartIn
	EaseQuartOut
	EaseQuartInOut
	EaseQuintIn
	EaseQuintOut
	EaseQuintInOut
	EaseExpoIn
	EaseExpoOut
	EaseExpoInOut
	EaseCircIn
	EaseCircOut
	EaseCircInOut
	EaseBackIn
	EaseBackOut
	EaseBackInOut
	EaseElasticIn
	EaseElasticOut
	EaseElasticInOut
	EaseBounceIn
	EaseBounceOut
	EaseBounceInOut

	easeCount
)

var easeFuncs = [easeCount]ease.TweenFunc{
	EaseLinear:       ease.Linear,
	EaseSineIn:       ease.InSine,
	EaseSineOut:      ease.OutSine,
	EaseSineInOut:    ease.InOutSine,
	EaseQuadIn:       ease.InQuad,
	EaseQuadOut:      ease.OutQuad,
	EaseQuadInOut:    ease.InOutQuad,
	EaseCubicIn:      ease.InCubic,
	EaseCubicOut:     ease.OutCubic,
	EaseCubicInOut:   ease.InOutCubic,
	EaseQuartIn:      ease.InQuart,
	EaseQuartOut:     ease.OutQuart,
	EaseQuartInOut:   ease.InOutQuart,
	EaseQuintIn:      ease.InQuint,
	EaseQuintOut:     ease.OutQuint,
	EaseQuintInOut:   ease.InOutQuint,
	EaseExpoIn:       ease.InExpo,
	EaseExpoOut:      ease.OutExpo,
	EaseExpoInOut:    ease.InOutExpo,
	EaseCircIn:       ease.InCirc,
	EaseCircOut:      ease.OutCirc,
	EaseCircInOut:    ease.InOutCirc,
	EaseBackIn:       ease.InBack,
	EaseBackOut:      ease.OutBack,
	EaseBackInOut:    ease.InOutBack,
	EaseElasticIn:    ease.InElastic,
	EaseElasticOut:   ease.OutElastic,
	EaseElasticInOut: nil, // elasticInOut
	EaseBounceIn:     ease.InBounce,
	EaseBounceOut:    ease.OutBounce,
	EaseBounceInOut:  ease.InOutBounce,
}

var easeNames = [easeCount]string{
	"linear",
	"sine-in", "sine-out", "sine-in-out",
	"quad-in", "quad-out", "quad-in-out",
	"cubic-in", "cubic-out", "cubic-in-out",
	"quart-in", "quart-out", "quart-in-out",
	"quint-in", "quint-out", "quint-in-out",
	"expo-in", "expo-out", "expo-in-out",
	"circ-in", "circ-out", "circ-in-out",
	"back-in", "back-out", "back-in-out",
	"elastic-in", "elastic-out", "elastic-in-out",
	"bounce-in", "bounce-out", "bounce-in-out",
}

// String returns the curve name, e.g. "cubic-in-out".
func (e Ease) String() string {
	if e >= easeCount {
		return "unknown"
	}
	return easeNames[e]
}

// Apply maps progress p in [0, 1] through the curve. Endpoints are exact:
// Apply(0) == 0 and Apply(1) == 1 for every curve. Unknown values behave as
// EaseLinear.
func (e Ease) Apply(p float64) float64 {
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return 1
	}
	if e == EaseElasticInOut {
		return elasticInOut(p)
	}
	if e >= easeCount {
		return p
	}
	return float64(easeFuncs[e](float32(p), 0, 1, 1))
}

// tweenFunc returns the curve in gween's form. Curves gween lacks are
// adapted from Apply.
func (e Ease) tweenFunc() ease.TweenFunc {
	if e < easeCount && easeFuncs[e] != nil {
		return easeFuncs[e]
	}
	return func(t, b, c, d float32) float32 {
		return b + c*float32(e.Apply(float64(t/d)))
	}
}

// elasticPeriod is the angular frequency of the elastic in-out oscillation.
const elasticPeriod = 2 * math.Pi / 4.5

func elasticInOut(p float64) float64 {
	if p < 0.5 {
		return -(math.Pow(2, 20*p-10) * math.Sin((20*p-11.125)*elasticPeriod)) / 2
	}
	return math.Pow(2, -20*p+10)*math.Sin((20*p-11.125)*elasticPeriod)/2 + 1
}
