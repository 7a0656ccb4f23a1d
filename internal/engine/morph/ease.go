package morph

import "github.com/chewxy/math32"

// InOutExpo is an exponential in-out easing curve: fast start, slow settle,
// symmetric around the midpoint. Maps [0,1] to [0,1].
func InOutExpo(t float32) float32 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	case t < 0.5:
		return 0.5 * math32.Pow(2, 20*t-10)
	default:
		return 1 - 0.5*math32.Pow(2, -20*t+10)
	}
}

// OutCubic is a decelerating cubic ease used by the color tween.
func OutCubic(t float32) float32 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	default:
		u := 1 - t
		return 1 - u*u*u
	}
}
