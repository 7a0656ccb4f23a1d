package morph

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// colorTweenDuration is fixed; the color tween is independent of morph timing
// and may run concurrently with a shape transition.
const colorTweenDuration = time.Second

// ColorTween animates the particle tint toward a target color over one second
// with a decelerating ease.
type ColorTween struct {
	current colorful.Color
	start   colorful.Color
	target  colorful.Color

	active    bool
	startedAt time.Time

	onUpdated func(c colorful.Color)
}

// NewColorTween creates a tween resting at the initial color.
func NewColorTween(initial colorful.Color) *ColorTween {
	return &ColorTween{current: initial}
}

// OnUpdated registers the callback fired whenever the current color changes.
func (ct *ColorTween) OnUpdated(fn func(c colorful.Color)) {
	ct.onUpdated = fn
}

// Current returns the color as of the last update.
func (ct *ColorTween) Current() colorful.Color {
	return ct.current
}

// TweenTo starts animating from the current color toward target. A new call
// mid-tween restarts from wherever the color currently sits.
func (ct *ColorTween) TweenTo(target colorful.Color, now time.Time) {
	ct.start = ct.current
	ct.target = target
	ct.startedAt = now
	ct.active = true
}

// Update advances the tween to the given timestamp.
func (ct *ColorTween) Update(now time.Time) {
	if !ct.active {
		return
	}

	t := float32(now.Sub(ct.startedAt)) / float32(colorTweenDuration)
	if t > 1 {
		t = 1
	}
	e := OutCubic(t)

	ct.current = ct.start.BlendRgb(ct.target, float64(e))
	if ct.onUpdated != nil {
		ct.onUpdated(ct.current)
	}

	if t >= 1 {
		ct.active = false
	}
}
