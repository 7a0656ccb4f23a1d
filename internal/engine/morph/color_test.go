package morph

import (
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

func TestColorTweenReachesTarget(t *testing.T) {
	ct := NewColorTween(colorful.Color{R: 0, G: 0, B: 0})
	target := colorful.Color{R: 1, G: 0.5, B: 0.25}

	start := time.Unix(0, 0)
	ct.TweenTo(target, start)

	var updates int
	ct.OnUpdated(func(colorful.Color) { updates++ })

	ct.Update(start.Add(500 * time.Millisecond))
	mid := ct.Current()
	if mid.R <= 0 || mid.R >= 1 {
		t.Errorf("midpoint R = %v, want strictly between 0 and 1", mid.R)
	}

	ct.Update(start.Add(1100 * time.Millisecond))
	got := ct.Current()
	if got != target {
		t.Errorf("final color = %v, want %v", got, target)
	}
	if updates != 2 {
		t.Errorf("updates fired %d times, want once per tick", updates)
	}

	// Once settled, further ticks do nothing.
	ct.Update(start.Add(5 * time.Second))
	if updates != 2 {
		t.Error("settled tween must not keep firing updates")
	}
}

func TestColorTweenRestartMidFlight(t *testing.T) {
	ct := NewColorTween(colorful.Color{R: 0, G: 0, B: 0})
	start := time.Unix(0, 0)

	ct.TweenTo(colorful.Color{R: 1, G: 1, B: 1}, start)
	mid := start.Add(300 * time.Millisecond)
	ct.Update(mid)
	atRedirect := ct.Current()

	// Redirect toward red: the new tween starts from the current color.
	ct.TweenTo(colorful.Color{R: 1, G: 0, B: 0}, mid)
	ct.Update(mid)
	if ct.Current() != atRedirect {
		t.Error("redirect must not jump the color")
	}

	ct.Update(mid.Add(2 * time.Second))
	if got := ct.Current(); got.G != 0 || got.B != 0 || got.R != 1 {
		t.Errorf("final color = %v, want pure red", got)
	}
}
