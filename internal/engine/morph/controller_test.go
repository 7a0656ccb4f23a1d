package morph

import (
	"testing"
	"time"

	"github.com/Faultbox/morphfield/internal/config"
	"github.com/Faultbox/morphfield/internal/engine/shape"
)

func testSetup(count int) (*config.Config, *shape.Library, *Controller) {
	cfg := config.Default()
	cfg.Particles.Count = count
	cfg.Particles.MorphDuration = time.Second
	cfg.Particles.AnimationSpeed = 1

	lib := shape.NewLibrary()
	ctrl := NewController(cfg, lib)
	return cfg, lib, ctrl
}

// constantCloud returns a cloud with every component set to v.
func constantCloud(count int, v float32) []float32 {
	cloud := make([]float32, count*3)
	for i := range cloud {
		cloud[i] = v
	}
	return cloud
}

func TestNewControllerBufferAndSeeds(t *testing.T) {
	_, _, ctrl := testSetup(100)

	if len(ctrl.Buffer()) != 300 {
		t.Fatalf("buffer length = %d, want 300", len(ctrl.Buffer()))
	}
	if len(ctrl.Seeds()) != 100 {
		t.Fatalf("seeds length = %d, want 100", len(ctrl.Seeds()))
	}
	for i, s := range ctrl.Seeds() {
		if s < 0 || s >= 1 {
			t.Fatalf("seed %d = %v, want [0,1)", i, s)
		}
	}
	if ctrl.IsTransitioning() {
		t.Error("fresh controller should be idle")
	}
	if ctrl.CurrentShape() != shape.ExplodeName {
		t.Errorf("initial shape = %q, want explode scatter", ctrl.CurrentShape())
	}
}

func TestRequestMorphMissingShape(t *testing.T) {
	_, _, ctrl := testSetup(10)
	now := time.Unix(0, 0)

	if ctrl.RequestMorph("ghost", now) {
		t.Error("morph to unregistered shape must be dropped")
	}
	if ctrl.IsTransitioning() {
		t.Error("dropped request must leave the controller idle")
	}
}

func TestMorphReachesTarget(t *testing.T) {
	_, lib, ctrl := testSetup(10)
	lib.Register("cube", constantCloud(10, 7))

	start := time.Unix(0, 0)
	if !ctrl.RequestMorph("cube", start) {
		t.Fatal("request dropped")
	}
	if !ctrl.IsTransitioning() {
		t.Fatal("controller should be transitioning")
	}

	var changed []string
	ctrl.OnShapeChanged(func(name string) { changed = append(changed, name) })

	dirty := 0
	ctrl.OnBufferDirty(func() { dirty++ })

	ctrl.Update(start.Add(500 * time.Millisecond))
	if !ctrl.IsTransitioning() {
		t.Fatal("tween should still be running at the midpoint")
	}
	ctrl.Update(start.Add(1100 * time.Millisecond))

	if ctrl.IsTransitioning() {
		t.Error("tween should be complete")
	}
	if ctrl.CurrentShape() != "cube" {
		t.Errorf("current shape = %q, want cube", ctrl.CurrentShape())
	}
	for i, v := range ctrl.Buffer() {
		if v != 7 {
			t.Fatalf("buffer[%d] = %v, want 7", i, v)
		}
	}
	if len(changed) != 1 || changed[0] != "cube" {
		t.Errorf("shape-changed notifications = %v, want exactly [cube]", changed)
	}
	if dirty != 2 {
		t.Errorf("buffer-dirty fired %d times, want once per update tick", dirty)
	}
}

func TestMorphLandsExactlyOnTarget(t *testing.T) {
	_, lib, ctrl := testSetup(25)
	// 0.1 -> 7 accumulates rounding residue under a plain lerp at t=1.
	lib.Register("near", constantCloud(25, 0.1))
	lib.Register("far", constantCloud(25, 7))

	start := time.Unix(0, 0)
	ctrl.RequestMorph("near", start)
	ctrl.Update(start.Add(2 * time.Second))
	ctrl.RequestMorph("far", start.Add(2*time.Second))
	ctrl.Update(start.Add(4 * time.Second))

	target := lib.Get("far")
	for i, v := range ctrl.Buffer() {
		if v != target[i] {
			t.Fatalf("buffer[%d] = %v, want exactly %v", i, v, target[i])
		}
	}
}

func TestConcurrentMorphDropped(t *testing.T) {
	_, lib, ctrl := testSetup(10)
	lib.Register("first", constantCloud(10, 1))
	lib.Register("second", constantCloud(10, 2))

	start := time.Unix(0, 0)
	ctrl.RequestMorph("first", start)
	ctrl.Update(start.Add(200 * time.Millisecond))

	if ctrl.RequestMorph("second", start.Add(200*time.Millisecond)) {
		t.Error("non-explode request mid-transition must be dropped, not queued")
	}

	ctrl.Update(start.Add(2 * time.Second))
	if ctrl.CurrentShape() != "first" {
		t.Errorf("current shape = %q, want first (second was dropped)", ctrl.CurrentShape())
	}
	for i, v := range ctrl.Buffer() {
		if v != 1 {
			t.Fatalf("buffer[%d] = %v, want the first target's value", i, v)
		}
	}
}

func TestExplodeOverridesTransition(t *testing.T) {
	_, lib, ctrl := testSetup(50)
	lib.Register("x", constantCloud(50, 1000))

	start := time.Unix(0, 0)
	ctrl.RequestMorph("x", start)
	mid := start.Add(300 * time.Millisecond)
	ctrl.Update(mid)

	snapshot := append([]float32(nil), ctrl.Buffer()...)

	if !ctrl.RequestMorph(shape.ExplodeName, mid) {
		t.Fatal("explode must override an in-flight transition")
	}

	// Immediately after the override the buffer sits exactly where it was:
	// no snap back toward x, no teleport.
	ctrl.Update(mid)
	for i, v := range ctrl.Buffer() {
		if v != snapshot[i] {
			t.Fatalf("buffer[%d] moved on redirect: %v != %v", i, v, snapshot[i])
		}
	}

	ctrl.Update(mid.Add(2 * time.Second))
	if ctrl.IsTransitioning() {
		t.Fatal("explode tween should be complete")
	}
	if ctrl.CurrentShape() != shape.ExplodeName {
		t.Errorf("current shape = %q, want explode", ctrl.CurrentShape())
	}
	for i, v := range ctrl.Buffer() {
		if v < -shape.ExplodeExtent || v > shape.ExplodeExtent {
			t.Fatalf("buffer[%d] = %v outside the explode cube", i, v)
		}
		if v == 1000 {
			t.Fatalf("buffer[%d] still at the cancelled target", i)
		}
	}
}

func TestIdempotentRequest(t *testing.T) {
	_, lib, ctrl := testSetup(10)
	lib.Register("only", constantCloud(10, 3))

	start := time.Unix(0, 0)
	ctrl.RequestMorph("only", start)
	ctrl.Update(start.Add(2 * time.Second))

	var notified int
	ctrl.OnShapeChanged(func(string) { notified++ })

	// Re-requesting the current shape while idle runs a start==end tween.
	again := start.Add(3 * time.Second)
	if !ctrl.RequestMorph("only", again) {
		t.Fatal("idle re-request of the current shape must be accepted")
	}
	ctrl.Update(again.Add(500 * time.Millisecond))
	for i, v := range ctrl.Buffer() {
		if v != 3 {
			t.Fatalf("buffer[%d] = %v changed during a no-op tween", i, v)
		}
	}
	ctrl.Update(again.Add(2 * time.Second))

	if notified != 1 {
		t.Errorf("completion fired %d times, want exactly once", notified)
	}
}

func TestAnimationSpeedDividesDuration(t *testing.T) {
	cfg, lib, ctrl := testSetup(10)
	lib.Register("s", constantCloud(10, 5))
	cfg.Particles.AnimationSpeed = 4 // 1s / 4 = 250ms

	start := time.Unix(0, 0)
	ctrl.RequestMorph("s", start)
	ctrl.Update(start.Add(300 * time.Millisecond))

	if ctrl.IsTransitioning() {
		t.Error("tween at 4x speed should finish within 250ms")
	}
}

func TestEaseBoundaries(t *testing.T) {
	if InOutExpo(0) != 0 {
		t.Error("InOutExpo(0) != 0")
	}
	if InOutExpo(1) != 1 {
		t.Error("InOutExpo(1) != 1")
	}
	if mid := InOutExpo(0.5); mid < 0.499 || mid > 0.501 {
		t.Errorf("InOutExpo(0.5) = %v, want 0.5", mid)
	}
	// Monotonic over a coarse sweep
	prev := float32(0)
	for i := 1; i <= 20; i++ {
		v := InOutExpo(float32(i) / 20)
		if v < prev {
			t.Fatalf("InOutExpo not monotonic at %d/20", i)
		}
		prev = v
	}

	if OutCubic(0) != 0 || OutCubic(1) != 1 {
		t.Error("OutCubic boundary values wrong")
	}
}
