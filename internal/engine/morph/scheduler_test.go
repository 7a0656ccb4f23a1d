package morph

import (
	"testing"
	"time"

	"github.com/Faultbox/morphfield/internal/config"
	"github.com/Faultbox/morphfield/internal/engine/shape"
)

// advance ticks the scheduler and completes any resulting tween.
func advance(s *Scheduler, ctrl *Controller, lib *shape.Library, now time.Time) {
	s.Tick(now, ctrl, lib)
	ctrl.Update(now)
}

func schedulerSetup(t *testing.T) (*config.Config, *shape.Library, *Controller, *Scheduler) {
	t.Helper()
	cfg := config.Default()
	cfg.Particles.Count = 10
	cfg.Particles.MorphDuration = 100 * time.Millisecond
	cfg.Auto.MorphInterval = 5 * time.Second

	lib := shape.NewLibrary()
	lib.Register("queen", constantCloud(10, 1))
	lib.Register("pawn", constantCloud(10, 2))

	ctrl := NewController(cfg, lib)
	return cfg, lib, ctrl, NewScheduler(cfg)
}

func TestSchedulerCyclesInOrder(t *testing.T) {
	_, lib, ctrl, sched := schedulerSetup(t)

	base := time.Unix(100, 0)

	// Start at "queen"
	ctrl.RequestMorph("queen", base)
	ctrl.Update(base.Add(time.Second))
	if ctrl.CurrentShape() != "queen" {
		t.Fatal("setup failed")
	}

	sched.SetEnabled(true, base.Add(time.Second))

	// Walk time forward in one-second ticks across two full intervals.
	last := ctrl.CurrentShape()
	var seen []string
	for i := 1; i <= 14; i++ {
		now := base.Add(time.Second + time.Duration(i)*time.Second)
		advance(sched, ctrl, lib, now)
		if cur := ctrl.CurrentShape(); cur != last {
			seen = append(seen, cur)
			last = cur
		}
	}

	if len(seen) != 2 || seen[0] != "pawn" || seen[1] != "queen" {
		t.Errorf("auto-morph sequence = %v, want [pawn queen]", seen)
	}
	if ctrl.CurrentShape() != "queen" {
		t.Errorf("after two intervals current shape = %q, want queen again", ctrl.CurrentShape())
	}
}

func TestSchedulerDisabledIsNoOp(t *testing.T) {
	_, lib, ctrl, sched := schedulerSetup(t)

	base := time.Unix(0, 0)
	ctrl.RequestMorph("queen", base)
	ctrl.Update(base.Add(time.Second))

	for i := 0; i < 20; i++ {
		advance(sched, ctrl, lib, base.Add(time.Duration(i)*time.Second))
	}
	if ctrl.CurrentShape() != "queen" {
		t.Error("disabled scheduler must never issue morphs")
	}
}

func TestSchedulerWaitsFullIntervalAfterArming(t *testing.T) {
	_, lib, ctrl, sched := schedulerSetup(t)

	base := time.Unix(0, 0)
	ctrl.RequestMorph("queen", base)
	ctrl.Update(base.Add(time.Second))

	// Long after the last morph, arm the scheduler: nothing may fire until a
	// full interval after arming.
	armAt := base.Add(time.Hour)
	sched.SetEnabled(true, armAt)

	advance(sched, ctrl, lib, armAt.Add(time.Second))
	if ctrl.CurrentShape() != "queen" {
		t.Error("auto-morph fired before a full interval elapsed")
	}

	advance(sched, ctrl, lib, armAt.Add(6*time.Second))
	ctrl.Update(armAt.Add(7 * time.Second))
	if ctrl.CurrentShape() != "pawn" {
		t.Errorf("current shape = %q, want pawn after one interval", ctrl.CurrentShape())
	}
}

func TestSchedulerSkipsWhileTransitioning(t *testing.T) {
	cfg, lib, ctrl, sched := schedulerSetup(t)
	cfg.Particles.MorphDuration = time.Hour // tween never finishes in this test

	base := time.Unix(0, 0)
	sched.SetEnabled(true, base)

	ctrl.RequestMorph("queen", base.Add(time.Second))

	// Interval elapses mid-transition; the tick must not issue a request.
	sched.Tick(base.Add(10*time.Second), ctrl, lib)
	if got := ctrl.CurrentShape(); got != shape.ExplodeName {
		t.Errorf("scheduler interfered with a running transition: shape %q", got)
	}
	if !ctrl.IsTransitioning() {
		t.Error("original transition should still be running")
	}
}

func TestSchedulerEmptyLibrary(t *testing.T) {
	cfg := config.Default()
	cfg.Particles.Count = 10
	lib := shape.NewLibrary()
	ctrl := NewController(cfg, lib)
	sched := NewScheduler(cfg)

	base := time.Unix(0, 0)
	sched.SetEnabled(true, base)
	sched.Tick(base.Add(time.Hour), ctrl, lib) // must be a no-op, not a panic

	if ctrl.IsTransitioning() {
		t.Error("tick with no shapes must do nothing")
	}
}
