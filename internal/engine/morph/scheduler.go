package morph

import (
	"time"

	"github.com/Faultbox/morphfield/internal/config"
	"github.com/Faultbox/morphfield/internal/engine/shape"
)

// Scheduler autonomously cycles the controller through the shape library in
// insertion order. Two states: disabled and armed. While armed, a tick fires
// a morph once the configured interval has elapsed, unless a transition is
// already running.
type Scheduler struct {
	cfg   *config.Config
	armed bool
	last  time.Time
}

// NewScheduler creates a disarmed scheduler.
func NewScheduler(cfg *config.Config) *Scheduler {
	return &Scheduler{cfg: cfg}
}

// Enabled reports whether the scheduler is armed.
func (s *Scheduler) Enabled() bool {
	return s.armed
}

// SetEnabled arms or disarms the scheduler. Arming resets the timer so the
// first auto-morph happens one full interval later, not immediately.
func (s *Scheduler) SetEnabled(on bool, now time.Time) {
	if on && !s.armed {
		s.last = now
	}
	s.armed = on
}

// MarkMorphed resets the interval timer; called when any morph (manual or
// auto) completes so the next auto-morph waits a full interval from there.
func (s *Scheduler) MarkMorphed(now time.Time) {
	s.last = now
}

// Tick checks the timer and, when due, asks the controller to morph to the
// next shape in cycle order. A no-op while disarmed, while a transition is
// running, or while no shapes are loaded.
func (s *Scheduler) Tick(now time.Time, ctrl *Controller, library *shape.Library) {
	if !s.armed || library.Len() == 0 {
		return
	}
	if now.Sub(s.last) <= s.cfg.Auto.MorphInterval {
		return
	}
	if ctrl.IsTransitioning() {
		return
	}

	names := library.Names()
	next := (library.IndexOf(ctrl.CurrentShape()) + 1) % len(names)
	if ctrl.RequestMorph(names[next], now) {
		s.last = now
	}
}
