// Package morph owns the live particle buffer and animates it between the
// shape library's point clouds.
package morph

import (
	"math/rand"
	"time"

	"github.com/Faultbox/morphfield/internal/config"
	"github.com/Faultbox/morphfield/internal/engine/shape"
)

// Controller is the sole writer of the particle position buffer. It tweens
// every scalar component from a captured start snapshot to a target cloud
// under an exponential in-out ease.
//
// State machine: Idle -> Transitioning on an accepted morph request;
// Transitioning -> Idle when the tween completes. While transitioning, only
// an explode request is accepted; it cancels the in-flight tween and starts
// a new one from wherever the buffer currently sits.
type Controller struct {
	cfg     *config.Config
	library *shape.Library

	buffer []float32 // particleCount*3, the displayed positions
	seeds  []float32 // particleCount, stable per-particle jitter in [0,1)

	start  []float32 // tween start snapshot
	target []float32 // tween endpoint, fixed for the tween's lifetime

	transitioning bool
	targetName    string
	current       string
	startedAt     time.Time
	duration      time.Duration

	onShapeChanged func(name string)
	onBufferDirty  func()
}

// NewController creates a controller with cfg.Particles.Count particles.
// The buffer starts as a fresh explode cloud, so the first morph condenses
// the scatter into a shape. Seeds are assigned once here and reused every
// frame by the interaction field.
func NewController(cfg *config.Config, library *shape.Library) *Controller {
	count := cfg.Particles.Count
	if count < 1 {
		count = 1
	}

	c := &Controller{
		cfg:     cfg,
		library: library,
		buffer:  make([]float32, count*3),
		seeds:   make([]float32, count),
		current: shape.ExplodeName,
	}

	copy(c.buffer, library.Explode(count))
	for i := range c.seeds {
		c.seeds[i] = rand.Float32()
	}
	return c
}

// Buffer returns the live particle positions. Read-only for consumers: the
// renderer and interaction field must never write their results back here.
func (c *Controller) Buffer() []float32 {
	return c.buffer
}

// Seeds returns the per-particle jitter values, parallel to the buffer.
func (c *Controller) Seeds() []float32 {
	return c.seeds
}

// Count returns the particle count.
func (c *Controller) Count() int {
	return len(c.seeds)
}

// CurrentShape returns the name of the last completed morph target.
func (c *Controller) CurrentShape() string {
	return c.current
}

// IsTransitioning reports whether a tween is in flight.
func (c *Controller) IsTransitioning() bool {
	return c.transitioning
}

// OnShapeChanged registers the callback fired once per completed morph.
func (c *Controller) OnShapeChanged(fn func(name string)) {
	c.onShapeChanged = fn
}

// OnBufferDirty registers the callback fired whenever buffer contents change
// and the renderer needs to re-upload.
func (c *Controller) OnBufferDirty(fn func()) {
	c.onBufferDirty = fn
}

// RequestMorph starts a tween toward the named cloud. Returns false when the
// request is dropped: a non-explode request while a transition is running, or
// a target that resolves to no cloud of the right length.
//
// The tween lasts morphDuration / animationSpeed, both read here so config
// edits apply to the next request, never to an in-flight tween.
func (c *Controller) RequestMorph(name string, now time.Time) bool {
	if c.transitioning && name != shape.ExplodeName {
		return false
	}

	var target []float32
	if name == shape.ExplodeName {
		// Generated once per request: the tween needs a fixed endpoint.
		target = c.library.Explode(c.Count())
	} else {
		target = c.library.Get(name)
	}
	if len(target) != len(c.buffer) {
		return false
	}

	if cap(c.start) < len(c.buffer) {
		c.start = make([]float32, len(c.buffer))
	}
	c.start = c.start[:len(c.buffer)]
	copy(c.start, c.buffer)

	c.target = target
	c.targetName = name
	c.transitioning = true
	c.startedAt = now

	speed := c.cfg.Particles.AnimationSpeed
	if speed <= 0 {
		speed = 1
	}
	c.duration = time.Duration(float64(c.cfg.Particles.MorphDuration) / float64(speed))
	if c.duration <= 0 {
		c.duration = time.Millisecond
	}
	return true
}

// Update advances the active tween to the given timestamp. All components of
// one frame must pass the same snapshot. Completion flips the state to Idle,
// records the target as current, and fires the shape-changed notification
// exactly once.
func (c *Controller) Update(now time.Time) {
	if !c.transitioning {
		return
	}

	t := float32(now.Sub(c.startedAt)) / float32(c.duration)
	if t >= 1 {
		// The lerp at t=1 leaves float32 rounding residue; the buffer must
		// land bit-exactly on the target cloud.
		t = 1
		copy(c.buffer, c.target)
	} else {
		e := InOutExpo(t)
		for i := range c.buffer {
			c.buffer[i] = c.start[i] + (c.target[i]-c.start[i])*e
		}
	}
	if c.onBufferDirty != nil {
		c.onBufferDirty()
	}

	if t >= 1 {
		c.transitioning = false
		c.current = c.targetName
		if c.onShapeChanged != nil {
			c.onShapeChanged(c.current)
		}
	}
}
