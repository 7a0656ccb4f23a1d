// Package camera provides the orbit camera for the particle experience.
package camera

import (
	"time"

	"github.com/chewxy/math32"

	"github.com/Faultbox/morphfield/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	// Center point to orbit around
	CenterX, CenterY, CenterZ float32

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	// Idle rotation around the cloud
	AutoRotate      bool
	AutoRotateSpeed float32 // radians per second
}

// NewOrbitCamera creates an orbit camera framing the particle cloud head-on.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        600.0,
		RotationX:       0.0,
		RotationY:       0.0,
		MinDistance:     150.0,
		MaxDistance:     2000.0,
		MinPitch:        -1.3,
		MaxPitch:        1.3,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		AutoRotateSpeed: 0.15,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * math32.Cos(c.RotationX) * math32.Sin(c.RotationY)
	y := c.Distance * math32.Sin(c.RotationX)
	z := c.Distance * math32.Cos(c.RotationX) * math32.Cos(c.RotationY)

	return math.Vec3{
		X: c.CenterX + x,
		Y: c.CenterY + y,
		Z: c.CenterZ + z,
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	pos := c.Position()
	center := math.Vec3{X: c.CenterX, Y: c.CenterY, Z: c.CenterZ}
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(pos, center, up)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity

	if c.RotationX < c.MinPitch {
		c.RotationX = c.MinPitch
	}
	if c.RotationX > c.MaxPitch {
		c.RotationX = c.MaxPitch
	}
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// Advance progresses the idle auto-rotation by one frame's delta time.
func (c *OrbitCamera) Advance(dt time.Duration) {
	if !c.AutoRotate {
		return
	}
	c.RotationY += c.AutoRotateSpeed * float32(dt.Seconds())
}
