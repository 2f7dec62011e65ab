// Package camera provides the orbit camera used to inspect the sphere.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/golden-sphere/pkg/math"
)

// OrbitCamera orbits the origin on a sphere of radius Distance.
type OrbitCamera struct {
	Distance float32 // Distance from the origin
	Pitch    float32 // Vertical angle, radians
	Yaw      float32 // Horizontal angle, radians

	MinDistance float32
	MaxDistance float32
	MaxPitch    float32 // Pitch is clamped to [-MaxPitch, MaxPitch]

	DragSensitivity float32
	ZoomSensitivity float32

	FovY      float32 // Vertical field of view, radians
	Near, Far float32
}

// NewOrbitCamera creates a camera framing the unit sphere.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        3.5,
		Pitch:           0.35,
		MinDistance:     1.5,
		MaxDistance:     20,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		FovY:            math.Radians(45),
		Near:            0.1,
		Far:             100,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	sinP, cosP := math32.Sincos(c.Pitch)
	sinY, cosY := math32.Sincos(c.Yaw)
	return math.Vec3{
		X: c.Distance * cosP * sinY,
		Y: c.Distance * sinP,
		Z: c.Distance * cosP * cosY,
	}
}

// ViewMatrix returns the view matrix looking at the origin.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), math.Vec3{}, math.Vec3{Y: 1})
}

// ProjectionMatrix returns the perspective projection for a viewport.
func (c *OrbitCamera) ProjectionMatrix(width, height int) math.Mat4 {
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	return math.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// HandleDrag updates rotation based on mouse drag delta in pixels.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch += deltaY * c.DragSensitivity
	c.Pitch = min(max(c.Pitch, -c.MaxPitch), c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = min(max(c.Distance, c.MinDistance), c.MaxDistance)
}
