// Package camera provides the perspective camera used by the preview renderers.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/booth-preview/pkg/math"
)

// Camera is a perspective camera looking from Position at Target.
type Camera struct {
	Position math.Vec3
	Target   math.Vec3
	Up       math.Vec3

	FovY   float32 // Vertical field of view, degrees
	Aspect float32 // Width / height
	Near   float32
	Far    float32
}

// NewPreview returns the booth preview camera: 50° fov, eye at (0,2,6)
// looking at (0,1,0).
func NewPreview(width, height int) *Camera {
	c := &Camera{
		Position: math.V3(0, 2, 6),
		Target:   math.V3(0, 1, 0),
		Up:       math.V3(0, 1, 0),
		FovY:     50,
		Near:     0.1,
		Far:      1000,
	}
	c.SetViewport(width, height)
	return c
}

// SetViewport updates the aspect ratio. Degenerate sizes fall back to 1:1.
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		c.Aspect = 1
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// ViewMatrix returns the world-to-view transform.
func (c *Camera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Target, c.Up)
}

// ProjectionMatrix returns the view-to-clip transform.
func (c *Camera) ProjectionMatrix() math.Mat4 {
	return math.Perspective(c.FovY*math32.Pi/180, c.Aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *Camera) ViewProjection() math.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}

// Orbit places the camera on a sphere around Target. yaw and pitch are in
// radians; pitch is clamped short of the poles so Up stays valid.
func (c *Camera) Orbit(yaw, pitch, distance float32) {
	const limit = 1.5
	if pitch > limit {
		pitch = limit
	}
	if pitch < -limit {
		pitch = -limit
	}
	sinP, cosP := math32.Sincos(pitch)
	sinY, cosY := math32.Sincos(yaw)
	c.Position = math.V3(
		c.Target.X+distance*cosP*sinY,
		c.Target.Y+distance*sinP,
		c.Target.Z+distance*cosP*cosY,
	)
}

// OrbitAngles returns the yaw, pitch and distance that Orbit would need to
// reproduce the current Position.
func (c *Camera) OrbitAngles() (yaw, pitch, distance float32) {
	d := c.Position.Sub(c.Target)
	distance = d.Length()
	if distance == 0 {
		return 0, 0, 0
	}
	return math32.Atan2(d.X, d.Z), math32.Asin(d.Y / distance), distance
}
