package camera

import (
	"testing"

	"github.com/Faultbox/booth-preview/pkg/math"
)

func TestNewPreviewAspect(t *testing.T) {
	c := NewPreview(400, 280)
	want := float32(400) / 280
	if c.Aspect != want {
		t.Errorf("aspect = %f, want %f", c.Aspect, want)
	}

	c.SetViewport(0, 280)
	if c.Aspect != 1 {
		t.Errorf("degenerate viewport aspect = %f, want 1", c.Aspect)
	}
}

func TestTargetProjectsToCenter(t *testing.T) {
	c := NewPreview(400, 280)
	clip := c.ViewProjection().MulVec4(math.Vec4{c.Target.X, c.Target.Y, c.Target.Z, 1})
	if clip[3] <= 0 {
		t.Fatalf("target behind camera: w = %f", clip[3])
	}
	x, y := clip[0]/clip[3], clip[1]/clip[3]
	if abs(x) > 1e-4 || abs(y) > 1e-4 {
		t.Errorf("target NDC = (%f, %f), want (0, 0)", x, y)
	}
}

func TestOrbitKeepsDistance(t *testing.T) {
	c := NewPreview(400, 280)
	c.Orbit(0.7, 3, 5) // pitch clamps

	if d := c.Position.Sub(c.Target).Length(); abs(d-5) > 1e-4 {
		t.Errorf("orbit distance = %f, want 5", d)
	}
	if c.Position.Y-c.Target.Y >= 5 {
		t.Error("pitch should be clamped below the pole")
	}
}

func TestOrbitAnglesRoundTrip(t *testing.T) {
	c := NewPreview(400, 280)
	yaw, pitch, dist := c.OrbitAngles()
	start := c.Position

	c.Orbit(yaw, pitch, dist)
	if d := c.Position.Sub(start).Length(); d > 1e-4 {
		t.Errorf("orbit from own angles moved the camera by %f", d)
	}

	c.Orbit(yaw+0.5, pitch, dist)
	if y2, _, d2 := c.OrbitAngles(); abs(y2-(yaw+0.5)) > 1e-4 || abs(d2-dist) > 1e-4 {
		t.Errorf("angles = (%f, %f), want (%f, %f)", y2, d2, yaw+0.5, dist)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
