// Package lighting evaluates the preview's lighting model: one ambient term
// plus a directional sun with a Blinn-Phong highlight. The GLSL fragment
// shader computes the same model on the GPU.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/booth-preview/pkg/math"
)

// Highlight strength and exponent for fully glossy materials.
const (
	SpecularStrength = 0.5
	SpecularPower    = 32
)

// Rig is a resolved light setup: colors are premultiplied by intensity and
// Direction points from the surface towards the sun.
type Rig struct {
	Ambient   [3]float32
	Sun       [3]float32
	Direction math.Vec3
}

// NewRig scales the light colors by their intensities.
func NewRig(ambient [3]float32, ambientIntensity float32, sun [3]float32, sunIntensity float32, sunPos math.Vec3) Rig {
	r := Rig{Direction: sunPos.Normalize()}
	for i := range r.Ambient {
		r.Ambient[i] = ambient[i] * ambientIntensity
		r.Sun[i] = sun[i] * sunIntensity
	}
	return r
}

// Shade lights a surface of color base. normal must be unit length; toEye
// is the direction from the surface to the viewer. The highlight scales
// with 1 - roughness.
func (r Rig) Shade(base [3]float32, roughness float32, normal, toEye math.Vec3) [3]float32 {
	diffuse := math32.Max(0, normal.Dot(r.Direction))

	spec := float32(0)
	if gloss := 1 - roughness; gloss > 0 && diffuse > 0 {
		half := r.Direction.Add(toEye.Normalize()).Normalize()
		spec = gloss * SpecularStrength * math32.Pow(math32.Max(0, normal.Dot(half)), SpecularPower)
	}

	var out [3]float32
	for i := range out {
		out[i] = clamp01(base[i]*(r.Ambient[i]+r.Sun[i]*diffuse) + r.Sun[i]*spec)
	}
	return out
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
