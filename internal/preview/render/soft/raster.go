package soft

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/booth-preview/internal/engine/camera"
	"github.com/Faultbox/booth-preview/internal/engine/lighting"
	"github.com/Faultbox/booth-preview/internal/engine/mesh"
	"github.com/Faultbox/booth-preview/internal/preview/scene"
	"github.com/Faultbox/booth-preview/pkg/math"
)

// frame holds per-draw constants.
type frame struct {
	viewProj math.Mat4
	eye      math.Vec3
	lights   lighting.Rig
}

func newFrame(sc *scene.Scene, cam *camera.Camera) frame {
	return frame{
		viewProj: cam.ViewProjection(),
		eye:      cam.Position,
		lights:   sc.Lights(),
	}
}

type drawItem struct {
	node  *scene.Node
	geom  *mesh.Geometry
	world math.Mat4
}

// screenPoint is a vertex after perspective divide, in buffer pixels.
// Y grows downward; Z is NDC depth.
type screenPoint struct {
	x, y, z float32
}

func (s *surface) clear(bg [3]float32) {
	far := math32.Inf(1)
	r, g, b := toByte(bg[0]), toByte(bg[1]), toByte(bg[2])
	pix := s.buf.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = r, g, b, 255
	}
	for i := range s.depth {
		s.depth[i] = far
	}
}

func (s *surface) drawItem(f frame, item drawItem, opaque bool) {
	mat := item.node.Material
	mvp := f.viewProj.Mul(item.world)
	base := mat.Color.Floats()

	var poly [8]math.Vec4
	var ptsBuf [8]screenPoint
	for i := 0; i < item.geom.TriangleCount(); i++ {
		a, b, c := item.geom.Triangle(i)

		clipped := clipNear([]math.Vec4{
			mvp.MulVec4(math.Vec4{a.Position.X, a.Position.Y, a.Position.Z, 1}),
			mvp.MulVec4(math.Vec4{b.Position.X, b.Position.Y, b.Position.Z, 1}),
			mvp.MulVec4(math.Vec4{c.Position.X, c.Position.Y, c.Position.Z, 1}),
		}, poly[:0])
		if len(clipped) < 3 {
			continue
		}

		pts := ptsBuf[:len(clipped)]
		for j, v := range clipped {
			pts[j] = s.toScreen(v)
		}

		// Counter-clockwise in NDC is clockwise once Y points down.
		front := signedArea(pts[0], pts[1], pts[2]) < 0
		if !front && !mat.DoubleSided {
			continue
		}

		n := item.world.TransformDirection(a.Normal.Add(b.Normal).Add(c.Normal)).Normalize()
		if !front {
			n = n.Scale(-1)
		}
		center := item.world.TransformPoint(a.Position.Add(b.Position).Add(c.Position).Scale(1.0 / 3))
		rgb := f.lights.Shade(base, mat.Roughness, n, f.eye.Sub(center))

		for j := 1; j+1 < len(pts); j++ {
			s.fill(pts[0], pts[j], pts[j+1], rgb, mat.Opacity, opaque)
		}
	}
}

// clipNear clips a convex clip-space polygon against the near plane
// (z >= -w), appending to dst.
func clipNear(in []math.Vec4, dst []math.Vec4) []math.Vec4 {
	dist := func(v math.Vec4) float32 { return v[2] + v[3] }

	for i := range in {
		cur := in[i]
		next := in[(i+1)%len(in)]
		dc, dn := dist(cur), dist(next)

		if dc >= 0 {
			dst = append(dst, cur)
		}
		if (dc >= 0) != (dn >= 0) {
			t := dc / (dc - dn)
			var v math.Vec4
			for k := range v {
				v[k] = cur[k] + (next[k]-cur[k])*t
			}
			dst = append(dst, v)
		}
	}
	return dst
}

func (s *surface) toScreen(v math.Vec4) screenPoint {
	w := v[3]
	if w == 0 {
		w = 1e-6
	}
	bw := float32(s.buf.Rect.Dx())
	bh := float32(s.buf.Rect.Dy())
	return screenPoint{
		x: (v[0]/w + 1) * 0.5 * bw,
		y: (1 - v[1]/w) * 0.5 * bh,
		z: v[2] / w,
	}
}

func signedArea(a, b, c screenPoint) float32 {
	return (b.x-a.x)*(c.y-a.y) - (c.x-a.x)*(b.y-a.y)
}

func edge(a, b screenPoint, px, py float32) float32 {
	return (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
}

// fill rasterizes one triangle with depth testing. Opaque triangles write
// depth; translucent ones blend over what is already there.
func (s *surface) fill(a, b, c screenPoint, rgb [3]float32, alpha float32, opaque bool) {
	area := signedArea(a, b, c)
	if area == 0 {
		return
	}
	inv := 1 / area

	bw, bh := s.buf.Rect.Dx(), s.buf.Rect.Dy()
	minX := clampInt(int(math32.Floor(min3(a.x, b.x, c.x))), 0, bw-1)
	maxX := clampInt(int(math32.Ceil(max3(a.x, b.x, c.x))), 0, bw-1)
	minY := clampInt(int(math32.Floor(min3(a.y, b.y, c.y))), 0, bh-1)
	maxY := clampInt(int(math32.Ceil(max3(a.y, b.y, c.y))), 0, bh-1)

	r, g, bl := toByte(rgb[0]), toByte(rgb[1]), toByte(rgb[2])
	pix := s.buf.Pix
	stride := s.buf.Stride

	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5
			l0 := edge(b, c, px, py) * inv
			l1 := edge(c, a, px, py) * inv
			l2 := edge(a, b, px, py) * inv
			if l0 < 0 || l1 < 0 || l2 < 0 {
				continue
			}

			z := l0*a.z + l1*b.z + l2*c.z
			di := y*bw + x
			if z > 1 || z >= s.depth[di] {
				continue
			}

			o := y*stride + x*4
			if opaque {
				s.depth[di] = z
				pix[o], pix[o+1], pix[o+2] = r, g, bl
				continue
			}
			pix[o] = blend(r, pix[o], alpha)
			pix[o+1] = blend(g, pix[o+1], alpha)
			pix[o+2] = blend(bl, pix[o+2], alpha)
		}
	}
}

func blend(src, dst uint8, alpha float32) uint8 {
	return uint8(float32(src)*alpha + float32(dst)*(1-alpha) + 0.5)
}

func toByte(v float32) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}

func clamp01(v float32) float32 {
	return math32.Min(1, math32.Max(0, v))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func min3(a, b, c float32) float32 {
	return math32.Min(a, math32.Min(b, c))
}

func max3(a, b, c float32) float32 {
	return math32.Max(a, math32.Max(b, c))
}
