// Package mesh tessellates primitive shapes into indexed triangle lists.
//
// Geometry carries positions and normals only. Color lives on the material
// so that recoloring never touches vertex data.
package mesh

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/booth-preview/pkg/math"
)

// Kind identifies a primitive shape.
type Kind int

const (
	KindBox Kind = iota
	KindCylinder
	KindSphere
	KindPlane
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindBox:
		return "box"
	case KindCylinder:
		return "cylinder"
	case KindSphere:
		return "sphere"
	case KindPlane:
		return "plane"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Shape describes a primitive by kind and dimensions. Build tessellates it.
type Shape struct {
	Kind Kind

	// Box and plane extents. Plane uses Width x Height in its local XY plane.
	Width, Height, Depth float32

	// Cylinder radii; Height is shared with the box fields.
	RadiusTop, RadiusBottom float32

	// Sphere radius.
	Radius float32

	// Radial segments (cylinder, sphere) and sphere rings.
	Segments int
	Rings    int
}

// Box returns a box centered on the origin.
func Box(width, height, depth float32) Shape {
	return Shape{Kind: KindBox, Width: width, Height: height, Depth: depth}
}

// Cylinder returns a Y-aligned cylinder (or frustum) centered on the origin.
func Cylinder(radiusTop, radiusBottom, height float32, segments int) Shape {
	return Shape{Kind: KindCylinder, RadiusTop: radiusTop, RadiusBottom: radiusBottom, Height: height, Segments: segments}
}

// Sphere returns a UV sphere centered on the origin.
func Sphere(radius float32, segments, rings int) Shape {
	return Shape{Kind: KindSphere, Radius: radius, Segments: segments, Rings: rings}
}

// Plane returns a plane in local XY facing +Z.
func Plane(width, height float32) Shape {
	return Shape{Kind: KindPlane, Width: width, Height: height}
}

// Vertex is a single mesh vertex.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
}

// Geometry is an indexed triangle list with counter-clockwise front faces.
type Geometry struct {
	Vertices []Vertex
	Indices  []uint32
}

// TriangleCount returns the number of triangles.
func (g *Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}

// Triangle returns the three vertices of triangle i.
func (g *Geometry) Triangle(i int) (Vertex, Vertex, Vertex) {
	return g.Vertices[g.Indices[i*3]], g.Vertices[g.Indices[i*3+1]], g.Vertices[g.Indices[i*3+2]]
}

// Build tessellates the shape.
func (s Shape) Build() *Geometry {
	switch s.Kind {
	case KindBox:
		return buildBox(s.Width, s.Height, s.Depth)
	case KindCylinder:
		return buildCylinder(s.RadiusTop, s.RadiusBottom, s.Height, s.Segments)
	case KindSphere:
		return buildSphere(s.Radius, s.Segments, s.Rings)
	case KindPlane:
		return buildPlane(s.Width, s.Height)
	default:
		return &Geometry{}
	}
}

// addQuad appends a quad centered at c spanning ±u and ±v, facing n.
// u x v must point along n for the winding to be counter-clockwise.
func (g *Geometry) addQuad(c, u, v, n math.Vec3) {
	base := uint32(len(g.Vertices))
	g.Vertices = append(g.Vertices,
		Vertex{Position: c.Sub(u).Sub(v), Normal: n},
		Vertex{Position: c.Add(u).Sub(v), Normal: n},
		Vertex{Position: c.Add(u).Add(v), Normal: n},
		Vertex{Position: c.Sub(u).Add(v), Normal: n},
	)
	g.Indices = append(g.Indices, base, base+1, base+2, base, base+2, base+3)
}

func mulComponents(a, b math.Vec3) math.Vec3 {
	return math.Vec3{X: a.X * b.X, Y: a.Y * b.Y, Z: a.Z * b.Z}
}

func buildBox(width, height, depth float32) *Geometry {
	half := math.V3(width/2, height/2, depth/2)
	faces := [6]struct{ n, u, v math.Vec3 }{
		{math.V3(1, 0, 0), math.V3(0, 0, -1), math.V3(0, 1, 0)},
		{math.V3(-1, 0, 0), math.V3(0, 0, 1), math.V3(0, 1, 0)},
		{math.V3(0, 1, 0), math.V3(1, 0, 0), math.V3(0, 0, -1)},
		{math.V3(0, -1, 0), math.V3(1, 0, 0), math.V3(0, 0, 1)},
		{math.V3(0, 0, 1), math.V3(1, 0, 0), math.V3(0, 1, 0)},
		{math.V3(0, 0, -1), math.V3(-1, 0, 0), math.V3(0, 1, 0)},
	}

	g := &Geometry{
		Vertices: make([]Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}
	for _, f := range faces {
		g.addQuad(mulComponents(f.n, half), mulComponents(f.u, half), mulComponents(f.v, half), f.n)
	}
	return g
}

func buildPlane(width, height float32) *Geometry {
	g := &Geometry{}
	g.addQuad(math.Vec3{}, math.V3(width/2, 0, 0), math.V3(0, height/2, 0), math.V3(0, 0, 1))
	return g
}

func buildCylinder(radiusTop, radiusBottom, height float32, segments int) *Geometry {
	if segments < 3 {
		segments = 3
	}
	hh := height / 2
	slope := float32(0)
	if height != 0 {
		slope = (radiusBottom - radiusTop) / height
	}

	g := &Geometry{}

	// Side ring: one vertex pair per segment boundary, seam duplicated.
	for i := 0; i <= segments; i++ {
		theta := float32(i) / float32(segments) * 2 * math32.Pi
		sin, cos := math32.Sincos(theta)
		n := math.V3(sin, slope, cos).Normalize()
		g.Vertices = append(g.Vertices,
			Vertex{Position: math.V3(radiusBottom*sin, -hh, radiusBottom*cos), Normal: n},
			Vertex{Position: math.V3(radiusTop*sin, hh, radiusTop*cos), Normal: n},
		)
	}
	for i := 0; i < segments; i++ {
		b0 := uint32(i * 2)
		t0 := b0 + 1
		b1 := b0 + 2
		t1 := b0 + 3
		g.Indices = append(g.Indices, b0, b1, t1, b0, t1, t0)
	}

	g.addCap(radiusTop, hh, segments, true)
	g.addCap(radiusBottom, -hh, segments, false)
	return g
}

func (g *Geometry) addCap(radius, y float32, segments int, top bool) {
	if radius <= 0 {
		return
	}
	n := math.V3(0, 1, 0)
	if !top {
		n = math.V3(0, -1, 0)
	}

	center := uint32(len(g.Vertices))
	g.Vertices = append(g.Vertices, Vertex{Position: math.V3(0, y, 0), Normal: n})
	for i := 0; i <= segments; i++ {
		theta := float32(i) / float32(segments) * 2 * math32.Pi
		sin, cos := math32.Sincos(theta)
		g.Vertices = append(g.Vertices, Vertex{Position: math.V3(radius*sin, y, radius*cos), Normal: n})
	}
	for i := 0; i < segments; i++ {
		a := center + 1 + uint32(i)
		b := a + 1
		if top {
			g.Indices = append(g.Indices, center, a, b)
		} else {
			g.Indices = append(g.Indices, center, b, a)
		}
	}
}

func buildSphere(radius float32, segments, rings int) *Geometry {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}

	g := &Geometry{}
	stride := uint32(segments + 1)

	for iy := 0; iy <= rings; iy++ {
		v := float32(iy) / float32(rings)
		sinV, cosV := math32.Sincos(v * math32.Pi)
		for ix := 0; ix <= segments; ix++ {
			u := float32(ix) / float32(segments)
			sinU, cosU := math32.Sincos(u * 2 * math32.Pi)
			n := math.V3(-cosU*sinV, cosV, sinU*sinV)
			g.Vertices = append(g.Vertices, Vertex{Position: n.Scale(radius), Normal: n})
		}
	}

	for iy := 0; iy < rings; iy++ {
		for ix := 0; ix < segments; ix++ {
			a := uint32(iy)*stride + uint32(ix) + 1
			b := uint32(iy)*stride + uint32(ix)
			c := uint32(iy+1)*stride + uint32(ix)
			d := uint32(iy+1)*stride + uint32(ix) + 1
			// Pole rows collapse to a single triangle per quad.
			if iy != 0 {
				g.Indices = append(g.Indices, a, b, d)
			}
			if iy != rings-1 {
				g.Indices = append(g.Indices, b, c, d)
			}
		}
	}
	return g
}
