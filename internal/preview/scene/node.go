// Package scene builds the booth preview scene graph and recolors it in place.
//
// A Scene holds static environment nodes (ground, lights) and a booth Group.
// Every booth node carries a Role fixed at construction time; recoloring
// resolves targets by role, never by a node's position among its siblings.
package scene

import (
	"fmt"

	"github.com/Faultbox/booth-preview/internal/engine/lighting"
	"github.com/Faultbox/booth-preview/internal/engine/mesh"
	"github.com/Faultbox/booth-preview/internal/preview/color"
	"github.com/Faultbox/booth-preview/pkg/math"
)

// Role classifies how a node responds to color configuration.
type Role int

const (
	// RoleFixed nodes keep their construction-time color.
	RoleFixed Role = iota
	// RoleStructure nodes take the main color.
	RoleStructure
	// RoleAccent nodes take the accent color.
	RoleAccent
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleFixed:
		return "fixed"
	case RoleStructure:
		return "structure"
	case RoleAccent:
		return "accent"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Material is a live, mutable surface description shared by reference.
// Renderers read Color every frame, so writes take effect on the next draw.
type Material struct {
	Color       color.RGB
	Roughness   float32
	Opacity     float32
	DoubleSided bool
}

// Transparent reports whether the material needs blending.
func (m *Material) Transparent() bool {
	return m.Opacity < 1
}

// Node is a named primitive mesh with a local transform.
type Node struct {
	Name     string
	Shape    mesh.Shape
	Position math.Vec3
	Rotation math.Vec3 // Euler XYZ, radians
	Material *Material
	Role     Role
}

// LocalMatrix returns the node's transform relative to its parent.
func (n *Node) LocalMatrix() math.Mat4 {
	return math.TRS(n.Position, n.Rotation, math.V3(1, 1, 1))
}

// Group is the booth root. Rotation is the Y angle advanced by the render loop.
type Group struct {
	Name      string
	RotationY float32
	Children  []*Node
}

// Matrix returns the group's world transform.
func (g *Group) Matrix() math.Mat4 {
	return math.RotateY(g.RotationY)
}

// Find returns the child with the given name, or nil.
func (g *Group) Find(name string) *Node {
	if g == nil {
		return nil
	}
	for _, n := range g.Children {
		if n.Name == name {
			return n
		}
	}
	return nil
}

// Walk calls fn for each child in order.
func (g *Group) Walk(fn func(*Node)) {
	if g == nil {
		return
	}
	for _, n := range g.Children {
		fn(n)
	}
}

// CountRole returns how many children carry the given role.
func (g *Group) CountRole(r Role) int {
	count := 0
	g.Walk(func(n *Node) {
		if n.Role == r {
			count++
		}
	})
	return count
}

// AmbientLight is uniform light applied to every surface.
type AmbientLight struct {
	Color     color.RGB
	Intensity float32
}

// DirectionalLight shines from Position toward the origin.
type DirectionalLight struct {
	Color     color.RGB
	Intensity float32
	Position  math.Vec3
}

// Scene is the retained world: environment nodes, lights and the booth.
type Scene struct {
	Background  color.RGB
	Ambient     AmbientLight
	Sun         DirectionalLight
	Environment []*Node
	Booth       *Group
	Variant     Variant
}

// NodeCount returns the number of environment and booth nodes.
func (s *Scene) NodeCount() int {
	n := len(s.Environment)
	if s.Booth != nil {
		n += len(s.Booth.Children)
	}
	return n
}

// Each calls fn for every node with its world transform: environment nodes
// first, then booth nodes, which inherit the group rotation.
func (s *Scene) Each(fn func(n *Node, world math.Mat4)) {
	for _, n := range s.Environment {
		fn(n, n.LocalMatrix())
	}
	if s.Booth == nil {
		return
	}
	parent := s.Booth.Matrix()
	for _, n := range s.Booth.Children {
		fn(n, parent.Mul(n.LocalMatrix()))
	}
}

// Lights resolves the scene's lights for shading.
func (s *Scene) Lights() lighting.Rig {
	return lighting.NewRig(
		s.Ambient.Color.Floats(), s.Ambient.Intensity,
		s.Sun.Color.Floats(), s.Sun.Intensity,
		s.Sun.Position,
	)
}
