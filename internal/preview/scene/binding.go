package scene

import "github.com/Faultbox/booth-preview/internal/preview/color"

// Bindings maps each colorable role to the distinct materials of one booth
// group. Building it walks the group once; applying colors is a loop over a
// handful of pointers and never allocates geometry.
type Bindings struct {
	structure []*Material
	accent    []*Material
}

// Bind builds the binding table for a booth group. A nil group yields an
// empty table whose ApplyColors is a no-op.
func Bind(g *Group) *Bindings {
	b := &Bindings{}
	seen := make(map[*Material]bool)
	g.Walk(func(n *Node) {
		if n.Material == nil || seen[n.Material] {
			return
		}
		switch n.Role {
		case RoleStructure:
			b.structure = append(b.structure, n.Material)
		case RoleAccent:
			b.accent = append(b.accent, n.Material)
		default:
			return
		}
		seen[n.Material] = true
	})
	return b
}

// ApplyColors sets structure materials to main and accent materials to
// accent. Fixed materials are never touched. It returns whether any
// material actually changed. Safe on a nil table.
func (b *Bindings) ApplyColors(main, accent color.RGB) bool {
	if b == nil {
		return false
	}
	changed := false
	for _, m := range b.structure {
		if m.Color != main {
			m.Color = main
			changed = true
		}
	}
	for _, m := range b.accent {
		if m.Color != accent {
			m.Color = accent
			changed = true
		}
	}
	return changed
}

// Materials returns the bound materials for a role. Fixed returns nil.
func (b *Bindings) Materials(r Role) []*Material {
	if b == nil {
		return nil
	}
	switch r {
	case RoleStructure:
		return b.structure
	case RoleAccent:
		return b.accent
	default:
		return nil
	}
}

// ApplyColors recolors a booth group by role without a prebuilt table.
// A nil group is a no-op.
func ApplyColors(g *Group, main, accent color.RGB) bool {
	return Bind(g).ApplyColors(main, accent)
}
