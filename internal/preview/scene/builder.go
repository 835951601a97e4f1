package scene

import (
	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/booth-preview/internal/engine/mesh"
	"github.com/Faultbox/booth-preview/internal/logger"
	"github.com/Faultbox/booth-preview/internal/preview/color"
	"github.com/Faultbox/booth-preview/pkg/math"
)

// Scene-wide constants shared by every variant.
var (
	backgroundColor = color.Hex(0xf5f5f5)
	groundColor     = color.Hex(0xe5e7eb)
)

// Material keys. Nodes naming the same key share one *Material per build.
const (
	matWall    = "wall"
	matWindow  = "window"
	matBanner  = "banner"
	matLogo    = "logo"
	matPanel   = "panel"
	matCounter = "counter"
	matMonitor = "monitor"
	matShirt1  = "shirt-1"
	matShirt2  = "shirt-2"
	matSkin    = "skin"
)

// part describes one booth primitive.
type part struct {
	name     string
	shape    mesh.Shape
	pos      math.Vec3
	rot      math.Vec3
	material string
	role     Role
}

var (
	wallSection = mesh.Box(0.1, 0.8, 3)
	windowPane  = mesh.Box(0.05, 0.9, 2.4)
	infoPanel   = mesh.Box(0.6, 0.8, 0.05)
	monitor     = mesh.Box(0.4, 0.3, 0.05)
	torso       = mesh.Cylinder(0.15, 0.2, 0.6, 8)
	head        = mesh.Sphere(0.15, 8, 8)
)

// boothParts is the fixed booth topology. Order only affects draw order.
var boothParts = []part{
	{name: "back-wall", shape: mesh.Box(3, 2.5, 0.1), pos: math.V3(0, 1.25, -1.5), material: matWall, role: RoleStructure},
	{name: "left-wall-bottom", shape: wallSection, pos: math.V3(-1.5, 0.4, 0), material: matWall, role: RoleStructure},
	{name: "left-wall-top", shape: wallSection, pos: math.V3(-1.5, 2.1, 0), material: matWall, role: RoleStructure},
	{name: "left-window", shape: windowPane, pos: math.V3(-1.5, 1.25, 0), material: matWindow, role: RoleFixed},
	{name: "right-wall-bottom", shape: wallSection, pos: math.V3(1.5, 0.4, 0), material: matWall, role: RoleStructure},
	{name: "right-wall-top", shape: wallSection, pos: math.V3(1.5, 2.1, 0), material: matWall, role: RoleStructure},
	{name: "right-window", shape: windowPane, pos: math.V3(1.5, 1.25, 0), material: matWindow, role: RoleFixed},
	{name: "banner", shape: mesh.Box(3, 0.4, 0.1), pos: math.V3(0, 2.6, -1.5), material: matBanner, role: RoleAccent},
	{name: "logo", shape: mesh.Box(0.8, 0.8, 0.05), pos: math.V3(0, 2, -1.45), material: matLogo, role: RoleFixed},
	{name: "left-panel", shape: infoPanel, pos: math.V3(-0.8, 1, -1.45), material: matPanel, role: RoleAccent},
	{name: "right-panel", shape: infoPanel, pos: math.V3(0.8, 1, -1.45), material: matPanel, role: RoleAccent},
	{name: "counter", shape: mesh.Box(2, 0.8, 0.6), pos: math.V3(0, 0.4, 1), material: matCounter, role: RoleAccent},
	{name: "left-monitor", shape: monitor, pos: math.V3(-0.5, 0.95, 1), rot: math.V3(-0.2, 0, 0), material: matMonitor, role: RoleFixed},
	{name: "right-monitor", shape: monitor, pos: math.V3(0.5, 0.95, 1), rot: math.V3(-0.2, 0, 0), material: matMonitor, role: RoleFixed},
	{name: "person-1-body", shape: torso, pos: math.V3(-0.6, 0.3, 1.5), material: matShirt1, role: RoleFixed},
	{name: "person-1-head", shape: head, pos: math.V3(-0.6, 0.75, 1.5), material: matSkin, role: RoleFixed},
	{name: "person-2-body", shape: torso, pos: math.V3(0.6, 0.3, 1.5), material: matShirt2, role: RoleFixed},
	{name: "person-2-head", shape: head, pos: math.V3(0.6, 0.75, 1.5), material: matSkin, role: RoleFixed},
}

// newMaterials creates fresh materials for one build. Structure and accent
// materials start at the configured colors; fixed ones vary only by variant.
func newMaterials(v Variant, cfg Config) map[string]*Material {
	info := variants[v]
	solid := func(c color.RGB) *Material {
		return &Material{Color: c, Roughness: 1, Opacity: 1}
	}

	counter := solid(cfg.Accent)
	counter.Roughness = 0.3

	return map[string]*Material{
		matWall:    solid(cfg.Main),
		matWindow:  {Color: color.Hex(0x88ccff), Roughness: 1, Opacity: 0.3, DoubleSided: true},
		matBanner:  solid(cfg.Accent),
		matLogo:    solid(info.logo),
		matPanel:   solid(cfg.Accent),
		matCounter: counter,
		matMonitor: solid(info.screen),
		matShirt1:  solid(color.Hex(0x3b82f6)),
		matShirt2:  solid(color.Hex(0xec4899)),
		matSkin:    solid(color.Hex(0xffdbac)),
	}
}

// Build constructs a new scene for cfg. Each call returns new nodes and
// materials; earlier scenes are never touched. Unknown variants fall back
// to DefaultVariant.
func Build(cfg Config) *Scene {
	v := cfg.Variant
	if !v.Valid() {
		logger.Warn("unknown booth variant, using default",
			zap.Int("variant", int(v)),
			zap.Stringer("default", DefaultVariant),
		)
		v = DefaultVariant
	}

	s := &Scene{
		Background: backgroundColor,
		Ambient:    AmbientLight{Color: color.Hex(0xffffff), Intensity: 0.6},
		Sun:        DirectionalLight{Color: color.Hex(0xffffff), Intensity: 0.8, Position: math.V3(5, 10, 5)},
		Environment: []*Node{{
			Name:     "ground",
			Shape:    mesh.Plane(20, 20),
			Rotation: math.V3(-math32.Pi/2, 0, 0),
			Material: &Material{Color: groundColor, Roughness: 0.8, Opacity: 1},
			Role:     RoleFixed,
		}},
		Variant: v,
	}

	materials := newMaterials(v, cfg)
	booth := &Group{Name: "booth", Children: make([]*Node, 0, len(boothParts))}
	for _, p := range boothParts {
		booth.Children = append(booth.Children, &Node{
			Name:     p.name,
			Shape:    p.shape,
			Position: p.pos,
			Rotation: p.rot,
			Material: materials[p.material],
			Role:     p.role,
		})
	}
	s.Booth = booth

	logger.Debug("booth scene built",
		zap.Stringer("variant", v),
		zap.Int("nodes", s.NodeCount()),
	)
	return s
}
