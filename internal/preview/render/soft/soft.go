// Package soft is a CPU rasterizer backend for the booth preview.
//
// It needs no GPU and renders into a host-owned *image.RGBA, which makes it
// the headless and test backend. Frames are rendered at a multiple of the
// target size and downscaled with golang.org/x/image/draw for antialiasing.
package soft

import (
	"fmt"
	"image"

	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"

	"github.com/Faultbox/booth-preview/internal/engine/camera"
	"github.com/Faultbox/booth-preview/internal/engine/mesh"
	"github.com/Faultbox/booth-preview/internal/logger"
	"github.com/Faultbox/booth-preview/internal/preview/render"
	"github.com/Faultbox/booth-preview/internal/preview/scene"
	"github.com/Faultbox/booth-preview/pkg/math"
)

// ImageTarget is a render target backed by host-owned pixels.
type ImageTarget interface {
	render.Target
	Image() *image.RGBA
}

// Canvas is the simplest ImageTarget: a fixed-size RGBA image.
type Canvas struct {
	img *image.RGBA
}

// NewCanvas allocates a width x height canvas.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Size implements render.Target.
func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// Image returns the canvas pixels.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Backend opens software surfaces.
type Backend struct {
	// Supersample is the per-axis render scale, clamped to [1, 4].
	Supersample int
}

// New returns a backend rendering at supersample x the target size.
func New(supersample int) *Backend {
	return &Backend{Supersample: supersample}
}

// Name implements render.Backend.
func (b *Backend) Name() string {
	return "soft"
}

// Open implements render.Backend.
func (b *Backend) Open(target render.Target) (render.Surface, error) {
	it, ok := target.(ImageTarget)
	if !ok {
		return nil, fmt.Errorf("%w: soft backend needs an image target, got %T", render.ErrUnavailable, target)
	}
	w, h := it.Size()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: empty target %dx%d", render.ErrUnavailable, w, h)
	}

	ss := b.Supersample
	if ss < 1 {
		ss = 1
	}
	if ss > 4 {
		ss = 4
	}

	s := &surface{
		target: it,
		ss:     ss,
		log:    logger.Named("soft"),
	}
	s.resize(w, h)
	s.log.Debug("surface opened",
		zap.Int("width", w),
		zap.Int("height", h),
		zap.Int("supersample", ss),
	)
	return s, nil
}

type surface struct {
	target ImageTarget
	ss     int
	log    *zap.Logger

	buf    *image.RGBA
	depth  []float32
	width  int // target size the buffers were built for
	height int

	meshes map[mesh.Shape]*mesh.Geometry
	nodes  map[*scene.Node]*mesh.Geometry

	stats    render.Stats
	released bool
}

func (s *surface) resize(w, h int) {
	s.width, s.height = w, h
	s.buf = image.NewRGBA(image.Rect(0, 0, w*s.ss, h*s.ss))
	s.depth = make([]float32, w*s.ss*h*s.ss)
}

// Upload tessellates every node. Identical shapes share one geometry, and
// shapes already resident from the previous upload are reused.
func (s *surface) Upload(sc *scene.Scene) error {
	if s.released {
		return render.ErrReleased
	}
	prev := s.meshes
	meshes := make(map[mesh.Shape]*mesh.Geometry)
	nodes := make(map[*scene.Node]*mesh.Geometry, sc.NodeCount())

	sc.Each(func(n *scene.Node, _ math.Mat4) {
		g, ok := meshes[n.Shape]
		if !ok {
			if g, ok = prev[n.Shape]; !ok {
				g = n.Shape.Build()
				s.stats.Allocated++
			}
			meshes[n.Shape] = g
		}
		nodes[n] = g
	})

	s.meshes = meshes
	s.nodes = nodes
	s.stats.Uploads++
	s.stats.Meshes = len(meshes)
	return nil
}

// Draw rasterizes sc and copies the result into the target.
func (s *surface) Draw(sc *scene.Scene, cam *camera.Camera) error {
	if s.released {
		return render.ErrReleased
	}
	if w, h := s.target.Size(); w != s.width || h != s.height {
		s.resize(w, h)
	}

	s.clear(sc.Background.Floats())
	f := newFrame(sc, cam)

	var transparent []drawItem
	var missing error
	sc.Each(func(n *scene.Node, world math.Mat4) {
		g := s.nodes[n]
		if g == nil {
			missing = fmt.Errorf("node %q was not uploaded", n.Name)
			return
		}
		item := drawItem{node: n, geom: g, world: world}
		if n.Material.Transparent() {
			transparent = append(transparent, item)
			return
		}
		s.drawItem(f, item, true)
	})
	if missing != nil {
		return missing
	}
	for _, item := range transparent {
		s.drawItem(f, item, false)
	}

	s.present()
	s.stats.Frames++
	return nil
}

func (s *surface) present() {
	dst := s.target.Image()
	if s.ss == 1 {
		xdraw.Copy(dst, dst.Bounds().Min, s.buf, s.buf.Bounds(), xdraw.Src, nil)
		return
	}
	xdraw.BiLinear.Scale(dst, dst.Bounds(), s.buf, s.buf.Bounds(), xdraw.Src, nil)
}

// Stats implements render.Surface.
func (s *surface) Stats() render.Stats {
	return s.stats
}

// Release drops the pixel and depth buffers and all geometry.
func (s *surface) Release() error {
	if s.released {
		return nil
	}
	s.released = true
	s.buf = nil
	s.depth = nil
	s.meshes = nil
	s.nodes = nil
	s.stats.Meshes = 0
	s.log.Debug("surface released", zap.Int("frames", s.stats.Frames))
	return nil
}
