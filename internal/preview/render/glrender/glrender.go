// Package glrender renders the booth preview with OpenGL 4.1 core.
//
// The host supplies a Target that owns the GL context (an SDL window in
// cmd/boothpreview). Each distinct shape gets one VAO/VBO/EBO; material
// colors are uniforms, so recoloring never touches buffers.
package glrender

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/booth-preview/internal/engine/camera"
	"github.com/Faultbox/booth-preview/internal/engine/mesh"
	"github.com/Faultbox/booth-preview/internal/engine/shader"
	"github.com/Faultbox/booth-preview/internal/logger"
	"github.com/Faultbox/booth-preview/internal/preview/color"
	"github.com/Faultbox/booth-preview/internal/preview/render"
	"github.com/Faultbox/booth-preview/internal/preview/render/glrender/shaders"
	"github.com/Faultbox/booth-preview/internal/preview/scene"
	"github.com/Faultbox/booth-preview/pkg/math"
)

// Target is a render target that owns a GL context.
type Target interface {
	render.Target

	// MakeCurrent binds the target's GL context to the calling thread.
	MakeCurrent() error

	// Viewport returns the preview rectangle in framebuffer pixels,
	// origin bottom-left.
	Viewport() (x, y, width, height int)
}

var uniformNames = []string{"uModel", "uViewProj", "uColor", "uAmbient", "uSun", "uLightDir", "uEye", "uGloss"}

// Backend opens OpenGL surfaces.
type Backend struct {
	initialized bool
}

// New returns an OpenGL backend.
func New() *Backend {
	return &Backend{}
}

// Name implements render.Backend.
func (b *Backend) Name() string {
	return "gl"
}

// Open implements render.Backend. Any failure to obtain a usable context
// is reported as render.ErrUnavailable.
func (b *Backend) Open(target render.Target) (render.Surface, error) {
	t, ok := target.(Target)
	if !ok {
		return nil, fmt.Errorf("%w: gl backend needs a GL target, got %T", render.ErrUnavailable, target)
	}
	if err := t.MakeCurrent(); err != nil {
		return nil, fmt.Errorf("%w: make current: %v", render.ErrUnavailable, err)
	}
	if !b.initialized {
		if err := gl.Init(); err != nil {
			return nil, fmt.Errorf("%w: initialize OpenGL: %v", render.ErrUnavailable, err)
		}
		b.initialized = true
		logger.Info("OpenGL initialized",
			zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
			zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		)
	}

	program, err := shader.CompileProgram(shaders.BoothVertexShader, shaders.BoothFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("%w: booth shader: %v", render.ErrUnavailable, err)
	}
	locs, err := shader.Uniforms(program, uniformNames...)
	if err != nil {
		gl.DeleteProgram(program)
		return nil, fmt.Errorf("%w: %v", render.ErrUnavailable, err)
	}

	s := &surface{
		target:  t,
		program: program,
		loc:     locs,
		meshes:  make(map[mesh.Shape]*glMesh),
		log:     logger.Named("gl"),
	}
	s.log.Debug("surface opened", zap.Uint32("program", program))
	return s, nil
}

type glMesh struct {
	vao, vbo, ebo uint32
	count         int32
}

type surface struct {
	target  Target
	program uint32
	loc     map[string]int32
	log     *zap.Logger

	meshes map[mesh.Shape]*glMesh
	nodes  map[*scene.Node]*glMesh

	stats    render.Stats
	released bool
}

func uploadMesh(g *mesh.Geometry) *glMesh {
	m := &glMesh{count: int32(len(g.Indices))}
	if len(g.Vertices) == 0 || len(g.Indices) == 0 {
		return m
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	stride := int32(unsafe.Sizeof(mesh.Vertex{}))
	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(g.Vertices)*int(stride), unsafe.Pointer(&g.Vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, unsafe.Pointer(&g.Indices[0]), gl.STATIC_DRAW)

	// Position (location = 0), normal (location = 1)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, uintptr(unsafe.Offsetof(mesh.Vertex{}.Normal)))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	return m
}

func (m *glMesh) delete() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
	*m = glMesh{}
}

// Upload creates buffers for shapes not yet resident and deletes buffers
// for shapes the new scene no longer uses.
func (s *surface) Upload(sc *scene.Scene) error {
	if s.released {
		return render.ErrReleased
	}
	if err := s.target.MakeCurrent(); err != nil {
		return fmt.Errorf("make current: %w", err)
	}

	next := make(map[mesh.Shape]*glMesh)
	nodes := make(map[*scene.Node]*glMesh, sc.NodeCount())
	sc.Each(func(n *scene.Node, _ math.Mat4) {
		m, ok := next[n.Shape]
		if !ok {
			if m, ok = s.meshes[n.Shape]; !ok {
				m = uploadMesh(n.Shape.Build())
				s.stats.Allocated++
			}
			next[n.Shape] = m
		}
		nodes[n] = m
	})
	for shape, m := range s.meshes {
		if _, keep := next[shape]; !keep {
			m.delete()
		}
	}

	s.meshes = next
	s.nodes = nodes
	s.stats.Uploads++
	s.stats.Meshes = len(next)
	return glError("upload")
}

// Draw renders opaque nodes, then translucent ones with blending and
// without depth writes.
func (s *surface) Draw(sc *scene.Scene, cam *camera.Camera) error {
	if s.released {
		return render.ErrReleased
	}
	if err := s.target.MakeCurrent(); err != nil {
		return fmt.Errorf("make current: %w", err)
	}

	x, y, w, h := s.target.Viewport()
	gl.Viewport(int32(x), int32(y), int32(w), int32(h))
	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(int32(x), int32(y), int32(w), int32(h))
	bg := sc.Background.Floats()
	gl.ClearColor(bg[0], bg[1], bg[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.UseProgram(s.program)

	viewProj := cam.ViewProjection()
	gl.UniformMatrix4fv(s.loc["uViewProj"], 1, false, viewProj.Ptr())
	lights := sc.Lights()
	gl.Uniform3fv(s.loc["uAmbient"], 1, &lights.Ambient[0])
	gl.Uniform3fv(s.loc["uSun"], 1, &lights.Sun[0])
	gl.Uniform3f(s.loc["uLightDir"], lights.Direction.X, lights.Direction.Y, lights.Direction.Z)
	gl.Uniform3f(s.loc["uEye"], cam.Position.X, cam.Position.Y, cam.Position.Z)

	type item struct {
		node  *scene.Node
		mesh  *glMesh
		world math.Mat4
	}
	var translucent []item
	var missing error
	sc.Each(func(n *scene.Node, world math.Mat4) {
		m := s.nodes[n]
		if m == nil {
			missing = fmt.Errorf("node %q was not uploaded", n.Name)
			return
		}
		if n.Material.Transparent() {
			translucent = append(translucent, item{n, m, world})
			return
		}
		s.drawNode(n, m, world)
	})

	if len(translucent) > 0 {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		gl.DepthMask(false)
		for _, it := range translucent {
			s.drawNode(it.node, it.mesh, it.world)
		}
		gl.DepthMask(true)
		gl.Disable(gl.BLEND)
	}

	gl.BindVertexArray(0)
	gl.Disable(gl.SCISSOR_TEST)
	if missing != nil {
		return missing
	}
	if err := glError("draw"); err != nil {
		return err
	}
	s.stats.Frames++
	return nil
}

func (s *surface) drawNode(n *scene.Node, m *glMesh, world math.Mat4) {
	if m.count == 0 {
		return
	}
	if n.Material.DoubleSided {
		gl.Disable(gl.CULL_FACE)
	} else {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	}

	c := n.Material.Color.Floats()
	gl.Uniform4f(s.loc["uColor"], c[0], c[1], c[2], n.Material.Opacity)
	gl.Uniform1f(s.loc["uGloss"], 1-n.Material.Roughness)
	gl.UniformMatrix4fv(s.loc["uModel"], 1, false, world.Ptr())

	gl.BindVertexArray(m.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, 0)
}

// Stats implements render.Surface.
func (s *surface) Stats() render.Stats {
	return s.stats
}

// Release deletes every buffer and the shader program.
func (s *surface) Release() error {
	if s.released {
		return nil
	}
	s.released = true

	var errs error
	if err := s.target.MakeCurrent(); err != nil {
		// Without the context the GL names cannot be freed; they die with it.
		errs = multierr.Append(errs, fmt.Errorf("make current: %w", err))
	} else {
		for _, m := range s.meshes {
			m.delete()
		}
		if s.program != 0 {
			gl.DeleteProgram(s.program)
		}
		errs = multierr.Append(errs, glError("release"))
	}

	s.meshes = nil
	s.nodes = nil
	s.program = 0
	s.stats.Meshes = 0
	s.log.Debug("surface released", zap.Int("frames", s.stats.Frames), zap.Error(errs))
	return errs
}

// glError drains the GL error queue into one error.
func glError(op string) error {
	var errs error
	for i := 0; i < 8; i++ {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			break
		}
		errs = multierr.Append(errs, fmt.Errorf("%s: GL error 0x%x", op, code))
	}
	return errs
}

// ReadPixels reads the target's viewport from the current framebuffer as
// bottom-up RGBA rows. Call it after Draw and before swapping buffers.
func ReadPixels(t Target) (pixels []byte, width, height int, err error) {
	if err := t.MakeCurrent(); err != nil {
		return nil, 0, 0, fmt.Errorf("make current: %w", err)
	}
	x, y, w, h := t.Viewport()
	if w <= 0 || h <= 0 {
		return nil, 0, 0, fmt.Errorf("empty viewport %dx%d", w, h)
	}
	pixels = make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(int32(x), int32(y), int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h, glError("read pixels")
}

// Clear fills the whole framebuffer of the current context with bg. Hosts
// call it once per frame so the area around the preview stays clean.
func Clear(bg color.RGB) {
	c := bg.Floats()
	gl.Disable(gl.SCISSOR_TEST)
	gl.ClearColor(c[0], c[1], c[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}
