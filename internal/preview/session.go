package preview

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/Faultbox/booth-preview/internal/engine/camera"
	"github.com/Faultbox/booth-preview/internal/preview/color"
	"github.com/Faultbox/booth-preview/internal/preview/loop"
	"github.com/Faultbox/booth-preview/internal/preview/render"
	"github.com/Faultbox/booth-preview/internal/preview/scene"
)

// Session is the set of live resources behind one visible period of the
// preview: surface, camera, scene with its bindings, and the render loop.
// Sessions are acquired with openSession and freed with Release; after
// Release every method is a no-op.
type Session struct {
	surface  render.Surface
	camera   *camera.Camera
	scene    *scene.Scene
	bindings *scene.Bindings
	loop     *loop.Controller

	released bool
}

// openSession allocates a surface on the target, builds the scene for cfg
// and starts the loop. On failure everything acquired so far is released.
func openSession(opts Options, cfg scene.Config) (*Session, error) {
	if opts.Backend == nil || opts.Target == nil {
		return nil, fmt.Errorf("%w: no backend or target", render.ErrUnavailable)
	}
	surface, err := opts.Backend.Open(opts.Target)
	if err != nil {
		return nil, err
	}

	w, h := opts.Target.Size()
	s := &Session{
		surface: surface,
		camera:  camera.NewPreview(w, h),
		scene:   scene.Build(cfg),
		loop:    loop.New(opts.Scheduler, opts.RotationStep),
	}
	s.bindings = scene.Bind(s.scene.Booth)

	if err := surface.Upload(s.scene); err != nil {
		return nil, multierr.Append(fmt.Errorf("upload scene: %w", err), surface.Release())
	}
	if err := s.loop.Start(surface, s.scene, s.camera); err != nil {
		return nil, multierr.Append(fmt.Errorf("start loop: %w", err), surface.Release())
	}
	return s, nil
}

// Scene returns the live scene, or nil after Release.
func (s *Session) Scene() *scene.Scene {
	if s == nil {
		return nil
	}
	return s.scene
}

// Camera returns the session camera, or nil after Release.
func (s *Session) Camera() *camera.Camera {
	if s == nil {
		return nil
	}
	return s.camera
}

// Loop returns the render loop controller.
func (s *Session) Loop() *loop.Controller {
	if s == nil {
		return nil
	}
	return s.loop
}

// Surface returns the render surface, or nil after Release.
func (s *Session) Surface() render.Surface {
	if s == nil {
		return nil
	}
	return s.surface
}

// Released reports whether Release has run.
func (s *Session) Released() bool {
	return s == nil || s.released
}

// ApplyColors recolors the booth in place and reports whether any material
// changed. It is a no-op on a released session.
func (s *Session) ApplyColors(main, accent color.RGB) bool {
	if s.Released() {
		return false
	}
	return s.bindings.ApplyColors(main, accent)
}

// rebuild replaces the booth with one built for cfg. The rotation angle
// carries over so the turn does not jump.
func (s *Session) rebuild(cfg scene.Config) error {
	if s.Released() {
		return nil
	}
	next := scene.Build(cfg)
	if s.scene.Booth != nil && next.Booth != nil {
		next.Booth.RotationY = s.scene.Booth.RotationY
	}
	if err := s.surface.Upload(next); err != nil {
		return fmt.Errorf("upload %s booth: %w", next.Variant, err)
	}
	s.scene = next
	s.bindings = scene.Bind(next.Booth)
	s.loop.SetScene(next)
	return nil
}

// Release stops the loop and frees the surface. Repeat calls return nil.
func (s *Session) Release() error {
	if s.Released() {
		return nil
	}
	s.released = true
	s.loop.Stop()

	var errs error
	if s.surface != nil {
		errs = multierr.Append(errs, s.surface.Release())
	}
	s.surface = nil
	s.scene = nil
	s.bindings = nil
	s.camera = nil
	return errs
}
