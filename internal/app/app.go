// Package app hosts the booth preview. It plays the configurator UI's part:
// it owns the drawing target, pumps the frame queue and turns key presses
// into configuration and visibility changes for the preview manager.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/booth-preview/internal/config"
	"github.com/Faultbox/booth-preview/internal/engine/debug"
	"github.com/Faultbox/booth-preview/internal/engine/frame"
	"github.com/Faultbox/booth-preview/internal/engine/input"
	"github.com/Faultbox/booth-preview/internal/engine/window"
	"github.com/Faultbox/booth-preview/internal/logger"
	"github.com/Faultbox/booth-preview/internal/preview"
	"github.com/Faultbox/booth-preview/internal/preview/color"
	"github.com/Faultbox/booth-preview/internal/preview/render/glrender"
	"github.com/Faultbox/booth-preview/internal/preview/scene"
)

// orbitStep is the camera turn per arrow key press, in radians.
const orbitStep = 0.1

// hostBackground fills the window around the letterboxed preview.
var hostBackground = color.Hex(0x1f2937)

// App is the desktop host: an SDL window with the preview drawn by OpenGL.
type App struct {
	cfg *config.Config

	window  *window.Window
	input   *input.Input
	queue   *frame.Queue
	manager *preview.Manager
	shots   *debug.ScreenshotCapture

	glReady bool
	running bool
	log     *zap.Logger
}

// New opens the window and shows the preview.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:   cfg,
		input: input.New(),
		queue: frame.NewQueue(),
		shots: debug.NewScreenshotCapture(cfg.Headless.OutDir, "booth"),
		log:   logger.Named("app"),
	}

	sceneCfg, err := cfg.Preview.SceneConfig()
	if err != nil {
		a.log.Warn("invalid preview settings, using defaults", zap.Error(err))
	}

	a.window, err = window.New(window.Config{
		Title:         cfg.Window.Title,
		Width:         cfg.Window.Width,
		Height:        cfg.Window.Height,
		Fullscreen:    cfg.Window.Fullscreen,
		VSync:         cfg.Window.VSync,
		PreviewWidth:  cfg.Preview.Width,
		PreviewHeight: cfg.Preview.Height,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	a.manager = preview.NewManager(preview.Options{
		Backend:      glrender.New(),
		Target:       a.window,
		Scheduler:    a.queue,
		RotationStep: cfg.Preview.RotationStep,
		OnUnavailable: func(err error) {
			a.window.SetTitle(cfg.Window.Title + " (preview unavailable)")
		},
	}, sceneCfg)

	a.setVisible(true)
	a.log.Info("app initialized")
	return a, nil
}

// Run pumps input and frames until the window closes.
func (a *App) Run() error {
	a.running = true

	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting host loop")

	for a.running {
		if a.input.Update() {
			a.running = false
			break
		}

		capture := false
		for _, action := range a.input.Actions() {
			if action == input.ActionScreenshot {
				capture = true
				continue
			}
			a.handle(action)
		}

		if a.glReady {
			glrender.Clear(hostBackground)
		}
		a.queue.Flush()
		if capture {
			a.screenshot()
		}
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close hides the preview, which frees its GPU resources, then closes the
// window.
func (a *App) Close() {
	a.log.Info("closing app")

	if a.manager != nil {
		a.manager.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}

func (a *App) handle(action input.Action) {
	cfg := a.manager.Config()
	switch action {
	case input.ActionQuit:
		a.running = false
	case input.ActionToggleVisible:
		a.setVisible(!a.manager.Visible())
	case input.ActionNextTemplate:
		next := cfg.Variant.Next()
		a.manager.SetConfig(scene.DefaultConfig(next))
	case input.ActionCycleAccent:
		cfg.Accent = NextAccent(cfg.Accent)
		a.manager.SetConfig(cfg)
	case input.ActionOrbitLeft:
		a.orbit(-orbitStep, 0)
	case input.ActionOrbitRight:
		a.orbit(orbitStep, 0)
	case input.ActionOrbitUp:
		a.orbit(0, orbitStep)
	case input.ActionOrbitDown:
		a.orbit(0, -orbitStep)
	}
	a.log.Debug("action", zap.Stringer("action", action))
	a.updateTitle()
}

// orbit turns the session camera around its target. The booth keeps
// spinning underneath.
func (a *App) orbit(dYaw, dPitch float32) {
	cam := a.manager.Session().Camera()
	if cam == nil {
		return
	}
	yaw, pitch, dist := cam.OrbitAngles()
	cam.Orbit(yaw+dYaw, pitch+dPitch, dist)
}

func (a *App) setVisible(visible bool) {
	a.manager.SetVisible(visible)
	if a.manager.Session() != nil {
		a.glReady = true
	}
	a.updateTitle()
}

func (a *App) updateTitle() {
	if !a.manager.Available() {
		return
	}
	cfg := a.manager.Config()
	state := "hidden"
	if a.manager.Visible() {
		state = fmt.Sprintf("%s %s/%s", cfg.Variant, cfg.Main, cfg.Accent)
	}
	a.window.SetTitle(fmt.Sprintf("%s - %s", a.cfg.Window.Title, state))
}

func (a *App) screenshot() {
	if a.manager.Session() == nil {
		a.log.Info("screenshot skipped, preview hidden")
		return
	}
	pixels, w, h, err := glrender.ReadPixels(a.window)
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	path, err := a.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// NextAccent returns the template accent that follows c in template order,
// or the first template accent if c is not one of them.
func NextAccent(c color.RGB) color.RGB {
	vs := scene.Variants()
	for i, v := range vs {
		if _, accent := v.DefaultColors(); accent == c {
			_, next := vs[(i+1)%len(vs)].DefaultColors()
			return next
		}
	}
	_, first := vs[0].DefaultColors()
	return first
}
