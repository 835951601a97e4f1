// Package loop drives the booth's continuous rotation and redraw.
package loop

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Faultbox/booth-preview/internal/engine/camera"
	"github.com/Faultbox/booth-preview/internal/engine/frame"
	"github.com/Faultbox/booth-preview/internal/logger"
	"github.com/Faultbox/booth-preview/internal/preview/render"
	"github.com/Faultbox/booth-preview/internal/preview/scene"
)

// DefaultStep is the booth's Y rotation per frame in radians.
const DefaultStep float32 = 0.009

// State is the controller's lifecycle state.
type State int

const (
	Idle State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// ErrNotIdle is returned by Start on a controller that already ran.
var ErrNotIdle = errors.New("loop already started")

// Controller re-requests one frame callback at a time. Each tick rotates
// the booth by Step and draws. A Controller runs once; Stopped is terminal.
type Controller struct {
	sched frame.Scheduler
	step  float32

	state   State
	pending frame.ID

	surface render.Surface
	scene   *scene.Scene
	camera  *camera.Camera

	frames int
	log    *zap.Logger
}

// New creates an idle controller. A non-positive step selects DefaultStep.
func New(sched frame.Scheduler, step float32) *Controller {
	if step <= 0 {
		step = DefaultStep
	}
	return &Controller{
		sched: sched,
		step:  step,
		log:   logger.Named("loop"),
	}
}

// Start begins ticking. It fails unless the controller is Idle.
func (c *Controller) Start(surface render.Surface, s *scene.Scene, cam *camera.Camera) error {
	if c.state != Idle {
		return ErrNotIdle
	}
	c.surface = surface
	c.scene = s
	c.camera = cam
	c.state = Running
	c.pending = c.sched.RequestFrame(c.tick)
	c.log.Debug("started", zap.Float32("step", c.step))
	return nil
}

// Stop cancels the pending tick before returning, so no draw happens after
// it. Stopping an Idle or Stopped controller does nothing.
func (c *Controller) Stop() {
	if c.state != Running {
		return
	}
	if c.pending != 0 {
		c.sched.CancelFrame(c.pending)
		c.pending = 0
	}
	c.state = Stopped
	c.surface = nil
	c.scene = nil
	c.camera = nil
	c.log.Debug("stopped", zap.Int("frames", c.frames))
}

// SetScene swaps the scene drawn by subsequent ticks.
func (c *Controller) SetScene(s *scene.Scene) {
	if c.state == Running {
		c.scene = s
	}
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Frames returns the number of frames drawn.
func (c *Controller) Frames() int {
	return c.frames
}

// Step returns the rotation per frame.
func (c *Controller) Step() float32 {
	return c.step
}

func (c *Controller) tick() {
	c.pending = 0
	if c.state != Running {
		return
	}

	if c.scene != nil && c.scene.Booth != nil {
		c.scene.Booth.RotationY += c.step
	}
	if err := c.surface.Draw(c.scene, c.camera); err != nil {
		c.log.Error("draw failed, stopping", zap.Error(err))
		c.state = Stopped
		return
	}
	c.frames++

	c.pending = c.sched.RequestFrame(c.tick)
}
