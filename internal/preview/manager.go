// Package preview owns the booth preview's lifecycle.
//
// The host drives a Manager with two inputs, SetConfig and SetVisible. While
// visible the Manager holds exactly one Session; while hidden it holds none
// and only remembers the latest configuration.
package preview

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Faultbox/booth-preview/internal/engine/frame"
	"github.com/Faultbox/booth-preview/internal/logger"
	"github.com/Faultbox/booth-preview/internal/preview/render"
	"github.com/Faultbox/booth-preview/internal/preview/scene"
)

// Options wires a Manager to its host.
type Options struct {
	Backend   render.Backend
	Target    render.Target
	Scheduler frame.Scheduler

	// RotationStep is the booth rotation per frame; zero selects the default.
	RotationStep float32

	// OnUnavailable is called once for every failed attempt to open a
	// session. The preview stays hidden-equivalent until the next
	// hide/show cycle.
	OnUnavailable func(error)
}

// Manager couples session lifetime to preview visibility. It is not safe
// for concurrent use; every call belongs on the UI thread.
type Manager struct {
	opts Options
	cfg  scene.Config

	visible   bool
	available bool
	session   *Session

	log *zap.Logger
}

// NewManager creates a hidden manager holding cfg.
func NewManager(opts Options, cfg scene.Config) *Manager {
	if opts.Scheduler == nil {
		opts.Scheduler = frame.NewQueue()
	}
	cfg.Variant = cfg.Variant.Resolve()
	return &Manager{
		opts:      opts,
		cfg:       cfg,
		available: true,
		log:       logger.Named("preview"),
	}
}

// Config returns the latest configuration.
func (m *Manager) Config() scene.Config {
	return m.cfg
}

// Visible reports the last visibility signal.
func (m *Manager) Visible() bool {
	return m.visible
}

// Available reports whether the last session allocation succeeded.
func (m *Manager) Available() bool {
	return m.available
}

// Session returns the live session, or nil while hidden or unavailable.
func (m *Manager) Session() *Session {
	return m.session
}

// SetConfig records cfg. While a session is live, a variant change
// rebuilds the booth and a color-only change recolors it in place.
func (m *Manager) SetConfig(cfg scene.Config) {
	if !cfg.Variant.Valid() {
		m.log.Warn("unknown variant, using default",
			zap.Int("variant", int(cfg.Variant)),
			zap.Stringer("default", scene.DefaultVariant),
		)
		cfg.Variant = scene.DefaultVariant
	}
	prev := m.cfg
	m.cfg = cfg

	if m.session == nil || cfg == prev {
		return
	}

	if cfg.Variant != prev.Variant {
		if err := m.session.rebuild(cfg); err != nil {
			m.log.Error("rebuild failed", zap.Error(err))
			m.teardown()
			m.unavailable(err)
			return
		}
		m.log.Info("booth rebuilt", zap.Stringer("variant", cfg.Variant))
		return
	}

	if m.session.ApplyColors(cfg.Main, cfg.Accent) {
		m.log.Debug("booth recolored",
			zap.Stringer("main", cfg.Main),
			zap.Stringer("accent", cfg.Accent),
		)
	}
}

// SetVisible opens a session on the hidden→visible edge and releases it on
// the visible→hidden edge. Repeating the current value does nothing.
func (m *Manager) SetVisible(visible bool) {
	if visible == m.visible {
		return
	}
	m.visible = visible

	if !visible {
		m.teardown()
		return
	}

	s, err := openSession(m.opts, m.cfg)
	if err != nil {
		m.unavailable(err)
		return
	}
	m.session = s
	m.available = true
	m.log.Info("preview shown",
		zap.String("backend", m.opts.Backend.Name()),
		zap.Stringer("variant", m.cfg.Variant),
	)
}

// Close hides the preview and frees its session.
func (m *Manager) Close() {
	m.SetVisible(false)
}

func (m *Manager) teardown() {
	if m.session == nil {
		return
	}
	frames := m.session.loop.Frames()
	if err := m.session.Release(); err != nil {
		m.log.Warn("session release", zap.Error(err))
	}
	m.session = nil
	m.log.Info("preview hidden", zap.Int("frames", frames))
}

func (m *Manager) unavailable(err error) {
	m.available = false
	if errors.Is(err, render.ErrUnavailable) {
		m.log.Warn("preview unavailable", zap.Error(err))
	} else {
		m.log.Error("preview failed", zap.Error(err))
	}
	if m.opts.OnUnavailable != nil {
		m.opts.OnUnavailable(err)
	}
}
