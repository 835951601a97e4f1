package app

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/booth-preview/internal/config"
	"github.com/Faultbox/booth-preview/internal/engine/debug"
	"github.com/Faultbox/booth-preview/internal/engine/frame"
	"github.com/Faultbox/booth-preview/internal/logger"
	"github.com/Faultbox/booth-preview/internal/preview"
	"github.com/Faultbox/booth-preview/internal/preview/render/soft"
)

// ErrLoopStopped is returned when the render loop ends before every
// requested frame was drawn.
var ErrLoopStopped = errors.New("render loop stopped")

// RenderFrames draws cfg.Headless.Frames frames with the CPU backend and
// writes each as a PNG into cfg.Headless.OutDir. It returns the written
// paths.
func RenderFrames(cfg *config.Config) ([]string, error) {
	log := logger.Named("headless")

	sceneCfg, err := cfg.Preview.SceneConfig()
	if err != nil {
		log.Warn("invalid preview settings, using defaults", zap.Error(err))
	}

	canvas := soft.NewCanvas(cfg.Preview.Width, cfg.Preview.Height)
	queue := frame.NewQueue()

	var openErr error
	m := preview.NewManager(preview.Options{
		Backend:       soft.New(cfg.Preview.Supersample),
		Target:        canvas,
		Scheduler:     queue,
		RotationStep:  cfg.Preview.RotationStep,
		OnUnavailable: func(err error) { openErr = err },
	}, sceneCfg)

	m.SetVisible(true)
	defer m.Close()
	if openErr != nil {
		return nil, fmt.Errorf("open preview: %w", openErr)
	}

	shots := debug.NewScreenshotCapture(cfg.Headless.OutDir, "booth")
	frames := max(cfg.Headless.Frames, 1)
	paths := make([]string, 0, frames)
	for i := 0; i < frames; i++ {
		if queue.Flush() == 0 {
			return paths, fmt.Errorf("frame %d: %w", i, ErrLoopStopped)
		}
		path, err := shots.CaptureFrame(canvas.Image(), i)
		if err != nil {
			return paths, fmt.Errorf("frame %d: %w", i, err)
		}
		paths = append(paths, path)
	}

	log.Info("frames written",
		zap.Int("count", len(paths)),
		zap.String("dir", cfg.Headless.OutDir),
		zap.Stringer("variant", sceneCfg.Variant),
	)
	return paths, nil
}
