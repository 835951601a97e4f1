// Package main is the entry point for the booth preview.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/booth-preview/internal/app"
	"github.com/Faultbox/booth-preview/internal/config"
	"github.com/Faultbox/booth-preview/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Booth Preview ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if cfg.Headless.Enabled || cfg.Preview.Backend == config.BackendSoft {
		paths, err := app.RenderFrames(cfg)
		if err != nil {
			logger.Error("headless render failed", zap.Error(err))
			os.Exit(1)
		}
		for _, p := range paths {
			fmt.Println(p)
		}
		return
	}

	a, err := app.New(cfg)
	if err != nil {
		logger.Error("failed to create app", zap.Error(err))
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		logger.Error("app error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("preview closed normally")
}
