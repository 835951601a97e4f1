package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagVariant  = flag.String("variant", "", "Booth template (modern, tech, creative, corporate, eco, luxury, minimal)")
	flagMain     = flag.String("main", "", "Main color, #rrggbb")
	flagAccent   = flag.String("accent", "", "Accent color, #rrggbb")
	flagWidth    = flag.Int("width", 0, "Preview width")
	flagHeight   = flag.Int("height", 0, "Preview height")
	flagBackend  = flag.String("backend", "", "Render backend: gl or soft")
	flagHeadless = flag.Bool("headless", false, "Render frames to PNG files without a window")
	flagFrames   = flag.Int("frames", 0, "Number of frames to render in headless mode")
	flagOut      = flag.String("out", "", "Output directory for headless frames")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagVariant != "" {
		cfg.Preview.Variant = *flagVariant
	}
	if *flagMain != "" {
		cfg.Preview.MainColor = *flagMain
	}
	if *flagAccent != "" {
		cfg.Preview.AccentColor = *flagAccent
	}
	if *flagWidth > 0 {
		cfg.Preview.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Preview.Height = *flagHeight
	}
	if *flagBackend != "" {
		cfg.Preview.Backend = *flagBackend
	}
	if *flagHeadless {
		cfg.Headless.Enabled = true
		// Headless rendering has no GL context.
		cfg.Preview.Backend = BackendSoft
	}
	if *flagFrames > 0 {
		cfg.Headless.Frames = *flagFrames
	}
	if *flagOut != "" {
		cfg.Headless.OutDir = *flagOut
	}
}
