package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/booth-preview/internal/preview/color"
	"github.com/Faultbox/booth-preview/internal/preview/scene"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test preview defaults
	if cfg.Preview.Variant != "modern" {
		t.Errorf("expected variant modern, got %s", cfg.Preview.Variant)
	}
	if cfg.Preview.Width != 400 || cfg.Preview.Height != 280 {
		t.Errorf("expected preview 400x280, got %dx%d", cfg.Preview.Width, cfg.Preview.Height)
	}
	if cfg.Preview.RotationStep != 0.009 {
		t.Errorf("expected rotation step 0.009, got %f", cfg.Preview.RotationStep)
	}
	if cfg.Preview.Backend != BackendGL {
		t.Errorf("expected backend gl, got %s", cfg.Preview.Backend)
	}

	// Test window defaults
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Window.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Headless.Enabled {
		t.Error("expected headless to be disabled by default")
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
preview:
  variant: luxury
  main_color: "#112233"
  accent_color: "#445566"
  width: 640
  rotation_step: 0.02
  backend: soft
  supersample: 3

window:
  width: 1024
  fullscreen: true
  vsync: false

headless:
  frames: 12
  out_dir: shots

logging:
  level: "debug"
  log_file: "preview.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Preview.Variant != "luxury" {
		t.Errorf("expected variant luxury, got %s", cfg.Preview.Variant)
	}
	if cfg.Preview.MainColor != "#112233" || cfg.Preview.AccentColor != "#445566" {
		t.Errorf("unexpected colors %s/%s", cfg.Preview.MainColor, cfg.Preview.AccentColor)
	}
	if cfg.Preview.Width != 640 {
		t.Errorf("expected width 640, got %d", cfg.Preview.Width)
	}
	if cfg.Preview.Height != 280 {
		t.Errorf("expected default height 280 to survive, got %d", cfg.Preview.Height)
	}
	if cfg.Preview.RotationStep != 0.02 {
		t.Errorf("expected rotation step 0.02, got %f", cfg.Preview.RotationStep)
	}
	if cfg.Preview.Backend != BackendSoft || cfg.Preview.Supersample != 3 {
		t.Errorf("expected soft x3, got %s x%d", cfg.Preview.Backend, cfg.Preview.Supersample)
	}

	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Window.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.Window.Title != "Booth Preview" {
		t.Errorf("expected default title to survive, got %q", cfg.Window.Title)
	}

	if cfg.Headless.Frames != 12 || cfg.Headless.OutDir != "shots" {
		t.Errorf("unexpected headless settings %+v", cfg.Headless)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "preview.log" {
		t.Errorf("expected log file 'preview.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
preview:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Create temp directory and change to it
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create booth.yaml in current directory
	configPath := filepath.Join(tmpDir, "booth.yaml")
	if err := os.WriteFile(configPath, []byte("preview:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find booth.yaml in current directory")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("BOOTH_VARIANT", "eco")
	t.Setenv("BOOTH_ACCENT_COLOR", "#abcdef")
	t.Setenv("BOOTH_BACKEND", "soft")
	t.Setenv("BOOTH_LOG_LEVEL", "warn")

	cfg := Default()
	cfg.Preview.MainColor = "#010203"
	if err := applyEnv(cfg); err != nil {
		t.Fatalf("applyEnv: %v", err)
	}

	if cfg.Preview.Variant != "eco" {
		t.Errorf("expected variant eco, got %s", cfg.Preview.Variant)
	}
	if cfg.Preview.AccentColor != "#abcdef" {
		t.Errorf("expected accent #abcdef, got %s", cfg.Preview.AccentColor)
	}
	if cfg.Preview.MainColor != "#010203" {
		t.Errorf("unset env overwrote main color: %s", cfg.Preview.MainColor)
	}
	if cfg.Preview.Backend != BackendSoft {
		t.Errorf("expected backend soft, got %s", cfg.Preview.Backend)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level warn, got %s", cfg.Logging.Level)
	}
	if cfg.Preview.Width != 400 {
		t.Errorf("untagged field changed: width %d", cfg.Preview.Width)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "booth flags",
			setup: func() {
				*flagVariant = "Tech"
				*flagMain = "#000000"
				*flagAccent = "#ffffff"
			},
			verify: func(cfg *Config) {
				if cfg.Preview.Variant != "Tech" {
					t.Errorf("expected variant Tech, got %s", cfg.Preview.Variant)
				}
				if cfg.Preview.MainColor != "#000000" || cfg.Preview.AccentColor != "#ffffff" {
					t.Errorf("unexpected colors %s/%s", cfg.Preview.MainColor, cfg.Preview.AccentColor)
				}
			},
			teardown: func() {
				*flagVariant = ""
				*flagMain = ""
				*flagAccent = ""
			},
		},
		{
			name: "headless forces soft backend",
			setup: func() {
				*flagHeadless = true
				*flagBackend = "gl"
				*flagFrames = 30
				*flagOut = "out"
			},
			verify: func(cfg *Config) {
				if !cfg.Headless.Enabled {
					t.Error("expected headless to be enabled")
				}
				if cfg.Preview.Backend != BackendSoft {
					t.Errorf("expected soft backend, got %s", cfg.Preview.Backend)
				}
				if cfg.Headless.Frames != 30 || cfg.Headless.OutDir != "out" {
					t.Errorf("unexpected headless settings %+v", cfg.Headless)
				}
			},
			teardown: func() {
				*flagHeadless = false
				*flagBackend = ""
				*flagFrames = 0
				*flagOut = ""
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 800
				*flagHeight = 560
			},
			verify: func(cfg *Config) {
				if cfg.Preview.Width != 800 {
					t.Errorf("expected width 800, got %d", cfg.Preview.Width)
				}
				if cfg.Preview.Height != 560 {
					t.Errorf("expected height 560, got %d", cfg.Preview.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
preview:
  variant: creative
  width: 1600
  height: 900
  main_color: "#111111"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("BOOTH_VARIANT", "corporate")
	t.Setenv("BOOTH_MAIN_COLOR", "#222222")

	// Flags override env and file
	*flagConfig = configPath
	*flagWidth = 1920
	*flagMain = "#333333"
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
		*flagMain = ""
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Preview.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Preview.Width)
	}
	if cfg.Preview.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Preview.Height)
	}
	if cfg.Preview.Variant != "corporate" {
		t.Errorf("expected variant corporate from env, got %s", cfg.Preview.Variant)
	}
	if cfg.Preview.MainColor != "#333333" {
		t.Errorf("expected main color from flag, got %s", cfg.Preview.MainColor)
	}
}

func TestSceneConfig(t *testing.T) {
	tests := []struct {
		name    string
		preview PreviewConfig
		want    scene.Config
		wantErr bool
	}{
		{
			name:    "variant defaults",
			preview: PreviewConfig{Variant: "tech"},
			want:    scene.DefaultConfig(scene.Tech),
		},
		{
			name:    "custom colors",
			preview: PreviewConfig{Variant: "Modern", MainColor: "#9333ea", AccentColor: "06b6d4"},
			want:    scene.Config{Variant: scene.Modern, Main: color.Hex(0x9333ea), Accent: color.Hex(0x06b6d4)},
		},
		{
			name:    "unknown variant",
			preview: PreviewConfig{Variant: "baroque", AccentColor: "#fff"},
			want:    scene.Config{Variant: scene.Modern, Main: scene.DefaultConfig(scene.Modern).Main, Accent: color.Hex(0xffffff)},
			wantErr: true,
		},
		{
			name:    "bad color keeps default",
			preview: PreviewConfig{Variant: "eco", MainColor: "green"},
			want:    scene.DefaultConfig(scene.Eco),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.preview.SceneConfig()
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}

	_, err := PreviewConfig{Variant: "eco", MainColor: "zz", AccentColor: "#12"}.SceneConfig()
	if !errors.Is(err, color.ErrInvalidHex) {
		t.Errorf("expected ErrInvalidHex in %v", err)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Preview.Variant = "minimal"
	cfg.Preview.AccentColor = "#abcdef"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Preview != cfg.Preview {
		t.Errorf("round trip: got %+v, want %+v", loaded.Preview, cfg.Preview)
	}
}
