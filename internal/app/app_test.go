package app

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/booth-preview/internal/config"
	"github.com/Faultbox/booth-preview/internal/preview/color"
	"github.com/Faultbox/booth-preview/internal/preview/scene"
)

func TestRenderFrames(t *testing.T) {
	cfg := config.Default()
	cfg.Preview.Width = 120
	cfg.Preview.Height = 84
	cfg.Preview.Supersample = 1
	cfg.Preview.Variant = "luxury"
	cfg.Headless.Frames = 3
	cfg.Headless.OutDir = filepath.Join(t.TempDir(), "frames")

	paths, err := RenderFrames(cfg)
	if err != nil {
		t.Fatalf("RenderFrames: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("wrote %d frames, want 3", len(paths))
	}
	for i, p := range paths {
		if want := filepath.Join(cfg.Headless.OutDir, fmt.Sprintf("booth_%04d.png", i)); p != want {
			t.Errorf("frame %d path = %s, want %s", i, p, want)
		}
	}

	f, err := os.Open(paths[2])
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 84 {
		t.Errorf("frame size = %v, want 120x84", b)
	}
}

func TestRenderFramesEmptyTarget(t *testing.T) {
	cfg := config.Default()
	cfg.Preview.Width = 0
	cfg.Headless.OutDir = t.TempDir()

	if _, err := RenderFrames(cfg); err == nil {
		t.Error("expected an error for an empty canvas")
	}
}

func TestNextAccent(t *testing.T) {
	vs := scene.Variants()
	_, first := vs[0].DefaultColors()
	_, second := vs[1].DefaultColors()
	_, last := vs[len(vs)-1].DefaultColors()

	if got := NextAccent(first); got != second {
		t.Errorf("NextAccent(%v) = %v, want %v", first, got, second)
	}
	if got := NextAccent(last); got != first {
		t.Errorf("NextAccent(%v) = %v, want wrap to %v", last, got, first)
	}
	if got := NextAccent(color.Hex(0x123456)); got != first {
		t.Errorf("NextAccent(custom) = %v, want %v", got, first)
	}
}
