// Package debug provides frame capture utilities.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// ScreenshotCapture writes rendered frames as PNG files.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	now       func() time.Time
}

// NewScreenshotCapture creates a capture handler writing into outputDir.
func NewScreenshotCapture(outputDir, prefix string) *ScreenshotCapture {
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
	}
}

// GenerateFilename returns a timestamped screenshot path.
func (sc *ScreenshotCapture) GenerateFilename() string {
	timestamp := sc.now().Format("2006-01-02_15-04-05.000")
	return sc.path(fmt.Sprintf("%s_%s.png", sc.prefix, timestamp))
}

// FrameFilename returns the path for the n-th frame of a sequence.
func (sc *ScreenshotCapture) FrameFilename(n int) string {
	return sc.path(fmt.Sprintf("%s_%04d.png", sc.prefix, n))
}

func (sc *ScreenshotCapture) path(name string) string {
	if sc.outputDir != "" {
		return filepath.Join(sc.outputDir, name)
	}
	return name
}

// CaptureFromImage writes img under a timestamped name.
func (sc *ScreenshotCapture) CaptureFromImage(img image.Image) (string, error) {
	filename := sc.GenerateFilename()
	return filename, sc.Save(img, filename)
}

// CaptureFrame writes img as the n-th frame of a sequence.
func (sc *ScreenshotCapture) CaptureFrame(img image.Image, n int) (string, error) {
	filename := sc.FrameFilename(n)
	return filename, sc.Save(img, filename)
}

// CaptureFromPixels writes a bottom-up RGBA buffer, as read back from
// OpenGL, under a timestamped name.
func (sc *ScreenshotCapture) CaptureFromPixels(pixels []byte, width, height int) (string, error) {
	img, err := FlipPixels(pixels, width, height)
	if err != nil {
		return "", err
	}
	return sc.CaptureFromImage(img)
}

// FlipPixels converts a bottom-up RGBA buffer into a top-down image.
func FlipPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		srcOffset := (height - 1 - y) * rowSize
		dstOffset := y * img.Stride
		copy(img.Pix[dstOffset:dstOffset+rowSize], pixels[srcOffset:srcOffset+rowSize])
	}
	return img, nil
}

// Save encodes img as PNG at filename, creating the output directory.
func (sc *ScreenshotCapture) Save(img image.Image, filename string) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return file.Close()
}
