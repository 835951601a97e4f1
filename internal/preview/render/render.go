// Package render defines the contract between the preview and its drawing
// backends.
//
// A Backend opens a Surface against a host-owned Target. The Surface owns
// every backend resource (buffers, programs, pixel storage) and frees them
// in Release; nothing is left to the garbage collector.
package render

import (
	"errors"

	"github.com/Faultbox/booth-preview/internal/engine/camera"
	"github.com/Faultbox/booth-preview/internal/preview/scene"
)

var (
	// ErrUnavailable means the backend cannot render in this environment
	// (no GL context, unsupported target).
	ErrUnavailable = errors.New("render backend unavailable")

	// ErrReleased is returned by surface operations after Release.
	ErrReleased = errors.New("surface released")
)

// DefaultWidth and DefaultHeight are the preview's logical size.
const (
	DefaultWidth  = 400
	DefaultHeight = 280
)

// Target is an opaque drawing target owned by the host UI.
type Target interface {
	Size() (width, height int)
}

// Backend creates surfaces bound to targets.
type Backend interface {
	Name() string
	Open(target Target) (Surface, error)
}

// Surface renders scenes into its target.
type Surface interface {
	// Upload prepares geometry for every node of s, replacing whatever was
	// uploaded before. Color changes never require a new upload.
	Upload(s *scene.Scene) error

	// Draw renders s through cam.
	Draw(s *scene.Scene, cam *camera.Camera) error

	// Stats reports resource counters.
	Stats() Stats

	// Release frees all resources. Repeat calls return nil.
	Release() error
}

// Stats counts surface work.
type Stats struct {
	Uploads   int // Upload calls
	Meshes    int // distinct meshes currently resident
	Allocated int // meshes ever tessellated/allocated
	Frames    int // successful Draw calls
}
