package capture

import "github.com/Chinkyyadav26/QRcodeDecoder/pkg/frame"

// Source produces frames until it fails or is closed.
type Source interface {
	// Read returns the next frame. The caller owns it and must Close it.
	Read() (frame.Frame, error)

	// Close releases the device. It is safe to call more than once.
	Close() error
}

// Opener opens a camera source.
type Opener func(cfg Config) (Source, error)

// ImageLoader loads a single frame from a path.
type ImageLoader func(path string) (frame.Frame, error)
