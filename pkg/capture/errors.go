package capture

import "errors"

// Sentinel errors for capture failures. Callers test with errors.Is.
var (
	// ErrDeviceUnavailable is returned when the camera cannot be opened.
	ErrDeviceUnavailable = errors.New("capture: device unavailable")

	// ErrFrameRead is returned when a frame cannot be read from an open camera.
	ErrFrameRead = errors.New("capture: frame read failed")

	// ErrImageLoad is returned when a path does not resolve to a decodable image.
	ErrImageLoad = errors.New("capture: image load failed")

	// ErrClosed is returned when reading from a closed source.
	ErrClosed = errors.New("capture: source closed")
)
