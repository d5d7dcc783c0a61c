// Package capture produces frames from a webcam or a still image file.
// Camera settings follow the same DefaultConfig/Validate/preset pattern as the
// rest of the tool's tunables.
package capture

import "fmt"

// Config holds webcam capture parameters.
// Zero Width, Height or Framerate leave the device's native setting untouched.
type Config struct {
	DeviceID  int `json:"device_id"` // Camera index (0 = first camera)
	Width     int `json:"width"`     // Frame width in pixels
	Height    int `json:"height"`    // Frame height in pixels
	Framerate int `json:"framerate"` // Target FPS
}

// Capture limits accepted by Validate
const (
	MaxWidth     = 7680
	MaxHeight    = 4320
	MaxFramerate = 240
)

// DefaultConfig returns the first camera at its native resolution.
func DefaultConfig() Config {
	return Config{
		DeviceID:  0,
		Width:     0,
		Height:    0,
		Framerate: 0,
	}
}

// Validate checks if the config values are within valid ranges.
// Returns a list of validation errors, or nil if valid.
func (c *Config) Validate() []string {
	var errors []string

	if c.DeviceID < 0 {
		errors = append(errors, "device_id must not be negative")
	}

	// Resolution is either both native or both set
	if (c.Width == 0) != (c.Height == 0) {
		errors = append(errors, "width and height must be set together")
	}
	if c.Width < 0 || c.Width > MaxWidth {
		errors = append(errors, fmt.Sprintf("width must be between 0 and %d", MaxWidth))
	}
	if c.Height < 0 || c.Height > MaxHeight {
		errors = append(errors, fmt.Sprintf("height must be between 0 and %d", MaxHeight))
	}
	if c.Framerate < 0 || c.Framerate > MaxFramerate {
		errors = append(errors, fmt.Sprintf("framerate must be between 0 and %d", MaxFramerate))
	}

	return errors
}

// Native reports whether the config leaves resolution and framerate to the device.
func (c *Config) Native() bool {
	return c.Width == 0 && c.Height == 0 && c.Framerate == 0
}
