// Package config provides configuration for the qrscan command.
package config

import (
	"fmt"
	"slices"

	"github.com/Chinkyyadav26/QRcodeDecoder/pkg/annotate"
	"github.com/Chinkyyadav26/QRcodeDecoder/pkg/capture"
	"github.com/Chinkyyadav26/QRcodeDecoder/pkg/qr"
)

// Scan modes.
const (
	ModeMenu   = ""       // Ask interactively
	ModeWebcam = "webcam" // Live camera stream
	ModeImage  = "image"  // Single still image
)

// Config holds all qrscan settings. Flags default to DefaultConfig.
type Config struct {
	Mode      string `json:"mode"`
	ImagePath string `json:"image_path"` // asked for when empty in image mode

	// === Capture ===
	DeviceID int    `json:"device_id"`
	Preset   string `json:"preset"`

	// === Decoding ===
	Decoder string `json:"decoder"` // qr backend name
	Payload string `json:"payload"` // strict, replace, latin1

	// === Console ===
	Format  string `json:"format"`   // text or json
	QuitKey string `json:"quit_key"` // single character

	// === Logging ===
	LogLevel    string `json:"log_level"`
	LogFormat   string `json:"log_format"`
	Debug       bool   `json:"debug"`
	DebugFrames bool   `json:"debug_frames"`
}

// DefaultConfig returns the interactive defaults.
func DefaultConfig() Config {
	return Config{
		Mode:      ModeMenu,
		DeviceID:  0,
		Preset:    capture.PresetDefault,
		Decoder:   qr.BackendOpenCV,
		Payload:   qr.PayloadStrict.String(),
		Format:    annotate.FormatText,
		QuitKey:   "q",
		LogLevel:  "warn",
		LogFormat: "text",
	}
}

// Validate checks if the config values are valid.
// Returns a list of validation errors, or nil if valid.
func (c *Config) Validate() []string {
	var errors []string

	if !slices.Contains([]string{ModeMenu, ModeWebcam, ModeImage}, c.Mode) {
		errors = append(errors, "mode must be webcam or image")
	}
	if c.DeviceID < 0 {
		errors = append(errors, "device must not be negative")
	}
	if capture.GetPreset(c.Preset) == nil {
		errors = append(errors, fmt.Sprintf("preset must be one of %v", capture.PresetNames()))
	}
	if !slices.Contains(qr.Backends(), c.Decoder) {
		errors = append(errors, fmt.Sprintf("decoder must be one of %v", qr.Backends()))
	}
	if _, err := qr.ParsePayloadPolicy(c.Payload); err != nil {
		errors = append(errors, "payload must be strict, replace or latin1")
	}
	if c.Format != annotate.FormatText && c.Format != annotate.FormatJSON {
		errors = append(errors, "format must be text or json")
	}
	if len(c.QuitKey) != 1 {
		errors = append(errors, "quit key must be a single character")
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errors = append(errors, "log format must be text or json")
	}

	return errors
}

// Camera returns the capture config for the selected preset and device.
func (c *Config) Camera() capture.Config {
	cam := capture.DefaultConfig()
	if p := capture.GetPreset(c.Preset); p != nil {
		cam = *p
	}
	cam.DeviceID = c.DeviceID
	return cam
}

// PayloadPolicy returns the parsed payload policy, strict if invalid.
func (c *Config) PayloadPolicy() qr.PayloadPolicy {
	p, err := qr.ParsePayloadPolicy(c.Payload)
	if err != nil {
		return qr.PayloadStrict
	}
	return p
}

// Quit returns the quit key byte.
func (c *Config) Quit() byte {
	if c.QuitKey == "" {
		return 'q'
	}
	return c.QuitKey[0]
}
