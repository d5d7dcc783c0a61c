// Package display shows annotated frames in a titled window and polls key presses.
package display

import (
	"time"

	"github.com/Chinkyyadav26/QRcodeDecoder/pkg/frame"
)

// Window titles, one per scan mode.
const (
	TitleWebcam = "QR Code Scanner - Webcam"
	TitleImage  = "QR Code Scanner - Image"
)

// NoKey is returned by WaitKey when no key was pressed before the timeout.
const NoKey = -1

// Sink is a display surface for frames.
type Sink interface {
	// Show renders f. The sink does not retain f after returning.
	Show(f frame.Frame) error

	// WaitKey waits up to delay for a key press and returns its code, or NoKey.
	// A zero delay blocks until any key is pressed.
	WaitKey(delay time.Duration) int

	// Close destroys the window. It is safe to call more than once.
	Close() error
}

// Factory creates a sink with the given title.
type Factory func(title string) (Sink, error)

// IsKey reports whether code (as returned by WaitKey) is the key k.
// Only the low byte is compared, as toolkits set modifier bits above it.
func IsKey(code int, k byte) bool {
	return code != NoKey && byte(code&0xFF) == k
}
