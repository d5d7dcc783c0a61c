// Package debug provides global debug logging flags
package debug

import (
	"fmt"
	"io"
	"os"
)

// Enabled controls whether debug logging is active
var Enabled bool

// Frames controls whether per-frame logs are shown (decoder hits, frame counters).
// These fire on every webcam iteration; use --debug-frames to enable them.
var Frames bool

// Output receives debug lines. Defaults to stderr so it never mixes with scan results.
var Output io.Writer = os.Stderr

// Log prints a message only if debug mode is enabled
func Log(format string, args ...interface{}) {
	if Enabled {
		fmt.Fprintf(Output, format, args...)
	}
}

// Logln prints a message with newline only if debug mode is enabled
func Logln(msg string) {
	if Enabled {
		fmt.Fprintln(Output, msg)
	}
}

// FrameLog prints a message only if per-frame debug mode is enabled
func FrameLog(format string, args ...interface{}) {
	if Frames {
		fmt.Fprintf(Output, format, args...)
	}
}
