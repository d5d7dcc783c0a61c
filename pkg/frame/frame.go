// Package frame defines the raster a scan iteration works on.
//
// A Frame is owned by the iteration that produced it: it is annotated in place,
// shown, and then closed. Nothing holds on to a frame across iterations.
package frame

import (
	"image"
	"image/color"
)

// Green is the high-visibility color used for outlines and overlay text.
var Green = color.RGBA{R: 0, G: 255, B: 0, A: 255}

// Canvas is a surface annotations are drawn onto.
type Canvas interface {
	// Polyline draws line segments through points in order.
	// When closed is true the last point is joined back to the first.
	Polyline(points []image.Point, closed bool, c color.RGBA, thickness int)

	// Text draws s with its bottom-left corner at org.
	Text(s string, org image.Point, scale float64, c color.RGBA, thickness int)
}

// Frame is a single captured or loaded image.
type Frame interface {
	Canvas

	// Size returns the frame width (X) and height (Y) in pixels.
	Size() image.Point

	// ToImage returns a copy of the pixels as a Go image.
	ToImage() (image.Image, error)

	// Close releases the pixel buffer. Calling Close more than once is safe.
	Close() error
}
