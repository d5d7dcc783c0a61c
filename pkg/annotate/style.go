package annotate

import (
	"image/color"

	"github.com/Chinkyyadav26/QRcodeDecoder/pkg/frame"
)

// Style controls how detections are drawn.
type Style struct {
	Color         color.RGBA
	LineWidth     int     // Outline thickness in pixels
	FontScale     float64 // Hershey font scale
	TextThickness int
	TextOffset    int // Pixels above the bounding rectangle's top edge
}

// DefaultStyle returns green outlines of width 2 and text 10px above the code.
func DefaultStyle() Style {
	return Style{
		Color:         frame.Green,
		LineWidth:     2,
		FontScale:     0.9,
		TextThickness: 2,
		TextOffset:    10,
	}
}
