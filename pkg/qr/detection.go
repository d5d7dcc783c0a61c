// Package qr locates and decodes QR codes in frames.
//
// Decoding itself is delegated to third-party engines (OpenCV or ZXing); this
// package only adapts their results to Detection.
package qr

import (
	"image"

	"github.com/Chinkyyadav26/QRcodeDecoder/pkg/frame"
)

// Detection represents one located and decoded QR code within a frame.
type Detection struct {
	Polygon []image.Point   // Boundary points in decoder order (typically 4)
	Payload []byte          // Encoded message
	Rect    image.Rectangle // Axis-aligned bounding rectangle
}

// OutlineKind tags whether a detection can be outlined.
type OutlineKind int

const (
	// NoOutline means the polygon is not a quadrilateral and is left undrawn.
	NoOutline OutlineKind = iota
	// Quad means the polygon has exactly four points.
	Quad
)

// String returns the kind name.
func (k OutlineKind) String() string {
	if k == Quad {
		return "quad"
	}
	return "none"
}

// Outline is the drawable boundary of a detection.
type Outline struct {
	Kind   OutlineKind
	Points []image.Point // Set only for Quad
}

// Outline classifies the polygon. Anything other than 4 points (a partial
// detection, or 5+ points from perspective distortion) yields NoOutline.
func (d Detection) Outline() Outline {
	if len(d.Polygon) != 4 {
		return Outline{Kind: NoOutline}
	}
	pts := make([]image.Point, 4)
	copy(pts, d.Polygon)
	return Outline{Kind: Quad, Points: pts}
}

// Left returns the bounding rectangle's left edge.
func (d Detection) Left() int { return d.Rect.Min.X }

// Top returns the bounding rectangle's top edge.
func (d Detection) Top() int { return d.Rect.Min.Y }

// Decoder is the interface for QR decoding backends.
type Decoder interface {
	// Decode finds QR codes in the frame. An empty result is not an error.
	Decode(f frame.Frame) ([]Detection, error)

	// Close releases resources
	Close() error
}

// Backend names accepted by New.
const (
	BackendOpenCV = "opencv"
	BackendZXing  = "zxing"
)

// Backends lists the available decoder backends, default first.
func Backends() []string {
	return []string{BackendOpenCV, BackendZXing}
}

// New creates a decoder by backend name. An empty name selects OpenCV.
func New(name string) (Decoder, error) {
	switch name {
	case "", BackendOpenCV:
		return NewOpenCV(), nil
	case BackendZXing:
		return NewZXing(), nil
	default:
		return nil, &BackendError{Name: name}
	}
}

// BoundsOf returns the smallest rectangle containing all points.
// The rectangle is inclusive of the outermost points.
func BoundsOf(points []image.Point) image.Rectangle {
	if len(points) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		if p.X < r.Min.X {
			r.Min.X = p.X
		}
		if p.Y < r.Min.Y {
			r.Min.Y = p.Y
		}
		if p.X > r.Max.X {
			r.Max.X = p.X
		}
		if p.Y > r.Max.Y {
			r.Max.Y = p.Y
		}
	}
	return r
}
