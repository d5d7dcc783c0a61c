package frame

import (
	"image"
	"image/color"
	"sync"
)

// Mock implements Frame for testing.
// Draw calls are recorded instead of rendered.
type Mock struct {
	// Width and Height size the blank image returned by ToImage.
	Width, Height int

	// Img, when set, is returned by ToImage instead of a blank image.
	Img image.Image

	mu     sync.Mutex
	calls  []DrawCall
	closes int
}

// DrawCall records one Polyline or Text invocation.
type DrawCall struct {
	Method    string // "Polyline" or "Text"
	Points    []image.Point
	Closed    bool
	Text      string
	Org       image.Point
	Scale     float64
	Color     color.RGBA
	Thickness int
}

// NewMock creates a blank mock frame of the given size.
func NewMock(width, height int) *Mock {
	return &Mock{Width: width, Height: height}
}

// Polyline records the call.
func (m *Mock) Polyline(points []image.Point, closed bool, c color.RGBA, thickness int) {
	pts := make([]image.Point, len(points))
	copy(pts, points)
	m.record(DrawCall{Method: "Polyline", Points: pts, Closed: closed, Color: c, Thickness: thickness})
}

// Text records the call.
func (m *Mock) Text(s string, org image.Point, scale float64, c color.RGBA, thickness int) {
	m.record(DrawCall{Method: "Text", Text: s, Org: org, Scale: scale, Color: c, Thickness: thickness})
}

// Size returns the configured size.
func (m *Mock) Size() image.Point {
	if m.Img != nil {
		return m.Img.Bounds().Size()
	}
	return image.Pt(m.Width, m.Height)
}

// ToImage returns Img or a blank RGBA image.
func (m *Mock) ToImage() (image.Image, error) {
	if m.Img != nil {
		return m.Img, nil
	}
	return image.NewRGBA(image.Rect(0, 0, m.Width, m.Height)), nil
}

// Close counts the call.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closes++
	return nil
}

// Calls returns all recorded draw calls.
func (m *Mock) Calls() []DrawCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]DrawCall, len(m.calls))
	copy(result, m.calls)
	return result
}

// CallsTo returns the recorded calls of one method.
func (m *Mock) CallsTo(method string) []DrawCall {
	var result []DrawCall
	for _, c := range m.Calls() {
		if c.Method == method {
			result = append(result, c)
		}
	}
	return result
}

// Closes returns how many times Close was called.
func (m *Mock) Closes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closes
}

// Reset clears recorded calls.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
	m.closes = 0
}

func (m *Mock) record(c DrawCall) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, c)
}
