package frame

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"gocv.io/x/gocv"
)

// Mat is a Frame backed by an OpenCV matrix in BGR order.
type Mat struct {
	mat    gocv.Mat
	mu     sync.Mutex
	closed bool
}

// FromMat wraps m. The returned frame takes ownership of m.
func FromMat(m gocv.Mat) *Mat {
	return &Mat{mat: m}
}

// FromImage copies img into a new OpenCV-backed frame.
func FromImage(img image.Image) (*Mat, error) {
	m, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("frame: convert image: %w", err)
	}
	return FromMat(m), nil
}

// Mat returns the underlying matrix. It stays owned by the frame.
func (f *Mat) Mat() gocv.Mat {
	return f.mat
}

// Polyline draws the points onto the matrix.
func (f *Mat) Polyline(points []image.Point, closed bool, c color.RGBA, thickness int) {
	if len(points) == 0 {
		return
	}
	pv := gocv.NewPointsVectorFromPoints([][]image.Point{points})
	defer pv.Close()
	gocv.Polylines(&f.mat, pv, closed, c, thickness)
}

// Text renders s with the Hershey simplex font.
func (f *Mat) Text(s string, org image.Point, scale float64, c color.RGBA, thickness int) {
	gocv.PutText(&f.mat, s, org, gocv.FontHersheySimplex, scale, c, thickness)
}

// Size returns the matrix dimensions.
func (f *Mat) Size() image.Point {
	return image.Pt(f.mat.Cols(), f.mat.Rows())
}

// ToImage converts the matrix to a Go image.
func (f *Mat) ToImage() (image.Image, error) {
	img, err := f.mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("frame: to image: %w", err)
	}
	return img, nil
}

// Close releases the matrix once.
func (f *Mat) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true
	return f.mat.Close()
}
