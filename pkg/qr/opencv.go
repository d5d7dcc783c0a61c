package qr

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/Chinkyyadav26/QRcodeDecoder/pkg/debug"
	"github.com/Chinkyyadav26/QRcodeDecoder/pkg/frame"
	"gocv.io/x/gocv"
)

// OpenCVDecoder uses OpenCV's QRCodeDetector
type OpenCVDecoder struct {
	detector gocv.QRCodeDetector
	mu       sync.Mutex // Protects the detector
	closed   bool
}

// NewOpenCV creates a decoder backed by gocv.QRCodeDetector.
func NewOpenCV() *OpenCVDecoder {
	return &OpenCVDecoder{detector: gocv.NewQRCodeDetector()}
}

// Decode locates every code in the frame, then decodes each quadrangle.
// Codes that are located but cannot be decoded are skipped, and so are codes
// whose payload is empty.
func (d *OpenCVDecoder) Decode(f frame.Frame) ([]Detection, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, wrapError(BackendOpenCV, errors.New("decoder closed"))
	}

	img, release, err := matOf(f)
	if err != nil {
		return nil, wrapError(BackendOpenCV, err)
	}
	defer release()

	if img.Empty() {
		return nil, wrapError(BackendOpenCV, errors.New("empty image"))
	}

	points := gocv.NewMat()
	defer points.Close()

	if !d.detector.DetectMulti(img, &points) || points.Empty() {
		return nil, nil
	}

	// DetectMulti output: 4 float32 (x, y) corners per code
	coords, err := points.DataPtrFloat32()
	if err != nil {
		return nil, wrapError(BackendOpenCV, fmt.Errorf("read corners: %w", err))
	}

	var detections []Detection
	for i := 0; i+8 <= len(coords); i += 8 {
		quad := coords[i : i+8]
		payload, err := d.decodeQuad(img, quad)
		if err != nil {
			return nil, wrapError(BackendOpenCV, err)
		}
		// OpenCV returns "" both for a failed decode and an empty payload
		if payload == "" {
			debug.FrameLog("🔳 OpenCV located an undecodable code at %v\n", quadPoints(quad))
			continue
		}

		polygon := quadPoints(quad)
		detections = append(detections, Detection{
			Polygon: polygon,
			Payload: []byte(payload),
			Rect:    BoundsOf(polygon),
		})
	}

	if len(detections) > 0 {
		debug.FrameLog("🔳 OpenCV decoded %d code(s)\n", len(detections))
	}

	return detections, nil
}

func (d *OpenCVDecoder) decodeQuad(img gocv.Mat, quad []float32) (string, error) {
	buf := make([]byte, 4*len(quad))
	for j, v := range quad {
		binary.LittleEndian.PutUint32(buf[j*4:], math.Float32bits(v))
	}

	corners, err := gocv.NewMatFromBytes(4, 1, gocv.MatTypeCV32FC2, buf)
	if err != nil {
		return "", fmt.Errorf("build corners: %w", err)
	}
	defer corners.Close()

	straight := gocv.NewMat()
	defer straight.Close()

	return d.detector.Decode(img, corners, &straight), nil
}

// Close releases the detector resources
func (d *OpenCVDecoder) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	return d.detector.Close()
}

func quadPoints(quad []float32) []image.Point {
	pts := make([]image.Point, 0, len(quad)/2)
	for j := 0; j+1 < len(quad); j += 2 {
		pts = append(pts, image.Pt(int(math.Round(float64(quad[j]))), int(math.Round(float64(quad[j+1])))))
	}
	return pts
}

// matOf returns an OpenCV view of f and a func releasing anything allocated for it.
func matOf(f frame.Frame) (gocv.Mat, func(), error) {
	if m, ok := f.(*frame.Mat); ok {
		return m.Mat(), func() {}, nil
	}

	img, err := f.ToImage()
	if err != nil {
		return gocv.Mat{}, nil, err
	}
	m, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return gocv.Mat{}, nil, fmt.Errorf("convert image: %w", err)
	}
	return m, func() { m.Close() }, nil
}
