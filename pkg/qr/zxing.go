package qr

import (
	"errors"
	"image"
	"math"
	"sync"

	"github.com/Chinkyyadav26/QRcodeDecoder/pkg/debug"
	"github.com/Chinkyyadav26/QRcodeDecoder/pkg/frame"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/multi/qrcode"
)

// ZXingDecoder is a pure-Go decoder built on gozxing's multi QR reader.
//
// ZXing reports finder-pattern centers rather than code corners. The polygon
// is rebuilt from them as the four outer corners of the symbol, clockwise from
// top-left, so it matches what the OpenCV backend returns.
type ZXingDecoder struct {
	reader multiReader
	hints  map[gozxing.DecodeHintType]interface{}
	mu     sync.Mutex
}

type multiReader interface {
	DecodeMultiple(bmp *gozxing.BinaryBitmap, hints map[gozxing.DecodeHintType]interface{}) ([]*gozxing.Result, error)
}

// NewZXing creates a gozxing-backed decoder.
func NewZXing() *ZXingDecoder {
	return &ZXingDecoder{
		reader: qrcode.NewQRCodeMultiReader(),
		hints: map[gozxing.DecodeHintType]interface{}{
			gozxing.DecodeHintType_TRY_HARDER: true,
		},
	}
}

// Decode converts the frame to a Go image and scans it for QR codes.
func (d *ZXingDecoder) Decode(f frame.Frame) ([]Detection, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	img, err := f.ToImage()
	if err != nil {
		return nil, wrapError(BackendZXing, err)
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return nil, wrapError(BackendZXing, err)
	}

	results, err := d.reader.DecodeMultiple(bmp, d.hints)
	if err != nil {
		var notFound gozxing.NotFoundException
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, wrapError(BackendZXing, err)
	}

	// Cached by the bitmap. On error corners fall back to an estimated module size
	black, _ := bmp.GetBlackMatrix()

	detections := make([]Detection, 0, len(results))
	for _, r := range results {
		polygon := symbolCorners(r.GetResultPoints(), black)
		detections = append(detections, Detection{
			Polygon: polygon,
			Payload: []byte(r.GetText()),
			Rect:    BoundsOf(polygon),
		})
	}

	if len(detections) > 0 {
		debug.FrameLog("🔳 ZXing decoded %d code(s)\n", len(detections))
	}

	return detections, nil
}

// Close is a no-op; gozxing holds no native resources.
func (d *ZXingDecoder) Close() error {
	return nil
}

type vec struct{ x, y float64 }

func (a vec) add(b vec) vec { return vec{a.x + b.x, a.y + b.y} }
func (a vec) sub(b vec) vec { return vec{a.x - b.x, a.y - b.y} }
func (a vec) scale(k float64) vec { return vec{a.x * k, a.y * k} }
func (a vec) len() float64 { return math.Hypot(a.x, a.y) }
func (a vec) point() image.Point { return image.Pt(int(math.Round(a.x)), int(math.Round(a.y))) }
func vecOf(p gozxing.ResultPoint) vec { return vec{p.GetX(), p.GetY()} }

// finderHalfWidth is the distance in modules from a finder center to the
// symbol edge.
const finderHalfWidth = 3.5

// symbolCorners turns ZXing result points (bottom-left, top-left and top-right
// finder centers, optionally followed by the alignment pattern) into the
// symbol's outer corners: top-left, top-right, bottom-right, bottom-left.
// Fewer than three points are returned as they are.
func symbolCorners(points []gozxing.ResultPoint, black *gozxing.BitMatrix) []image.Point {
	if len(points) < 3 || points[0] == nil || points[1] == nil || points[2] == nil {
		return resultPolygon(points)
	}
	bl, tl, tr := vecOf(points[0]), vecOf(points[1]), vecOf(points[2])

	across, down := tr.sub(tl), bl.sub(tl)
	if across.len() == 0 || down.len() == 0 {
		return resultPolygon(points)
	}
	u, v := across.scale(1/across.len()), down.scale(1/down.len())

	su := moduleSize(black, u, tl, tr)
	if su == 0 {
		su = across.len() / (minDimension - 7)
	}
	sv := moduleSize(black, v, tl, bl)
	if sv == 0 {
		sv = down.len() / (minDimension - 7)
	}
	du, dv := u.scale(finderHalfWidth*su), v.scale(finderHalfWidth*sv)

	br := tr.add(bl).sub(tl)
	return []image.Point{
		tl.sub(du).sub(dv).point(),
		tr.add(du).sub(dv).point(),
		br.add(du).add(dv).point(),
		bl.sub(du).add(dv).point(),
	}
}

// minDimension is the module count of a version 1 symbol.
const minDimension = 21

// moduleSize measures the finder patterns at the given centers along dir and
// returns the mean module size in pixels, or 0 if none could be measured.
func moduleSize(black *gozxing.BitMatrix, dir vec, centers ...vec) float64 {
	if black == nil {
		return 0
	}
	var sum float64
	var n int
	for _, c := range centers {
		fwd, back := finderExtent(black, c, dir), finderExtent(black, c, dir.scale(-1))
		if fwd == 0 || back == 0 {
			continue
		}
		sum += float64(fwd+back+1) / 7
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// finderExtent walks from a finder center along dir through the dark core,
// the light ring and the dark outer ring. It returns the distance to the last
// dark pixel of the outer ring, or 0 if that pattern is not found.
func finderExtent(black *gozxing.BitMatrix, c, dir vec) int {
	const (
		core = iota
		ring
		outer
	)
	w, h := black.GetWidth(), black.GetHeight()
	state, last := core, 0
	for k := 1; k < w+h; k++ {
		p := c.add(dir.scale(float64(k))).point()
		if p.X < 0 || p.Y < 0 || p.X >= w || p.Y >= h {
			break
		}
		dark := black.Get(p.X, p.Y)
		switch {
		case state == core && !dark:
			state = ring
		case state == ring && dark:
			state = outer
		case state == outer && !dark:
			return last
		}
		if dark {
			last = k
		}
	}
	if state == outer {
		return last
	}
	return 0
}

func resultPolygon(points []gozxing.ResultPoint) []image.Point {
	polygon := make([]image.Point, 0, len(points))
	for _, p := range points {
		if p == nil {
			continue
		}
		polygon = append(polygon, image.Pt(int(math.Round(p.GetX())), int(math.Round(p.GetY()))))
	}
	return polygon
}
