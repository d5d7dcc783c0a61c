package annotate

import (
	"encoding/json"
	"fmt"
	"image"
	"io"
	"sync"

	"github.com/Chinkyyadav26/QRcodeDecoder/pkg/qr"
)

// Reporter emits decoded payloads to the console.
type Reporter interface {
	Report(text string, d qr.Detection) error
}

// Output formats accepted by NewReporter.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// NewReporter returns a reporter for format writing to w.
func NewReporter(format string, w io.Writer) (Reporter, error) {
	switch format {
	case "", FormatText:
		return NewTextReporter(w), nil
	case FormatJSON:
		return NewJSONReporter(w), nil
	default:
		return nil, fmt.Errorf("annotate: unknown report format %q", format)
	}
}

// TextReporter prints one "QR Code Detected: <text>" line per detection.
type TextReporter struct {
	w  io.Writer
	mu sync.Mutex
}

// NewTextReporter creates a line-oriented reporter.
func NewTextReporter(w io.Writer) *TextReporter {
	return &TextReporter{w: w}
}

// Report writes the detection line.
func (r *TextReporter) Report(text string, _ qr.Detection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := fmt.Fprintf(r.w, "QR Code Detected: %s\n", text)
	return err
}

// JSONReporter prints one JSON object per detection.
type JSONReporter struct {
	enc *json.Encoder
	mu  sync.Mutex
}

// NewJSONReporter creates a JSON lines reporter.
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{enc: json.NewEncoder(w)}
}

// Record is the JSON shape of one reported detection.
type Record struct {
	Text     string     `json:"text"`
	Polygon  [][2]int   `json:"polygon"`
	Rect     RecordRect `json:"rect"`
	Outlined bool       `json:"outlined"`
}

// RecordRect is the bounding rectangle as left, top, width, height.
type RecordRect struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Report writes the detection record.
func (r *JSONReporter) Report(text string, d qr.Detection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enc.Encode(newRecord(text, d))
}

func newRecord(text string, d qr.Detection) Record {
	polygon := make([][2]int, 0, len(d.Polygon))
	for _, p := range d.Polygon {
		polygon = append(polygon, [2]int{p.X, p.Y})
	}
	return Record{
		Text:     text,
		Polygon:  polygon,
		Rect:     rectOf(d.Rect),
		Outlined: d.Outline().Kind == qr.Quad,
	}
}

func rectOf(r image.Rectangle) RecordRect {
	return RecordRect{Left: r.Min.X, Top: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}
