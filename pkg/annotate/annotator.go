// Package annotate draws QR detections onto frames and reports their payloads.
//
// Annotation is memoryless across frames: a code that stays in view is reported
// once per frame it appears in.
package annotate

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/Chinkyyadav26/QRcodeDecoder/pkg/frame"
	"github.com/Chinkyyadav26/QRcodeDecoder/pkg/qr"
)

// Annotation is the outcome for one detection.
type Annotation struct {
	Detection qr.Detection
	Outline   qr.Outline
	Text      string // Empty when Err is set
	Err       error  // Payload decode failure, if any
}

// Result collects the annotations of one frame in decoder order.
type Result struct {
	Annotations []Annotation
}

// Reported returns the number of detections whose text was reported.
func (r Result) Reported() int {
	n := 0
	for _, a := range r.Annotations {
		if a.Err == nil {
			n++
		}
	}
	return n
}

// Outlined returns the number of detections that had a polygon drawn.
func (r Result) Outlined() int {
	n := 0
	for _, a := range r.Annotations {
		if a.Outline.Kind == qr.Quad {
			n++
		}
	}
	return n
}

// Annotator detects, draws and reports QR codes within a single frame.
type Annotator struct {
	decoder  qr.Decoder
	reporter Reporter
	style    Style
	policy   qr.PayloadPolicy
}

// Option configures an Annotator.
type Option func(*Annotator)

// WithReporter sets where decoded text is reported.
func WithReporter(r Reporter) Option {
	return func(a *Annotator) {
		a.reporter = r
	}
}

// WithStyle overrides the drawing style.
func WithStyle(s Style) Option {
	return func(a *Annotator) {
		a.style = s
	}
}

// WithPayloadPolicy sets how non-UTF-8 payloads are handled.
func WithPayloadPolicy(p qr.PayloadPolicy) Option {
	return func(a *Annotator) {
		a.policy = p
	}
}

// New creates an annotator using dec. Reports go to stdout unless overridden.
func New(dec qr.Decoder, opts ...Option) *Annotator {
	a := &Annotator{
		decoder:  dec,
		reporter: NewTextReporter(os.Stdout),
		style:    DefaultStyle(),
		policy:   qr.PayloadStrict,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewWithWriter is shorthand for a text-reporting annotator writing to w.
func NewWithWriter(dec qr.Decoder, w io.Writer, opts ...Option) *Annotator {
	return New(dec, append([]Option{WithReporter(NewTextReporter(w))}, opts...)...)
}

// Annotate decodes f, draws every detection onto it in place and reports its text.
//
// A decoder failure is returned before anything is drawn. Payload decode
// failures are per detection: the outline is still drawn, the text is neither
// reported nor drawn, and the remaining detections are processed. Those
// failures are returned joined.
func (a *Annotator) Annotate(f frame.Frame) (Result, error) {
	detections, err := a.decoder.Decode(f)
	if err != nil {
		return Result{}, fmt.Errorf("annotate: %w", err)
	}

	result := Result{Annotations: make([]Annotation, 0, len(detections))}
	var errs []error

	for _, d := range detections {
		ann := Annotation{Detection: d, Outline: d.Outline()}

		switch ann.Outline.Kind {
		case qr.Quad:
			f.Polyline(ann.Outline.Points, true, a.style.Color, a.style.LineWidth)
		case qr.NoOutline:
			// Text is still reported below
		}

		text, err := qr.DecodePayload(d.Payload, a.policy)
		if err != nil {
			ann.Err = err
			errs = append(errs, err)
			result.Annotations = append(result.Annotations, ann)
			continue
		}
		ann.Text = text

		if err := a.reporter.Report(text, d); err != nil {
			errs = append(errs, fmt.Errorf("annotate: report: %w", err))
		}

		org := image.Pt(d.Left(), d.Top()-a.style.TextOffset)
		f.Text(text, org, a.style.FontScale, a.style.Color, a.style.TextThickness)

		result.Annotations = append(result.Annotations, ann)
	}

	return result, errors.Join(errs...)
}
