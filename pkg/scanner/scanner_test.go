package scanner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/Chinkyyadav26/QRcodeDecoder/pkg/annotate"
	"github.com/Chinkyyadav26/QRcodeDecoder/pkg/capture"
	"github.com/Chinkyyadav26/QRcodeDecoder/pkg/display"
	"github.com/Chinkyyadav26/QRcodeDecoder/pkg/frame"
	"github.com/Chinkyyadav26/QRcodeDecoder/pkg/qr"
)

var square = []image.Point{{10, 10}, {50, 10}, {50, 50}, {10, 50}}

// harness bundles a scanner with mock collaborators.
type harness struct {
	out     *bytes.Buffer
	decoder *qr.Mock
	source  *capture.Mock
	sink    *display.Mock
	opens   int
	loads   []string
	image   frame.Frame
	openErr error
	loadErr error
	scanner *Scanner
}

func newHarness(t *testing.T, dets []qr.Detection, keys []int, opts ...Option) *harness {
	t.Helper()
	h := &harness{
		out:     &bytes.Buffer{},
		decoder: qr.NewMock(dets...),
		source:  capture.NewMock(),
		sink:    display.NewMock("", keys...),
		image:   frame.NewMock(100, 100),
	}

	base := []Option{
		WithOutput(h.out),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithOpener(func(cfg capture.Config) (capture.Source, error) {
			h.opens++
			if h.openErr != nil {
				return nil, h.openErr
			}
			return h.source, nil
		}),
		WithImageLoader(func(path string) (frame.Frame, error) {
			h.loads = append(h.loads, path)
			if h.loadErr != nil {
				return nil, h.loadErr
			}
			return h.image, nil
		}),
		WithDisplay(h.sink.Factory()),
	}

	ann := annotate.NewWithWriter(h.decoder, h.out)
	h.scanner = New(ann, append(base, opts...)...)
	return h
}

func frames(n int) []frame.Frame {
	out := make([]frame.Frame, n)
	for i := range out {
		out[i] = frame.NewMock(100, 100)
	}
	return out
}

func TestScanWebcam_DeviceUnavailable(t *testing.T) {
	h := newHarness(t, nil, nil)
	h.openErr = fmt.Errorf("%w: device 0 not opened", capture.ErrDeviceUnavailable)

	err := h.scanner.ScanWebcam(context.Background())

	if !errors.Is(err, capture.ErrDeviceUnavailable) {
		t.Fatalf("expected ErrDeviceUnavailable, got %v", err)
	}
	if !strings.Contains(h.out.String(), "Error: Unable to access the webcam.") {
		t.Errorf("error not reported: %q", h.out.String())
	}
	// The loop must not start
	if h.decoder.CallCount("Decode") != 0 {
		t.Error("decoder should not be called")
	}
	if h.source.Reads() != 0 {
		t.Error("no frame should be read")
	}
	if len(h.sink.Shown()) != 0 || h.sink.Title != "" {
		t.Error("no window should be opened")
	}
}

func TestScanWebcam_QuitKey(t *testing.T) {
	h := newHarness(t, []qr.Detection{{Polygon: square, Payload: []byte("HELLO"), Rect: qr.BoundsOf(square)}},
		[]int{display.NoKey, display.NoKey, 'q'})
	h.source.Frames = frames(5)

	if err := h.scanner.ScanWebcam(context.Background()); err != nil {
		t.Fatalf("ScanWebcam failed: %v", err)
	}

	if h.source.Reads() != 3 {
		t.Errorf("Reads: got %d, want 3", h.source.Reads())
	}
	// No cross-frame deduplication: one line per frame
	if got := strings.Count(h.out.String(), "QR Code Detected: HELLO\n"); got != 3 {
		t.Errorf("reports: got %d, want 3 (%q)", got, h.out.String())
	}
	if !strings.HasPrefix(h.out.String(), "Press 'q' to exit.\n") {
		t.Errorf("missing quit prompt: %q", h.out.String())
	}
	if h.sink.Title != display.TitleWebcam {
		t.Errorf("window title: got %q", h.sink.Title)
	}
	if len(h.sink.Shown()) != 3 {
		t.Errorf("shown: got %d, want 3", len(h.sink.Shown()))
	}
	for i, f := range h.source.Frames[:3] {
		if c := f.(*frame.Mock).Closes(); c != 1 {
			t.Errorf("frame %d closed %d times, want 1", i, c)
		}
	}
	if h.source.Closes() != 1 || h.sink.Closes() != 1 {
		t.Errorf("release: source %d window %d, want 1/1", h.source.Closes(), h.sink.Closes())
	}
	for _, d := range h.sink.Waits() {
		if d != DefaultPollDelay {
			t.Errorf("poll delay: got %v, want %v", d, DefaultPollDelay)
		}
	}
}

func TestScanWebcam_OtherKeysIgnored(t *testing.T) {
	h := newHarness(t, nil, []int{'Q', 'x', 0x100000 | 'q'})
	h.source.Frames = frames(5)

	if err := h.scanner.ScanWebcam(context.Background()); err != nil {
		t.Fatalf("ScanWebcam failed: %v", err)
	}
	if h.source.Reads() != 3 {
		t.Errorf("Reads: got %d, want 3", h.source.Reads())
	}
}

func TestScanWebcam_CustomQuitKey(t *testing.T) {
	h := newHarness(t, nil, []int{'q', 27}, WithQuitKey(27), WithPollDelay(5*time.Millisecond))
	h.source.Frames = frames(5)

	if err := h.scanner.ScanWebcam(context.Background()); err != nil {
		t.Fatalf("ScanWebcam failed: %v", err)
	}
	if h.source.Reads() != 2 {
		t.Errorf("Reads: got %d, want 2", h.source.Reads())
	}
	if w := h.sink.Waits(); len(w) == 0 || w[0] != 5*time.Millisecond {
		t.Errorf("poll delay: got %v", w)
	}
}

func TestScanWebcam_FrameReadError(t *testing.T) {
	h := newHarness(t, nil, nil)
	h.source.Frames = frames(2)

	err := h.scanner.ScanWebcam(context.Background())

	if !errors.Is(err, capture.ErrFrameRead) {
		t.Fatalf("expected ErrFrameRead, got %v", err)
	}
	if !strings.Contains(h.out.String(), "Failed to grab frame.") {
		t.Errorf("read failure not reported: %q", h.out.String())
	}
	if h.decoder.CallCount("Decode") != 2 {
		t.Errorf("Decode calls: got %d, want 2", h.decoder.CallCount("Decode"))
	}
	if h.source.Closes() != 1 || h.sink.Closes() != 1 {
		t.Errorf("release: source %d window %d, want 1/1", h.source.Closes(), h.sink.Closes())
	}
}

func TestScanWebcam_ForeignReadErrorWrapped(t *testing.T) {
	h := newHarness(t, nil, nil)
	h.source.Err = errors.New("usb unplugged")

	err := h.scanner.ScanWebcam(context.Background())
	if !errors.Is(err, capture.ErrFrameRead) {
		t.Errorf("expected ErrFrameRead, got %v", err)
	}
}

func TestScanWebcam_ContextCancelled(t *testing.T) {
	h := newHarness(t, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	h.source.ReadFunc = func(n int) (frame.Frame, error) {
		if n == 1 {
			cancel()
		}
		return frame.NewMock(10, 10), nil
	}

	if err := h.scanner.ScanWebcam(ctx); err != nil {
		t.Fatalf("ScanWebcam failed: %v", err)
	}
	if h.source.Reads() != 2 {
		t.Errorf("Reads: got %d, want 2", h.source.Reads())
	}
	if h.source.Closes() != 1 {
		t.Errorf("camera released %d times, want 1", h.source.Closes())
	}
}

func TestScanWebcam_PayloadErrorContinues(t *testing.T) {
	bad := qr.Detection{Polygon: square, Payload: []byte{0xff}, Rect: qr.BoundsOf(square)}
	h := newHarness(t, []qr.Detection{bad}, []int{display.NoKey, 'q'})
	h.source.Frames = frames(3)

	if err := h.scanner.ScanWebcam(context.Background()); err != nil {
		t.Fatalf("payload errors must not end the loop: %v", err)
	}
	if got := strings.Count(h.out.String(), "Error: "); got != 2 {
		t.Errorf("payload errors reported %d times, want 2 (%q)", got, h.out.String())
	}
	if h.source.Reads() != 2 {
		t.Errorf("Reads: got %d, want 2", h.source.Reads())
	}
}

func TestScanImage(t *testing.T) {
	det := qr.Detection{Polygon: square, Payload: []byte("HELLO"), Rect: qr.BoundsOf(square)}
	h := newHarness(t, []qr.Detection{det}, []int{'z'})

	if err := h.scanner.ScanImage(context.Background(), "code.png"); err != nil {
		t.Fatalf("ScanImage failed: %v", err)
	}

	want := "QR Code Detected: HELLO\nPress any key to close the image.\n"
	if h.out.String() != want {
		t.Errorf("output: got %q, want %q", h.out.String(), want)
	}
	if h.sink.Title != display.TitleImage {
		t.Errorf("window title: got %q", h.sink.Title)
	}
	if shown := h.sink.Shown(); len(shown) != 1 || shown[0] != h.image {
		t.Errorf("shown: got %v", shown)
	}
	if w := h.sink.Waits(); len(w) != 1 || w[0] != 0 {
		t.Errorf("should block for any key once, got waits %v", w)
	}
	if len(h.image.(*frame.Mock).CallsTo("Polyline")) != 1 {
		t.Error("image should be annotated in place")
	}
	if h.sink.Closes() != 1 || h.image.(*frame.Mock).Closes() != 1 {
		t.Error("window and frame should be released once")
	}
	if h.opens != 0 {
		t.Error("image scan must not open the camera")
	}
}

func TestScanImage_LoadError(t *testing.T) {
	h := newHarness(t, nil, nil)
	h.loadErr = fmt.Errorf("%w: no such file", capture.ErrImageLoad)

	err := h.scanner.ScanImage(context.Background(), "/missing.png")

	if !errors.Is(err, capture.ErrImageLoad) {
		t.Fatalf("expected ErrImageLoad, got %v", err)
	}
	if h.out.String() != "Error: Unable to load image at /missing.png\n" {
		t.Errorf("output: got %q", h.out.String())
	}
	// No detection attempted, no window
	if h.decoder.CallCount("Decode") != 0 {
		t.Error("decoder should not be called")
	}
	if h.sink.Title != "" {
		t.Error("no window should be opened")
	}
}

func TestScanImage_NoCodes(t *testing.T) {
	h := newHarness(t, nil, nil)

	if err := h.scanner.ScanImage(context.Background(), "blank.png"); err != nil {
		t.Fatal(err)
	}
	if h.out.String() != "Press any key to close the image.\n" {
		t.Errorf("output: got %q", h.out.String())
	}
	if calls := h.image.(*frame.Mock).Calls(); len(calls) != 0 {
		t.Errorf("blank image should not be drawn on: %+v", calls)
	}
}
