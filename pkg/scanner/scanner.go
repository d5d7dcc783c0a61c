// Package scanner runs the capture -> annotate -> display loop.
//
// The loop is single-threaded and synchronous: it blocks on each frame read and
// each key poll. The camera handle and the window are owned by one scan and
// released on every exit path.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/Chinkyyadav26/QRcodeDecoder/internal/log"
	"github.com/Chinkyyadav26/QRcodeDecoder/pkg/annotate"
	"github.com/Chinkyyadav26/QRcodeDecoder/pkg/capture"
	"github.com/Chinkyyadav26/QRcodeDecoder/pkg/debug"
	"github.com/Chinkyyadav26/QRcodeDecoder/pkg/display"
	"github.com/Chinkyyadav26/QRcodeDecoder/pkg/frame"
	"github.com/google/uuid"
)

// Defaults
const (
	DefaultQuitKey   = 'q'
	DefaultPollDelay = time.Millisecond
)

// Scanner wires a capture source, an annotator and a display sink.
type Scanner struct {
	annotator *annotate.Annotator
	camera    capture.Config
	open      capture.Opener
	load      capture.ImageLoader
	display   display.Factory
	out       io.Writer
	quitKey   byte
	pollDelay time.Duration
	logger    *slog.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithCamera sets the webcam configuration.
func WithCamera(cfg capture.Config) Option {
	return func(s *Scanner) {
		s.camera = cfg
	}
}

// WithOpener replaces the camera opener (default capture.Open).
func WithOpener(open capture.Opener) Option {
	return func(s *Scanner) {
		s.open = open
	}
}

// WithImageLoader replaces the image loader (default capture.LoadImage).
func WithImageLoader(load capture.ImageLoader) Option {
	return func(s *Scanner) {
		s.load = load
	}
}

// WithDisplay replaces the display factory (default display.Open).
func WithDisplay(f display.Factory) Option {
	return func(s *Scanner) {
		s.display = f
	}
}

// WithOutput sets the console writer for prompts and errors (default stdout).
func WithOutput(w io.Writer) Option {
	return func(s *Scanner) {
		s.out = w
	}
}

// WithQuitKey sets the key that ends the webcam loop.
func WithQuitKey(k byte) Option {
	return func(s *Scanner) {
		s.quitKey = k
	}
}

// WithPollDelay sets how long each webcam iteration waits for a key.
func WithPollDelay(d time.Duration) Option {
	return func(s *Scanner) {
		s.pollDelay = d
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scanner) {
		s.logger = l
	}
}

// New creates a scanner around ann.
func New(ann *annotate.Annotator, opts ...Option) *Scanner {
	s := &Scanner{
		annotator: ann,
		camera:    capture.DefaultConfig(),
		open:      capture.Open,
		load:      capture.LoadImage,
		display:   display.Open,
		out:       os.Stdout,
		quitKey:   DefaultQuitKey,
		pollDelay: DefaultPollDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.L()
	}
	if s.pollDelay <= 0 {
		s.pollDelay = DefaultPollDelay
	}
	return s
}

// ScanWebcam streams frames from the camera until the quit key is pressed,
// a frame read fails, or ctx is cancelled.
//
// It returns an error wrapping capture.ErrDeviceUnavailable if the camera cannot
// be opened (the loop never starts) and capture.ErrFrameRead on a read failure.
// Quitting and cancellation return nil.
func (s *Scanner) ScanWebcam(ctx context.Context) error {
	logger := s.session("webcam")

	src, err := s.open(s.camera)
	if err != nil {
		fmt.Fprintln(s.out, "Error: Unable to access the webcam.")
		logger.Error("open camera", "device", s.camera.DeviceID, "error", err)
		return err
	}
	defer func() {
		if err := src.Close(); err != nil {
			logger.Warn("release camera", "error", err)
		}
	}()

	sink, err := s.display(display.TitleWebcam)
	if err != nil {
		logger.Error("open window", "error", err)
		return err
	}
	defer sink.Close()

	fmt.Fprintf(s.out, "Press '%c' to exit.\n", s.quitKey)
	logger.Info("scanning", "device", s.camera.DeviceID)

	var frames, reported int
	defer func() {
		logger.Info("scan finished", "frames", frames, "reported", reported)
	}()

	for {
		select {
		case <-ctx.Done():
			logger.Info("scan cancelled")
			return nil
		default:
		}

		f, err := src.Read()
		if err != nil {
			fmt.Fprintln(s.out, "Failed to grab frame.")
			logger.Error("read frame", "frame", frames, "error", err)
			if errors.Is(err, capture.ErrFrameRead) {
				return err
			}
			return fmt.Errorf("%w: %v", capture.ErrFrameRead, err)
		}
		frames++

		reported += s.process(logger, f, frames)

		if err := sink.Show(f); err != nil {
			logger.Warn("show frame", "frame", frames, "error", err)
		}
		f.Close()

		if display.IsKey(sink.WaitKey(s.pollDelay), s.quitKey) {
			return nil
		}
	}
}

// ScanImage annotates the image at path, shows it, and waits for any key.
//
// It returns an error wrapping capture.ErrImageLoad if the image cannot be loaded;
// no detection is attempted in that case.
func (s *Scanner) ScanImage(ctx context.Context, path string) error {
	logger := s.session("image").With("path", path)

	f, err := s.load(path)
	if err != nil {
		fmt.Fprintf(s.out, "Error: Unable to load image at %s\n", path)
		logger.Error("load image", "error", err)
		return err
	}
	defer f.Close()

	reported := s.process(logger, f, 1)
	logger.Info("image scanned", "reported", reported)

	sink, err := s.display(display.TitleImage)
	if err != nil {
		logger.Error("open window", "error", err)
		return err
	}
	defer sink.Close()

	if err := sink.Show(f); err != nil {
		logger.Warn("show image", "error", err)
	}

	fmt.Fprintln(s.out, "Press any key to close the image.")
	if ctx.Err() != nil {
		return nil
	}
	sink.WaitKey(0)
	return nil
}

// process annotates one frame and returns how many detections were reported.
// Payload errors are shown and logged but never stop the scan.
func (s *Scanner) process(logger *slog.Logger, f frame.Frame, n int) int {
	result, err := s.annotator.Annotate(f)
	debug.FrameLog("🖼️  frame %d: %d code(s), %d outlined\n", n, len(result.Annotations), result.Outlined())

	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		logger.Warn("annotate frame", "frame", n, "error", err)
	}
	return result.Reported()
}

func (s *Scanner) session(mode string) *slog.Logger {
	return s.logger.With("session", uuid.NewString(), "mode", mode)
}
