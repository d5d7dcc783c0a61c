package capture

import (
	"fmt"
	"sync"

	"github.com/Chinkyyadav26/QRcodeDecoder/pkg/debug"
	"github.com/Chinkyyadav26/QRcodeDecoder/pkg/frame"
	"gocv.io/x/gocv"
)

// Webcam streams frames from a camera device.
// The device handle is owned exclusively by the Webcam and released once by Close.
type Webcam struct {
	cap    *gocv.VideoCapture
	config Config
	mu     sync.Mutex
	closed bool
}

// OpenWebcam opens the camera described by cfg.
// It fails with ErrDeviceUnavailable if the device cannot be opened.
func OpenWebcam(cfg Config) (*Webcam, error) {
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("capture: invalid config: %v", errs)
	}

	vc, err := gocv.OpenVideoCapture(cfg.DeviceID)
	if err != nil {
		return nil, fmt.Errorf("%w: device %d: %v", ErrDeviceUnavailable, cfg.DeviceID, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("%w: device %d not opened", ErrDeviceUnavailable, cfg.DeviceID)
	}

	if cfg.Width > 0 && cfg.Height > 0 {
		vc.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
		vc.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))
	}
	if cfg.Framerate > 0 {
		vc.Set(gocv.VideoCaptureFPS, float64(cfg.Framerate))
	}

	debug.Log("📷 Opened camera %d (%.0fx%.0f @ %.0f fps)\n", cfg.DeviceID,
		vc.Get(gocv.VideoCaptureFrameWidth), vc.Get(gocv.VideoCaptureFrameHeight), vc.Get(gocv.VideoCaptureFPS))

	return &Webcam{cap: vc, config: cfg}, nil
}

// Open adapts OpenWebcam to the Opener signature.
func Open(cfg Config) (Source, error) {
	w, err := OpenWebcam(cfg)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// Read grabs the next frame into a newly allocated matrix.
func (w *Webcam) Read() (frame.Frame, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, ErrClosed
	}

	img := gocv.NewMat()
	if ok := w.cap.Read(&img); !ok {
		img.Close()
		return nil, fmt.Errorf("%w: device %d", ErrFrameRead, w.config.DeviceID)
	}
	if img.Empty() {
		img.Close()
		return nil, fmt.Errorf("%w: device %d returned an empty frame", ErrFrameRead, w.config.DeviceID)
	}

	return frame.FromMat(img), nil
}

// Config returns the configuration the camera was opened with.
func (w *Webcam) Config() Config {
	return w.config
}

// Close releases the device handle.
func (w *Webcam) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	debug.Logln("📷 Camera released")
	return w.cap.Close()
}
