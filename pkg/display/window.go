package display

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Chinkyyadav26/QRcodeDecoder/pkg/frame"
	"gocv.io/x/gocv"
)

// Window is an OpenCV HighGUI window.
type Window struct {
	win    *gocv.Window
	title  string
	mu     sync.Mutex
	closed bool
}

// NewWindow opens a titled window.
func NewWindow(title string) (*Window, error) {
	return &Window{win: gocv.NewWindow(title), title: title}, nil
}

// Open adapts NewWindow to the Factory signature.
func Open(title string) (Sink, error) {
	return NewWindow(title)
}

// Title returns the window title.
func (w *Window) Title() string {
	return w.title
}

// Show renders f in the window.
func (w *Window) Show(f frame.Frame) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return errors.New("display: window closed")
	}

	if m, ok := f.(*frame.Mat); ok {
		w.win.IMShow(m.Mat())
		return nil
	}

	// Non-OpenCV frames are converted for display
	img, err := f.ToImage()
	if err != nil {
		return fmt.Errorf("display: %w", err)
	}
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return fmt.Errorf("display: convert image: %w", err)
	}
	defer mat.Close()
	w.win.IMShow(mat)
	return nil
}

// WaitKey pumps the window event loop and returns the pressed key, or NoKey.
func (w *Window) WaitKey(delay time.Duration) int {
	ms := int(delay / time.Millisecond)
	if delay > 0 && ms == 0 {
		ms = 1
	}
	return w.win.WaitKey(ms)
}

// Close destroys the window once.
func (w *Window) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	return w.win.Close()
}
