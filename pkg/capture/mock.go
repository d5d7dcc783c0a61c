package capture

import (
	"sync"

	"github.com/Chinkyyadav26/QRcodeDecoder/pkg/frame"
)

// Mock implements Source for testing.
// Frames are returned in order; once exhausted, Err is returned (ErrFrameRead if nil).
type Mock struct {
	// Frames are handed out by successive Read calls.
	Frames []frame.Frame

	// ReadFunc, if set, replaces the scripted frames.
	ReadFunc func(n int) (frame.Frame, error)

	// Err is returned after Frames are exhausted.
	Err error

	mu     sync.Mutex
	reads  int
	closes int
}

// NewMock creates a mock source yielding frames, then ErrFrameRead.
func NewMock(frames ...frame.Frame) *Mock {
	return &Mock{Frames: frames}
}

// Read returns the next scripted frame.
func (m *Mock) Read() (frame.Frame, error) {
	m.mu.Lock()
	n := m.reads
	m.reads++
	closed := m.closes > 0
	m.mu.Unlock()

	if closed {
		return nil, ErrClosed
	}
	if m.ReadFunc != nil {
		return m.ReadFunc(n)
	}
	if n < len(m.Frames) {
		return m.Frames[n], nil
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return nil, ErrFrameRead
}

// Close counts the call.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closes++
	return nil
}

// Reads returns how many times Read was called.
func (m *Mock) Reads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads
}

// Closes returns how many times Close was called.
func (m *Mock) Closes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closes
}
