package display

import (
	"sync"
	"time"

	"github.com/Chinkyyadav26/QRcodeDecoder/pkg/frame"
)

// Mock implements Sink for testing.
type Mock struct {
	// Title is the title the sink was created with.
	Title string

	// Keys are returned by successive WaitKey calls; NoKey once exhausted.
	Keys []int

	// ShowFunc, if set, is called by Show.
	ShowFunc func(f frame.Frame) error

	mu     sync.Mutex
	shown  []frame.Frame
	waits  []time.Duration
	closes int
}

// NewMock creates a mock sink that returns keys in order.
func NewMock(title string, keys ...int) *Mock {
	return &Mock{Title: title, Keys: keys}
}

// Factory returns a Factory that hands out m, recording the requested title.
func (m *Mock) Factory() Factory {
	return func(title string) (Sink, error) {
		m.mu.Lock()
		m.Title = title
		m.mu.Unlock()
		return m, nil
	}
}

// Show records f.
func (m *Mock) Show(f frame.Frame) error {
	m.mu.Lock()
	m.shown = append(m.shown, f)
	fn := m.ShowFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(f)
	}
	return nil
}

// WaitKey returns the next scripted key.
func (m *Mock) WaitKey(delay time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.waits = append(m.waits, delay)
	if len(m.Keys) == 0 {
		return NoKey
	}
	k := m.Keys[0]
	m.Keys = m.Keys[1:]
	return k
}

// Close counts the call.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closes++
	return nil
}

// Shown returns the frames passed to Show.
func (m *Mock) Shown() []frame.Frame {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]frame.Frame, len(m.shown))
	copy(result, m.shown)
	return result
}

// Waits returns the delays passed to WaitKey.
func (m *Mock) Waits() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]time.Duration, len(m.waits))
	copy(result, m.waits)
	return result
}

// Closes returns how many times Close was called.
func (m *Mock) Closes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closes
}
