package qr

import (
	"sync"
	"time"

	"github.com/Chinkyyadav26/QRcodeDecoder/pkg/frame"
)

// Mock implements Decoder for testing.
type Mock struct {
	// DecodeFunc is called when Decode is invoked.
	// If nil, Detections is returned.
	DecodeFunc func(f frame.Frame) ([]Detection, error)

	// Detections is the fixed result used when DecodeFunc is nil.
	Detections []Detection

	// CloseFunc is called when Close is invoked.
	CloseFunc func() error

	mu    sync.Mutex
	calls []MockCall
}

// MockCall records a method invocation.
type MockCall struct {
	Method string
	Time   time.Time
}

// NewMock creates a mock decoder that always returns dets.
func NewMock(dets ...Detection) *Mock {
	return &Mock{Detections: dets}
}

// Decode calls DecodeFunc and records the call.
func (m *Mock) Decode(f frame.Frame) ([]Detection, error) {
	m.record("Decode")
	if m.DecodeFunc != nil {
		return m.DecodeFunc(f)
	}
	out := make([]Detection, len(m.Detections))
	copy(out, m.Detections)
	return out, nil
}

// Close calls CloseFunc and records the call.
func (m *Mock) Close() error {
	m.record("Close")
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Calls returns all recorded calls.
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]MockCall, len(m.calls))
	copy(result, m.calls)
	return result
}

// CallCount returns the number of calls to a method.
func (m *Mock) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

func (m *Mock) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MockCall{Method: method, Time: time.Now()})
}
