package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/hugo-lorenzo-mato/waitfile/internal/probe"
)

// MockProber implements probe.Prober over an in-memory size table.
// Resources that were never set (or were removed) probe as absent.
type MockProber struct {
	mu    sync.Mutex
	sizes map[string]int64
	calls []MockCall
}

// MockCall records a call to the mock.
type MockCall struct {
	Method    string
	Args      interface{}
	Timestamp time.Time
}

// NewMockProber creates a mock prober with no resources present.
func NewMockProber() *MockProber {
	return &MockProber{
		sizes: make(map[string]int64),
		calls: make([]MockCall, 0),
	}
}

// Probe implements probe.Prober.
func (m *MockProber) Probe(_ context.Context, resource string) probe.Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, MockCall{
		Method:    "Probe",
		Args:      resource,
		Timestamp: time.Now(),
	})

	size, ok := m.sizes[resource]
	if !ok {
		return probe.AbsentResult()
	}
	return probe.Result{Size: size}
}

// Set makes resource present with the given size.
func (m *MockProber) Set(resource string, size int64) *MockProber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sizes[resource] = size
	return m
}

// Grow adds delta bytes to resource, creating it if needed.
func (m *MockProber) Grow(resource string, delta int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sizes[resource] += delta
}

// Remove makes resource absent.
func (m *MockProber) Remove(resource string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sizes, resource)
}

// SetAfter schedules Set after d. The timer is stopped when the test-owned
// stop function is called.
func (m *MockProber) SetAfter(d time.Duration, resource string, size int64) (stop func() bool) {
	return time.AfterFunc(d, func() { m.Set(resource, size) }).Stop
}

// RemoveAfter schedules Remove after d.
func (m *MockProber) RemoveAfter(d time.Duration, resource string) (stop func() bool) {
	return time.AfterFunc(d, func() { m.Remove(resource) }).Stop
}

// Calls returns recorded calls.
func (m *MockProber) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]MockCall, len(m.calls))
	copy(result, m.calls)
	return result
}

// CallCount returns the number of probes issued.
func (m *MockProber) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// FirstCall returns the time of the first probe, or the zero time.
func (m *MockProber) FirstCall() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return time.Time{}
	}
	return m.calls[0].Timestamp
}

// Reset clears recorded calls.
func (m *MockProber) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = make([]MockCall, 0)
}
