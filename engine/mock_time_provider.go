package engine

import (
	"sync"
	"time"
)

// MockTimeProvider is a hand-stepped clock for deterministic simulation tests
// Time is kept as an offset from a fixed epoch
type MockTimeProvider struct {
	mu     sync.Mutex
	epoch  time.Time
	offset time.Duration
}

// NewMockTimeProvider creates a mock clock standing at epoch
func NewMockTimeProvider(epoch time.Time) *MockTimeProvider {
	return &MockTimeProvider{epoch: epoch}
}

func (m *MockTimeProvider) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.epoch.Add(m.offset)
}

// SetTime jumps to t; times before the epoch give a negative offset
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.offset = t.Sub(m.epoch)
}

func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.offset += d
}

// AdvanceTicks moves forward n ticks of length tick and returns the new offset
func (m *MockTimeProvider) AdvanceTicks(n int, tick time.Duration) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.offset += time.Duration(n) * tick
	return m.offset
}

// Elapsed returns the offset from the epoch
func (m *MockTimeProvider) Elapsed() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.offset
}
