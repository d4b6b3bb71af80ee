package engine

import "time"

// TimeProvider is the wall-clock source behind every simulation timer
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider reads the real system clock with its monotonic component
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a real-time provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}
