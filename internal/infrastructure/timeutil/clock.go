// Package timeutil abstracts the system clock so job timestamps can be
// pinned in tests.
package timeutil

import (
	"time"
)

// Clock supplies the current time. The orchestrator stamps job
// transitions (created, started, completed) through a Clock rather than
// calling time.Now directly, so tests can assert exact timestamps.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system time.
type RealClock struct{}

// NewRealClock returns a Clock backed by the system time.
func NewRealClock() *RealClock {
	return &RealClock{}
}

func (RealClock) Now() time.Time {
	return time.Now()
}

// MockClock returns a controllable time for tests.
type MockClock struct {
	current time.Time
}

// NewMockClock returns a clock frozen at t.
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{current: t}
}

// Now returns the clock's current frozen time.
func (m *MockClock) Now() time.Time {
	return m.current
}

// Set moves the clock to t.
func (m *MockClock) Set(t time.Time) {
	m.current = t
}

// Advance moves the clock by d. Negative durations move it backwards.
func (m *MockClock) Advance(d time.Duration) {
	m.current = m.current.Add(d)
}

var (
	_ Clock = (*RealClock)(nil)
	_ Clock = (*MockClock)(nil)
)
