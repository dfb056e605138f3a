// Package time contains time related helpers
package time

import (
	"sync"
	"time"
)

// Ptr returns a pointer to t or nil if t is zero
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// Clock is the seam services use instead of calling time.Now directly
type Clock interface {
	Now() time.Time
}

// System is the wall clock
type System struct{}

// Now returns time.Now
func (System) Now() time.Time { return time.Now() }

// ClockFunc adapts a plain function to a Clock
type ClockFunc func() time.Time

// Now calls f
func (f ClockFunc) Now() time.Time { return f() }

// Manual is a settable clock for tests and replays, safe for concurrent use
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

// NewManual returns a Manual clock parked at t
func NewManual(t time.Time) *Manual { return &Manual{now: t} }

// Now returns the parked time
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Set parks the clock at t
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

// Advance moves the clock forward by d
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

// LoadLocation resolves an IANA zone name, treating "" and "Local" as time.Local
func LoadLocation(name string) (*time.Location, error) {
	switch name {
	case "", "Local", "local":
		return time.Local, nil
	case "UTC", "utc":
		return time.UTC, nil
	}
	return time.LoadLocation(name)
}

// DecimalHour returns hour + minute/60 for t in its own location
// seconds are ignored on purpose so a shift boundary at 07:20 flips on the minute
func DecimalHour(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60
}
