// Package shift maps a time of day onto the plant's three named shift windows
//
// Windows are half-open ranges in decimal hours. A window whose start is not below its end wraps
// past midnight. Windows are evaluated in order A, B, C and the last match wins, so the
// 07:20-07:30 overlap between A and B belongs to B. Anything unmatched falls back to C, which is
// how 00:00-00:30 ends up on C even though C's end (24.5) never wraps
package shift

import (
	"time"

	ptime "linetrack/internal/platform/time"
)

// Shift is one of the named shift labels
type Shift string

const (
	// A is the early shift 00:30-07:30
	A Shift = "A"
	// B is the day shift 07:20-16:00
	B Shift = "B"
	// C is the late shift 16:00-00:30
	C Shift = "C"
)

// Fallback is returned when no window contains the time of day
const Fallback = C

// Window is a named range [Start, End) in decimal hours
type Window struct {
	Shift Shift
	Start float64
	End   float64
}

// Contains reports whether t falls in the window using the wrap rule for Start >= End
func (w Window) Contains(t float64) bool {
	if w.Start < w.End {
		return w.Start <= t && t < w.End
	}
	return t >= w.Start || t < w.End
}

// windows is the fixed enumeration, order matters
var windows = [...]Window{
	{Shift: A, Start: 0.5, End: 7.5},
	{Shift: B, Start: 7 + 20.0/60, End: 16},
	{Shift: C, Start: 16, End: 24.5},
}

// Windows returns a copy of the configured windows in evaluation order
func Windows() []Window {
	out := make([]Window, len(windows))
	copy(out, windows[:])
	return out
}

// Classify returns the shift for a time of day in decimal hours
func Classify(hours float64) Shift {
	out := Fallback
	for _, w := range windows {
		if w.Contains(hours) {
			out = w.Shift
		}
	}
	return out
}

// At classifies the wall clock time of t in its own location
func At(t time.Time) Shift { return Classify(ptime.DecimalHour(t)) }

// Valid reports whether s is one of the known labels
func Valid(s Shift) bool { return s == A || s == B || s == C }

// All returns the labels in enumeration order
func All() []Shift { return []Shift{A, B, C} }
