package time

import (
	"testing"
	"time"
)

func TestPtr(t *testing.T) {
	if Ptr(time.Time{}) != nil {
		t.Fatalf("zero time should map to nil")
	}
	now := time.Now()
	if p := Ptr(now); p == nil || !p.Equal(now) {
		t.Fatalf("Ptr lost the value")
	}
}

func TestManual_SetAdvance(t *testing.T) {
	base := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	m := NewManual(base)
	if !m.Now().Equal(base) {
		t.Fatalf("Now = %v, want %v", m.Now(), base)
	}
	m.Advance(90 * time.Second)
	if got := m.Now().Sub(base); got != 90*time.Second {
		t.Fatalf("Advance moved %v, want 90s", got)
	}
	m.Set(base)
	if !m.Now().Equal(base) {
		t.Fatalf("Set did not park the clock")
	}
}

func TestClockFunc(t *testing.T) {
	at := time.Unix(100, 0)
	var c Clock = ClockFunc(func() time.Time { return at })
	if !c.Now().Equal(at) {
		t.Fatalf("ClockFunc.Now = %v", c.Now())
	}
}

func TestDecimalHour(t *testing.T) {
	cases := []struct {
		h, m, s int
		want    float64
	}{
		{0, 0, 0, 0},
		{0, 30, 59, 0.5},
		{7, 30, 0, 7.5},
		{16, 0, 0, 16},
		{23, 45, 10, 23.75},
	}
	for _, c := range cases {
		got := DecimalHour(time.Date(2024, 5, 6, c.h, c.m, c.s, 0, time.UTC))
		if got != c.want {
			t.Fatalf("DecimalHour(%02d:%02d:%02d) = %v, want %v", c.h, c.m, c.s, got, c.want)
		}
	}
}

func TestLoadLocation(t *testing.T) {
	for _, name := range []string{"", "Local", "local"} {
		loc, err := LoadLocation(name)
		if err != nil || loc != time.Local {
			t.Fatalf("LoadLocation(%q) = %v, %v", name, loc, err)
		}
	}
	if loc, err := LoadLocation("UTC"); err != nil || loc != time.UTC {
		t.Fatalf("LoadLocation(UTC) = %v, %v", loc, err)
	}
	if _, err := LoadLocation("Not/AZone"); err == nil {
		t.Fatalf("expected error for unknown zone")
	}
}
