package timeseries

import (
	"strings"
	"time"
)

// Cadence is the step between two canonical timestamps.
type Cadence string

const (
	CadenceHourly Cadence = "hourly"
	CadenceMinute Cadence = "minute"
)

const (
	// HoursPerYear is the length of the hourly-annual base.
	HoursPerYear = 8760
	// MinutesPerDay is the length of the per-minute daily base.
	MinutesPerDay = 1440
)

// DefaultStart is the first instant of every canonical base unless configured otherwise.
var DefaultStart = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)

// ParseCadence maps a configuration value onto a Cadence.
func ParseCadence(value string) (Cadence, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "hourly", "hour", "1h":
		return CadenceHourly, nil
	case "minute", "min", "1min", "1m":
		return CadenceMinute, nil
	default:
		return "", ErrInvalidCadence
	}
}

// IsValid reports whether the cadence is supported.
func (c Cadence) IsValid() bool {
	return c == CadenceHourly || c == CadenceMinute
}

// Step returns the duration between samples.
func (c Cadence) Step() time.Duration {
	switch c {
	case CadenceHourly:
		return time.Hour
	case CadenceMinute:
		return time.Minute
	default:
		return 0
	}
}

// TimeBase is the canonical timestamp sequence every aligned series is measured against.
type TimeBase struct {
	cadence    Cadence
	timestamps []time.Time
}

// NewTimeBase builds count timestamps starting at start with the given cadence.
func NewTimeBase(start time.Time, count int, cadence Cadence) (TimeBase, error) {
	if !cadence.IsValid() {
		return TimeBase{}, ErrInvalidCadence
	}
	if count < 0 {
		return TimeBase{}, ErrInvalidCount
	}
	if start.IsZero() {
		return TimeBase{}, ErrInvalidStart
	}
	start = start.UTC()
	step := cadence.Step()
	timestamps := make([]time.Time, count)
	for i := range timestamps {
		timestamps[i] = start.Add(time.Duration(i) * step)
	}
	return TimeBase{cadence: cadence, timestamps: timestamps}, nil
}

// HourlyAnnual returns the 8760-point hourly base.
func HourlyAnnual(start time.Time) (TimeBase, error) {
	return NewTimeBase(start, HoursPerYear, CadenceHourly)
}

// MinuteDaily returns the 1440-point per-minute base.
func MinuteDaily(start time.Time) (TimeBase, error) {
	return NewTimeBase(start, MinutesPerDay, CadenceMinute)
}

// Canonical returns the standard base of a cadence starting at start.
func Canonical(start time.Time, cadence Cadence) (TimeBase, error) {
	switch cadence {
	case CadenceHourly:
		return HourlyAnnual(start)
	case CadenceMinute:
		return MinuteDaily(start)
	default:
		return TimeBase{}, ErrInvalidCadence
	}
}

// Len returns the canonical length L.
func (b TimeBase) Len() int { return len(b.timestamps) }

// Cadence returns the base cadence.
func (b TimeBase) Cadence() Cadence { return b.cadence }

// At returns the i-th timestamp.
func (b TimeBase) At(i int) time.Time { return b.timestamps[i] }

// Timestamps returns a copy of the sequence.
func (b TimeBase) Timestamps() []time.Time {
	out := make([]time.Time, len(b.timestamps))
	copy(out, b.timestamps)
	return out
}

// DetectCadence guesses the cadence from the first two timestamps of a series.
// A one-minute step selects CadenceMinute; anything else falls back to CadenceHourly.
func DetectCadence(timestamps []time.Time) Cadence {
	for i := 1; i < len(timestamps); i++ {
		if timestamps[i].IsZero() || timestamps[i-1].IsZero() {
			continue
		}
		if timestamps[i].Sub(timestamps[i-1]) == time.Minute {
			return CadenceMinute
		}
		return CadenceHourly
	}
	return CadenceHourly
}
