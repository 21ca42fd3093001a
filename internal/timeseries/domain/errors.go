package timeseries

import "errors"

var (
	// ErrInvalidCadence is returned when a cadence is not supported.
	ErrInvalidCadence = errors.New("timeseries: invalid cadence")
	// ErrInvalidCount is returned when a sample count is negative.
	ErrInvalidCount = errors.New("timeseries: invalid sample count")
	// ErrInvalidStart is returned when the time base start is zero.
	ErrInvalidStart = errors.New("timeseries: invalid start")
)
