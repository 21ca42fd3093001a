package timeseries

import "math"

// Align fits values to length n.
// Longer input is truncated to its first n samples, never resampled. Shorter input is
// padded with zeros. Missing samples (NaN) inside the kept window become zero, so empty
// or all-missing input yields a constant zero series.
func Align(values []float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	out := make([]float64, n)
	limit := len(values)
	if limit > n {
		limit = n
	}
	for i := 0; i < limit; i++ {
		if math.IsNaN(values[i]) || math.IsInf(values[i], 0) {
			continue
		}
		out[i] = values[i]
	}
	return out
}

// Series is a named value column aligned to a TimeBase.
type Series struct {
	Name   string
	Values []float64
}

// Scale returns a copy of values multiplied by factor.
func Scale(values []float64, factor float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v * factor
	}
	return out
}

// Add sums two equally long series element-wise into a new slice.
func Add(a, b []float64) []float64 {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]float64, n)
	for i := range out {
		if i < len(a) {
			out[i] += a[i]
		}
		if i < len(b) {
			out[i] += b[i]
		}
	}
	return out
}
