package timeseries

import "math"

// Stats summarises one series.
type Stats struct {
	Max    float64
	Min    float64
	Mean   float64
	Sum    float64
	StdDev float64
	Count  int
}

// Describe computes max, min, mean, sum and the sample standard deviation.
// NaN samples are skipped. An empty series yields all zeros.
func Describe(values []float64) Stats {
	var s Stats
	first := true
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if first {
			s.Max, s.Min = v, v
			first = false
		}
		if v > s.Max {
			s.Max = v
		}
		if v < s.Min {
			s.Min = v
		}
		s.Sum += v
		s.Count++
	}
	if s.Count == 0 {
		return Stats{}
	}
	s.Mean = s.Sum / float64(s.Count)
	if s.Count > 1 {
		var sq float64
		for _, v := range values {
			if math.IsNaN(v) {
				continue
			}
			d := v - s.Mean
			sq += d * d
		}
		s.StdDev = math.Sqrt(sq / float64(s.Count-1))
	}
	return s
}

// SafeDivide returns a/b, or 0 when b is zero.
func SafeDivide(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
