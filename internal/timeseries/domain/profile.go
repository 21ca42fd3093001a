package timeseries

import (
	"math"
	"sort"
	"time"
)

// HourAverage is the mean of all samples recorded in one hour of the day.
type HourAverage struct {
	Hour    int
	Average float64
}

// DailyProfile groups values by the hour-of-day of their timestamp and averages each group.
// Groups are returned in ascending hour order; hours without samples are absent.
// Zero timestamps and NaN values are ignored.
func DailyProfile(timestamps []time.Time, values []float64) []HourAverage {
	var sums [24]float64
	var counts [24]int
	n := len(timestamps)
	if len(values) < n {
		n = len(values)
	}
	for i := 0; i < n; i++ {
		if timestamps[i].IsZero() || math.IsNaN(values[i]) {
			continue
		}
		h := timestamps[i].Hour()
		sums[h] += values[i]
		counts[h]++
	}
	var out []HourAverage
	for h := 0; h < 24; h++ {
		if counts[h] == 0 {
			continue
		}
		out = append(out, HourAverage{Hour: h, Average: sums[h] / float64(counts[h])})
	}
	return out
}

// PeakHours returns up to n hours with the highest averages. Ties keep the profile order.
func PeakHours(profile []HourAverage, n int) []int {
	return rankHours(profile, n, func(a, b float64) bool { return a > b })
}

// OffPeakHours returns up to n hours with the lowest averages. Ties keep the profile order.
func OffPeakHours(profile []HourAverage, n int) []int {
	return rankHours(profile, n, func(a, b float64) bool { return a < b })
}

func rankHours(profile []HourAverage, n int, before func(a, b float64) bool) []int {
	ranked := make([]HourAverage, len(profile))
	copy(ranked, profile)
	sort.SliceStable(ranked, func(i, j int) bool { return before(ranked[i].Average, ranked[j].Average) })
	if n > len(ranked) {
		n = len(ranked)
	}
	hours := make([]int, 0, n)
	for _, h := range ranked[:n] {
		hours = append(hours, h.Hour)
	}
	return hours
}
