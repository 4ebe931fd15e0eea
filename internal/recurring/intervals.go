package recurring

import (
	"math"
	"time"

	"github.com/caddyshack-fin/cadence/internal/model"
)

// Gaps returns the day-gaps between consecutive occurrences of a
// chronologically sorted series. A series with n occurrences yields n-1 gaps;
// fewer than two occurrences yields none and the series stays pending.
func Gaps(occs []model.Occurrence) []int {
	if len(occs) < 2 {
		return nil
	}

	gaps := make([]int, 0, len(occs)-1)
	for i := 1; i < len(occs); i++ {
		gaps = append(gaps, daysBetween(occs[i-1].Date, occs[i].Date))
	}
	return gaps
}

// MeanGap returns the arithmetic mean of the day-gaps, or 0 when there are
// none.
func MeanGap(gaps []int) float64 {
	if len(gaps) == 0 {
		return 0
	}

	sum := 0
	for _, g := range gaps {
		sum += g
	}
	return float64(sum) / float64(len(gaps))
}

// dateOnly truncates a timestamp to its calendar date in UTC. All interval
// arithmetic operates on calendar dates, never clock times.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween counts whole calendar days from a to b.
func daysBetween(a, b time.Time) int {
	return int(dateOnly(b).Sub(dateOnly(a)).Hours() / 24)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdDev returns the sample standard deviation.
func stdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	m := mean(values)
	var sumSq float64
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)-1))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
