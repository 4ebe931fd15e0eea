package recurring

import (
	"math"
	"time"

	"github.com/caddyshack-fin/cadence/internal/model"
)

// semiMonthlySplitDay divides a month into its "early" (1-16) and "late"
// (17-end) halves for the paired 15th / end-of-month pattern. Tunable policy,
// not contract.
const semiMonthlySplitDay = 16

// band is a tolerance window of mean day-gaps mapping to a cadence.
type band struct {
	cadence model.Cadence
	min     float64
	max     float64
	center  float64
}

var cadenceBands = []band{
	{model.CadenceWeekly, 6, 8, 7},
	{model.CadenceBiWeekly, 13, 15, 14},
	{model.CadenceMonthly, 28, 32, 30},
	{model.CadenceSemiMonthly, 56, 64, 60},
}

// bandSlack is how far (in days) a mean gap may fall outside every band and
// still be attributed to the nearest one instead of irregular.
const bandSlack = 1.0

// Classify maps a chronologically sorted occurrence list to a cadence.
// Ambiguity is never an error: anything unrecognized resolves to irregular.
func Classify(occs []model.Occurrence) model.Cadence {
	if len(occs) < 2 {
		return model.CadenceIrregular
	}

	// The semi-monthly day-of-month pattern is detected before any gap
	// banding: its raw mean gap alternates ~15/~16 days and skews a naive
	// average.
	if hasSemiMonthlyPattern(occs) {
		return model.CadenceSemiMonthly
	}

	meanGap := MeanGap(Gaps(occs))

	for _, b := range cadenceBands {
		if meanGap >= b.min && meanGap <= b.max {
			return b.cadence
		}
	}

	// Near-miss resolution: a mean gap just outside a band goes to the band
	// whose center is closest. Exact center-distance ties resolve to the
	// shorter-period cadence, the statistically likelier one.
	best := model.CadenceIrregular
	bestDist := math.MaxFloat64
	for _, b := range cadenceBands {
		var overshoot float64
		if meanGap < b.min {
			overshoot = b.min - meanGap
		} else {
			overshoot = meanGap - b.max
		}
		if overshoot > bandSlack {
			continue
		}

		dist := math.Abs(meanGap - b.center)
		switch {
		case dist < bestDist:
			best, bestDist = b.cadence, dist
		case dist == bestDist && b.cadence.PeriodDays() < best.PeriodDays():
			best = b.cadence
		}
	}

	return best
}

// hasSemiMonthlyPattern reports whether the series is the paired 15th /
// end-of-month pattern: every occurrence lands near the 15th or near the last
// day of its month, both halves are represented, and there are at least three
// occurrences.
func hasSemiMonthlyPattern(occs []model.Occurrence) bool {
	if len(occs) < 3 {
		return false
	}

	early, late := 0, 0
	for _, occ := range occs {
		day := occ.Date.Day()
		lastDay := daysInMonth(occ.Date)

		switch {
		case day >= semiMonthlySplitDay-3 && day <= semiMonthlySplitDay:
			early++
		case day >= 28 || day > lastDay-3:
			late++
		default:
			return false
		}
	}
	return early >= 1 && late >= 1
}

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
