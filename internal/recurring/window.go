package recurring

import (
	"sort"
	"time"

	"github.com/caddyshack-fin/cadence/internal/model"
)

// windowSample is one historical (month, day-of-month, amount) triple for a
// merchant.
type windowSample struct {
	month  string // YYYY-MM; lexicographic order == chronological order
	day    int
	amount float64
}

// ForecastWindow predicts which merchants will likely charge again within the
// short lookahead, directly from raw history and independent of any persisted
// series state. Each merchant contributes at most one prediction per run; the
// result is sorted by date ascending then amount descending, and the second
// return value is the total predicted amount.
func ForecastWindow(txns []model.Transaction, opts Options, today time.Time) ([]model.PredictedOccurrence, float64) {
	today = dateOnly(today)
	currentMonth := today.Format("2006-01")

	samples := make(map[string][]windowSample)
	for _, txn := range txns {
		if !matchesDirection(txn, opts.Direction) {
			continue
		}
		key := DefaultNormalizer(txn)
		if key == "" {
			continue
		}
		samples[key] = append(samples[key], windowSample{
			month:  txn.Date.Format("2006-01"),
			day:    txn.Date.Day(),
			amount: txn.Amount,
		})
	}

	merchants := make([]string, 0, len(samples))
	for key := range samples {
		merchants = append(merchants, key)
	}
	sort.Strings(merchants)

	done := make(map[string]bool)
	var predictions []model.PredictedOccurrence

	// Walk target dates ascending; the first qualifying date wins for each
	// merchant.
	for offset := 1; offset <= opts.ShortHorizonDays; offset++ {
		target := today.AddDate(0, 0, offset)

		for _, merchant := range merchants {
			if done[merchant] {
				continue
			}

			matched := matchDayWindow(samples[merchant], target.Day(), opts.ShortHorizonDayTolerance)
			if distinctMonths(matched) < opts.ShortHorizonMinDistinctMonths {
				continue
			}

			// A matching charge already realized this calendar month
			// means the cycle has been paid; predicting it again would
			// double-count.
			if hasMonth(matched, currentMonth) {
				done[merchant] = true
				continue
			}

			predictions = append(predictions, model.PredictedOccurrence{
				Date:      target,
				SeriesKey: merchant,
				Amount:    mostRecentAmount(matched),
			})
			done[merchant] = true
		}
	}

	sort.Slice(predictions, func(i, j int) bool {
		if !predictions[i].Date.Equal(predictions[j].Date) {
			return predictions[i].Date.Before(predictions[j].Date)
		}
		return predictions[i].Amount > predictions[j].Amount
	})

	total := 0.0
	for _, p := range predictions {
		total += p.Amount
	}
	return predictions, total
}

// matchDayWindow selects samples whose day-of-month falls within ±tolerance
// of the target day.
func matchDayWindow(samples []windowSample, targetDay, tolerance int) []windowSample {
	var matched []windowSample
	for _, s := range samples {
		diff := s.day - targetDay
		if diff < 0 {
			diff = -diff
		}
		if diff <= tolerance {
			matched = append(matched, s)
		}
	}
	return matched
}

func distinctMonths(samples []windowSample) int {
	months := make(map[string]struct{}, len(samples))
	for _, s := range samples {
		months[s.month] = struct{}{}
	}
	return len(months)
}

func hasMonth(samples []windowSample, month string) bool {
	for _, s := range samples {
		if s.month == month {
			return true
		}
	}
	return false
}

// mostRecentAmount returns the amount from the latest matching month.
func mostRecentAmount(samples []windowSample) float64 {
	best := samples[0]
	for _, s := range samples[1:] {
		if s.month > best.month || (s.month == best.month && s.day > best.day) {
			best = s
		}
	}
	return best.amount
}
