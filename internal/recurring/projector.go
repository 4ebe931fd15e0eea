package recurring

import (
	"math"
	"sort"
	"time"

	"github.com/caddyshack-fin/cadence/internal/model"
)

// ProjectCalendar expands the active, non-irregular series forward across the
// forecast horizon into a flat, date-sorted list of predicted occurrences.
// Dates at or before today are never emitted.
func ProjectCalendar(series []model.RecurringSeries, opts Options, today time.Time) []model.PredictedOccurrence {
	horizon := dateOnly(today).AddDate(0, opts.ForecastHorizonMonths, 0)

	var out []model.PredictedOccurrence
	for _, s := range series {
		if !s.IsActive || s.Cadence == model.CadenceIrregular {
			continue
		}

		date, ok := Next(s.Cadence, s.LastOccurrence, s.ManualOverride, today)
		if !ok {
			continue
		}
		for !date.After(horizon) {
			out = append(out, model.PredictedOccurrence{
				Date:      date,
				SeriesKey: s.SeriesKey,
				Amount:    s.ExpectedAmount,
			})
			date = Step(s.Cadence, date)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].SeriesKey < out[j].SeriesKey
	})

	return out
}

// MonthGroup is a presentation bucket of one calendar month's projections.
// Grouping is derived from the date field alone.
type MonthGroup struct {
	Month       string // YYYY-MM
	Occurrences []model.PredictedOccurrence
	Total       float64
}

// GroupByMonth buckets projections by calendar month, ascending. Each group
// total is the exact sum of its occurrence amounts, rounded only to cents.
func GroupByMonth(predictions []model.PredictedOccurrence) []MonthGroup {
	byMonth := make(map[string][]model.PredictedOccurrence)
	for _, p := range predictions {
		month := p.Date.Format("2006-01")
		byMonth[month] = append(byMonth[month], p)
	}

	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)

	groups := make([]MonthGroup, 0, len(months))
	for _, month := range months {
		occs := byMonth[month]
		total := 0.0
		for _, p := range occs {
			total += p.Amount
		}
		groups = append(groups, MonthGroup{
			Month:       month,
			Occurrences: occs,
			Total:       roundCents(total),
		})
	}
	return groups
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
