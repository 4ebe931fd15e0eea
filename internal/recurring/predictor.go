package recurring

import (
	"time"

	"github.com/caddyshack-fin/cadence/internal/model"
)

// Next computes the next expected date for a series: strictly after both the
// last occurrence and today. A future manual override wins outright; a stale
// override is silently ignored and stepping resumes from the literal last
// occurrence. Irregular series have no next date (ok=false).
func Next(cadence model.Cadence, last time.Time, override *time.Time, today time.Time) (time.Time, bool) {
	if cadence == model.CadenceIrregular || last.IsZero() {
		return time.Time{}, false
	}

	today = dateOnly(today)
	if override != nil {
		if o := dateOnly(*override); o.After(today) {
			return o, true
		}
	}

	next := Step(cadence, dateOnly(last))
	for !next.After(today) {
		next = Step(cadence, next)
	}
	return next, true
}

// Step advances one cadence interval from a date. Bi-weekly is a literal +14
// days so the day-of-week is preserved exactly; monthly follows calendar
// months; semi-monthly alternates between the 15th and the last day of the
// month.
func Step(cadence model.Cadence, from time.Time) time.Time {
	switch cadence {
	case model.CadenceWeekly:
		return from.AddDate(0, 0, 7)
	case model.CadenceBiWeekly:
		return from.AddDate(0, 0, 14)
	case model.CadenceMonthly:
		return from.AddDate(0, 1, 0)
	case model.CadenceSemiMonthly:
		if from.Day() <= semiMonthlySplitDay {
			return endOfMonth(from)
		}
		return time.Date(from.Year(), from.Month()+1, 15, 0, 0, 0, 0, from.Location())
	default:
		return from
	}
}

// endOfMonth returns the last calendar day of the date's month.
func endOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location())
}
