// Package recurring implements detection and forecasting of recurring
// financial events. It consumes an immutable transaction snapshot and
// produces classified series, forward projections, and alerts; all functions
// are pure and safe to run concurrently for independent snapshots.
package recurring

import "github.com/caddyshack-fin/cadence/internal/model"

// Options tunes the detection and forecasting policies. The zero value is not
// usable; start from DefaultOptions.
type Options struct {
	// Direction selects which side of the ledger to analyze. Empty means
	// both; transactions without an explicit direction fall back to the
	// sign of the amount (positive = expense, negative = income).
	Direction model.TransactionDirection

	// DormancyThresholdDays is how stale a series' last occurrence may be
	// before a dormant alert fires. The boundary day itself does not fire.
	DormancyThresholdDays int

	// AlertCap limits alerts per evaluation, truncated in detection order.
	AlertCap int

	// ForecastHorizonMonths bounds the calendar projection.
	ForecastHorizonMonths int

	// ShortHorizonDays is the lookahead of the stateless window forecast.
	ShortHorizonDays int

	// ShortHorizonDayTolerance is the ± day-of-month window for matching
	// historical charges against a target date.
	ShortHorizonDayTolerance int

	// ShortHorizonMinDistinctMonths is the minimum number of distinct
	// historical months required before the window forecast will predict.
	ShortHorizonMinDistinctMonths int
}

// DefaultOptions returns the reference policy values.
func DefaultOptions() Options {
	return Options{
		Direction:                     model.DirectionExpense,
		DormancyThresholdDays:         60,
		AlertCap:                      5,
		ForecastHorizonMonths:         3,
		ShortHorizonDays:              7,
		ShortHorizonDayTolerance:      2,
		ShortHorizonMinDistinctMonths: 2,
	}
}
