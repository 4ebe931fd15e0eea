package recurring

import (
	"time"

	"github.com/caddyshack-fin/cadence/internal/model"
)

// date builds a UTC calendar date for tests.
func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// occurrences builds an occurrence list with a constant amount.
func occurrences(amount float64, dates ...time.Time) []model.Occurrence {
	occs := make([]model.Occurrence, len(dates))
	for i, d := range dates {
		occs[i] = model.Occurrence{Date: d, Amount: amount}
	}
	return occs
}

// txn builds a minimal expense transaction for tests.
func txn(merchant string, d time.Time, amount float64) model.Transaction {
	return model.Transaction{
		ID:           merchant + d.Format("20060102"),
		Date:         d,
		Name:         merchant,
		MerchantName: merchant,
		Amount:       amount,
		Direction:    model.DirectionExpense,
	}
}
