package recurring

import (
	"sort"
	"time"

	"github.com/caddyshack-fin/cadence/internal/model"
)

// minOccurrences is the evidence floor: below this a candidate stays pending
// and is omitted from classified output.
const minOccurrences = 2

// DetectSeries evaluates one user's transaction snapshot and returns every
// classifiable recurring series, keyed and sorted by series key. Candidates
// with too little evidence or no recognized cadence are omitted; that is a
// normal data state, not an error.
func DetectSeries(txns []model.Transaction, opts Options, today time.Time) []model.RecurringSeries {
	matching := make([]model.Transaction, 0, len(txns))
	for _, txn := range txns {
		if matchesDirection(txn, opts.Direction) {
			matching = append(matching, txn)
		}
	}

	groups := GroupSeries(matching, nil)

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var series []model.RecurringSeries
	for _, key := range keys {
		group := groups[key]
		if len(group) < minOccurrences {
			continue
		}

		occs := make([]model.Occurrence, len(group))
		for i, txn := range group {
			occs[i] = model.Occurrence{Date: dateOnly(txn.Date), Amount: txn.Amount}
		}

		cadence := Classify(occs)
		if cadence == model.CadenceIrregular {
			continue
		}

		s := model.RecurringSeries{
			SeriesKey: key,
			Cadence:   cadence,
			// Bills and paychecks step rather than drift, so the most
			// recent amount beats any average.
			ExpectedAmount: occs[len(occs)-1].Amount,
			Confidence:     Score(occs),
			Occurrences:    occs,
			LastOccurrence: occs[len(occs)-1].Date,
			IsActive:       true,
		}
		if next, ok := Next(cadence, s.LastOccurrence, nil, today); ok {
			s.NextPredicted = next
		}

		series = append(series, s)
	}

	return series
}

// matchesDirection applies the caller's sign convention. Transactions that
// carry no explicit direction fall back to the sign of the amount.
func matchesDirection(txn model.Transaction, direction model.TransactionDirection) bool {
	if direction == "" {
		return true
	}
	if txn.Direction != "" {
		return txn.Direction == direction
	}
	if direction == model.DirectionExpense {
		return txn.Amount > 0
	}
	return txn.Amount < 0
}
