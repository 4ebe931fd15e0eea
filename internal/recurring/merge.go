package recurring

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/caddyshack-fin/cadence/internal/model"
)

// ErrInvalidMergeRequest indicates a merge that cannot be attempted at all:
// fewer than two series, or a series with no identity. No partial merge is
// ever committed.
var ErrInvalidMergeRequest = errors.New("invalid merge request")

// Merge combines user-designated duplicate series into one. Cadence,
// confidence, and next date are recomputed fresh from the unioned raw
// occurrences, never inherited or averaged from the parents. The survivor
// takes the first input's key; deactivating the absorbed series is the
// caller's responsibility.
func Merge(inputs []model.RecurringSeries, today time.Time) (model.RecurringSeries, error) {
	if len(inputs) < 2 {
		return model.RecurringSeries{}, fmt.Errorf("%w: need at least 2 series, got %d", ErrInvalidMergeRequest, len(inputs))
	}
	for _, in := range inputs {
		if in.SeriesKey == "" {
			return model.RecurringSeries{}, fmt.Errorf("%w: series with empty key", ErrInvalidMergeRequest)
		}
	}

	var occs []model.Occurrence
	for _, in := range inputs {
		occs = append(occs, in.Occurrences...)
	}
	sort.Slice(occs, func(i, j int) bool {
		if !occs[i].Date.Equal(occs[j].Date) {
			return occs[i].Date.Before(occs[j].Date)
		}
		return occs[i].Amount < occs[j].Amount
	})

	cadence := Classify(occs)
	if cadence == model.CadenceIrregular && noneIrregular(inputs) {
		// The union's raw intervals interleave and can look irregular even
		// when every parent had a clean cycle; fall back to a majority vote
		// over the parents.
		cadence = majorityCadence(inputs)
	}

	merged := model.RecurringSeries{
		SeriesKey:      inputs[0].SeriesKey,
		Cadence:        cadence,
		Confidence:     Score(occs),
		Occurrences:    occs,
		ExpectedAmount: mergedExpectedAmount(occs, inputs),
		IsActive:       true,
	}
	if len(occs) > 0 {
		merged.LastOccurrence = occs[len(occs)-1].Date
	} else {
		for _, in := range inputs {
			if in.LastOccurrence.After(merged.LastOccurrence) {
				merged.LastOccurrence = in.LastOccurrence
			}
		}
	}
	if next, ok := Next(merged.Cadence, merged.LastOccurrence, nil, today); ok {
		merged.NextPredicted = next
	}

	return merged, nil
}

func noneIrregular(inputs []model.RecurringSeries) bool {
	for _, in := range inputs {
		if in.Cadence == model.CadenceIrregular {
			return false
		}
	}
	return true
}

// majorityCadence picks the most frequent cadence among the inputs; ties
// resolve to the shorter period.
func majorityCadence(inputs []model.RecurringSeries) model.Cadence {
	counts := make(map[model.Cadence]int)
	for _, in := range inputs {
		if in.Cadence != model.CadenceIrregular {
			counts[in.Cadence]++
		}
	}

	best := model.CadenceIrregular
	bestCount := 0
	for cadence, count := range counts {
		switch {
		case count > bestCount:
			best, bestCount = cadence, count
		case count == bestCount && cadence.PeriodDays() < best.PeriodDays():
			best = cadence
		}
	}
	return best
}

// mergedExpectedAmount is the mean of all unioned amounts, or the sum of the
// parents' expected amounts when the union carries none (sparse data).
func mergedExpectedAmount(occs []model.Occurrence, inputs []model.RecurringSeries) float64 {
	if len(occs) > 0 {
		sum := 0.0
		for _, occ := range occs {
			sum += occ.Amount
		}
		return sum / float64(len(occs))
	}

	sum := 0.0
	for _, in := range inputs {
		sum += in.ExpectedAmount
	}
	return sum
}
