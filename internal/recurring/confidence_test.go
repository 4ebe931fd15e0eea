package recurring

import (
	"testing"
	"time"

	"github.com/caddyshack-fin/cadence/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestScore_PerfectlyRegularSeries(t *testing.T) {
	occs := occurrences(9.99,
		date(2024, time.January, 1),
		date(2024, time.February, 1),
		date(2024, time.March, 1),
		date(2024, time.April, 1),
	)
	// Identical amounts; gaps of 31, 29, 31 days carry only slight variance.
	score := Score(occs)
	assert.GreaterOrEqual(t, score, 90)
	assert.LessOrEqual(t, score, 100)
}

func TestScore_NoisyAmountsScoreLower(t *testing.T) {
	regular := occurrences(50,
		date(2024, time.January, 1),
		date(2024, time.February, 1),
		date(2024, time.March, 1),
		date(2024, time.April, 1),
	)

	noisy := []model.Occurrence{
		{Date: date(2024, time.January, 1), Amount: 20},
		{Date: date(2024, time.February, 1), Amount: 95},
		{Date: date(2024, time.March, 1), Amount: 12},
		{Date: date(2024, time.April, 1), Amount: 160},
	}

	assert.Less(t, Score(noisy), Score(regular))
}

func TestScore_TwoOccurrencesCapped(t *testing.T) {
	occs := occurrences(100,
		date(2024, time.January, 1),
		date(2024, time.January, 8),
	)
	score := Score(occs)
	assert.LessOrEqual(t, score, 50)
	assert.Greater(t, score, 0)
}

func TestScore_InsufficientData(t *testing.T) {
	assert.Zero(t, Score(nil))
	assert.Zero(t, Score(occurrences(10, date(2024, time.March, 1))))
}

func TestScore_NegativeAmountsUseMagnitude(t *testing.T) {
	// Income recorded as negative amounts must not zero out the score.
	occs := []model.Occurrence{
		{Date: date(2024, time.January, 5), Amount: -1200},
		{Date: date(2024, time.January, 19), Amount: -1200},
		{Date: date(2024, time.February, 2), Amount: -1200},
	}
	assert.GreaterOrEqual(t, Score(occs), 90)
}
