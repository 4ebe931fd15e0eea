package recurring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGaps(t *testing.T) {
	occs := occurrences(100,
		date(2024, time.January, 5),
		date(2024, time.January, 19),
		date(2024, time.February, 2),
	)

	gaps := Gaps(occs)
	assert.Equal(t, []int{14, 14}, gaps)
	assert.InDelta(t, 14.0, MeanGap(gaps), 0.001)
}

func TestGaps_CrossesMonthAndYearBoundaries(t *testing.T) {
	occs := occurrences(100,
		date(2023, time.December, 28),
		date(2024, time.January, 4),
	)
	assert.Equal(t, []int{7}, Gaps(occs))
}

func TestGaps_InsufficientOccurrences(t *testing.T) {
	assert.Nil(t, Gaps(nil))
	assert.Nil(t, Gaps(occurrences(10, date(2024, time.March, 1))))
	assert.Zero(t, MeanGap(nil))
}

func TestDaysBetween_IgnoresClockTime(t *testing.T) {
	a := time.Date(2024, time.March, 1, 23, 59, 0, 0, time.UTC)
	b := time.Date(2024, time.March, 2, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 1, daysBetween(a, b))
}
