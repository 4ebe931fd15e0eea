package recurring

import (
	"testing"
	"time"

	"github.com/caddyshack-fin/cadence/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext_BiWeeklyScenario(t *testing.T) {
	// 14-day gaps ending 2024-02-02 predict 2024-02-16.
	last := date(2024, time.February, 2)
	today := date(2024, time.February, 2)

	next, ok := Next(model.CadenceBiWeekly, last, nil, today)
	require.True(t, ok)
	assert.Equal(t, date(2024, time.February, 16), next)
}

func TestNext_BiWeeklyPreservesDayOfWeek(t *testing.T) {
	last := date(2024, time.January, 5) // a Friday
	today := date(2024, time.March, 20)

	next, ok := Next(model.CadenceBiWeekly, last, nil, today)
	require.True(t, ok)
	assert.Equal(t, time.Friday, next.Weekday())
	assert.True(t, next.After(today))
}

func TestNext_SemiMonthlyAlternation(t *testing.T) {
	tests := []struct {
		name  string
		last  time.Time
		today time.Time
		want  time.Time
	}{
		{
			name:  "from the 15th to end of same month",
			last:  date(2024, time.February, 15),
			today: date(2024, time.February, 15),
			want:  date(2024, time.February, 29), // leap year
		},
		{
			name:  "from end of month to the 15th of the next",
			last:  date(2024, time.January, 31),
			today: date(2024, time.January, 31),
			want:  date(2024, time.February, 15),
		},
		{
			name:  "from end of February",
			last:  date(2023, time.February, 28),
			today: date(2023, time.February, 28),
			want:  date(2023, time.March, 15),
		},
		{
			name:  "alternates past a stale today",
			last:  date(2024, time.January, 15),
			today: date(2024, time.March, 2),
			want:  date(2024, time.March, 15),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, ok := Next(model.CadenceSemiMonthly, tt.last, nil, tt.today)
			require.True(t, ok)
			assert.Equal(t, tt.want, next)
		})
	}
}

func TestNext_ManualOverride(t *testing.T) {
	last := date(2024, time.March, 1)
	today := date(2024, time.March, 10)

	t.Run("future override wins", func(t *testing.T) {
		override := date(2024, time.April, 20)
		next, ok := Next(model.CadenceMonthly, last, &override, today)
		require.True(t, ok)
		assert.Equal(t, override, next)
	})

	t.Run("stale override falls back to stepping", func(t *testing.T) {
		override := date(2024, time.March, 5) // already passed
		next, ok := Next(model.CadenceMonthly, last, &override, today)
		require.True(t, ok)
		assert.Equal(t, date(2024, time.April, 1), next)
	})

	t.Run("stale override keeps bi-weekly day-of-week", func(t *testing.T) {
		friday := date(2024, time.January, 5)
		override := date(2024, time.January, 8) // a Monday, now stale
		next, ok := Next(model.CadenceBiWeekly, friday, &override, date(2024, time.January, 20))
		require.True(t, ok)
		assert.Equal(t, time.Friday, next.Weekday())
		assert.Equal(t, date(2024, time.February, 2), next)
	})
}

func TestNext_AlwaysStrictlyFuture(t *testing.T) {
	cadences := []model.Cadence{
		model.CadenceWeekly,
		model.CadenceBiWeekly,
		model.CadenceSemiMonthly,
		model.CadenceMonthly,
	}
	lasts := []time.Time{
		date(2023, time.June, 15),
		date(2024, time.January, 31),
		date(2024, time.February, 29),
	}
	today := date(2024, time.March, 14)

	for _, cadence := range cadences {
		for _, last := range lasts {
			next, ok := Next(cadence, last, nil, today)
			require.True(t, ok, "cadence %s", cadence)
			assert.True(t, next.After(today), "cadence %s from %s", cadence, last)
			assert.True(t, next.After(last), "cadence %s from %s", cadence, last)
		}
	}
}

func TestNext_Irregular(t *testing.T) {
	_, ok := Next(model.CadenceIrregular, date(2024, time.January, 1), nil, date(2024, time.February, 1))
	assert.False(t, ok)
}
