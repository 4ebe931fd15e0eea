package recurring

import (
	"testing"
	"time"

	"github.com/caddyshack-fin/cadence/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestClassify_CadenceBands(t *testing.T) {
	start := date(2024, time.March, 1)

	tests := []struct {
		name    string
		gapDays []int
		want    model.Cadence
	}{
		{
			name:    "weekly",
			gapDays: []int{7, 7, 7},
			want:    model.CadenceWeekly,
		},
		{
			name:    "weekly with jitter",
			gapDays: []int{6, 8, 7},
			want:    model.CadenceWeekly,
		},
		{
			name:    "bi-weekly",
			gapDays: []int{14, 14},
			want:    model.CadenceBiWeekly,
		},
		{
			name:    "monthly-ish",
			gapDays: []int{30, 31, 29},
			want:    model.CadenceMonthly,
		},
		{
			name:    "no recognizable cycle",
			gapDays: []int{3, 45, 11},
			want:    model.CadenceIrregular,
		},
		{
			name:    "near-miss resolves to closest band",
			gapDays: []int{15, 16}, // mean 15.5, just past the bi-weekly band
			want:    model.CadenceBiWeekly,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dates := []time.Time{start}
			for _, gap := range tt.gapDays {
				dates = append(dates, dates[len(dates)-1].AddDate(0, 0, gap))
			}
			got := Classify(occurrences(50, dates...))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_SemiMonthlyClustering(t *testing.T) {
	// 15th / end-of-month pairs; the raw mean gap alternates 15/16 days and
	// would otherwise skew into the bi-weekly band.
	occs := occurrences(2400,
		date(2024, time.January, 15),
		date(2024, time.January, 31),
		date(2024, time.February, 15),
		date(2024, time.February, 29),
	)
	assert.Equal(t, model.CadenceSemiMonthly, Classify(occs))
}

func TestClassify_SemiMonthlyScenario(t *testing.T) {
	// Three occurrences, only one of them at end-of-month.
	occs := occurrences(2400,
		date(2024, time.January, 15),
		date(2024, time.January, 31),
		date(2024, time.February, 15),
	)
	assert.Equal(t, model.CadenceSemiMonthly, Classify(occs))
}

func TestClassify_WeeklyNotMistakenForSemiMonthly(t *testing.T) {
	// A weekly series also has charges in both halves of the month; its
	// days do not cluster around the 15th and end-of-month, though.
	occs := occurrences(12,
		date(2024, time.March, 1),
		date(2024, time.March, 8),
		date(2024, time.March, 15),
		date(2024, time.March, 22),
		date(2024, time.March, 29),
	)
	assert.Equal(t, model.CadenceWeekly, Classify(occs))
}

func TestClassify_InsufficientOccurrences(t *testing.T) {
	assert.Equal(t, model.CadenceIrregular, Classify(nil))
	assert.Equal(t, model.CadenceIrregular, Classify(occurrences(10, date(2024, time.May, 1))))
}
