package sheets

import (
	"testing"
	"time"

	"github.com/caddyshack-fin/cadence/internal/model"
	"github.com/caddyshack-fin/cadence/internal/recurring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "service account only",
			config: Config{
				ServiceAccountPath: "/tmp/key.json",
				RetryAttempts:      3,
				RetryDelay:         time.Second,
			},
		},
		{
			name: "oauth only",
			config: Config{
				ClientID:      "id",
				ClientSecret:  "secret",
				RefreshToken:  "token",
				RetryAttempts: 3,
			},
		},
		{
			name:    "no auth",
			config:  Config{RetryAttempts: 3},
			wantErr: true,
		},
		{
			name: "both auth methods",
			config: Config{
				ServiceAccountPath: "/tmp/key.json",
				ClientID:           "id",
				ClientSecret:       "secret",
				RefreshToken:       "token",
			},
			wantErr: true,
		},
		{
			name: "negative retries",
			config: Config{
				ServiceAccountPath: "/tmp/key.json",
				RetryAttempts:      -1,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPrepareCalendarData(t *testing.T) {
	w := &Writer{config: DefaultConfig()}

	months := []recurring.MonthGroup{
		{
			Month: "2024-04",
			Occurrences: []model.PredictedOccurrence{
				{Date: time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC), SeriesKey: "netflix", Amount: 15.99},
				{Date: time.Date(2024, 4, 12, 0, 0, 0, 0, time.UTC), SeriesKey: "gym", Amount: 40.00},
			},
			Total: 55.99,
		},
		{
			Month: "2024-05",
			Occurrences: []model.PredictedOccurrence{
				{Date: time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC), SeriesKey: "netflix", Amount: 15.99},
			},
			Total: 15.99,
		},
	}

	values := w.prepareCalendarData(months)

	// Header + 3 occurrence rows + 2 subtotal rows.
	require.Len(t, values, 6)
	assert.Equal(t, []any{"Month", "Date", "Series", "Amount"}, values[0])
	assert.Equal(t, []any{"2024-04", "2024-04-05", "netflix", 15.99}, values[1])
	assert.Equal(t, []any{"2024-04", "", "Total", 55.99}, values[3])
	assert.Equal(t, []any{"2024-05", "", "Total", 15.99}, values[5])
}
