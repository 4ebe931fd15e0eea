package recurring

import (
	"fmt"
	"time"

	"github.com/caddyshack-fin/cadence/internal/model"
)

// DetectAlerts flags active series that have gone dormant or whose expected
// amount has silently shifted. Output is capped; truncation keeps the first
// alerts in detection order, not ranked by severity.
func DetectAlerts(series []model.RecurringSeries, opts Options, today time.Time) []model.Alert {
	var alerts []model.Alert

	for _, s := range series {
		if !s.IsActive {
			continue
		}

		if !s.LastOccurrence.IsZero() {
			age := daysBetween(s.LastOccurrence, today)
			if age > opts.DormancyThresholdDays {
				alerts = append(alerts, model.Alert{
					Kind:      model.AlertDormant,
					SeriesKey: s.SeriesKey,
					Detail:    fmt.Sprintf("last seen %s, %d days ago", s.LastOccurrence.Format("2006-01-02"), age),
				})
			}
		}

		if s.AmountDrift != 0 {
			alerts = append(alerts, model.Alert{
				Kind:      model.AlertAmountChange,
				SeriesKey: s.SeriesKey,
				Detail:    fmt.Sprintf("expected amount moved %+.2f to %.2f", s.AmountDrift, s.ExpectedAmount),
			})
		}
	}

	if opts.AlertCap > 0 && len(alerts) > opts.AlertCap {
		alerts = alerts[:opts.AlertCap]
	}
	return alerts
}
