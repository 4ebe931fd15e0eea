package model

import (
	"fmt"
	"time"
)

// Cadence is the classified recurrence frequency of a series. It is a closed
// set: constructing any other value is rejected by Validate.
type Cadence string

const (
	// CadenceWeekly is a ~7 day cycle.
	CadenceWeekly Cadence = "weekly"
	// CadenceBiWeekly is a ~14 day cycle, day-of-week preserving.
	CadenceBiWeekly Cadence = "bi-weekly"
	// CadenceSemiMonthly is the paired 15th / end-of-month cycle.
	CadenceSemiMonthly Cadence = "semi-monthly"
	// CadenceMonthly is a calendar-month cycle.
	CadenceMonthly Cadence = "monthly"
	// CadenceIrregular means no recognized cycle; such series are never
	// projected forward.
	CadenceIrregular Cadence = "irregular"
)

// Validate returns an error for any value outside the closed cadence set.
func (c Cadence) Validate() error {
	switch c {
	case CadenceWeekly, CadenceBiWeekly, CadenceSemiMonthly, CadenceMonthly, CadenceIrregular:
		return nil
	}
	return fmt.Errorf("invalid cadence: %q", string(c))
}

// PeriodDays returns the nominal cycle length in days, used for
// shortest-period tie-breaking. Semi-monthly counts as its half-cycle.
func (c Cadence) PeriodDays() int {
	switch c {
	case CadenceWeekly:
		return 7
	case CadenceBiWeekly:
		return 14
	case CadenceSemiMonthly:
		return 15
	case CadenceMonthly:
		return 30
	default:
		return 0
	}
}

// Occurrence is one historical realization of a series.
type Occurrence struct {
	Date   time.Time
	Amount float64
}

// RecurringSeries is a detected recurring financial event: a paycheck, a
// subscription, a bill. Occurrences are chronological and append-only.
type RecurringSeries struct {
	LastOccurrence time.Time
	NextPredicted  time.Time
	ManualOverride *time.Time
	UpdatedAt      time.Time
	SeriesKey      string
	MergedInto     string
	Occurrences    []Occurrence
	Cadence        Cadence
	ExpectedAmount float64
	AmountDrift    float64
	Confidence     int
	IsActive       bool
}

// PredictedOccurrence is an ephemeral forward projection of a series. It is
// always derivable from a RecurringSeries and never persisted.
type PredictedOccurrence struct {
	Date      time.Time
	SeriesKey string
	Amount    float64
}

// AlertKind distinguishes the alert conditions the detector can raise.
type AlertKind string

const (
	// AlertDormant fires when a series has gone quiet past the threshold.
	AlertDormant AlertKind = "dormant"
	// AlertAmountChange fires when the expected amount has shifted.
	AlertAmountChange AlertKind = "amount_change"
)

// Alert is an ephemeral notification produced by an evaluation pass.
type Alert struct {
	Kind      AlertKind
	SeriesKey string
	Detail    string
}
