// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/caddyshack-fin/cadence/internal/model"
	"github.com/caddyshack-fin/cadence/internal/recurring"
)

// TransactionFilter defines filtering options for transaction queries.
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Direction model.TransactionDirection
	Limit     int
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Transaction operations
	SaveTransactions(ctx context.Context, transactions []model.Transaction) error
	GetTransactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error)
	GetTransactionCount(ctx context.Context) (int, error)

	// Recurring series operations
	SaveSeries(ctx context.Context, series *model.RecurringSeries) error
	GetSeries(ctx context.Context, seriesKey string) (*model.RecurringSeries, error)
	GetActiveSeries(ctx context.Context) ([]model.RecurringSeries, error)
	DeactivateSeries(ctx context.Context, seriesKey string) error
	SetManualOverride(ctx context.Context, seriesKey string, override *time.Time) error
	MergeSeries(ctx context.Context, survivor *model.RecurringSeries, absorbedKeys []string) error

	Close() error
}

// TransactionFetcher defines the contract for remote transaction feeds.
type TransactionFetcher interface {
	GetTransactions(ctx context.Context, startDate, endDate time.Time) ([]model.Transaction, error)
	GetAccounts(ctx context.Context) ([]string, error)
}

// CalendarWriter defines the contract for exporting the projected calendar.
type CalendarWriter interface {
	Write(ctx context.Context, months []recurring.MonthGroup) error
}

// RetryOptions configures retry behavior for service operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
