package main

import (
	"context"
	"fmt"

	"github.com/caddyshack-fin/cadence/internal/config"
	"github.com/caddyshack-fin/cadence/internal/model"
	"github.com/caddyshack-fin/cadence/internal/recurring"
	"github.com/caddyshack-fin/cadence/internal/service"
	"github.com/caddyshack-fin/cadence/internal/storage"
	"github.com/spf13/viper"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/cadence/cadence.db"
	}

	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// loadDetectionOptions reads detection tuning from config, falling back to
// the package defaults.
func loadDetectionOptions() recurring.Options {
	opts := recurring.DefaultOptions()

	if v := viper.GetString("detection.direction"); v != "" {
		opts.Direction = model.TransactionDirection(v)
	}
	if v := viper.GetInt("detection.dormancy_days"); v > 0 {
		opts.DormancyThresholdDays = v
	}
	if v := viper.GetInt("detection.alert_cap"); v > 0 {
		opts.AlertCap = v
	}
	if v := viper.GetInt("detection.forecast_months"); v > 0 {
		opts.ForecastHorizonMonths = v
	}

	return opts
}

// formatAmount renders an amount for display. Negative amounts are income.
func formatAmount(amount float64) string {
	if amount < 0 {
		return fmt.Sprintf("+$%.2f", -amount)
	}
	return fmt.Sprintf("$%.2f", amount)
}
