package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/caddyshack-fin/cadence/internal/common"
	"github.com/caddyshack-fin/cadence/internal/model"
)

// SaveSeries upserts one recurring series and its occurrence history.
// Writes are last-writer-wins per series key; when the expected amount
// changes, the difference is recorded as amount drift for the alert detector.
func (s *SQLiteStorage) SaveSeries(ctx context.Context, series *model.RecurringSeries) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSeries(series); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.saveSeriesTx(ctx, tx, series); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStorage) saveSeriesTx(ctx context.Context, tx *sql.Tx, series *model.RecurringSeries) error {
	var prior float64
	err := tx.QueryRowContext(ctx, `
		SELECT expected_amount FROM recurring_series WHERE series_key = ?
	`, series.SeriesKey).Scan(&prior)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// First classification; nothing to drift from.
	case err != nil:
		return fmt.Errorf("failed to read prior series: %w", err)
	default:
		if prior != series.ExpectedAmount {
			series.AmountDrift = series.ExpectedAmount - prior
		}
	}

	if series.UpdatedAt.IsZero() {
		series.UpdatedAt = time.Now()
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO recurring_series (
			series_key, cadence, expected_amount, confidence, amount_drift,
			last_occurrence, next_predicted, manual_override,
			is_active, merged_into, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(series_key) DO UPDATE SET
			cadence = excluded.cadence,
			expected_amount = excluded.expected_amount,
			confidence = excluded.confidence,
			amount_drift = excluded.amount_drift,
			last_occurrence = excluded.last_occurrence,
			next_predicted = excluded.next_predicted,
			manual_override = excluded.manual_override,
			is_active = excluded.is_active,
			merged_into = excluded.merged_into,
			updated_at = excluded.updated_at
	`,
		series.SeriesKey,
		string(series.Cadence),
		series.ExpectedAmount,
		series.Confidence,
		series.AmountDrift,
		nullTime(series.LastOccurrence),
		nullTime(series.NextPredicted),
		nullTimePtr(series.ManualOverride),
		series.IsActive,
		nullString(series.MergedInto),
		series.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save series %s: %w", series.SeriesKey, err)
	}

	// Occurrence history is replaced wholesale so re-running a detection or
	// merge with identical inputs stays idempotent.
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM series_occurrences WHERE series_key = ?
	`, series.SeriesKey); err != nil {
		return fmt.Errorf("failed to clear occurrences for %s: %w", series.SeriesKey, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO series_occurrences (series_key, occurred_on, amount)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare occurrence insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, occ := range series.Occurrences {
		if _, err := stmt.ExecContext(ctx, series.SeriesKey, occ.Date, occ.Amount); err != nil {
			return fmt.Errorf("failed to insert occurrence for %s: %w", series.SeriesKey, err)
		}
	}

	return nil
}

// GetSeries retrieves a single series by key, with its occurrence history.
func (s *SQLiteStorage) GetSeries(ctx context.Context, seriesKey string) (*model.RecurringSeries, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(seriesKey, "seriesKey"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT series_key, cadence, expected_amount, confidence, amount_drift,
		       last_occurrence, next_predicted, manual_override,
		       is_active, merged_into, updated_at
		FROM recurring_series
		WHERE series_key = ?
	`, seriesKey)

	series, err := scanSeries(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrSeriesNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get series: %w", err)
	}

	if err := s.loadOccurrences(ctx, series); err != nil {
		return nil, err
	}
	return series, nil
}

// GetActiveSeries retrieves all active series with their occurrence
// histories, sorted by series key.
func (s *SQLiteStorage) GetActiveSeries(ctx context.Context) ([]model.RecurringSeries, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT series_key, cadence, expected_amount, confidence, amount_drift,
		       last_occurrence, next_predicted, manual_override,
		       is_active, merged_into, updated_at
		FROM recurring_series
		WHERE is_active = 1
		ORDER BY series_key ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query series: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []model.RecurringSeries
	for rows.Next() {
		series, err := scanSeries(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan series: %w", err)
		}
		result = append(result, *series)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		if err := s.loadOccurrences(ctx, &result[i]); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// DeactivateSeries marks a series inactive. Series are never deleted.
func (s *SQLiteStorage) DeactivateSeries(ctx context.Context, seriesKey string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(seriesKey, "seriesKey"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE recurring_series SET is_active = 0, updated_at = ? WHERE series_key = ?
	`, time.Now(), seriesKey)
	if err != nil {
		return fmt.Errorf("failed to deactivate series: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deactivation: %w", err)
	}
	if affected == 0 {
		return common.ErrSeriesNotFound
	}
	return nil
}

// SetManualOverride sets or clears the manual next-date override.
func (s *SQLiteStorage) SetManualOverride(ctx context.Context, seriesKey string, override *time.Time) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(seriesKey, "seriesKey"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE recurring_series SET manual_override = ?, updated_at = ? WHERE series_key = ?
	`, nullTimePtr(override), time.Now(), seriesKey)
	if err != nil {
		return fmt.Errorf("failed to set manual override: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check override update: %w", err)
	}
	if affected == 0 {
		return common.ErrSeriesNotFound
	}
	return nil
}

// MergeSeries commits a merge atomically: the survivor is upserted and every
// absorbed series is deactivated with its lineage recorded. Nothing is
// written unless every referenced series exists.
func (s *SQLiteStorage) MergeSeries(ctx context.Context, survivor *model.RecurringSeries, absorbedKeys []string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSeries(survivor); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, key := range absorbedKeys {
		var exists bool
		err := tx.QueryRowContext(ctx, `
			SELECT EXISTS(SELECT 1 FROM recurring_series WHERE series_key = ?)
		`, key).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check series %s: %w", key, err)
		}
		if !exists {
			return fmt.Errorf("%w: %s", common.ErrSeriesNotFound, key)
		}
	}

	if err := s.saveSeriesTx(ctx, tx, survivor); err != nil {
		return err
	}

	for _, key := range absorbedKeys {
		if key == survivor.SeriesKey {
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			UPDATE recurring_series
			SET is_active = 0, merged_into = ?, updated_at = ?
			WHERE series_key = ?
		`, survivor.SeriesKey, time.Now(), key); err != nil {
			return fmt.Errorf("failed to absorb series %s: %w", key, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStorage) loadOccurrences(ctx context.Context, series *model.RecurringSeries) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT occurred_on, amount
		FROM series_occurrences
		WHERE series_key = ?
		ORDER BY occurred_on ASC, amount ASC
	`, series.SeriesKey)
	if err != nil {
		return fmt.Errorf("failed to query occurrences: %w", err)
	}
	defer func() { _ = rows.Close() }()

	series.Occurrences = nil
	for rows.Next() {
		var occ model.Occurrence
		if err := rows.Scan(&occ.Date, &occ.Amount); err != nil {
			return fmt.Errorf("failed to scan occurrence: %w", err)
		}
		series.Occurrences = append(series.Occurrences, occ)
	}
	return rows.Err()
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSeries(row scanner) (*model.RecurringSeries, error) {
	var series model.RecurringSeries
	var cadence string
	var lastOccurrence, nextPredicted, manualOverride sql.NullTime
	var mergedInto sql.NullString

	if err := row.Scan(
		&series.SeriesKey,
		&cadence,
		&series.ExpectedAmount,
		&series.Confidence,
		&series.AmountDrift,
		&lastOccurrence,
		&nextPredicted,
		&manualOverride,
		&series.IsActive,
		&mergedInto,
		&series.UpdatedAt,
	); err != nil {
		return nil, err
	}

	series.Cadence = model.Cadence(cadence)
	if lastOccurrence.Valid {
		series.LastOccurrence = lastOccurrence.Time
	}
	if nextPredicted.Valid {
		series.NextPredicted = nextPredicted.Time
	}
	if manualOverride.Valid {
		override := manualOverride.Time
		series.ManualOverride = &override
	}
	series.MergedInto = mergedInto.String

	return &series, nil
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

func nullTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
