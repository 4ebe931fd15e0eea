package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caddyshack-fin/cadence/internal/cli"
	"github.com/caddyshack-fin/cadence/internal/config"
	"github.com/caddyshack-fin/cadence/internal/recurring"
	"github.com/caddyshack-fin/cadence/internal/sheets"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the projected calendar to Google Sheets",
		Long: `Project active series forward and write the resulting calendar to a
Google Sheet. Authentication uses either a service account key or
OAuth2 credentials, configured under the "sheets" config section or
GOOGLE_SHEETS_* environment variables.`,
		RunE: runExport,
	}

	cmd.Flags().String("sheet", "", "Spreadsheet ID to write to (created if omitted)")
	cmd.Flags().IntP("months", "m", 0, "Projection horizon in months (default from config)")

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	opts := loadDetectionOptions()

	if months, _ := cmd.Flags().GetInt("months"); months > 0 {
		opts.ForecastHorizonMonths = months
	}

	sheetsConfig, err := config.LoadSheetsConfig()
	if err != nil {
		return fmt.Errorf("failed to load sheets config: %w", err)
	}
	if sheetID, _ := cmd.Flags().GetString("sheet"); sheetID != "" {
		sheetsConfig.SpreadsheetID = sheetID
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	series, err := store.GetActiveSeries(ctx)
	if err != nil {
		return fmt.Errorf("failed to load series: %w", err)
	}

	if len(series) == 0 {
		fmt.Println(cli.FormatInfo("No active series to export. Run: cadence detect"))
		return nil
	}

	predictions := recurring.ProjectCalendar(series, opts, time.Now())
	months := recurring.GroupByMonth(predictions)

	writer, err := sheets.NewWriter(ctx, *sheetsConfig, slog.Default().With("component", "sheets"))
	if err != nil {
		return fmt.Errorf("failed to create sheets writer: %w", err)
	}

	if err := writer.Write(ctx, months); err != nil {
		return fmt.Errorf("failed to export calendar: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d months to Google Sheets", len(months))))
	return nil
}
