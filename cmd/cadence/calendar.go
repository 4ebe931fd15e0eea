package main

import (
	"fmt"
	"time"

	"github.com/caddyshack-fin/cadence/internal/cli"
	"github.com/caddyshack-fin/cadence/internal/recurring"
	"github.com/spf13/cobra"
)

func calendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Project upcoming occurrences grouped by month",
		Long: `Project every active series forward and render a calendar of expected
charges grouped by month, with an exact total per month.`,
		RunE: runCalendar,
	}

	cmd.Flags().IntP("months", "m", 0, "Projection horizon in months (default from config)")

	return cmd
}

func runCalendar(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	opts := loadDetectionOptions()

	if months, _ := cmd.Flags().GetInt("months"); months > 0 {
		opts.ForecastHorizonMonths = months
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
		fmt.Println(cli.FormatInfo("No active series. Run: cadence detect"))
		return nil
	}

	predictions := recurring.ProjectCalendar(series, opts, time.Now())
	months := recurring.GroupByMonth(predictions)

	if len(months) == 0 {
		fmt.Println(cli.FormatInfo("Nothing projected inside the horizon"))
		return nil
	}

	fmt.Println(cli.FormatTitle(fmt.Sprintf("Upcoming charges (%d months)", opts.ForecastHorizonMonths)))

	for _, group := range months {
		fmt.Println(cli.BoldStyle.Render(group.Month))
		rows := make([][]string, 0, len(group.Occurrences))
		for _, occ := range group.Occurrences {
			rows = append(rows, []string{
				occ.Date.Format("2006-01-02"),
				occ.SeriesKey,
				formatAmount(occ.Amount),
			})
		}
		fmt.Print(cli.RenderTable([]string{"Date", "Series", "Amount"}, rows))
		fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("  total %s", formatAmount(group.Total))))
		fmt.Println()
	}

	return nil
}
