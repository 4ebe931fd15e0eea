package main

import (
	"fmt"
	"time"

	"github.com/caddyshack-fin/cadence/internal/cli"
	"github.com/caddyshack-fin/cadence/internal/model"
	"github.com/caddyshack-fin/cadence/internal/recurring"
	"github.com/spf13/cobra"
)

func alertsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "alerts",
		Short: "Show dormant series and amount changes",
		Long: `Check every active series for conditions worth a look: series that have
gone quiet past the dormancy threshold, and series whose expected
amount shifted on the last detection run.`,
		RunE: runAlerts,
	}
}

func runAlerts(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	opts := loadDetectionOptions()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	series, err := store.GetActiveSeries(ctx)
	if err != nil {
		return fmt.Errorf("failed to load series: %w", err)
	}

	alerts := recurring.DetectAlerts(series, opts, time.Now())

	if len(alerts) == 0 {
		fmt.Println(cli.FormatSuccess("No alerts"))
		return nil
	}

	fmt.Println(cli.FormatTitle(fmt.Sprintf("%s Alerts", cli.BellIcon)))

	for _, alert := range alerts {
		switch alert.Kind {
		case model.AlertDormant:
			fmt.Println(cli.FormatWarning(fmt.Sprintf("%s: %s", alert.SeriesKey, alert.Detail)))
		case model.AlertAmountChange:
			fmt.Println(cli.FormatInfo(fmt.Sprintf("%s: %s", alert.SeriesKey, alert.Detail)))
		}
	}

	return nil
}
