package main

import (
	"fmt"
	"time"

	"github.com/caddyshack-fin/cadence/internal/cli"
	"github.com/caddyshack-fin/cadence/internal/recurring"
	"github.com/caddyshack-fin/cadence/internal/service"
	"github.com/spf13/cobra"
)

func forecastCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forecast",
		Short: "Forecast charges over the next seven days",
		Long: `Predict which merchants will charge within the next seven days, based
directly on day-of-month patterns in the raw transaction history. This
forecast is stateless: it does not use or modify detected series.`,
		RunE: runForecast,
	}
}

func runForecast(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	opts := loadDetectionOptions()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	txns, err := store.GetTransactions(ctx, service.TransactionFilter{Direction: opts.Direction})
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	if len(txns) == 0 {
		fmt.Println(cli.FormatWarning("No transactions imported yet. Run: cadence import"))
		return nil
	}

	predictions, total := recurring.ForecastWindow(txns, opts, time.Now())

	if len(predictions) == 0 {
		fmt.Println(cli.FormatInfo("No charges expected in the next 7 days"))
		return nil
	}

	fmt.Println(cli.FormatTitle("Expected charges, next 7 days"))

	rows := make([][]string, 0, len(predictions))
	for _, p := range predictions {
		rows = append(rows, []string{
			p.Date.Format("2006-01-02 (Mon)"),
			p.SeriesKey,
			formatAmount(p.Amount),
		})
	}
	fmt.Print(cli.RenderTable([]string{"Date", "Merchant", "Amount"}, rows))
	fmt.Println(cli.BoldStyle.Render(fmt.Sprintf("Total: %s", formatAmount(total))))

	return nil
}
