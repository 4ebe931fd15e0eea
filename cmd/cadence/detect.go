package main

import (
	"fmt"
	"time"

	"github.com/caddyshack-fin/cadence/internal/cli"
	"github.com/caddyshack-fin/cadence/internal/recurring"
	"github.com/caddyshack-fin/cadence/internal/service"
	"github.com/spf13/cobra"
)

func detectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Detect recurring series in imported transactions",
		Long: `Scan the imported transaction history for recurring payment series:
group by merchant, classify the cadence, score confidence, and predict
the next occurrence. Detected series are persisted; re-running updates
them in place.`,
		RunE: runDetect,
	}

	cmd.Flags().Bool("dry-run", false, "Show detected series without persisting")

	return cmd
}

func runDetect(cmd *cobra.Command, _ []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
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

	detected := recurring.DetectSeries(txns, opts, time.Now())

	if len(detected) == 0 {
		fmt.Println(cli.FormatInfo("No recurring series found"))
		return nil
	}

	if !dryRun {
		for i := range detected {
			if err := store.SaveSeries(ctx, &detected[i]); err != nil {
				return fmt.Errorf("failed to save series %s: %w", detected[i].SeriesKey, err)
			}
		}
	}

	fmt.Println(cli.FormatTitle("Detected recurring series"))

	rows := make([][]string, 0, len(detected))
	for _, s := range detected {
		next := "-"
		if !s.NextPredicted.IsZero() {
			next = s.NextPredicted.Format("2006-01-02")
		}
		rows = append(rows, []string{
			s.SeriesKey,
			string(s.Cadence),
			formatAmount(s.ExpectedAmount),
			fmt.Sprintf("%d%%", s.Confidence),
			next,
		})
	}
	fmt.Print(cli.RenderTable([]string{"Series", "Cadence", "Expected", "Confidence", "Next"}, rows))

	if dryRun {
		fmt.Println(cli.FormatInfo("Dry run: nothing persisted"))
	} else {
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Saved %d series", len(detected))))
	}

	return nil
}
