package main

import (
	"fmt"
	"time"

	"github.com/caddyshack-fin/cadence/internal/cli"
	"github.com/caddyshack-fin/cadence/internal/model"
	"github.com/caddyshack-fin/cadence/internal/recurring"
	"github.com/spf13/cobra"
)

func mergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge KEY KEY [KEY...]",
		Short: "Merge series that track the same underlying payment",
		Long: `Merge two or more series into one. The first key survives; the others
are deactivated and point at the survivor. Occurrence histories are
combined, the cadence is re-classified over the union, and confidence
and the next prediction are recomputed.

The merge is all-or-nothing: if any key does not exist, nothing changes.`,
		Args: cobra.MinimumNArgs(2),
		RunE: runMerge,
	}
}

func runMerge(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	inputs := make([]model.RecurringSeries, 0, len(args))
	for _, key := range args {
		series, err := store.GetSeries(ctx, key)
		if err != nil {
			return fmt.Errorf("failed to load series %s: %w", key, err)
		}
		inputs = append(inputs, *series)
	}

	merged, err := recurring.Merge(inputs, time.Now())
	if err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}

	if err := store.MergeSeries(ctx, &merged, args[1:]); err != nil {
		return fmt.Errorf("failed to persist merge: %w", err)
	}

	next := "-"
	if !merged.NextPredicted.IsZero() {
		next = merged.NextPredicted.Format("2006-01-02")
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Merged %d series into %q", len(args), merged.SeriesKey)))
	fmt.Print(cli.RenderTable(
		[]string{"Series", "Cadence", "Expected", "Confidence", "Next"},
		[][]string{{
			merged.SeriesKey,
			string(merged.Cadence),
			formatAmount(merged.ExpectedAmount),
			fmt.Sprintf("%d%%", merged.Confidence),
			next,
		}},
	))

	return nil
}
