package main

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/caddyshack-fin/cadence/internal/cli"
	"github.com/caddyshack-fin/cadence/internal/model"
	"github.com/spf13/cobra"
)

func seriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "series",
		Short: "Manage detected recurring series",
	}

	cmd.AddCommand(seriesListCmd())
	cmd.AddCommand(seriesDeactivateCmd())
	cmd.AddCommand(seriesOverrideCmd())

	return cmd
}

func seriesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active recurring series",
		RunE:  runSeriesList,
	}

	cmd.Flags().Bool("suggest-dupes", false, "Suggest likely duplicate series to merge")

	return cmd
}

func runSeriesList(cmd *cobra.Command, _ []string) error {
	suggestDupes, _ := cmd.Flags().GetBool("suggest-dupes")
	ctx := cmd.Context()

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

	fmt.Println(cli.FormatTitle("Active recurring series"))

	rows := make([][]string, 0, len(series))
	for _, s := range series {
		next := "-"
		if s.ManualOverride != nil {
			next = s.ManualOverride.Format("2006-01-02") + " (manual)"
		} else if !s.NextPredicted.IsZero() {
			next = s.NextPredicted.Format("2006-01-02")
		}
		rows = append(rows, []string{
			s.SeriesKey,
			string(s.Cadence),
			formatAmount(s.ExpectedAmount),
			fmt.Sprintf("%d%%", s.Confidence),
			s.LastOccurrence.Format("2006-01-02"),
			next,
		})
	}
	fmt.Print(cli.RenderTable(
		[]string{"Series", "Cadence", "Expected", "Confidence", "Last", "Next"},
		rows))

	if suggestDupes {
		printDuplicateSuggestions(series)
	}

	return nil
}

// printDuplicateSuggestions flags series pairs with the same cadence and
// near-identical expected amounts. Purely advisory; merging stays a manual
// decision.
func printDuplicateSuggestions(series []model.RecurringSeries) {
	const amountTolerance = 0.05 // relative

	type pair struct {
		a, b string
	}
	var pairs []pair

	for i := 0; i < len(series); i++ {
		for j := i + 1; j < len(series); j++ {
			a, b := series[i], series[j]
			if a.Cadence != b.Cadence {
				continue
			}
			larger := math.Max(math.Abs(a.ExpectedAmount), math.Abs(b.ExpectedAmount))
			if larger == 0 {
				continue
			}
			diff := math.Abs(a.ExpectedAmount - b.ExpectedAmount)
			if diff/larger <= amountTolerance {
				pairs = append(pairs, pair{a.SeriesKey, b.SeriesKey})
			}
		}
	}

	if len(pairs) == 0 {
		return
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].a != pairs[j].a {
			return pairs[i].a < pairs[j].a
		}
		return pairs[i].b < pairs[j].b
	})

	fmt.Println(cli.FormatWarning("Possible duplicate series:"))
	for _, p := range pairs {
		fmt.Printf("  %s <-> %s  (merge with: cadence merge %q %q)\n", p.a, p.b, p.a, p.b)
	}
}

func seriesDeactivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate KEY",
		Short: "Deactivate a series (it stays in history)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			if err := store.DeactivateSeries(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to deactivate %s: %w", args[0], err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deactivated series %q", args[0])))
			return nil
		},
	}
}

func seriesOverrideCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "override KEY [DATE]",
		Short: "Set or clear a manual next-occurrence date",
		Long: `Set a manual override for the next predicted date of a series. The
override wins over the computed prediction while it is in the future;
once it passes, prediction falls back to the computed schedule.

Use --clear to remove an override.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runSeriesOverride,
	}

	cmd.Flags().Bool("clear", false, "Clear the manual override")

	return cmd
}

func runSeriesOverride(cmd *cobra.Command, args []string) error {
	clearFlag, _ := cmd.Flags().GetBool("clear")
	ctx := cmd.Context()
	key := args[0]

	var override *time.Time
	if !clearFlag {
		if len(args) < 2 {
			return fmt.Errorf("provide a date (YYYY-MM-DD) or --clear")
		}
		parsed, err := time.Parse("2006-01-02", args[1])
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", args[1], err)
		}
		override = &parsed
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.SetManualOverride(ctx, key, override); err != nil {
		return fmt.Errorf("failed to update override for %s: %w", key, err)
	}

	if clearFlag {
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Cleared override for %q", key)))
	} else {
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Next occurrence of %q overridden to %s", key, args[1])))
	}
	return nil
}
