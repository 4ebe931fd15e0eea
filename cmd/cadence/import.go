package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/caddyshack-fin/cadence/internal/cli"
	"github.com/caddyshack-fin/cadence/internal/model"
	"github.com/caddyshack-fin/cadence/internal/ofx"
	"github.com/caddyshack-fin/cadence/internal/plaid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import transactions from OFX/QFX files or Plaid",
		Long: `Import financial transactions from OFX or QFX files exported from your
bank, or fetch them directly from Plaid.

Examples:
  # Import single file
  cadence import ~/Downloads/chase_jan_2024.qfx

  # Import all QFX files in a directory
  cadence import ~/Downloads/*.qfx

  # Fetch the last 90 days from Plaid
  cadence import --plaid

  # Fetch a specific range from Plaid
  cadence import --plaid --start 2024-01-01 --end 2024-03-31`,
		RunE: runImport,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "Preview import without saving")
	cmd.Flags().Bool("plaid", false, "Fetch transactions from Plaid instead of files")
	cmd.Flags().String("start", "", "Start date for Plaid fetch (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "End date for Plaid fetch (YYYY-MM-DD)")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	usePlaid, _ := cmd.Flags().GetBool("plaid")

	interrupts := cli.NewInterruptHandler(os.Stdout)
	ctx := interrupts.HandleInterrupts(cmd.Context())

	var transactions []model.Transaction
	var err error

	if usePlaid {
		transactions, err = fetchFromPlaid(ctx, cmd)
	} else {
		if len(args) == 0 {
			return fmt.Errorf("provide OFX files to import or use --plaid")
		}
		transactions, err = parseOFXFiles(ctx, args)
	}
	if err != nil {
		return err
	}

	if len(transactions) == 0 {
		slog.Warn("No transactions found to import")
		return nil
	}

	// Cross-file duplicates collapse here; re-imports collapse again in
	// storage on the content hash.
	seen := make(map[string]bool, len(transactions))
	unique := make([]model.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if !seen[tx.Hash] {
			seen[tx.Hash] = true
			unique = append(unique, tx)
		}
	}

	slog.Info("Prepared import",
		"transactions", len(unique),
		"duplicates_skipped", len(transactions)-len(unique))

	if dryRun {
		fmt.Println(cli.FormatInfo(fmt.Sprintf("Dry run: %d transactions would be imported", len(unique))))
		return nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	bar := progressbar.NewOptions(len(unique),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Importing transactions..."),
	)

	// Save in batches so interrupts lose at most one batch.
	const batchSize = 100
	for start := 0; start < len(unique); start += batchSize {
		end := start + batchSize
		if end > len(unique) {
			end = len(unique)
		}
		if err := store.SaveTransactions(ctx, unique[start:end]); err != nil {
			return fmt.Errorf("failed to save transactions: %w", err)
		}
		_ = bar.Add(end - start)
	}
	fmt.Fprintln(os.Stderr)

	count, err := store.GetTransactionCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to count transactions: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d transactions (%d total in database)", len(unique), count)))
	return nil
}

// parseOFXFiles expands globs and parses every matching OFX/QFX file.
func parseOFXFiles(ctx context.Context, patterns []string) ([]model.Transaction, error) {
	var allFiles []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, statErr := os.Stat(pattern); statErr == nil {
				allFiles = append(allFiles, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
		} else {
			allFiles = append(allFiles, matches...)
		}
	}

	if len(allFiles) == 0 {
		return nil, fmt.Errorf("no files found to import")
	}

	parser := ofx.NewParser()
	var transactions []model.Transaction

	for _, filePath := range allFiles {
		slog.Info("Processing file", "file", filepath.Base(filePath))

		f, err := os.Open(filePath) // #nosec G304
		if err != nil {
			slog.Error("Failed to open file", "file", filePath, "error", err)
			continue
		}

		parsed, err := parser.ParseFile(ctx, f)
		_ = f.Close()
		if err != nil {
			slog.Error("Failed to parse OFX file", "file", filePath, "error", err)
			continue
		}

		transactions = append(transactions, parsed...)
	}

	return transactions, nil
}

// fetchFromPlaid pulls a date range of transactions from the Plaid API.
func fetchFromPlaid(ctx context.Context, cmd *cobra.Command) ([]model.Transaction, error) {
	cfg := plaid.Config{
		ClientID:    viper.GetString("plaid.client_id"),
		Secret:      viper.GetString("plaid.secret"),
		Environment: viper.GetString("plaid.environment"),
		AccessToken: viper.GetString("plaid.access_token"),
	}
	if cfg.Environment == "" {
		cfg.Environment = "sandbox"
	}

	client, err := plaid.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Plaid client: %w", err)
	}

	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -90)

	if v, _ := cmd.Flags().GetString("start"); v != "" {
		startDate, err = time.Parse("2006-01-02", v)
		if err != nil {
			return nil, fmt.Errorf("invalid start date %q: %w", v, err)
		}
	}
	if v, _ := cmd.Flags().GetString("end"); v != "" {
		endDate, err = time.Parse("2006-01-02", v)
		if err != nil {
			return nil, fmt.Errorf("invalid end date %q: %w", v, err)
		}
	}

	return client.GetTransactions(ctx, startDate, endDate)
}
