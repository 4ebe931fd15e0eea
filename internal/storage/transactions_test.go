package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/caddyshack-fin/cadence/internal/model"
	"github.com/caddyshack-fin/cadence/internal/service"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

// Helper function to create test transactions.
func createTestTransactions(count int) []model.Transaction {
	txns := make([]model.Transaction, count)
	baseDate := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	for i := 0; i < count; i++ {
		txns[i] = model.Transaction{
			ID:           fmt.Sprintf("txn-%03d", i+1),
			Date:         baseDate.AddDate(0, 0, i*7),
			Name:         fmt.Sprintf("Transaction %d", i+1),
			MerchantName: fmt.Sprintf("Merchant %d", (i%3)+1),
			Amount:       float64(i+1) * 10.50,
			AccountID:    "acc1",
			Direction:    model.DirectionExpense,
		}
		txns[i].Hash = txns[i].GenerateHash()
	}
	return txns
}

func TestSQLiteStorage_SaveTransactions(t *testing.T) {
	tests := []struct {
		validate     func(*testing.T, *SQLiteStorage, context.Context)
		name         string
		transactions []model.Transaction
		wantErr      bool
	}{
		{
			name:         "save new transactions",
			transactions: createTestTransactions(3),
			validate: func(t *testing.T, s *SQLiteStorage, ctx context.Context) {
				t.Helper()
				count, err := s.GetTransactionCount(ctx)
				if err != nil {
					t.Errorf("Failed to count transactions: %v", err)
				}
				if count != 3 {
					t.Errorf("Expected 3 transactions, got %d", count)
				}
			},
		},
		{
			name:         "empty slice returns error",
			transactions: []model.Transaction{},
			wantErr:      true,
		},
		{
			name:         "nil slice returns error",
			transactions: nil,
			wantErr:      true,
		},
		{
			name: "missing ID returns error",
			transactions: []model.Transaction{
				{Date: time.Now(), Name: "No ID"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, cleanup := createTestStorage(t)
			defer cleanup()

			ctx := context.Background()
			err := store.SaveTransactions(ctx, tt.transactions)
			if (err != nil) != tt.wantErr {
				t.Errorf("SaveTransactions() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.validate != nil {
				tt.validate(t, store, ctx)
			}
		})
	}
}

func TestSQLiteStorage_SaveTransactions_Deduplication(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	txns := createTestTransactions(3)

	if err := store.SaveTransactions(ctx, txns); err != nil {
		t.Fatalf("First save failed: %v", err)
	}
	if err := store.SaveTransactions(ctx, txns); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}

	count, err := store.GetTransactionCount(ctx)
	if err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 transactions after re-import, got %d", count)
	}
}

func TestSQLiteStorage_SaveTransactions_FillsMissingHash(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	txn := model.Transaction{
		ID:           "txn-nohash",
		Date:         time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		Name:         "Hashless",
		MerchantName: "Acme",
		Amount:       10.00,
		Direction:    model.DirectionExpense,
	}

	if err := store.SaveTransactions(ctx, []model.Transaction{txn}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.GetTransactions(ctx, service.TransactionFilter{})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Expected 1 transaction, got %d", len(got))
	}
	if got[0].Hash == "" {
		t.Error("Expected hash to be generated on save")
	}
}

func TestSQLiteStorage_GetTransactions_Filters(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	income := model.Transaction{
		ID:           "txn-income",
		Date:         time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Name:         "Paycheck",
		MerchantName: "Employer",
		Amount:       -2500.00,
		Direction:    model.DirectionIncome,
	}
	txns := append(createTestTransactions(4), income)

	if err := store.SaveTransactions(ctx, txns); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Run("direction filter", func(t *testing.T) {
		got, err := store.GetTransactions(ctx, service.TransactionFilter{
			Direction: model.DirectionIncome,
		})
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if len(got) != 1 || got[0].ID != "txn-income" {
			t.Errorf("Expected only the income transaction, got %+v", got)
		}
	})

	t.Run("date range filter", func(t *testing.T) {
		start := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
		got, err := store.GetTransactions(ctx, service.TransactionFilter{
			StartDate: &start,
			EndDate:   &end,
		})
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		for _, txn := range got {
			if txn.Date.Before(start) || txn.Date.After(end) {
				t.Errorf("Transaction %s outside range: %v", txn.ID, txn.Date)
			}
		}
	})

	t.Run("limit", func(t *testing.T) {
		got, err := store.GetTransactions(ctx, service.TransactionFilter{Limit: 2})
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if len(got) != 2 {
			t.Errorf("Expected 2 transactions, got %d", len(got))
		}
	})

	t.Run("sorted ascending by date", func(t *testing.T) {
		got, err := store.GetTransactions(ctx, service.TransactionFilter{})
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		for i := 1; i < len(got); i++ {
			if got[i].Date.Before(got[i-1].Date) {
				t.Errorf("Transactions not sorted: %v before %v", got[i].Date, got[i-1].Date)
			}
		}
	})
}
