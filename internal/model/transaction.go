// Package model defines the core data types shared across the application.
package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// TransactionDirection indicates whether money moved in or out.
type TransactionDirection string

const (
	// DirectionExpense marks money leaving the account.
	DirectionExpense TransactionDirection = "expense"
	// DirectionIncome marks money arriving in the account.
	DirectionIncome TransactionDirection = "income"
)

// Transaction represents a single financial transaction from any feed source.
type Transaction struct {
	Date         time.Time
	ID           string
	Name         string // Raw transaction description
	MerchantName string // Cleaned merchant name
	AccountID    string
	Hash         string
	Type         string // Source transaction type (e.g., DEBIT, CHECK, ATM)
	Direction    TransactionDirection
	Amount       float64
}

// GenerateHash creates a unique hash for duplicate detection.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%.2f:%s:%s",
		t.Date.Format("2006-01-02"),
		t.Amount,
		t.MerchantName,
		t.AccountID)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
