package plaid

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/caddyshack-fin/cadence/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockClient_RecordsCalls(t *testing.T) {
	mock := NewMockClient()
	ctx := context.Background()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	txns, err := mock.GetTransactions(ctx, start, end)
	require.NoError(t, err)
	assert.Empty(t, txns)

	require.Len(t, mock.GetTransactionsCalls, 1)
	assert.Equal(t, start, mock.GetTransactionsCalls[0].StartDate)
	assert.Equal(t, end, mock.GetTransactionsCalls[0].EndDate)

	_, err = mock.GetAccounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, mock.GetAccountsCalls)

	mock.Reset()
	assert.Empty(t, mock.GetTransactionsCalls)
	assert.Zero(t, mock.GetAccountsCalls)
}

func TestMockClient_DelegatesToFn(t *testing.T) {
	mock := NewMockClient()
	wantErr := errors.New("boom")

	mock.GetTransactionsFn = func(_ context.Context, _, _ time.Time) ([]model.Transaction, error) {
		return nil, wantErr
	}

	_, err := mock.GetTransactions(context.Background(), time.Now(), time.Now())
	assert.ErrorIs(t, err, wantErr)
}
