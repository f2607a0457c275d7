package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransaction(t *testing.T) {
	date := time.Date(2025, 1, 15, 17, 30, 0, 0, time.UTC)
	txn := NewTransaction(1000.0, "Salary", "Income", date)

	assert.InDelta(t, 1000.0, txn.Amount(), 1e-9)
	assert.Equal(t, "Salary", txn.Description())
	assert.Equal(t, "Income", txn.Category())
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), txn.Date())
}

func TestTransaction_Kind(t *testing.T) {
	day := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		amount      float64
		wantKind    string
		wantIncome  bool
		wantExpense bool
	}{
		{name: "positive is income", amount: 10, wantKind: KindIncome, wantIncome: true},
		{name: "negative is expense", amount: -10, wantKind: KindExpense, wantExpense: true},
		{name: "zero is neither", amount: 0, wantKind: KindIncome},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := NewTransaction(tt.amount, "x", "y", day)
			assert.Equal(t, tt.wantKind, txn.Kind())
			assert.Equal(t, tt.wantIncome, txn.IsIncome())
			assert.Equal(t, tt.wantExpense, txn.IsExpense())
		})
	}
}

func TestTransaction_Equal(t *testing.T) {
	base := NewTransaction(-50, "Groceries", "Food", time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name  string
		other Transaction
		want  bool
	}{
		{
			name:  "identical fields",
			other: NewTransaction(-50, "Groceries", "Food", time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC)),
			want:  true,
		},
		{
			name:  "same day different clock time",
			other: NewTransaction(-50, "Groceries", "Food", time.Date(2025, 1, 16, 23, 59, 0, 0, time.UTC)),
			want:  true,
		},
		{
			name:  "different amount",
			other: NewTransaction(-51, "Groceries", "Food", time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC)),
		},
		{
			name:  "different description",
			other: NewTransaction(-50, "groceries", "Food", time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC)),
		},
		{
			name:  "different category",
			other: NewTransaction(-50, "Groceries", "food", time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC)),
		},
		{
			name:  "different date",
			other: NewTransaction(-50, "Groceries", "Food", time.Date(2025, 1, 17, 0, 0, 0, 0, time.UTC)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Equal(tt.other))
			assert.Equal(t, tt.want, tt.other.Equal(base))
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-07-18")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 7, 18, 0, 0, 0, 0, time.UTC), d)

	for _, bad := range []string{"2025-13-40", "2025-02-30", "18/07/2025", "", "2025-7-18"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, "expected %q to be rejected", bad)
	}
}

func TestEvent_String(t *testing.T) {
	logged := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	e := NewEvent(logged, "Cleared all transactions")

	assert.Equal(t, "Tue Mar 04 05:06:07 UTC 2025\nCleared all transactions", e.String())
}
