// Package testutil provides fixtures for tests that need a populated ledger.
//
// Example usage:
//
//	l := testutil.NewLedgerBuilder(t).
//		WithSample().
//		With(-12, "Taxi", "Transportation", "2025-03-04").
//		Build()
package testutil

import (
	"testing"
	"time"

	"github.com/Veraticus/tally/internal/ledger"
	"github.com/Veraticus/tally/internal/model"
)

// Sample transactions used across tests. Income is 1000.00, expenses are
// 54.50 and both expenses are in Food.
var sample = []entry{
	{1000.00, "Paycheck", "Salary", "2025-03-01"},
	{-50.00, "Groceries", "Food", "2025-03-02"},
	{-4.50, "Coffee", "Food", "2025-03-03"},
}

type entry struct {
	amount      float64
	description string
	category    string
	date        string
}

// LedgerBuilder assembles a ledger fluently. Transactions are added in call order.
type LedgerBuilder struct {
	t       *testing.T
	entries []entry
	opts    []ledger.Option
}

// NewLedgerBuilder starts an empty builder.
func NewLedgerBuilder(t *testing.T) *LedgerBuilder {
	t.Helper()
	return &LedgerBuilder{t: t}
}

// WithSample adds the three sample transactions.
func (b *LedgerBuilder) WithSample() *LedgerBuilder {
	b.entries = append(b.entries, sample...)
	return b
}

// With adds one transaction. date is YYYY-MM-DD.
func (b *LedgerBuilder) With(amount float64, description, category, date string) *LedgerBuilder {
	b.entries = append(b.entries, entry{amount, description, category, date})
	return b
}

// WithOptions sets ledger options applied after the transactions are added.
func (b *LedgerBuilder) WithOptions(opts ...ledger.Option) *LedgerBuilder {
	b.opts = append(b.opts, opts...)
	return b
}

// Transactions returns the built transactions without creating a ledger.
func (b *LedgerBuilder) Transactions() []model.Transaction {
	b.t.Helper()

	txns := make([]model.Transaction, 0, len(b.entries))
	for _, e := range b.entries {
		txns = append(txns, model.NewTransaction(e.amount, e.description, e.category, Date(b.t, e.date)))
	}
	return txns
}

// Build creates the ledger.
func (b *LedgerBuilder) Build() *ledger.Ledger {
	b.t.Helper()

	l := ledger.New()
	for _, txn := range b.Transactions() {
		l.Add(txn)
	}
	for _, opt := range b.opts {
		opt(l)
	}
	return l
}

// SampleLedger returns a ledger holding the sample transactions.
func SampleLedger(t *testing.T, opts ...ledger.Option) *ledger.Ledger {
	t.Helper()
	return NewLedgerBuilder(t).WithSample().WithOptions(opts...).Build()
}

// Date parses a YYYY-MM-DD date or fails the test.
func Date(t *testing.T, s string) time.Time {
	t.Helper()

	d, err := model.ParseDate(s)
	if err != nil {
		t.Fatalf("invalid test date %q: %v", s, err)
	}
	return d
}
