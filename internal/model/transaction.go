// Package model defines the values shared across the tracker: transactions
// and activity events.
package model

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used for input and persistence.
const DateLayout = "2006-01-02"

// Kind labels used when presenting transactions.
const (
	KindIncome  = "Income"
	KindExpense = "Expense"
)

// SuggestedCategories are offered by the front-ends. Any other string is
// still a valid category.
var SuggestedCategories = []string{
	"Food",
	"Rent",
	"Salary",
	"Entertainment",
	"Transportation",
	"Other",
}

// Transaction represents a single income or expense record.
// A Transaction is immutable once constructed.
type Transaction struct {
	date        time.Time
	description string
	category    string
	amount      float64
}

// NewTransaction creates a transaction. Positive amounts are income,
// negative amounts are expenses. The date is truncated to its calendar day.
func NewTransaction(amount float64, description, category string, date time.Time) Transaction {
	return Transaction{
		amount:      amount,
		description: description,
		category:    category,
		date:        CalendarDate(date),
	}
}

// Amount returns the signed amount.
func (t Transaction) Amount() float64 { return t.amount }

// Description returns the human-readable description.
func (t Transaction) Description() string { return t.description }

// Category returns the category label.
func (t Transaction) Category() string { return t.category }

// Date returns the calendar date at midnight UTC.
func (t Transaction) Date() time.Time { return t.date }

// IsIncome reports whether the amount is strictly positive.
func (t Transaction) IsIncome() bool { return t.amount > 0 }

// IsExpense reports whether the amount is strictly negative.
func (t Transaction) IsExpense() bool { return t.amount < 0 }

// Kind returns "Income" for non-negative amounts and "Expense" otherwise.
func (t Transaction) Kind() string {
	if t.amount >= 0 {
		return KindIncome
	}
	return KindExpense
}

// Equal reports whether both transactions carry the same four fields.
// Dates compare by calendar day.
func (t Transaction) Equal(other Transaction) bool {
	return t.amount == other.amount &&
		t.description == other.description &&
		t.category == other.category &&
		sameDay(t.date, other.date)
}

// String renders the transaction for logs and activity messages.
func (t Transaction) String() string {
	return fmt.Sprintf("%s ($%.2f) [%s] %s", t.description, t.amount, t.category, t.date.Format(DateLayout))
}

// ParseDate parses a YYYY-MM-DD calendar date. Out-of-range values such
// as 2025-13-40 are rejected.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

// CalendarDate strips the time of day, keeping the date as seen in t's
// location.
func CalendarDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
