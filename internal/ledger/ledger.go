// Package ledger holds the in-memory transaction ledger and the queries
// answered over it.
package ledger

import (
	"fmt"

	"github.com/Veraticus/tally/internal/model"
)

// Observer is notified with a human-readable message after a ledger
// operation has taken effect.
type Observer interface {
	Notify(message string)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(message string)

// Notify calls f(message).
func (f ObserverFunc) Notify(message string) { f(message) }

// Option configures a Ledger.
type Option func(*Ledger)

// WithObserver attaches an activity observer.
func WithObserver(o Observer) Option {
	return func(l *Ledger) {
		l.observer = o
	}
}

// Ledger is an ordered collection of transactions. Insertion order is
// preserved and duplicates are allowed. A Ledger is not safe for
// concurrent use.
type Ledger struct {
	observer     Observer
	transactions []model.Transaction
}

// New creates an empty ledger.
func New(opts ...Option) *Ledger {
	l := &Ledger{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SetObserver replaces the activity observer. A nil observer disables
// notifications.
func (l *Ledger) SetObserver(o Observer) {
	l.observer = o
}

// Add appends a transaction.
func (l *Ledger) Add(t model.Transaction) {
	l.transactions = append(l.transactions, t)
	l.notify(fmt.Sprintf("Added transaction: %s ($%.2f) [%s]", t.Description(), t.Amount(), t.Category()))
}

// Remove deletes the first transaction equal to t in insertion order.
// It reports whether anything was removed.
func (l *Ledger) Remove(t model.Transaction) bool {
	for i, existing := range l.transactions {
		if !existing.Equal(t) {
			continue
		}
		l.transactions = append(l.transactions[:i], l.transactions[i+1:]...)
		l.notify(fmt.Sprintf("Removed transaction: %s ($%.2f) [%s]", t.Description(), t.Amount(), t.Category()))
		return true
	}
	return false
}

// Clear removes every transaction.
func (l *Ledger) Clear() {
	l.transactions = nil
	l.notify("Cleared all transactions")
}

// All returns a copy of the transactions in insertion order.
func (l *Ledger) All() []model.Transaction {
	out := make([]model.Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}

// ByCategory returns the transactions whose category equals category
// exactly, in insertion order.
func (l *Ledger) ByCategory(category string) []model.Transaction {
	out := make([]model.Transaction, 0)
	for _, t := range l.transactions {
		if t.Category() == category {
			out = append(out, t)
		}
	}
	l.notify("Filtered transactions by category: " + category)
	return out
}

// TotalIncome sums the strictly positive amounts.
func (l *Ledger) TotalIncome() float64 {
	total := 0.0
	for _, t := range l.transactions {
		if t.Amount() > 0 {
			total += t.Amount()
		}
	}
	return total
}

// TotalExpenses sums the strictly negative amounts. The result is zero or
// negative.
func (l *Ledger) TotalExpenses() float64 {
	total := 0.0
	for _, t := range l.transactions {
		if t.Amount() < 0 {
			total += t.Amount()
		}
	}
	return total
}

// Balance is income plus (negative) expenses.
func (l *Ledger) Balance() float64 {
	return l.TotalIncome() + l.TotalExpenses()
}

// Count returns the number of transactions.
func (l *Ledger) Count() int {
	return len(l.transactions)
}

// Categories returns the distinct categories in first-seen order.
func (l *Ledger) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range l.transactions {
		if seen[t.Category()] {
			continue
		}
		seen[t.Category()] = true
		out = append(out, t.Category())
	}
	return out
}

func (l *Ledger) notify(message string) {
	if l.observer != nil {
		l.observer.Notify(message)
	}
}
