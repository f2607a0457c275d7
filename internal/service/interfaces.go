// Package service defines the interfaces the front-ends depend on.
package service

import (
	"context"

	"github.com/Veraticus/tally/internal/ledger"
	"github.com/Veraticus/tally/internal/model"
)

// LedgerStore saves and loads a whole ledger at a fixed location.
type LedgerStore interface {
	Path() string
	Save(l *ledger.Ledger) error
	Load(opts ...ledger.Option) (*ledger.Ledger, error)
}

// Archive keeps labeled snapshots of a ledger.
type Archive interface {
	SaveSnapshot(ctx context.Context, label string, l *ledger.Ledger) (*model.Snapshot, error)
	ListSnapshots(ctx context.Context) ([]model.Snapshot, error)
	LoadSnapshot(ctx context.Context, id int64, opts ...ledger.Option) (*ledger.Ledger, error)
	DeleteSnapshot(ctx context.Context, id int64) error
	Close() error
}

// ReportWriter publishes a ledger report and returns where it was written.
type ReportWriter interface {
	Write(ctx context.Context, transactions []model.Transaction, summary ledger.Summary) (string, error)
}
