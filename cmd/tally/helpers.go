package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/config"
	"github.com/Veraticus/tally/internal/ledger"
	"github.com/Veraticus/tally/internal/persistence"
	"github.com/Veraticus/tally/internal/service"
	"github.com/Veraticus/tally/internal/storage"
)

// activityLogger reports ledger activity at debug level for one-shot commands.
var activityLogger = ledger.ObserverFunc(func(message string) {
	common.LogDebug("Ledger activity", common.Fields{"event": message})
})

// ledgerFile is the ledger document store used by every command. Saving
// creates the data directory on first use.
type ledgerFile struct {
	*persistence.Store
}

func newLedgerFile(path string) ledgerFile {
	return ledgerFile{Store: persistence.NewStore(path)}
}

// Save writes l, creating the parent directory if needed.
func (f ledgerFile) Save(l *ledger.Ledger) error {
	if err := os.MkdirAll(filepath.Dir(f.Path()), 0750); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return f.Store.Save(l)
}

// ledgerStore returns the store for the configured ledger file.
func ledgerStore() ledgerFile {
	return newLedgerFile(config.LedgerPath())
}

// loadLedger reads the ledger from store. A missing file is a fresh, empty
// ledger; a malformed one is an error.
func loadLedger(store service.LedgerStore) (*ledger.Ledger, error) {
	l, err := store.Load(ledger.WithObserver(activityLogger))
	if err == nil {
		return l, nil
	}

	if errors.Is(err, persistence.ErrNotFound) {
		if _, statErr := os.Stat(store.Path()); errors.Is(statErr, os.ErrNotExist) {
			common.LogInfo("No ledger found, starting a new one", common.Fields{"path": store.Path()})
			return ledger.New(ledger.WithObserver(activityLogger)), nil
		}
	}

	return nil, common.NewUserError("Unable to read from file: "+store.Path(), err)
}

// saveLedger writes l to store.
func saveLedger(store service.LedgerStore, l *ledger.Ledger) error {
	if err := store.Save(l); err != nil {
		return common.NewUserError("Unable to write to file: "+store.Path(), err)
	}
	return nil
}

// openArchive opens the snapshot archive and applies migrations.
func openArchive(ctx context.Context) (service.Archive, func(), error) {
	store, err := storage.Open(ctx, config.ArchivePath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open archive: %w", err)
	}

	cleanup := func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("Failed to close archive", "error", closeErr)
		}
	}
	return store, cleanup, nil
}

// printf writes command output. Output errors are logged, not returned.
func printf(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		slog.Error("failed to write output", "error", err)
	}
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
