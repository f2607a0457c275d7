package persistence

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Veraticus/tally/internal/ledger"
	"github.com/Veraticus/tally/internal/service"
)

const fileMode = 0600

// Persist writes the ledger document to path, replacing any existing
// content. The parent directory must already exist.
func Persist(l *ledger.Ledger, path string) error {
	data, err := Marshal(l)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, fileMode); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	slog.Debug("Persisted ledger", "path", path, "transactions", l.Count())
	return nil
}

// Read loads a ledger from the document at path.
func Read(path string, opts ...ledger.Option) (*ledger.Ledger, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &NotFoundError{Path: path, Err: err}
	}

	l, err := Deserialize(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	slog.Debug("Loaded ledger", "path", path, "transactions", l.Count())
	return l, nil
}

var _ service.LedgerStore = (*Store)(nil)

// Store binds Persist and Read to a single configured path.
type Store struct {
	path string
}

// NewStore creates a store for the document at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the configured document path.
func (s *Store) Path() string {
	return s.path
}

// Save persists the ledger.
func (s *Store) Save(l *ledger.Ledger) error {
	return Persist(l, s.path)
}

// Load reads the ledger.
func (s *Store) Load(opts ...ledger.Option) (*ledger.Ledger, error) {
	return Read(s.path, opts...)
}
