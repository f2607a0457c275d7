package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/tally/internal/ledger"
	"github.com/Veraticus/tally/internal/testutil"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

func createTestLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	return testutil.SampleLedger(t)
}

func TestNewSQLiteStorage_CreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "archive.db")

	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	assert.Equal(t, dbPath, store.Path())
	assert.FileExists(t, dbPath)
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("  ")
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestMigrate_Idempotent(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Migrate(ctx))

	version, err := store.schemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)

	var indexCount int
	err = store.db.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='index' AND name='idx_snapshot_transactions_category'
	`).Scan(&indexCount)
	require.NoError(t, err)
	assert.Equal(t, 1, indexCount)
}

func TestOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "archive.db")

	store, err := Open(context.Background(), dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	version, err := store.schemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestValidation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	//nolint:staticcheck // nil context is the point of this test
	_, err := store.ListSnapshots(nil)
	assert.ErrorIs(t, err, ErrNilContext)

	_, err = store.SaveSnapshot(ctx, "", ledger.New())
	assert.ErrorIs(t, err, ErrEmptyString)

	_, err = store.SaveSnapshot(ctx, "label", nil)
	assert.ErrorIs(t, err, ErrNilParameter)

	_, err = store.LoadSnapshot(ctx, 0)
	assert.ErrorIs(t, err, ErrInvalidID)

	err = store.DeleteSnapshot(ctx, -3)
	assert.ErrorIs(t, err, ErrInvalidID)
}

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}
