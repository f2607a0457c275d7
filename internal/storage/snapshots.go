package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/ledger"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/service"
)

var _ service.Archive = (*SQLiteStorage)(nil)

// SaveSnapshot stores a copy of the ledger under label.
func (s *SQLiteStorage) SaveSnapshot(ctx context.Context, label string, l *ledger.Ledger) (*model.Snapshot, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(label, "label"); err != nil {
		return nil, err
	}
	if l == nil {
		return nil, fmt.Errorf("%w: ledger", ErrNilParameter)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createdAt := s.now().UTC()
	res, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (label, created_at) VALUES (?, ?)`,
		label, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert snapshot: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO snapshot_transactions (
			snapshot_id, position, amount, description, category, date
		) VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	all := l.All()
	for i, t := range all {
		if _, err := stmt.ExecContext(ctx,
			id,
			i,
			t.Amount(),
			t.Description(),
			t.Category(),
			t.Date().Format(model.DateLayout),
		); err != nil {
			return nil, fmt.Errorf("failed to insert transaction %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit snapshot: %w", err)
	}

	slog.Info("Saved snapshot", "id", id, "label", label, "transactions", len(all))

	return &model.Snapshot{
		ID:        id,
		Label:     label,
		CreatedAt: createdAt,
		Count:     len(all),
	}, nil
}

// ListSnapshots returns all snapshots, newest first.
func (s *SQLiteStorage) ListSnapshots(ctx context.Context) ([]model.Snapshot, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.label, s.created_at, COUNT(t.position)
		FROM snapshots s
		LEFT JOIN snapshot_transactions t ON t.snapshot_id = s.id
		GROUP BY s.id
		ORDER BY s.created_at DESC, s.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var snapshots []model.Snapshot
	for rows.Next() {
		var snap model.Snapshot
		if err := rows.Scan(&snap.ID, &snap.Label, &snap.CreatedAt, &snap.Count); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snapshots = append(snapshots, snap)
	}

	return snapshots, rows.Err()
}

// LoadSnapshot rebuilds the ledger stored under id. Options are applied
// after the transactions are loaded.
func (s *SQLiteStorage) LoadSnapshot(ctx context.Context, id int64, opts ...ledger.Option) (*ledger.Ledger, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id); err != nil {
		return nil, err
	}

	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM snapshots WHERE id = ?`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("snapshot %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up snapshot: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT amount, description, category, date
		FROM snapshot_transactions
		WHERE snapshot_id = ?
		ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	l := ledger.New()
	for rows.Next() {
		var (
			amount                      float64
			description, category, date string
		)
		if err := rows.Scan(&amount, &description, &category, &date); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		d, err := model.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("snapshot %d: %w", id, err)
		}
		l.Add(model.NewTransaction(amount, description, category, d))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read snapshot transactions: %w", err)
	}

	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// DeleteSnapshot removes a snapshot and its transactions.
func (s *SQLiteStorage) DeleteSnapshot(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("snapshot %d: %w", id, common.ErrNotFound)
	}

	return nil
}
