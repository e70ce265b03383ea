package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SnapshotRepository reads and writes cached resource snapshots.
type SnapshotRepository struct {
	db *DB
}

// NewSnapshotRepository creates a new SnapshotRepository
func NewSnapshotRepository(db *DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Put stores a snapshot, replacing any previous one for the same kind and scope.
func (r *SnapshotRepository) Put(ctx context.Context, kind, scope string, payload []byte) error {
	query := `
		INSERT INTO snapshots (kind, scope, payload, fetched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (kind, scope) DO UPDATE SET
			payload = excluded.payload,
			fetched_at = excluded.fetched_at
	`

	_, err := r.db.ExecContext(ctx, query, kind, scope, string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}

	return nil
}

// Get retrieves the snapshot for a kind and scope.
func (r *SnapshotRepository) Get(ctx context.Context, kind, scope string) ([]byte, time.Time, error) {
	query := `
		SELECT payload, fetched_at
		FROM snapshots
		WHERE kind = ? AND scope = ?
	`

	var payload string
	var fetchedAt time.Time
	err := r.db.QueryRowContext(ctx, query, kind, scope).Scan(&payload, &fetchedAt)

	if err == sql.ErrNoRows {
		return nil, time.Time{}, ErrNotFound
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to get snapshot: %w", err)
	}

	return []byte(payload), fetchedAt, nil
}

// Delete removes the snapshot for a kind and scope, if present.
func (r *SnapshotRepository) Delete(ctx context.Context, kind, scope string) error {
	query := `DELETE FROM snapshots WHERE kind = ? AND scope = ?`

	if _, err := r.db.ExecContext(ctx, query, kind, scope); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}

	return nil
}
