package postgres

import (
	"context"
	"fmt"

	"carrier-records-service/internal/filters/core/ports"
)

type SnapshotRepository struct {
	db DB
}

func NewSnapshotRepository(db DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

var _ ports.SnapshotStorePort = (*SnapshotRepository)(nil)

const (
	selectSnapshotSQL = `SELECT payload FROM filter_snapshots WHERE storage_key = $1`

	upsertSnapshotSQL = `
INSERT INTO filter_snapshots (storage_key, payload, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (storage_key) DO UPDATE
SET payload = EXCLUDED.payload,
    updated_at = EXCLUDED.updated_at;
`

	deleteSnapshotSQL = `DELETE FROM filter_snapshots WHERE storage_key = $1`
)

func (r *SnapshotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	rows, err := r.db.QueryContext(ctx, selectSnapshotSQL, key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ports.ErrSnapshotNotFound
	}

	var payload []byte
	if err := rows.Scan(&payload); err != nil {
		return nil, fmt.Errorf("scan snapshot %s: %w", key, err)
	}
	return payload, rows.Err()
}

func (r *SnapshotRepository) Put(ctx context.Context, key string, payload []byte) error {
	_, err := r.db.ExecContext(ctx, upsertSnapshotSQL, key, string(payload))
	return err
}

// Delete is a no-op for a missing key.
func (r *SnapshotRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, deleteSnapshotSQL, key)
	return err
}
