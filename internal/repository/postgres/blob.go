package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// BlobRepo implements repository.BlobStore on the blobs table
type BlobRepo struct {
	db *sql.DB
}

// NewBlobRepo creates a new blob repository
func NewBlobRepo(db *sql.DB) *BlobRepo {
	return &BlobRepo{db: db}
}

// Get returns the value stored under key
func (r *BlobRepo) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	query := `SELECT value FROM blobs WHERE key = $1`
	err := r.db.QueryRowContext(ctx, query, key).Scan(&value)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get blob %s: %w", key, err)
	}

	return value, nil
}

// Set stores value under key, replacing any previous value
func (r *BlobRepo) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO blobs (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("set blob %s: %w", key, err)
	}
	return nil
}

// Delete removes key; deleting a missing key is not an error
func (r *BlobRepo) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM blobs WHERE key = $1`
	if _, err := r.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("delete blob %s: %w", key, err)
	}
	return nil
}
