package repository

import "context"

// BlobStore is the raw persistence medium: opaque values under fixed keys
type BlobStore interface {
	// Get returns nil, nil when key has no value
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
