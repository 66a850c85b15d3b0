package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"lingolearn/internal/repository"
)

// StoreRegistry hands out one loaded DictionaryStore per user namespace
type StoreRegistry struct {
	mu      sync.Mutex
	blobs   repository.BlobStore
	logger  *zap.Logger
	entries map[string]*registryEntry
}

// registryEntry serializes the load of a single namespace
type registryEntry struct {
	mu    sync.Mutex
	store *DictionaryStore
}

// NewStoreRegistry creates a registry over a shared blob store
func NewStoreRegistry(blobs repository.BlobStore, logger *zap.Logger) *StoreRegistry {
	return &StoreRegistry{
		blobs:   blobs,
		logger:  logger,
		entries: make(map[string]*registryEntry),
	}
}

// StoreFor returns the store of namespace, loading it on first use.
// A store that failed to load is not cached, so a later call retries
// instead of overwriting persisted data with an empty state.
// A slow load blocks only callers of the same namespace.
func (r *StoreRegistry) StoreFor(ctx context.Context, namespace string) (*DictionaryStore, error) {
	r.mu.Lock()
	entry, ok := r.entries[namespace]
	if !ok {
		entry = &registryEntry{}
		r.entries[namespace] = entry
	}
	r.mu.Unlock()

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.store != nil {
		return entry.store, nil
	}

	store := NewDictionaryStore(r.blobs, KeysFor(namespace), r.logger)
	if err := store.Load(ctx); err != nil {
		return nil, err
	}
	entry.store = store

	r.logger.Debug("Store loaded", zap.String("namespace", namespace))
	return store, nil
}
