package client

import (
	"context"
	"strings"
	"time"

	"budgetkeeper/internal/app/client/localstore"
)

// Cache TTLs per logical cache key. Collections that rarely change keep a
// longer window; transactions and the dashboard stay short.
const (
	ttlAccounts       = 30 * time.Minute
	ttlCategories     = 30 * time.Minute
	ttlCategoryGroups = 30 * time.Minute
	ttlPayees         = 60 * time.Minute
	ttlTransactions   = 5 * time.Minute
	ttlDashboard      = 2 * time.Minute
	ttlAPICache       = 5 * time.Minute
)

// CacheMetadata is the freshness stamp for one logical cache key.
type CacheMetadata struct {
	Key       string `json:"key"`
	Timestamp int64  `json:"timestamp"`
	ExpiresAt int64  `json:"expires_at"`
}

// Freshness decides whether a cached collection may be served without a
// network round-trip. Stamps live in the metadata store and are replaced,
// never extended.
type Freshness struct {
	store *localstore.Store
	now   func() time.Time
}

func NewFreshness(store *localstore.Store) *Freshness {
	return &Freshness{store: store, now: time.Now}
}

// IsValid reports whether the key was refreshed within its TTL. A missing
// stamp reads as stale.
func (f *Freshness) IsValid(ctx context.Context, key string) (bool, error) {
	meta, err := localstore.GetByID[CacheMetadata](ctx, f.store, localstore.StoreMetadata, key)
	if err != nil {
		return false, err
	}
	if meta == nil {
		return false, nil
	}
	return f.now().UnixMilli() < meta.ExpiresAt, nil
}

// Set stamps the key as refreshed now, valid for ttl. Any prior stamp is
// overwritten.
func (f *Freshness) Set(ctx context.Context, key string, ttl time.Duration) error {
	now := f.now().UnixMilli()
	return localstore.PutOne(ctx, f.store, localstore.StoreMetadata, CacheMetadata{
		Key:       key,
		Timestamp: now,
		ExpiresAt: now + ttl.Milliseconds(),
	})
}

// Invalidate drops the stamp for one key, or every stamp when key is empty.
// The next read for an invalidated key goes to the network.
func (f *Freshness) Invalidate(ctx context.Context, key string) error {
	if key == "" {
		return f.store.ClearStore(ctx, localstore.StoreMetadata)
	}
	return f.store.DeleteOne(ctx, localstore.StoreMetadata, key)
}

// InvalidatePrefix drops every stamp whose key starts with prefix. Used for
// key families like the per-account transaction stamps.
func (f *Freshness) InvalidatePrefix(ctx context.Context, prefix string) error {
	stamps, err := localstore.GetAll[CacheMetadata](ctx, f.store, localstore.StoreMetadata)
	if err != nil {
		return err
	}
	for _, meta := range stamps {
		if !strings.HasPrefix(meta.Key, prefix) {
			continue
		}
		if err := f.store.DeleteOne(ctx, localstore.StoreMetadata, meta.Key); err != nil {
			return err
		}
	}
	return nil
}
