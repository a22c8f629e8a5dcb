// Package snapcache defines a bounded cache of computed filter snapshots.
//
// A snapshot holds everything derived from one filter specification. The
// cache is a pure optimization: results are identical with it disabled,
// since the underlying dataset is immutable.
package snapcache

import (
	"context"
	"sync"

	"github.com/okian/vendorboard/internal/domain/model"
	"github.com/okian/vendorboard/pkg/metrics"
)

// Snapshot bundles the derived state for one (session, filter) pair.
type Snapshot struct {
	Records   []model.VendorRecord
	KPIs      model.KPISet
	Summaries []model.VendorSummary
}

// Cache stores snapshots keyed by canonical filter key.
type Cache interface {
	// Get returns the snapshot for key and whether it was present.
	Get(ctx context.Context, key string) (Snapshot, bool)

	// Put stores the snapshot for key, evicting the oldest entry when the
	// cache is at capacity.
	Put(ctx context.Context, key string, snap Snapshot)

	// Size returns the current number of cached snapshots.
	Size() int
}

// inMemoryCache implements Cache with insertion-order eviction.
type inMemoryCache struct {
	mu      sync.RWMutex
	entries map[string]Snapshot
	order   []string // insertion order, oldest first
	maxSize int      // maximum number of snapshots to keep (0 or negative = unbounded)
}

// Option applies a configuration option to the cache.
type Option func(*inMemoryCache)

// WithMaxSize bounds the number of cached snapshots.
func WithMaxSize(size int) Option {
	return func(c *inMemoryCache) {
		c.maxSize = size
	}
}

// NewInMemoryCache creates a new in-memory snapshot cache with options.
func NewInMemoryCache(opts ...Option) Cache {
	c := &inMemoryCache{
		maxSize: 64, // default max size
	}

	// Apply all options
	for _, opt := range opts {
		opt(c)
	}

	c.entries = make(map[string]Snapshot)

	return c
}

// Get returns the snapshot for key and whether it was present.
func (c *inMemoryCache) Get(_ context.Context, key string) (Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap, ok := c.entries[key]
	return snap, ok
}

// Put stores the snapshot for key, evicting the oldest entry at capacity.
func (c *inMemoryCache) Put(_ context.Context, key string, snap Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.entries[key] = snap
		return
	}

	if c.maxSize > 0 && len(c.entries) >= c.maxSize {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = snap
	c.order = append(c.order, key)
	metrics.UpdateSnapshotCacheSize(len(c.entries))
}

// Size returns the current number of cached snapshots.
func (c *inMemoryCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
