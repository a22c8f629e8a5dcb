package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okian/vendorboard/pkg/metrics"
)

// Default store configuration constants.
const (
	defaultMaxSessions = 16
	defaultSeed        = 42
)

// MemoryStore implements Store with an in-memory session map and
// oldest-first eviction. The default dataset is never evicted.
type MemoryStore struct {
	mu       sync.RWMutex
	builder  Builder
	sessions map[string]Dataset
	order    []string // session insertion order, oldest first
	fallback Dataset  // default dataset, built once at construction

	maxSessions  int
	seedOverride *int64
}

// NewMemoryStore creates a memory store and builds the default dataset.
func NewMemoryStore(ctx context.Context, builder Builder, opts ...Option) (*MemoryStore, error) {
	if builder == nil {
		return nil, ErrNoBuilder
	}

	s := &MemoryStore{
		builder:     builder,
		sessions:    make(map[string]Dataset),
		maxSessions: defaultMaxSessions,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	s.fallback = s.build(ctx, s.defaultSeed())
	metrics.UpdateDatasetRecords(len(s.fallback.Records))
	metrics.UpdateVendorCount(len(s.fallback.VendorNames))
	metrics.UpdateSessionCount(1)

	return s, nil
}

// seed used for the default dataset; overridable via WithDefaultSeed.
func (s *MemoryStore) defaultSeed() int64 {
	if s.seedOverride != nil {
		return *s.seedOverride
	}
	return defaultSeed
}

// build runs the builder and stamps identity fields.
func (s *MemoryStore) build(ctx context.Context, seed int64) Dataset {
	ds := s.builder(ctx, seed)
	ds.ID = uuid.NewString()
	ds.Seed = seed
	ds.CreatedAt = time.Now().UTC()
	metrics.RecordDatasetGenerated()
	return ds
}

// Create generates and registers a new session dataset for seed.
func (s *MemoryStore) Create(ctx context.Context, seed int64) (Dataset, error) {
	ds := s.build(ctx, seed)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.sessions, oldest)
	}

	s.sessions[ds.ID] = ds
	s.order = append(s.order, ds.ID)
	metrics.UpdateSessionCount(len(s.sessions) + 1) // +1 for the default

	return ds, nil
}

// Get returns the dataset for a session id.
func (s *MemoryStore) Get(_ context.Context, sessionID string) (Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if ds, ok := s.sessions[sessionID]; ok {
		return ds, nil
	}
	if sessionID == s.fallback.ID {
		return s.fallback, nil
	}
	return Dataset{}, ErrNotFound
}

// Default returns the process-wide default dataset.
func (s *MemoryStore) Default(_ context.Context) Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fallback
}

// Count returns the number of live sessions, the default included.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions) + 1
}
