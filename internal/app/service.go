// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/okian/vendorboard/internal/adapters/export"
	repository "github.com/okian/vendorboard/internal/adapters/repository"
	"github.com/okian/vendorboard/internal/domain/filter"
	"github.com/okian/vendorboard/internal/domain/kpi"
	"github.com/okian/vendorboard/internal/domain/leaderboard"
	"github.com/okian/vendorboard/internal/domain/model"
	"github.com/okian/vendorboard/internal/domain/sample"
	"github.com/okian/vendorboard/internal/domain/snapcache"
	"github.com/okian/vendorboard/pkg/logger"
	"github.com/okian/vendorboard/pkg/metrics"
)

// warnInvalidRange is returned alongside empty results when the requested
// date range is inverted. An inverted range is an empty selection, not a
// client error.
const warnInvalidRange = "start date is after end date; returning an empty result set"

// Service wires the sample generator, session store, aggregator, and
// snapshot cache behind the operations the HTTP API needs.
type Service struct {
	mu sync.RWMutex

	// Core components
	store repository.Store
	agg   *kpi.Aggregator
	cache snapcache.Cache

	// Generator configuration
	seed        int64
	vendorCount int
	startMonth  time.Time
	monthCount  int

	// Derived-view configuration
	leaderboardSize int
	maxSessions     int
	cacheSize       int
	weightOnTime    float64
	weightQuality   float64
	weightComply    float64
	weightLeadTime  float64

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSeed sets the seed for the default dataset.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// WithVendorCount sets the roster size for generated datasets.
func WithVendorCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.vendorCount = count
		}
	}
}

// WithStartMonth sets the first month of generated spans.
func WithStartMonth(start time.Time) Option {
	return func(s *Service) {
		if !start.IsZero() {
			s.startMonth = start
		}
	}
}

// WithMonthCount sets the number of months in generated spans.
func WithMonthCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.monthCount = count
		}
	}
}

// WithLeaderboardSize sets the default top/bottom slice size.
func WithLeaderboardSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.leaderboardSize = size
		}
	}
}

// WithWeights sets the overall-score weights.
func WithWeights(onTime, quality, compliance, leadTime float64) Option {
	return func(s *Service) {
		if onTime > 0 && quality > 0 && compliance > 0 && leadTime > 0 {
			s.weightOnTime = onTime
			s.weightQuality = quality
			s.weightComply = compliance
			s.weightLeadTime = leadTime
		}
	}
}

// WithMaxSessions bounds the number of live dataset sessions.
func WithMaxSessions(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxSessions = limit
		}
	}
}

// WithSnapshotCacheSize bounds the snapshot cache.
func WithSnapshotCacheSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.cacheSize = size
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		seed:            42,
		vendorCount:     15,
		startMonth:      time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
		monthCount:      6,
		leaderboardSize: leaderboard.DefaultSize,
		maxSessions:     16,
		cacheSize:       64,
		weightOnTime:    0.30,
		weightQuality:   0.30,
		weightComply:    0.20,
		weightLeadTime:  0.20,
		logger:          nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting vendorboard service...")

	builder := func(ctx context.Context, seed int64) repository.Dataset {
		gen := sample.New(
			sample.WithSeed(seed),
			sample.WithVendorCount(s.vendorCount),
			sample.WithStartMonth(s.startMonth),
			sample.WithMonthCount(s.monthCount),
		)
		from, to := gen.Span()
		return repository.Dataset{
			Records:     gen.Generate(ctx),
			VendorNames: gen.VendorNames(),
			SpanFrom:    from,
			SpanTo:      to,
		}
	}

	store, err := repository.NewMemoryStore(ctx, builder,
		repository.WithMaxSessions(s.maxSessions),
		repository.WithDefaultSeed(s.seed),
	)
	if err != nil {
		return err
	}
	s.store = store

	s.agg = kpi.New(
		kpi.WithWeights(s.weightOnTime, s.weightQuality, s.weightComply, s.weightLeadTime),
	)
	s.cache = snapcache.NewInMemoryCache(
		snapcache.WithMaxSize(s.cacheSize),
	)

	s.started = true
	s.logger.Info(ctx, "vendorboard service started",
		logger.Int64("seed", s.seed),
		logger.Int("vendors", s.vendorCount),
		logger.Int("months", s.monthCount),
		logger.Int("records", len(store.Default(ctx).Records)),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping vendorboard service...")
	s.started = false
	s.logger.Info(context.Background(), "vendorboard service stopped")
}

// dataset resolves a session id to its dataset; empty means the default.
func (s *Service) dataset(ctx context.Context, session string) (repository.Dataset, error) {
	if session == "" {
		return s.store.Default(ctx), nil
	}
	return s.store.Get(ctx, session)
}

// snapshot returns the derived views for (session, spec), computing and
// caching them on miss. The warning is non-empty for an inverted range,
// which yields empty views without touching the cache.
func (s *Service) snapshot(ctx context.Context, session string, spec filter.Spec) (snapcache.Snapshot, string, error) {
	ds, err := s.dataset(ctx, session)
	if err != nil {
		return snapcache.Snapshot{}, "", err
	}

	if err := spec.Validate(); err != nil {
		s.logger.Debug(ctx, "inverted date range requested",
			logger.String("session", ds.ID),
			logger.Time("from", spec.From),
			logger.Time("to", spec.To),
		)
		empty := snapcache.Snapshot{
			Records:   []model.VendorRecord{},
			Summaries: []model.VendorSummary{},
		}
		return empty, warnInvalidRange, nil
	}

	key := ds.ID + "|" + spec.Key()
	if snap, ok := s.cache.Get(ctx, key); ok {
		metrics.RecordSnapshotCacheHit()
		return snap, "", nil
	}
	metrics.RecordSnapshotCacheMiss()

	start := time.Now()
	records := filter.Apply(ctx, ds.Records, spec)
	metrics.RecordFilterLatency(float64(time.Since(start).Milliseconds()))

	start = time.Now()
	snap := snapcache.Snapshot{
		Records:   records,
		KPIs:      s.agg.Scalars(ctx, records),
		Summaries: s.agg.Summarize(ctx, records),
	}
	metrics.RecordAggregationLatency(float64(time.Since(start).Milliseconds()))

	s.cache.Put(ctx, key, snap)
	return snap, "", nil
}

// Records returns the full record set for a session.
func (s *Service) Records(ctx context.Context, session string) ([]model.VendorRecord, error) {
	ds, err := s.dataset(ctx, session)
	if err != nil {
		return nil, err
	}
	return ds.Records, nil
}

// Filtered returns the records matching spec.
func (s *Service) Filtered(ctx context.Context, session string, spec filter.Spec) ([]model.VendorRecord, string, error) {
	snap, warning, err := s.snapshot(ctx, session, spec)
	if err != nil {
		return nil, "", err
	}
	return snap.Records, warning, nil
}

// KPIs returns the scalar KPI set for the records matching spec.
func (s *Service) KPIs(ctx context.Context, session string, spec filter.Spec) (model.KPISet, string, error) {
	snap, warning, err := s.snapshot(ctx, session, spec)
	if err != nil {
		return model.KPISet{}, "", err
	}
	return snap.KPIs, warning, nil
}

// Summaries returns per-vendor summaries for the records matching spec,
// ordered by vendor name.
func (s *Service) Summaries(ctx context.Context, session string, spec filter.Spec) ([]model.VendorSummary, string, error) {
	snap, warning, err := s.snapshot(ctx, session, spec)
	if err != nil {
		return nil, "", err
	}
	return snap.Summaries, warning, nil
}

// Leaderboard returns the top and bottom n vendors by overall score for the
// records matching spec. n <= 0 selects the configured default size.
func (s *Service) Leaderboard(ctx context.Context, session string, spec filter.Spec, n int) (leaderboard.Board, string, error) {
	snap, warning, err := s.snapshot(ctx, session, spec)
	if err != nil {
		return leaderboard.Board{}, "", err
	}

	if n <= 0 {
		n = s.leaderboardSize
	}
	board := leaderboard.Build(ctx, snap.Summaries, n)
	metrics.RecordLeaderboardBuild()
	return board, warning, nil
}

// Trend returns the month-by-month trend for one vendor over the records
// matching spec. Returns ErrUnknownVendor for vendors outside the roster.
func (s *Service) Trend(ctx context.Context, session, vendor string, spec filter.Spec) ([]model.TrendPoint, string, error) {
	ds, err := s.dataset(ctx, session)
	if err != nil {
		return nil, "", err
	}

	known := false
	for _, name := range ds.VendorNames {
		if name == vendor {
			known = true
			break
		}
	}
	if !known {
		return nil, "", model.ErrUnknownVendor
	}

	snap, warning, err := s.snapshot(ctx, session, spec)
	if err != nil {
		return nil, "", err
	}
	return s.agg.Trend(ctx, snap.Records, vendor), warning, nil
}

// ExportCSV writes the records matching spec to w as CSV. An inverted range
// produces a header-only file with a warning, not an error.
func (s *Service) ExportCSV(ctx context.Context, session string, spec filter.Spec, w io.Writer) (string, error) {
	snap, warning, err := s.snapshot(ctx, session, spec)
	if err != nil {
		return "", err
	}
	if err := export.WriteCSV(ctx, w, snap.Records, snap.Summaries); err != nil {
		return "", err
	}
	return warning, nil
}

// CreateSession generates a new dataset session. A nil seed draws one from
// the clock so repeated calls differ.
func (s *Service) CreateSession(ctx context.Context, seed *int64) (model.DatasetMeta, error) {
	chosen := time.Now().UnixNano()
	if seed != nil {
		chosen = *seed
	}

	ds, err := s.store.Create(ctx, chosen)
	if err != nil {
		return model.DatasetMeta{}, err
	}

	s.logger.Info(ctx, "created dataset session",
		logger.String("session", ds.ID),
		logger.Int64("seed", ds.Seed),
		logger.Int("records", len(ds.Records)),
	)
	return s.describe(ds), nil
}

// Meta returns the dataset description for a session.
func (s *Service) Meta(ctx context.Context, session string) (model.DatasetMeta, error) {
	ds, err := s.dataset(ctx, session)
	if err != nil {
		return model.DatasetMeta{}, err
	}
	return s.describe(ds), nil
}

func (s *Service) describe(ds repository.Dataset) model.DatasetMeta {
	onTime, quality, compliance, leadTime := s.agg.Weights()
	return model.DatasetMeta{
		SessionID:   ds.ID,
		Seed:        ds.Seed,
		CreatedAt:   ds.CreatedAt,
		Vendors:     ds.VendorNames,
		Categories:  model.Categories(),
		Regions:     model.Regions(),
		SpanFrom:    ds.SpanFrom,
		SpanTo:      ds.SpanTo,
		RecordCount: len(ds.Records),
		Weights: model.ScoreWeights{
			OnTime:     onTime,
			Quality:    quality,
			Compliance: compliance,
			LeadTime:   leadTime,
		},
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":         s.started,
		"vendorCount":     s.vendorCount,
		"monthCount":      s.monthCount,
		"leaderboardSize": s.leaderboardSize,
		"maxSessions":     s.maxSessions,
	}

	if s.started {
		sessions := s.store.Count(ctx)
		cached := s.cache.Size()

		stats["sessions"] = sessions
		stats["cachedSnapshots"] = cached
		stats["defaultRecords"] = len(s.store.Default(ctx).Records)

		metrics.UpdateSessionCount(sessions)
		metrics.UpdateSnapshotCacheSize(cached)
	}

	return stats
}
