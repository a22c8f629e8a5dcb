// Package repository defines the session dataset store interface and errors.
//
// Datasets are immutable after generation; the store only ever adds whole
// datasets and hands out references to them.
package repository

import (
	"context"
	"time"

	"github.com/okian/vendorboard/internal/domain/model"
)

// Dataset is one generated record collection with its roster metadata.
type Dataset struct {
	ID          string
	Seed        int64
	CreatedAt   time.Time
	Records     []model.VendorRecord
	VendorNames []string
	SpanFrom    time.Time
	SpanTo      time.Time
}

// Builder constructs a dataset's records and metadata for a seed. The store
// fills in ID and CreatedAt.
type Builder func(ctx context.Context, seed int64) Dataset

// Store provides access to session-scoped datasets.
type Store interface {
	// Create generates and registers a new session dataset for seed.
	Create(ctx context.Context, seed int64) (Dataset, error)

	// Get returns the dataset for a session id.
	// Returns ErrNotFound if the session is unknown.
	Get(ctx context.Context, sessionID string) (Dataset, error)

	// Default returns the process-wide default dataset.
	Default(ctx context.Context) Dataset

	// Count returns the number of live sessions, the default included.
	Count(ctx context.Context) int
}
