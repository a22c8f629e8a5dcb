// Package sample produces the deterministic demonstration dataset.
//
// The generator is a pure construction routine: given the same seed it
// yields an identical record set on every run, which the tests and the
// session store rely on.
package sample

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/okian/vendorboard/internal/domain/model"
)

// Default generation constants.
const (
	defaultSeed        = 42
	defaultVendorCount = 15
	defaultMonthCount  = 6

	qualityMin    = 70.0
	qualityRange  = 30.0
	spendMin      = 10_000.0
	spendRange    = 40_000.0
	leadTimeMin   = 2.0
	leadTimeRange = 8.0

	// Compliance is bimodal: most months fully compliant, the rest a
	// partial score.
	complianceFullProb  = 0.9
	complianceFull      = 100.0
	compliancePartMin   = 40.0
	compliancePartRange = 40.0

	// Per-vendor on-time probability band.
	onTimeProbMin   = 0.55
	onTimeProbRange = 0.40
)

// defaultStartMonth is the first month of the generated span.
var defaultStartMonth = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithSeed sets the deterministic seed for the generated dataset.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithVendorCount sets the roster size.
func WithVendorCount(count int) Option {
	return func(g *Generator) {
		if count > 0 {
			g.vendorCount = count
		}
	}
}

// WithStartMonth sets the first month of the generated span. The value is
// truncated to the first day of its month in UTC.
func WithStartMonth(start time.Time) Option {
	return func(g *Generator) {
		if !start.IsZero() {
			g.startMonth = time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
		}
	}
}

// WithMonthCount sets the number of months in the generated span.
func WithMonthCount(count int) Option {
	return func(g *Generator) {
		if count > 0 {
			g.monthCount = count
		}
	}
}

// Generator builds the synthetic vendor dataset.
type Generator struct {
	seed        int64
	vendorCount int
	startMonth  time.Time
	monthCount  int
}

// New creates a Generator with configuration options.
func New(opts ...Option) *Generator {
	g := &Generator{
		seed:        defaultSeed,
		vendorCount: defaultVendorCount,
		startMonth:  defaultStartMonth,
		monthCount:  defaultMonthCount,
	}

	// Apply all options
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Seed returns the seed the generator was built with.
func (g *Generator) Seed() int64 { return g.seed }

// VendorNames returns the roster in generation order.
func (g *Generator) VendorNames() []string {
	names := make([]string, g.vendorCount)
	for i := range names {
		names[i] = fmt.Sprintf("Vendor %d", i+1)
	}
	return names
}

// Span returns the inclusive first and last months of the generated range.
func (g *Generator) Span() (time.Time, time.Time) {
	return g.startMonth, g.startMonth.AddDate(0, g.monthCount-1, 0)
}

// Generate returns one record per vendor per month, vendor-major order.
// The context is accepted per project convention; generation never blocks.
func (g *Generator) Generate(_ context.Context) []model.VendorRecord {
	rng := rand.New(rand.NewSource(g.seed)) //nolint:gosec // deterministic seed is the point

	names := g.VendorNames()
	categories := model.Categories()
	regions := model.Regions()

	// Each vendor keeps one category, one region, and one on-time bias for
	// the whole span.
	vendorCategory := make([]string, g.vendorCount)
	vendorRegion := make([]string, g.vendorCount)
	vendorOnTimeProb := make([]float64, g.vendorCount)
	for i := 0; i < g.vendorCount; i++ {
		vendorCategory[i] = categories[rng.Intn(len(categories))]
		vendorRegion[i] = regions[rng.Intn(len(regions))]
		vendorOnTimeProb[i] = onTimeProbMin + rng.Float64()*onTimeProbRange
	}

	records := make([]model.VendorRecord, 0, g.vendorCount*g.monthCount)
	for i := 0; i < g.vendorCount; i++ {
		for m := 0; m < g.monthCount; m++ {
			compliance := complianceFull
			if rng.Float64() >= complianceFullProb {
				compliance = compliancePartMin + rng.Float64()*compliancePartRange
			}

			records = append(records, model.VendorRecord{
				Vendor:       names[i],
				Category:     vendorCategory[i],
				Region:       vendorRegion[i],
				Date:         g.startMonth.AddDate(0, m, 0),
				OnTime:       rng.Float64() < vendorOnTimeProb[i],
				Quality:      qualityMin + rng.Float64()*qualityRange,
				Spend:        spendMin + rng.Float64()*spendRange,
				Compliance:   compliance,
				LeadTimeDays: leadTimeMin + rng.Float64()*leadTimeRange,
			})
		}
	}

	return records
}
