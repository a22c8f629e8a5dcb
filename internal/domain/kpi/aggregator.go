// Package kpi computes scalar summary statistics and per-vendor scores
// over a filtered record collection.
package kpi

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/okian/vendorboard/internal/domain/model"
)

// Default overall-score weights. The score is a fixed weighted combination
// of on-time rate, normalized quality, normalized compliance, and inverse
// normalized lead time, scaled to [0,100]:
//
//	score = 100 * ( wOnTime*onTimeRate
//	              + wQuality*avgQuality/100
//	              + wCompliance*avgCompliance/100
//	              + wLeadTime*(1 - avgLead/maxAvgLead) )
//
// maxAvgLead is the maximum per-vendor average lead time within the
// filtered set; when it is zero the lead-time term contributes its full
// weight. Weights are held constant across calls so rankings are
// reproducible.
const (
	defaultOnTimeWeight     = 0.30
	defaultQualityWeight    = 0.30
	defaultComplianceWeight = 0.20
	defaultLeadTimeWeight   = 0.20

	maxScoreValue  = 100
	percentDivisor = 100
)

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithWeights sets the overall-score weights. Non-positive values leave the
// corresponding default in place.
func WithWeights(onTime, quality, compliance, leadTime float64) Option {
	return func(a *Aggregator) {
		if onTime > 0 {
			a.onTimeWeight = onTime
		}
		if quality > 0 {
			a.qualityWeight = quality
		}
		if compliance > 0 {
			a.complianceWeight = compliance
		}
		if leadTime > 0 {
			a.leadTimeWeight = leadTime
		}
	}
}

// Aggregator computes KPI scalars and vendor summaries. It is stateless
// beyond its fixed weight configuration.
type Aggregator struct {
	onTimeWeight     float64
	qualityWeight    float64
	complianceWeight float64
	leadTimeWeight   float64
}

// New creates an Aggregator with configuration options.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		onTimeWeight:     defaultOnTimeWeight,
		qualityWeight:    defaultQualityWeight,
		complianceWeight: defaultComplianceWeight,
		leadTimeWeight:   defaultLeadTimeWeight,
	}

	// Apply all options
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Weights returns the configured weights in on-time, quality, compliance,
// lead-time order.
func (a *Aggregator) Weights() (float64, float64, float64, float64) {
	return a.onTimeWeight, a.qualityWeight, a.complianceWeight, a.leadTimeWeight
}

// Scalars computes the KPI scalar set over records. All values degrade to
// zero on an empty input.
func (a *Aggregator) Scalars(_ context.Context, records []model.VendorRecord) model.KPISet {
	if len(records) == 0 {
		return model.KPISet{}
	}

	var (
		onTime     int
		quality    float64
		spend      float64
		compliance float64
		leadTime   float64
	)
	vendors := make(map[string]struct{})
	for _, rec := range records {
		if rec.OnTime {
			onTime++
		}
		quality += rec.Quality
		spend += rec.Spend
		compliance += rec.Compliance
		leadTime += rec.LeadTimeDays
		vendors[rec.Vendor] = struct{}{}
	}

	n := float64(len(records))
	return model.KPISet{
		OnTimeRate:      float64(onTime) / n,
		AvgQuality:      quality / n,
		TotalSpend:      spend,
		AvgCompliance:   compliance / n,
		AvgLeadTimeDays: leadTime / n,
		RecordCount:     len(records),
		VendorCount:     len(vendors),
	}
}

// Summarize computes one VendorSummary per distinct vendor in records,
// ordered by vendor id ascending. An empty input yields an empty slice.
func (a *Aggregator) Summarize(_ context.Context, records []model.VendorRecord) []model.VendorSummary {
	type acc struct {
		category   string
		region     string
		onTime     int
		quality    float64
		spend      float64
		compliance float64
		leadTime   float64
		count      int
	}

	byVendor := make(map[string]*acc)
	order := make([]string, 0)
	for _, rec := range records {
		v, ok := byVendor[rec.Vendor]
		if !ok {
			v = &acc{category: rec.Category, region: rec.Region}
			byVendor[rec.Vendor] = v
			order = append(order, rec.Vendor)
		}
		if rec.OnTime {
			v.onTime++
		}
		v.quality += rec.Quality
		v.spend += rec.Spend
		v.compliance += rec.Compliance
		v.leadTime += rec.LeadTimeDays
		v.count++
	}
	sort.Strings(order)

	summaries := make([]model.VendorSummary, 0, len(order))
	for _, vendor := range order {
		v := byVendor[vendor]
		n := float64(v.count)
		summaries = append(summaries, model.VendorSummary{
			Vendor:          vendor,
			Category:        v.category,
			Region:          v.region,
			OnTimeRate:      float64(v.onTime) / n,
			AvgQuality:      v.quality / n,
			TotalSpend:      v.spend,
			AvgCompliance:   v.compliance / n,
			AvgLeadTimeDays: v.leadTime / n,
			Records:         v.count,
		})
	}

	// Overall score needs the cross-vendor lead-time maximum, so it is a
	// second pass.
	var maxLead float64
	for _, s := range summaries {
		maxLead = math.Max(maxLead, s.AvgLeadTimeDays)
	}
	for i := range summaries {
		summaries[i].OverallScore = a.score(summaries[i], maxLead)
	}

	return summaries
}

// Trend computes month-ascending aggregates for a single vendor over
// records. Months outside the filtered set do not appear.
func (a *Aggregator) Trend(_ context.Context, records []model.VendorRecord, vendor string) []model.TrendPoint {
	type acc struct {
		onTime  int
		quality float64
		spend   float64
		count   int
	}

	byMonth := make(map[time.Time]*acc)
	months := make([]time.Time, 0)
	for _, rec := range records {
		if rec.Vendor != vendor {
			continue
		}
		m, ok := byMonth[rec.Date]
		if !ok {
			m = &acc{}
			byMonth[rec.Date] = m
			months = append(months, rec.Date)
		}
		if rec.OnTime {
			m.onTime++
		}
		m.quality += rec.Quality
		m.spend += rec.Spend
		m.count++
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	points := make([]model.TrendPoint, 0, len(months))
	for _, month := range months {
		m := byMonth[month]
		n := float64(m.count)
		points = append(points, model.TrendPoint{
			Month:      month,
			OnTimeRate: float64(m.onTime) / n,
			AvgQuality: m.quality / n,
			Spend:      m.spend,
		})
	}
	return points
}

// score computes the weighted overall score for one summary, clamped to
// [0,100].
func (a *Aggregator) score(s model.VendorSummary, maxLead float64) float64 {
	leadTerm := 1.0
	if maxLead > 0 {
		leadTerm = 1 - s.AvgLeadTimeDays/maxLead
	}

	score := maxScoreValue * (a.onTimeWeight*s.OnTimeRate +
		a.qualityWeight*s.AvgQuality/percentDivisor +
		a.complianceWeight*s.AvgCompliance/percentDivisor +
		a.leadTimeWeight*leadTerm)

	return math.Max(0, math.Min(maxScoreValue, score))
}
