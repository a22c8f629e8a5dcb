// Package model contains domain models passed between layers.
package model

import "time"

// Vendor categories present in the sample roster.
const (
	CategoryRawMaterial = "Raw Material"
	CategoryPackaging   = "Packaging"
	CategoryServices    = "Services"
)

// Vendor regions present in the sample roster.
const (
	RegionNorth = "North"
	RegionSouth = "South"
	RegionEast  = "East"
	RegionWest  = "West"
)

// Categories returns the fixed category set in declaration order.
func Categories() []string {
	return []string{CategoryRawMaterial, CategoryPackaging, CategoryServices}
}

// Regions returns the fixed region set in declaration order.
func Regions() []string {
	return []string{RegionNorth, RegionSouth, RegionEast, RegionWest}
}

// VendorRecord represents one monthly performance row for a vendor.
// Quality and Compliance are bounded to [0,100]; Spend and LeadTimeDays
// are positive.
type VendorRecord struct {
	Vendor       string    `json:"vendor"`
	Category     string    `json:"category"`
	Region       string    `json:"region"`
	Date         time.Time `json:"date"`
	OnTime       bool      `json:"on_time"`
	Quality      float64   `json:"quality"`
	Spend        float64   `json:"spend"`
	Compliance   float64   `json:"compliance"`
	LeadTimeDays float64   `json:"lead_time_days"`
}

// VendorSummary captures a vendor's aggregates over a filtered record set,
// including the weighted overall score used for ranking.
type VendorSummary struct {
	Vendor          string  `json:"vendor"`
	Category        string  `json:"category"`
	Region          string  `json:"region"`
	OnTimeRate      float64 `json:"on_time_rate"`
	AvgQuality      float64 `json:"avg_quality"`
	TotalSpend      float64 `json:"total_spend"`
	AvgCompliance   float64 `json:"avg_compliance"`
	AvgLeadTimeDays float64 `json:"avg_lead_time_days"`
	OverallScore    float64 `json:"overall_score"`
	Records         int     `json:"records"`
}

// KPISet holds the scalar summary statistics over a filtered record set.
// All values degrade to zero on an empty set.
type KPISet struct {
	OnTimeRate      float64 `json:"on_time_rate"`
	AvgQuality      float64 `json:"avg_quality"`
	TotalSpend      float64 `json:"total_spend"`
	AvgCompliance   float64 `json:"avg_compliance"`
	AvgLeadTimeDays float64 `json:"avg_lead_time_days"`
	RecordCount     int     `json:"record_count"`
	VendorCount     int     `json:"vendor_count"`
}

// TrendPoint is one month of aggregates for a single vendor, used by the
// trend view.
type TrendPoint struct {
	Month      time.Time `json:"month"`
	OnTimeRate float64   `json:"on_time_rate"`
	AvgQuality float64   `json:"avg_quality"`
	Spend      float64   `json:"spend"`
}
