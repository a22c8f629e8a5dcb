// Package apicheck drives an end-to-end smoke check against a running
// vendorboard instance over its public HTTP API.
package apicheck

import "time"

// Config holds configuration for the API check run.
type Config struct {
	BaseURL     string        // Base URL of the service
	Timeout     time.Duration // HTTP request timeout
	SessionSeed int64         // Seed for the session round-trip check
	Limit       int           // Leaderboard limit to request
	LogFile     string        // Log file for check output
	Verbose     bool          // Enable verbose logging
}

// Stats holds check statistics.
type Stats struct {
	ChecksRun    int
	ChecksPassed int
	ChecksFailed int
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
}

// Client-side mirrors of the API response shapes. The checker deliberately
// decodes raw JSON rather than importing server types, so schema drift
// fails the check instead of compiling past it.

type record struct {
	Vendor       string  `json:"vendor"`
	Category     string  `json:"category"`
	Region       string  `json:"region"`
	Date         string  `json:"date"`
	OnTime       bool    `json:"on_time"`
	Quality      float64 `json:"quality"`
	Spend        float64 `json:"spend"`
	Compliance   float64 `json:"compliance"`
	LeadTimeDays float64 `json:"lead_time_days"`
}

type recordsResponse struct {
	Data    []record `json:"data"`
	Count   int      `json:"count"`
	Warning string   `json:"warning"`
}

type kpiSet struct {
	OnTimeRate      float64 `json:"on_time_rate"`
	AvgQuality      float64 `json:"avg_quality"`
	TotalSpend      float64 `json:"total_spend"`
	AvgCompliance   float64 `json:"avg_compliance"`
	AvgLeadTimeDays float64 `json:"avg_lead_time_days"`
	RecordCount     int     `json:"record_count"`
	VendorCount     int     `json:"vendor_count"`
}

type kpisResponse struct {
	Data    kpiSet `json:"data"`
	Warning string `json:"warning"`
}

type summary struct {
	Vendor       string  `json:"vendor"`
	OverallScore float64 `json:"overall_score"`
	Records      int     `json:"records"`
}

type summariesResponse struct {
	Data    []summary `json:"data"`
	Count   int       `json:"count"`
	Warning string    `json:"warning"`
}

type boardResponse struct {
	Data struct {
		Top    []summary `json:"top"`
		Bottom []summary `json:"bottom"`
	} `json:"data"`
	Warning string `json:"warning"`
}

type trendPoint struct {
	Month      string  `json:"month"`
	OnTimeRate float64 `json:"on_time_rate"`
	AvgQuality float64 `json:"avg_quality"`
	Spend      float64 `json:"spend"`
}

type trendResponse struct {
	Vendor  string       `json:"vendor"`
	Data    []trendPoint `json:"data"`
	Warning string       `json:"warning"`
}

type datasetMeta struct {
	SessionID   string   `json:"session_id"`
	Seed        int64    `json:"seed"`
	Vendors     []string `json:"vendors"`
	Categories  []string `json:"categories"`
	Regions     []string `json:"regions"`
	SpanFrom    string   `json:"span_from"`
	SpanTo      string   `json:"span_to"`
	RecordCount int      `json:"record_count"`
}
