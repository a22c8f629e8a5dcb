package model

import "time"

// DatasetMeta describes one generated dataset to API consumers: identity,
// roster, span, and the scoring weights in effect.
type DatasetMeta struct {
	SessionID   string       `json:"session_id"`
	Seed        int64        `json:"seed"`
	CreatedAt   time.Time    `json:"created_at"`
	Vendors     []string     `json:"vendors"`
	Categories  []string     `json:"categories"`
	Regions     []string     `json:"regions"`
	SpanFrom    time.Time    `json:"span_from"`
	SpanTo      time.Time    `json:"span_to"`
	RecordCount int          `json:"record_count"`
	Weights     ScoreWeights `json:"weights"`
}

// ScoreWeights reports the overall-score weighting in effect.
type ScoreWeights struct {
	OnTime     float64 `json:"on_time"`
	Quality    float64 `json:"quality"`
	Compliance float64 `json:"compliance"`
	LeadTime   float64 `json:"lead_time"`
}
