package apicheck

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/okian/vendorboard/pkg/logger"
)

// check is one named assertion against the running service.
type check struct {
	name string
	fn   func(ctx context.Context, c *HTTPClient, cfg *Config) error
}

// checks runs in order; later checks may assume earlier ones passed.
var checks = []check{
	{"health", checkHealth},
	{"meta", checkMeta},
	{"records", checkRecords},
	{"filtered", checkFiltered},
	{"inverted_range", checkInvertedRange},
	{"kpis", checkKPIs},
	{"summaries", checkSummaries},
	{"leaderboard", checkLeaderboard},
	{"trend", checkTrend},
	{"export", checkExport},
	{"session_roundtrip", checkSessionRoundtrip},
}

// Run executes the complete API check suite.
func Run(ctx context.Context, cfg *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting vendorboard API check",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int64("sessionSeed", cfg.SessionSeed),
		logger.Int("limit", cfg.Limit),
		logger.String("timeout", cfg.Timeout.String()),
		logger.Any("verbose", cfg.Verbose))

	client := newHTTPClient(cfg.Timeout)

	var firstErr error
	for _, chk := range checks {
		stats.ChecksRun++
		if err := chk.fn(ctx, client, cfg); err != nil {
			stats.ChecksFailed++
			logger.Get().Error(ctx, "check failed",
				logger.String("check", chk.name),
				logger.Error(err))
			if firstErr == nil {
				firstErr = fmt.Errorf("check %q failed: %w", chk.name, err)
			}
			continue
		}
		stats.ChecksPassed++
		if cfg.Verbose {
			logger.Get().Info(ctx, "check passed", logger.String("check", chk.name))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(stats)

	if firstErr != nil {
		return firstErr
	}
	logger.Get().Info(ctx, "all checks passed")
	return nil
}

// checkHealth verifies the service is running.
func checkHealth(ctx context.Context, c *HTTPClient, cfg *Config) error {
	resp, err := c.Get(ctx, cfg.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed with status: %d", resp.StatusCode)
	}
	return nil
}

// checkMeta verifies the default dataset description is coherent.
func checkMeta(ctx context.Context, c *HTTPClient, cfg *Config) error {
	var meta datasetMeta
	if err := c.getJSON(ctx, cfg.BaseURL+"/api/meta", http.StatusOK, &meta); err != nil {
		return err
	}
	if len(meta.Vendors) == 0 {
		return fmt.Errorf("meta reports no vendors")
	}
	if len(meta.Categories) == 0 || len(meta.Regions) == 0 {
		return fmt.Errorf("meta reports empty category or region set")
	}
	if meta.RecordCount != len(meta.Vendors)*monthsInSpan(meta) {
		return fmt.Errorf("record count %d is not vendors*months", meta.RecordCount)
	}
	return nil
}

// monthsInSpan derives the month count from the meta span.
func monthsInSpan(meta datasetMeta) int {
	from, err := time.Parse(time.RFC3339, meta.SpanFrom)
	if err != nil {
		return 0
	}
	to, err := time.Parse(time.RFC3339, meta.SpanTo)
	if err != nil {
		return 0
	}
	months := 0
	for t := from; !t.After(to); t = t.AddDate(0, 1, 0) {
		months++
	}
	return months
}

// checkRecords verifies the full record listing matches the meta count.
func checkRecords(ctx context.Context, c *HTTPClient, cfg *Config) error {
	var meta datasetMeta
	if err := c.getJSON(ctx, cfg.BaseURL+"/api/meta", http.StatusOK, &meta); err != nil {
		return err
	}

	var body recordsResponse
	if err := c.getJSON(ctx, cfg.BaseURL+"/api/records", http.StatusOK, &body); err != nil {
		return err
	}
	if body.Count != meta.RecordCount || len(body.Data) != body.Count {
		return fmt.Errorf("records count %d/%d disagrees with meta %d", body.Count, len(body.Data), meta.RecordCount)
	}
	return nil
}

// checkFiltered verifies category filtering narrows the set correctly.
func checkFiltered(ctx context.Context, c *HTTPClient, cfg *Config) error {
	var meta datasetMeta
	if err := c.getJSON(ctx, cfg.BaseURL+"/api/meta", http.StatusOK, &meta); err != nil {
		return err
	}
	category := meta.Categories[0]

	var body recordsResponse
	u := cfg.BaseURL + "/api/records/filtered?category=" + url.QueryEscape(category)
	if err := c.getJSON(ctx, u, http.StatusOK, &body); err != nil {
		return err
	}
	if body.Warning != "" {
		return fmt.Errorf("unexpected warning: %s", body.Warning)
	}
	for _, rec := range body.Data {
		if rec.Category != category {
			return fmt.Errorf("record for %q leaked through category filter %q", rec.Category, category)
		}
	}
	return nil
}

// checkInvertedRange verifies the empty-selection contract: 200 with a
// warning and no data, never an error status.
func checkInvertedRange(ctx context.Context, c *HTTPClient, cfg *Config) error {
	var body recordsResponse
	u := cfg.BaseURL + "/api/records/filtered?from=2099-01-01&to=2000-01-01"
	if err := c.getJSON(ctx, u, http.StatusOK, &body); err != nil {
		return err
	}
	if body.Warning == "" {
		return fmt.Errorf("inverted range produced no warning")
	}
	if body.Count != 0 {
		return fmt.Errorf("inverted range returned %d records", body.Count)
	}
	return nil
}

// checkKPIs verifies KPI scalars stay within their documented bounds.
func checkKPIs(ctx context.Context, c *HTTPClient, cfg *Config) error {
	var body kpisResponse
	if err := c.getJSON(ctx, cfg.BaseURL+"/api/kpis", http.StatusOK, &body); err != nil {
		return err
	}
	k := body.Data
	if k.OnTimeRate < 0 || k.OnTimeRate > 1 {
		return fmt.Errorf("on-time rate %f outside [0,1]", k.OnTimeRate)
	}
	if k.AvgQuality < 0 || k.AvgQuality > 100 {
		return fmt.Errorf("avg quality %f outside [0,100]", k.AvgQuality)
	}
	if k.TotalSpend <= 0 || k.RecordCount <= 0 || k.VendorCount <= 0 {
		return fmt.Errorf("degenerate KPI set: %+v", k)
	}
	return nil
}

// checkSummaries verifies one summary per vendor, each covering records.
func checkSummaries(ctx context.Context, c *HTTPClient, cfg *Config) error {
	var meta datasetMeta
	if err := c.getJSON(ctx, cfg.BaseURL+"/api/meta", http.StatusOK, &meta); err != nil {
		return err
	}

	var body summariesResponse
	if err := c.getJSON(ctx, cfg.BaseURL+"/api/summaries", http.StatusOK, &body); err != nil {
		return err
	}
	if body.Count != len(meta.Vendors) {
		return fmt.Errorf("summary count %d disagrees with roster %d", body.Count, len(meta.Vendors))
	}
	for _, s := range body.Data {
		if s.Records <= 0 {
			return fmt.Errorf("vendor %q summary covers no records", s.Vendor)
		}
		if s.OverallScore < 0 || s.OverallScore > 100 {
			return fmt.Errorf("vendor %q score %f outside [0,100]", s.Vendor, s.OverallScore)
		}
	}
	return nil
}

// checkLeaderboard verifies slice sizes, ordering, and disjointness.
func checkLeaderboard(ctx context.Context, c *HTTPClient, cfg *Config) error {
	var body boardResponse
	u := fmt.Sprintf("%s/api/leaderboard?limit=%d", cfg.BaseURL, cfg.Limit)
	if err := c.getJSON(ctx, u, http.StatusOK, &body); err != nil {
		return err
	}

	top, bottom := body.Data.Top, body.Data.Bottom
	if len(top) == 0 || len(bottom) == 0 {
		return fmt.Errorf("empty leaderboard slices")
	}
	for i := 1; i < len(top); i++ {
		if top[i-1].OverallScore < top[i].OverallScore {
			return fmt.Errorf("top slice out of order at %d", i)
		}
	}
	for i := 1; i < len(bottom); i++ {
		if bottom[i-1].OverallScore > bottom[i].OverallScore {
			return fmt.Errorf("bottom slice out of order at %d", i)
		}
	}
	return nil
}

// checkTrend verifies the first vendor's trend spans the dataset months.
func checkTrend(ctx context.Context, c *HTTPClient, cfg *Config) error {
	var meta datasetMeta
	if err := c.getJSON(ctx, cfg.BaseURL+"/api/meta", http.StatusOK, &meta); err != nil {
		return err
	}
	vendor := meta.Vendors[0]

	var body trendResponse
	u := cfg.BaseURL + "/api/trend/" + url.PathEscape(vendor)
	if err := c.getJSON(ctx, u, http.StatusOK, &body); err != nil {
		return err
	}
	if len(body.Data) != monthsInSpan(meta) {
		return fmt.Errorf("trend has %d points, want %d", len(body.Data), monthsInSpan(meta))
	}

	// An unknown vendor must be a 404, not an empty trend.
	if err := c.getJSON(ctx, cfg.BaseURL+"/api/trend/no-such-vendor", http.StatusNotFound, nil); err != nil {
		return err
	}
	return nil
}

// checkExport verifies the CSV export parses and matches the record count.
func checkExport(ctx context.Context, c *HTTPClient, cfg *Config) error {
	var meta datasetMeta
	if err := c.getJSON(ctx, cfg.BaseURL+"/api/meta", http.StatusOK, &meta); err != nil {
		return err
	}

	resp, err := c.Get(ctx, cfg.BaseURL+"/api/export")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("export status %d", resp.StatusCode)
	}
	rows, err := csv.NewReader(resp.Body).ReadAll()
	if err != nil {
		return fmt.Errorf("export did not parse as CSV: %w", err)
	}
	if len(rows)-1 != meta.RecordCount {
		return fmt.Errorf("export has %d rows, want %d", len(rows)-1, meta.RecordCount)
	}
	return nil
}

// checkSessionRoundtrip creates two sessions with the same seed and
// verifies they describe identical datasets.
func checkSessionRoundtrip(ctx context.Context, c *HTTPClient, cfg *Config) error {
	body := map[string]int64{"seed": cfg.SessionSeed}

	var first, second datasetMeta
	if err := c.postJSON(ctx, cfg.BaseURL+"/api/sessions", body, http.StatusCreated, &first); err != nil {
		return err
	}
	if err := c.postJSON(ctx, cfg.BaseURL+"/api/sessions", body, http.StatusCreated, &second); err != nil {
		return err
	}

	if first.Seed != cfg.SessionSeed || second.Seed != cfg.SessionSeed {
		return fmt.Errorf("session seeds %d/%d, want %d", first.Seed, second.Seed, cfg.SessionSeed)
	}
	if first.SessionID == second.SessionID {
		return fmt.Errorf("sessions share an id")
	}
	if first.RecordCount != second.RecordCount {
		return fmt.Errorf("same seed produced %d and %d records", first.RecordCount, second.RecordCount)
	}

	// The session must be addressable through the filter endpoints.
	var records recordsResponse
	u := cfg.BaseURL + "/api/records?session=" + url.QueryEscape(first.SessionID)
	if err := c.getJSON(ctx, u, http.StatusOK, &records); err != nil {
		return err
	}
	if records.Count != first.RecordCount {
		return fmt.Errorf("session records %d disagree with meta %d", records.Count, first.RecordCount)
	}

	// And an unknown session must be a 404.
	return c.getJSON(ctx, cfg.BaseURL+"/api/records?session=no-such-session", http.StatusNotFound, nil)
}

// displayFinalStats prints the final check statistics.
func displayFinalStats(stats *Stats) {
	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("checksRun", stats.ChecksRun),
		logger.Int("checksPassed", stats.ChecksPassed),
		logger.Int("checksFailed", stats.ChecksFailed),
		logger.String("duration", stats.Duration.String()))
}
