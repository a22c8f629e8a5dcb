// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/okian/vendorboard/internal/domain/filter"
	"github.com/okian/vendorboard/internal/domain/leaderboard"
	"github.com/okian/vendorboard/internal/domain/model"
)

// queryDateLayout parses the from/to query parameters.
const queryDateLayout = "2006-01-02"

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Records returns the full record set for a session; empty means default.
	Records(ctx context.Context, session string) ([]model.VendorRecord, error)

	// Filtered returns the records matching spec plus an optional warning.
	Filtered(ctx context.Context, session string, spec filter.Spec) ([]model.VendorRecord, string, error)

	// KPIs returns the scalar KPI set for the records matching spec.
	KPIs(ctx context.Context, session string, spec filter.Spec) (model.KPISet, string, error)

	// Summaries returns per-vendor summaries for the records matching spec.
	Summaries(ctx context.Context, session string, spec filter.Spec) ([]model.VendorSummary, string, error)

	// Leaderboard returns the top/bottom n vendors; n <= 0 uses the default.
	Leaderboard(ctx context.Context, session string, spec filter.Spec, n int) (leaderboard.Board, string, error)

	// Trend returns the month-by-month trend for one vendor.
	Trend(ctx context.Context, session, vendor string, spec filter.Spec) ([]model.TrendPoint, string, error)

	// ExportCSV writes the records matching spec to w as CSV.
	ExportCSV(ctx context.Context, session string, spec filter.Spec, w io.Writer) (string, error)

	// CreateSession generates a new dataset session; nil seed draws one.
	CreateSession(ctx context.Context, seed *int64) (model.DatasetMeta, error)

	// Meta returns the dataset description for a session.
	Meta(ctx context.Context, session string) (model.DatasetMeta, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	recordsHandler     *RecordsHandler
	kpisHandler        *KPIsHandler
	leaderboardHandler *LeaderboardHandler
	trendHandler       *TrendHandler
	exportHandler      *ExportHandler
	metaHandler        *MetaHandler
	sessionsHandler    *SessionsHandler
	dashboardHandler   *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLeaderboardLimit int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		recordsHandler:     NewRecordsHandler(deps),
		kpisHandler:        NewKPIsHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps, maxLeaderboardLimit),
		trendHandler:       NewTrendHandler(deps),
		exportHandler:      NewExportHandler(deps),
		metaHandler:        NewMetaHandler(deps),
		sessionsHandler:    NewSessionsHandler(deps),
		dashboardHandler:   newdashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/records/filtered", MetricsMiddleware(s.recordsHandler.HandleGetFiltered, "records_filtered"))
	mux.HandleFunc("/api/records", MetricsMiddleware(s.recordsHandler.HandleGetRecords, "records"))
	mux.HandleFunc("/api/kpis", MetricsMiddleware(s.kpisHandler.HandleGetKPIs, "kpis"))
	mux.HandleFunc("/api/summaries", MetricsMiddleware(s.kpisHandler.HandleGetSummaries, "summaries"))
	mux.HandleFunc("/api/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/api/trend/", MetricsMiddleware(s.trendHandler.HandleGetTrend, "trend"))
	mux.HandleFunc("/api/export", MetricsMiddleware(s.exportHandler.HandleExport, "export"))
	mux.HandleFunc("/api/meta", MetricsMiddleware(s.metaHandler.HandleGetMeta, "meta"))
	mux.HandleFunc("/api/sessions", MetricsMiddleware(s.sessionsHandler.HandlePostSession, "sessions"))
}

// parseFilterQuery extracts the session id and filter spec from a query.
// from/to must be YYYY-MM-DD; category and region repeat.
func parseFilterQuery(q url.Values) (string, filter.Spec, error) {
	spec := filter.Spec{
		Categories: q["category"],
		Regions:    q["region"],
	}

	if raw := q.Get("from"); raw != "" {
		t, err := time.Parse(queryDateLayout, raw)
		if err != nil {
			return "", filter.Spec{}, ErrBadDate
		}
		spec.From = t
	}
	if raw := q.Get("to"); raw != "" {
		t, err := time.Parse(queryDateLayout, raw)
		if err != nil {
			return "", filter.Spec{}, ErrBadDate
		}
		spec.To = t
	}

	return q.Get("session"), spec, nil
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
