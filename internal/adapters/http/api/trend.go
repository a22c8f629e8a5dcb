// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/okian/vendorboard/internal/domain/model"
)

// TrendHandler handles per-vendor trend requests.
type TrendHandler struct {
	deps Dependencies
}

// NewTrendHandler creates a new trend handler.
func NewTrendHandler(deps Dependencies) *TrendHandler {
	return &TrendHandler{deps: deps}
}

type trendResponse struct {
	Vendor  string             `json:"vendor"`
	Data    []model.TrendPoint `json:"data"`
	Warning string             `json:"warning,omitempty"`
}

// HandleGetTrend handles GET /api/trend/{vendor} requests. Vendor names may
// contain spaces, so the path segment is URL-decoded.
func (h *TrendHandler) HandleGetTrend(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_trend"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	// Extract path parameter after /api/trend/
	raw := strings.TrimPrefix(r.URL.Path, "/api/trend/")
	if raw == "" || strings.Contains(raw, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	vendor, err := url.PathUnescape(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	session, spec, err := parseFilterQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	points, warning, err := h.deps.Trend(r.Context(), session, vendor, spec)
	if err != nil {
		if errors.Is(err, model.ErrUnknownVendor) {
			writeError(w, http.StatusNotFound, "vendor_not_found", Wrap(op, err))
			return
		}
		writeSessionError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, trendResponse{Vendor: vendor, Data: points, Warning: warning})
}
