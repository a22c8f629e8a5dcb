// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/vendorboard/internal/domain/model"
)

// KPIsHandler handles KPI and per-vendor summary requests.
type KPIsHandler struct {
	deps Dependencies
}

// NewKPIsHandler creates a new KPIs handler.
func NewKPIsHandler(deps Dependencies) *KPIsHandler {
	return &KPIsHandler{deps: deps}
}

type kpisResponse struct {
	Data    model.KPISet `json:"data"`
	Warning string       `json:"warning,omitempty"`
}

type summariesResponse struct {
	Data    []model.VendorSummary `json:"data"`
	Count   int                   `json:"count"`
	Warning string                `json:"warning,omitempty"`
}

// HandleGetKPIs handles GET /api/kpis requests.
func (h *KPIsHandler) HandleGetKPIs(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_kpis"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	session, spec, err := parseFilterQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	kpis, warning, err := h.deps.KPIs(r.Context(), session, spec)
	if err != nil {
		writeSessionError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, kpisResponse{Data: kpis, Warning: warning})
}

// HandleGetSummaries handles GET /api/summaries requests.
func (h *KPIsHandler) HandleGetSummaries(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_summaries"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	session, spec, err := parseFilterQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	summaries, warning, err := h.deps.Summaries(r.Context(), session, spec)
	if err != nil {
		writeSessionError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, summariesResponse{Data: summaries, Count: len(summaries), Warning: warning})
}
