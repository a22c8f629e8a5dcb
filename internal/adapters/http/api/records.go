// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"

	repository "github.com/okian/vendorboard/internal/adapters/repository"
	"github.com/okian/vendorboard/internal/domain/model"
)

// RecordsHandler handles record listing requests.
type RecordsHandler struct {
	deps Dependencies
}

// NewRecordsHandler creates a new records handler.
func NewRecordsHandler(deps Dependencies) *RecordsHandler {
	return &RecordsHandler{deps: deps}
}

// recordsResponse is the shared shape for record listings. Warning is set
// when an inverted date range produced an empty result.
type recordsResponse struct {
	Data    []model.VendorRecord `json:"data"`
	Count   int                  `json:"count"`
	Warning string               `json:"warning,omitempty"`
}

// HandleGetRecords handles GET /api/records requests.
func (h *RecordsHandler) HandleGetRecords(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_records"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	records, err := h.deps.Records(r.Context(), r.URL.Query().Get("session"))
	if err != nil {
		writeSessionError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, recordsResponse{Data: records, Count: len(records)})
}

// HandleGetFiltered handles GET /api/records/filtered requests.
func (h *RecordsHandler) HandleGetFiltered(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_records_filtered"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	session, spec, err := parseFilterQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	records, warning, err := h.deps.Filtered(r.Context(), session, spec)
	if err != nil {
		writeSessionError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, recordsResponse{Data: records, Count: len(records), Warning: warning})
}

// writeSessionError translates store errors to HTTP statuses: unknown
// sessions map to 404, everything else to 500.
func writeSessionError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "session_not_found", Wrap(op, err))
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
}
