// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"bytes"
	"net/http"
)

// exportFilename is the suggested download name for CSV exports.
const exportFilename = "vendor_data.csv"

// ExportHandler handles CSV export requests.
type ExportHandler struct {
	deps Dependencies
}

// NewExportHandler creates a new export handler.
func NewExportHandler(deps Dependencies) *ExportHandler {
	return &ExportHandler{deps: deps}
}

// HandleExport handles GET /api/export requests. The filtered records are
// streamed as a CSV attachment; an inverted range yields a header-only file.
func (h *ExportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	const op = "api.export"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	session, spec, err := parseFilterQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	// Buffer the export so errors can still produce a JSON response.
	var buf bytes.Buffer
	if _, err := h.deps.ExportCSV(r.Context(), session, spec, &buf); err != nil {
		writeSessionError(w, op, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
