// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// MetaHandler handles dataset metadata requests.
type MetaHandler struct {
	deps Dependencies
}

// NewMetaHandler creates a new meta handler.
func NewMetaHandler(deps Dependencies) *MetaHandler {
	return &MetaHandler{deps: deps}
}

// HandleGetMeta handles GET /api/meta requests.
func (h *MetaHandler) HandleGetMeta(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_meta"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	meta, err := h.deps.Meta(r.Context(), r.URL.Query().Get("session"))
	if err != nil {
		writeSessionError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, meta)
}
