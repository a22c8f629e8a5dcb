// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// SessionsHandler handles dataset session creation.
type SessionsHandler struct {
	deps Dependencies
}

// NewSessionsHandler creates a new sessions handler.
func NewSessionsHandler(deps Dependencies) *SessionsHandler {
	return &SessionsHandler{deps: deps}
}

// sessionRequest mirrors the OpenAPI schema for POST /api/sessions.
// Seed is optional; omitting it draws a fresh one.
type sessionRequest struct {
	Seed *int64 `json:"seed"`
}

// HandlePostSession handles POST /api/sessions requests.
func (h *SessionsHandler) HandlePostSession(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_session"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	meta, err := h.deps.CreateSession(r.Context(), req.Seed)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, meta)
}
