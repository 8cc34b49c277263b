package handler

import (
	"net/http"
	"strconv"

	"barcode-scanner/internal/model"
	"barcode-scanner/internal/scanner"

	"github.com/rs/zerolog"
)

// SessionHandler handles session lifecycle requests.
type SessionHandler struct {
	registry       *scanner.Registry
	defaultSession *scanner.Session
	logger         zerolog.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(registry *scanner.Registry, defaultSession *scanner.Session, logger zerolog.Logger) *SessionHandler {
	return &SessionHandler{
		registry:       registry,
		defaultSession: defaultSession,
		logger:         logger.With().Str("handler", "session").Logger(),
	}
}

// Create handles POST /api/sessions requests.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	session := h.registry.Create()
	writeJSON(w, http.StatusCreated, map[string]string{"sessionId": session.ID()})
}

// Delete handles DELETE /api/sessions/{id} requests.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	if !h.registry.Remove(id) {
		writeError(w, http.StatusNotFound, model.ErrSessionNotFound.Message, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reset handles POST /api/sessions/{id}/reset requests.
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request, id string) {
	session := h.registry.Get(id)
	if session == nil {
		writeError(w, http.StatusNotFound, model.ErrSessionNotFound.Message, h.logger)
		return
	}
	h.resetSession(w, r, session)
}

// ResetDefault handles POST /api/reset requests against the default session.
func (h *SessionHandler) ResetDefault(w http.ResponseWriter, r *http.Request) {
	h.resetSession(w, r, h.defaultSession)
}

// History handles GET /api/sessions/{id}/history requests.
func (h *SessionHandler) History(w http.ResponseWriter, r *http.Request, id string) {
	session := h.registry.Get(id)
	if session == nil {
		writeError(w, http.StatusNotFound, model.ErrSessionNotFound.Message, h.logger)
		return
	}
	h.sessionHistory(w, r, session)
}

// HistoryDefault handles GET /api/history requests against the default
// session.
func (h *SessionHandler) HistoryDefault(w http.ResponseWriter, r *http.Request) {
	h.sessionHistory(w, r, h.defaultSession)
}

func (h *SessionHandler) resetSession(w http.ResponseWriter, r *http.Request, session *scanner.Session) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	session.Reset()
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (h *SessionHandler) sessionHistory(w http.ResponseWriter, r *http.Request, session *scanner.Session) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	limit := 0 // everything
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit parameter", h.logger)
			return
		}
	}

	writeJSON(w, http.StatusOK, session.Recent(limit))
}
