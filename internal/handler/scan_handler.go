package handler

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"

	"barcode-scanner/internal/model"
	"barcode-scanner/internal/scanner"

	"github.com/rs/zerolog"
)

// historyTail is how many recent records ride along with each scan response,
// matching the history view of the camera UI.
const historyTail = 10

// maxFrameBytes caps the multipart form held in memory per request.
const maxFrameBytes = 10 << 20

// ScanResponse is the per-frame result payload.
type ScanResponse struct {
	Results []model.ScanResult `json:"results"`
	History []model.ScanRecord `json:"history"`
}

// ScanHandler handles camera frame submissions.
type ScanHandler struct {
	registry       *scanner.Registry
	defaultSession *scanner.Session
	logger         zerolog.Logger
}

// NewScanHandler creates a new scan handler. The default session backs the
// single-camera /api/scan route.
func NewScanHandler(registry *scanner.Registry, defaultSession *scanner.Session, logger zerolog.Logger) *ScanHandler {
	return &ScanHandler{
		registry:       registry,
		defaultSession: defaultSession,
		logger:         logger.With().Str("handler", "scan").Logger(),
	}
}

// Scan handles POST /api/scan requests against the default session.
func (h *ScanHandler) Scan(w http.ResponseWriter, r *http.Request) {
	h.scanWith(w, r, h.defaultSession)
}

// ScanSession handles POST /api/sessions/{id}/scan requests.
func (h *ScanHandler) ScanSession(w http.ResponseWriter, r *http.Request, id string) {
	session := h.registry.Get(id)
	if session == nil {
		writeError(w, http.StatusNotFound, model.ErrSessionNotFound.Message, h.logger)
		return
	}
	h.scanWith(w, r, session)
}

func (h *ScanHandler) scanWith(w http.ResponseWriter, r *http.Request, session *scanner.Session) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	frame, err := parseFrame(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	results := session.ProcessFrame(r.Context(), frame)
	writeJSON(w, http.StatusOK, ScanResponse{
		Results: results,
		History: session.Recent(historyTail),
	})
}

// parseFrame extracts and decodes the multipart "frame" image field.
func parseFrame(r *http.Request) (image.Image, error) {
	if err := r.ParseMultipartForm(maxFrameBytes); err != nil {
		return nil, model.ErrMissingFrame
	}

	file, _, err := r.FormFile("frame")
	if err != nil {
		return nil, model.ErrMissingFrame
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, model.ErrInvalidFrame
	}
	return img, nil
}
