package router

import (
	"net/http"
	"strings"

	"barcode-scanner/internal/handler"
	"barcode-scanner/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	scanHandler *handler.ScanHandler,
	sessionHandler *handler.SessionHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Default-session routes backing the single-camera flow.
	mux.HandleFunc("/api/scan", scanHandler.Scan)
	mux.HandleFunc("/api/reset", sessionHandler.ResetDefault)
	mux.HandleFunc("/api/history", sessionHandler.HistoryDefault)

	// Session routes: /api/sessions plus /api/sessions/{id}[/scan|/reset|/history]
	sessionRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/sessions"), "/")
		if rest == "" {
			sessionHandler.Create(w, r)
			return
		}

		parts := strings.SplitN(rest, "/", 2)
		id := parts[0]
		action := ""
		if len(parts) == 2 {
			action = parts[1]
		}

		switch action {
		case "":
			sessionHandler.Delete(w, r, id)
		case "scan":
			scanHandler.ScanSession(w, r, id)
		case "reset":
			sessionHandler.Reset(w, r, id)
		case "history":
			sessionHandler.History(w, r, id)
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}

	// Register session routes (both with and without trailing slash)
	mux.HandleFunc("/api/sessions", sessionRouteHandler)
	mux.HandleFunc("/api/sessions/", sessionRouteHandler)

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth
	var h http.Handler = mux
	h = middleware.APIKeyAuth(apiKey, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
