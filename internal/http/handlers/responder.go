package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/schedule-board-service/internal/http/middleware"
	"github.com/preston-bernstein/schedule-board-service/internal/http/requestutil"
	"github.com/preston-bernstein/schedule-board-service/internal/logging"
)

// Board responses change on every reload and must not be cached by browsers.
const cacheControl = "no-store"

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", cacheControl)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error(logger, "failed to encode response", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	body := map[string]string{"error": message}
	if reqID := requestID(r); reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

// writeHTML renders into a buffer first so a failed render becomes a plain 500
// instead of a truncated page.
func writeHTML(w http.ResponseWriter, status int, render func(io.Writer) error, logger *slog.Logger) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		logging.Error(logger, "failed to render page", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", cacheControl)
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func requestID(r *http.Request) string {
	if r == nil {
		return ""
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return id
	}
	return requestutil.ValidRequestID(r.Header.Get(requestutil.HeaderRequestID))
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
