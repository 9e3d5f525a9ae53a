package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"skillsprint/pkg/errors"
	"skillsprint/pkg/response"
)

// HandleError writes an error response in the {"error": message} wire format.
// ApplicationError carries its own status code; anything else is a generic
// 500 with no internal detail leaked to the caller.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := GetRequestID(r.Context())

	if appErr, ok := err.(*errors.ApplicationError); ok {
		logger := slog.Warn
		if appErr.Status >= 500 {
			logger = slog.Error
		}
		logger("request failed",
			"request_id", requestID,
			"status", appErr.Status,
			"code", appErr.Code,
			"method", r.Method,
			"path", r.URL.Path,
			"error", appErr.Message,
		)
		response.SendError(w, appErr.Status, appErr.Message)
		return
	}

	slog.Error("unexpected error",
		"request_id", requestID,
		"method", r.Method,
		"path", r.URL.Path,
		"error", err.Error(),
	)
	response.SendError(w, http.StatusInternalServerError, "Internal server error")
}

// RecoveryMiddleware converts panics into a generic internal-error response
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("panic recovered",
					"request_id", GetRequestID(r.Context()),
					"panic", err,
					"stack", string(debug.Stack()),
				)
				response.SendError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// LoggingMiddleware logs HTTP requests with request ID and duration
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := GetRequestID(r.Context())

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		slog.Info("request completed",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", time.Since(start).String(),
		)
	})
}

// statusWriter captures the response status code for logging
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(statusCode int) {
	w.status = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

// generateRequestID creates a unique request ID
func generateRequestID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
