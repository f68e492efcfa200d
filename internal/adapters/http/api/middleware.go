package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/okian/podium/pkg/logger"
	"github.com/okian/podium/pkg/metrics"
)

// MetricsMiddleware wraps HTTP handlers to record Prometheus metrics.
func MetricsMiddleware(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		durationMs := float64(time.Since(start).Microseconds()) / 1000
		status := strconv.Itoa(wrapped.statusCode)
		metrics.RecordHTTPRequest(endpoint, r.Method, status)
		metrics.RecordHTTPRequestDuration(endpoint, r.Method, status, durationMs)

		if wrapped.statusCode >= http.StatusBadRequest {
			errorType := errorTypeFor(wrapped.statusCode)
			metrics.RecordErrorByEndpoint(endpoint, r.Method, errorType)
			metrics.RecordErrorByType(errorType, severityFor(wrapped.statusCode))
			metrics.RecordErrorByComponent("http", errorType)
			metrics.RecordErrorLatency("http", errorType, durationMs)
		}
	}
}

// RecoverMiddleware turns a handler panic into a 500 response.
func RecoverMiddleware(next http.HandlerFunc, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				log.Error(r.Context(), "handler panic",
					logger.String("path", r.URL.Path),
					logger.String("method", r.Method),
					logger.Any("panic", v),
				)
				writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("internal error"))
			}
		}()
		next(w, r)
	}
}

func errorTypeFor(statusCode int) string {
	switch {
	case statusCode >= http.StatusInternalServerError:
		return "server_error"
	case statusCode == http.StatusRequestEntityTooLarge:
		return "too_large"
	case statusCode == http.StatusNotFound:
		return "not_found"
	case statusCode == http.StatusMethodNotAllowed:
		return "method_not_allowed"
	default:
		return "client_error"
	}
}

func severityFor(statusCode int) string {
	if statusCode >= http.StatusInternalServerError {
		return "high"
	}
	return "medium"
}

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	if err != nil {
		return n, fmt.Errorf("failed to write response: %w", err)
	}
	return n, nil
}
