package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	applog "expensetracker/internal/log"
)

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// withRequestLogging tags each request with an id, stores a request-scoped
// logger in the context and logs completion.
func (s *Server) withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = "req_" + uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		logger := s.logger.With(applog.FieldRequestID, requestID)
		r = r.WithContext(applog.IntoContext(r.Context(), logger))

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		fields := applog.NewFields().
			WithHTTPRequest(r.Method, r.URL.Path, r.UserAgent(), clientIP(r)).
			WithHTTPResponse(rw.statusCode, time.Since(start).Milliseconds())
		switch {
		case rw.statusCode >= 500:
			logger.ErrorContext(r.Context(), "Request completed", fields.ToSlice()...)
		case rw.statusCode >= 400:
			logger.WarnContext(r.Context(), "Request completed", fields.ToSlice()...)
		default:
			logger.InfoContext(r.Context(), "Request completed", fields.ToSlice()...)
		}
	})
}

// withSecurityHeaders adds security headers to every response.
func withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self'; img-src 'self' data:; form-action 'self'; frame-ancestors 'none'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// clientIP extracts the client address, considering proxies.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}
