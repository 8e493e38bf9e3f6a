package http

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"outlay/internal/log"
)

// middleware wraps the mux with the request pipeline: context logger,
// request IDs, suspicious-request detection, rate limiting on mutations,
// security headers, and start/end logging.
func (s *Server) middleware(next http.Handler) http.Handler {
	logger := log.New(log.DefaultConfig()).WithComponent(log.ComponentHTTP)
	structured := log.NewStructuredLogger(logger)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := extractClientIP(r)
		ctx := r.Context()

		if detectSuspiciousRequest(r, s.metrics) {
			log.FromContext(ctx).WarnContext(ctx, "Suspicious request pattern",
				log.FieldClientIP, clientIP,
				"method", r.Method,
				"path", r.URL.Path)
		}

		if isMutation(r.Method) && !s.rateLimiter.allow(clientIP, s.metrics) {
			log.FromContext(ctx).WarnContext(ctx, "Rate limit exceeded",
				log.FieldClientIP, clientIP,
				"method", r.Method,
				"path", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		structured.LogHTTPStart(ctx, r, clientIP)
		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		structured.LogHTTPEnd(ctx, r, rw.status, time.Since(start).Milliseconds(), clientIP)
	})

	withRequestID := log.RequestIDMiddleware(func(*http.Request) string {
		return generateRequestID()
	})
	return log.Middleware(logger)(withRequestID(handler))
}

func isMutation(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// statusRecorder captures the response status for the completion log line.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
