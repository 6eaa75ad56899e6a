package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/okian/podium/pkg/metrics"
)

// MetricsMiddleware records request count, latency and error class for
// every request handled by next under the endpoint label.
func MetricsMiddleware(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		observe(endpoint, r.Method, rec.status, time.Since(start))
	}
}

func observe(endpoint, method string, status int, took time.Duration) {
	code := strconv.Itoa(status)
	metrics.RecordHTTPRequest(endpoint, method, code)
	metrics.RecordHTTPRequestDuration(endpoint, method, code, float64(took.Milliseconds()))
	if status < http.StatusBadRequest {
		return
	}
	class, severity := classify(status)
	metrics.RecordErrorByEndpoint(endpoint, method, class)
	metrics.RecordErrorByType(class, severity)
	metrics.RecordErrorByComponent("http", class)
}

// classify buckets an error status into a class and a severity.
func classify(status int) (class, severity string) {
	switch {
	case status == http.StatusBadGateway:
		return "upstream_error", "high"
	case status >= http.StatusInternalServerError:
		return "server_error", "high"
	case status == http.StatusNotFound:
		return "not_found", "medium"
	default:
		return "client_error", "medium"
	}
}

// statusRecorder remembers the first status written through it.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (s *statusRecorder) WriteHeader(code int) {
	if !s.wroteHeader {
		s.status = code
		s.wroteHeader = true
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	s.wroteHeader = true
	return s.ResponseWriter.Write(b)
}
