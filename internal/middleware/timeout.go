package middleware

import (
	"net/http"
	"time"

	"github.com/2beens/blogsapi/internal/telemetry/metrics"
	"github.com/2beens/blogsapi/pkg"
)

const timeoutMessage = `{"message":"request timed out"}`

// Timeout bounds the handler run time. The request context is cancelled on
// expiry, so pending queries are aborted, and the client gets 503 JSON.
func Timeout(timeout time.Duration, metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if timeout <= 0 {
			return next
		}
		timeoutHandler := http.TimeoutHandler(next, timeout, timeoutMessage)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			timeoutHandler.ServeHTTP(&timeoutResponseWriter{ResponseWriter: w, metrics: metricsManager}, r)
		})
	}
}

// timeoutResponseWriter marks the timeout body as JSON. Handler responses
// always come with their own Content-Type copied over by http.TimeoutHandler.
type timeoutResponseWriter struct {
	http.ResponseWriter
	metrics *metrics.Manager
}

func (tw *timeoutResponseWriter) WriteHeader(statusCode int) {
	if statusCode == http.StatusServiceUnavailable && tw.Header().Get("Content-Type") == "" {
		tw.Header().Set("Content-Type", pkg.ContentType.JSON)
		if tw.metrics != nil {
			tw.metrics.CounterTimedOutRequests.Inc()
		}
	}
	tw.ResponseWriter.WriteHeader(statusCode)
}
