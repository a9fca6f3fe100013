package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/triviahub/trivia-api/internal/config"
	"github.com/triviahub/trivia-api/internal/logging"
)

var httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "trivia_http_requests_total",
	Help: "HTTP requests handled, labeled by method, path and status.",
}, []string{"method", "path", "status"})

// statusRecorder captures the status code written downstream so the access
// log and metrics see the real outcome.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withMiddleware layers CORS handling, a request-scoped logger carrying a
// request id, an access log line and the request counter around the mux.
func withMiddleware(next http.Handler, cfg *config.App, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		applyCORS(w, r, cfg.CORS)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		reqLogger := logger.With().
			Str("request_id", uuid.NewString()).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Logger()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r.WithContext(logging.IntoContext(r.Context(), reqLogger)))

		httpRequests.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(rec.status)).Inc()
		reqLogger.Info().
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	})
}

func applyCORS(w http.ResponseWriter, r *http.Request, cors config.CORS) {
	origin := "*"
	if len(cors.AllowedOrigins) > 0 && cors.AllowedOrigins[0] != "*" {
		origin = cors.AllowedOrigins[0]
		for _, allowed := range cors.AllowedOrigins {
			if allowed == r.Header.Get("Origin") {
				origin = allowed
				break
			}
		}
	}
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", origin)
	h.Set("Access-Control-Allow-Headers", strings.Join(cors.AllowedHeaders, ","))
	h.Set("Access-Control-Allow-Methods", strings.Join(cors.AllowedMethods, ","))
	h.Set("Access-Control-Max-Age", strconv.Itoa(cors.MaxAge))
}
