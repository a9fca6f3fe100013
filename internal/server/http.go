package server

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/triviahub/trivia-api/internal/config"
	"github.com/triviahub/trivia-api/internal/trivia"
)

// NewHTTPServer wires the trivia routes plus health and metrics endpoints.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, pool *pgxpool.Pool, rdb *redis.Client, h *trivia.Handler) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := pingDependencies(r.Context(), pool, rdb); err != nil {
			logger.Error().Err(err).Msg("dependency ping failed")
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"status":"degraded"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("GET /categories", h.HandleListCategories)
	mux.HandleFunc("GET /categories/{id}/questions", h.HandleListByCategory)
	mux.HandleFunc("GET /questions", h.HandleListQuestions)
	mux.HandleFunc("POST /questions", h.HandleCreateQuestion)
	mux.HandleFunc("DELETE /questions/{id}", h.HandleDeleteQuestion)
	mux.HandleFunc("POST /questions/search", h.HandleSearchQuestions)
	mux.HandleFunc("POST /quizzes", h.HandleQuiz)

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: withMiddleware(mux, cfg, logger),
	}
}

func pingDependencies(ctx context.Context, pool *pgxpool.Pool, rdb *redis.Client) error {
	if err := pool.Ping(ctx); err != nil {
		return err
	}
	return rdb.Ping(ctx).Err()
}
