package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/wikiquiz/internal/config"
	"github.com/gokatarajesh/wikiquiz/internal/game"
	"github.com/gokatarajesh/wikiquiz/internal/logging"
	"github.com/gokatarajesh/wikiquiz/internal/question"
	httperrors "github.com/gokatarajesh/wikiquiz/pkg/http/errors"
)

// Handlers groups the domain endpoints. Nil members leave their routes unregistered.
type Handlers struct {
	Questions *question.HTTPHandlers
	Game      *game.HTTPHandlers
}

// NewHTTPServer wires base routes (health, metrics, ping) and the quiz API.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, pool *pgxpool.Pool, redis *redis.Client, h Handlers) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /v1/ping", func(w http.ResponseWriter, r *http.Request) {
		if err := pingDependencies(r.Context(), pool, redis); err != nil {
			logging.FromContext(r.Context(), logger).Error().Err(err).Msg("dependency ping failed")
			httperrors.RespondError(w, http.StatusBadGateway, httperrors.ErrCodeServiceUnavailable, "upstream error")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	if h.Questions != nil {
		mux.HandleFunc("GET /question/{category}/{n}", h.Questions.GetQuestions)
		mux.HandleFunc("GET /question/{category}", h.Questions.GetSingleQuestion)
	}

	if h.Game != nil {
		mux.HandleFunc("POST /verify", h.Game.Verify)
		mux.HandleFunc("POST /game/start", h.Game.Start)
		mux.HandleFunc("POST /game/end", h.Game.End)
		mux.HandleFunc("GET /game/statistics", h.Game.Statistics)
		mux.HandleFunc("GET /game/sessions/{id}", h.Game.GetSession)
	}

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: logging.Middleware(logger, instrument(mux)),
	}
}

var errNotConfigured = errors.New("dependency not configured")

func pingDependencies(ctx context.Context, pool *pgxpool.Pool, redis *redis.Client) error {
	if pool == nil || redis == nil {
		return errNotConfigured
	}
	if err := pool.Ping(ctx); err != nil {
		return err
	}
	if err := redis.Ping(ctx).Err(); err != nil {
		return err
	}
	return nil
}
