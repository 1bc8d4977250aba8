package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/gokatarajesh/wikiquiz/internal/config"
	"github.com/gokatarajesh/wikiquiz/internal/db/queries"
	"github.com/gokatarajesh/wikiquiz/internal/db/repository"
	"github.com/gokatarajesh/wikiquiz/internal/game"
	"github.com/gokatarajesh/wikiquiz/internal/game/scoring"
	"github.com/gokatarajesh/wikiquiz/internal/logging"
	"github.com/gokatarajesh/wikiquiz/internal/question"
	"github.com/gokatarajesh/wikiquiz/internal/question/ai"
	"github.com/gokatarajesh/wikiquiz/internal/question/external"
	"github.com/gokatarajesh/wikiquiz/internal/server"
)

// Application aggregates shared infrastructure (DB, Redis, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server

	prefetchWorker *question.PrefetchWorker
}

// New bootstraps logger, Postgres, Redis, domain services and HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	pool, err := pgxpool.New(ctx, cfg.Postgres.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	questionSvc, err := NewQuestionService(cfg, pool, redisClient, logger)
	if err != nil {
		pool.Close()
		_ = redisClient.Close()
		return nil, err
	}

	signer := question.NewSigner([]byte(cfg.Security.QuestionHMACSecret))
	if !signer.Enabled() {
		logger.Warn().Msg("QUESTION_HMAC_SECRET not set; served questions carry no token")
	}

	mode, _ := game.ParseScoringMode(cfg.Game.ScoringMode)
	engine := scoring.NewEngine(scoring.ScoringConfig{
		BaseScore:        cfg.Game.BaseScore,
		MaxTimeBonus:     cfg.Game.MaxTimeBonus,
		TargetPerAnswer:  cfg.Game.TargetPerAnswer,
		LevelMultipliers: scoring.DefaultScoringConfig().LevelMultipliers,
	})
	sessionRepo := repository.NewSessionRepository(queries.New(pool))
	gameSvc := game.NewService(sessionRepo, game.Options{Mode: mode, Engine: engine}, logger)

	apiServer := server.NewHTTPServer(cfg, logger, pool, redisClient, server.Handlers{
		Questions: question.NewHTTPHandlers(questionSvc, signer, cfg.Supply.MaxPerRequest, logger),
		Game:      game.NewHTTPHandlers(gameSvc, signer, logger),
	})

	var prefetchWorker *question.PrefetchWorker
	if cfg.Supply.PrefetchEnabled {
		prefetchWorker = question.NewPrefetchWorker(
			questionSvc,
			cfg.Supply.PrefetchInterval,
			cfg.Supply.PrefetchThreshold,
			cfg.Supply.PrefetchTimeout,
			logger,
		)
	}

	return &Application{
		cfg:            cfg,
		logger:         logger,
		pool:           pool,
		redis:          redisClient,
		http:           apiServer,
		prefetchWorker: prefetchWorker,
	}, nil
}

// NewQuestionService builds the supply service with its source, distractor
// strategy and replenish lock. Shared by the API and the ops CLI.
func NewQuestionService(cfg *config.App, pool *pgxpool.Pool, redisClient *redis.Client, logger zerolog.Logger) (*question.Service, error) {
	curated, err := question.LoadCuratedPool(cfg.Supply.DistractorPoolsFile, logger)
	if err != nil {
		return nil, err
	}
	var distractors question.DistractorGenerator = curated
	if cfg.AI.DistractorURL != "" {
		distractors = ai.NewDistractorGenerator(ai.Config{
			URL:     cfg.AI.DistractorURL,
			Key:     cfg.AI.DistractorKey,
			Timeout: cfg.AI.HTTPTimeout,
		}, curated, logger)
		logger.Info().Msg("remote distractor generator enabled")
	}

	wikidata := external.NewWikidataClient(
		cfg.Source.SPARQLEndpoint,
		cfg.Source.UserAgent,
		cfg.Source.ResultLimit,
		&http.Client{Timeout: cfg.Source.FetchTimeout},
	)
	source := question.NewSourceAdapter(wikidata, distractors, logger)
	questionRepo := repository.NewQuestionRepository(queries.New(pool))
	lock := question.NewReplenishLock(redisClient, cfg.Supply.ReplenishLockTTL)

	return question.NewService(questionRepo, source, lock, logger), nil
}

// Run serves HTTP and the prefetch worker until ctx ends, SIGINT/SIGTERM
// arrives, or the listener fails. Dependencies are closed on the way out.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	if a.prefetchWorker != nil {
		g.Go(func() error {
			if err := a.prefetchWorker.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Warn().Err(err).Msg("prefetch worker stopped")
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
		defer cancel()
		if err := a.http.Shutdown(shutdownCtx); err != nil {
			a.logger.Error().Err(err).Msg("http shutdown error")
		}
		return nil
	})

	err := g.Wait()

	a.pool.Close()
	if cerr := a.redis.Close(); cerr != nil {
		a.logger.Error().Err(cerr).Msg("redis shutdown error")
	}
	a.logger.Info().Msg("shutdown complete")
	return err
}
