package cli

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gokatarajesh/wikiquiz/internal/app"
	"github.com/gokatarajesh/wikiquiz/internal/config"
	"github.com/gokatarajesh/wikiquiz/internal/question"
)

// NewPrefetchCmd fills the question pool from the knowledge source.
func NewPrefetchCmd() *cobra.Command {
	var (
		category    string
		threshold   int
		concurrency int
	)
	cmd := &cobra.Command{
		Use:   "prefetch",
		Short: "Replenish question categories below a threshold",
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := selectCategories(category)
			if err != nil {
				return err
			}
			if threshold < 1 {
				return fmt.Errorf("--threshold must be at least 1")
			}
			return withQuestionService(cmd.Context(), func(ctx context.Context, svc *question.Service) error {
				return prefetch(ctx, svc, categories, threshold, concurrency)
			})
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only this category (default all)")
	cmd.Flags().IntVar(&threshold, "threshold", 10, "refill categories holding fewer questions than this")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "categories fetched in parallel")
	return cmd
}

// NewPurgeCmd removes stored questions.
func NewPurgeCmd() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete stored questions, all or one category",
		RunE: func(cmd *cobra.Command, args []string) error {
			var target question.Category
			if category != "" {
				cat, ok := question.ParseCategory(category)
				if !ok {
					return fmt.Errorf("%w: %s", question.ErrUnknownCategory, category)
				}
				target = cat
			}
			return withQuestionService(cmd.Context(), func(ctx context.Context, svc *question.Service) error {
				var (
					n   int64
					err error
				)
				if target == "" {
					n, err = svc.PurgeAll(ctx)
				} else {
					n, err = svc.PurgeCategory(ctx, target)
				}
				if err != nil {
					return err
				}
				log.Info().Int64("deleted", n).Str("category", string(target)).Msg("purge finished")
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only this category (default all)")
	return cmd
}

func prefetch(ctx context.Context, svc *question.Service, categories []question.Category, threshold, concurrency int) error {
	if concurrency < 1 {
		concurrency = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, cat := range categories {
		g.Go(func() error {
			n, err := svc.Replenish(gctx, cat, threshold)
			if err != nil {
				return fmt.Errorf("prefetch %s: %w", cat, err)
			}
			log.Info().Str("category", string(cat)).Int("inserted", n).Msg("category prefetched")
			return nil
		})
	}
	return g.Wait()
}

func selectCategories(raw string) ([]question.Category, error) {
	if raw == "" {
		return question.Categories, nil
	}
	cat, ok := question.ParseCategory(raw)
	if !ok {
		return nil, fmt.Errorf("%w: %s", question.ErrUnknownCategory, raw)
	}
	return []question.Category{cat}, nil
}

func withQuestionService(ctx context.Context, fn func(context.Context, *question.Service) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	pool, err := pgxpool.New(ctx, cfg.Postgres.DSN())
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	defer redisClient.Close()

	svc, err := app.NewQuestionService(cfg, pool, redisClient, log.Logger)
	if err != nil {
		return err
	}
	return fn(ctx, svc)
}
