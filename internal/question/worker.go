package question

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// PrefetchWorker keeps every category above a minimum pool size so that
// request paths rarely wait on the knowledge source.
type PrefetchWorker struct {
	service    *Service
	categories []Category
	threshold  int
	interval   time.Duration
	timeout    time.Duration
	logger     zerolog.Logger
}

func NewPrefetchWorker(service *Service, interval time.Duration, threshold int, timeout time.Duration, logger zerolog.Logger) *PrefetchWorker {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	if threshold < 1 {
		threshold = 1
	}
	return &PrefetchWorker{
		service:    service,
		categories: Categories,
		threshold:  threshold,
		interval:   interval,
		timeout:    timeout,
		logger:     logger.With().Str("component", "prefetch_worker").Logger(),
	}
}

// Run refills immediately and then on every tick until ctx is cancelled.
func (w *PrefetchWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info().Dur("interval", w.interval).Int("threshold", w.threshold).Msg("prefetch worker started")
	w.Tick(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("prefetch worker stopping")
			return ctx.Err()
		case <-ticker.C:
			w.Tick(ctx)
		}
	}
}

// Tick replenishes each category once.
func (w *PrefetchWorker) Tick(ctx context.Context) {
	for _, cat := range w.categories {
		if ctx.Err() != nil {
			return
		}
		w.refill(ctx, cat)
	}
}

func (w *PrefetchWorker) refill(ctx context.Context, category Category) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	inserted, err := w.service.Replenish(ctx, category, w.threshold)
	if err != nil {
		w.logger.Warn().Err(err).Str("category", string(category)).Msg("prefetch failed")
		return
	}
	if inserted > 0 {
		w.logger.Debug().Str("category", string(category)).Int("inserted", inserted).Msg("prefetched questions")
	}
}
