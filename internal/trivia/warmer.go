package trivia

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// CategoryWarmer keeps the category cache populated so listing requests
// rarely fall through to Postgres.
type CategoryWarmer struct {
	svc      *Service
	interval time.Duration
	timeout  time.Duration
	logger   zerolog.Logger
}

func NewCategoryWarmer(svc *Service, interval time.Duration, logger zerolog.Logger) *CategoryWarmer {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &CategoryWarmer{
		svc:      svc,
		interval: interval,
		timeout:  4 * time.Second,
		logger:   logger.With().Str("component", "category_warmer").Logger(),
	}
}

// Run blocks until context cancellation.
func (w *CategoryWarmer) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// run immediately
	w.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("category warmer stopping")
			return ctx.Err()
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *CategoryWarmer) tick(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	if err := w.svc.RefreshCategories(ctx); err != nil {
		w.logger.Warn().Err(err).Msg("category refresh failed")
	}
}
