package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db"
	"github.com/gokatarajesh/trivia-api/internal/db/queries"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/server"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

// Application aggregates shared infrastructure (DB, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server

	warmer    *trivia.CategoryWarmer
	bgCancels []context.CancelFunc
}

// New bootstraps logger, Postgres, the optional Redis cache and the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env, cfg.LogLevel)
	logger.Info().Msg("starting application bootstrap")

	if cfg.MigrateOnStart {
		if err := db.Migrate(ctx, cfg.Postgres.ConnString(), "up"); err != nil {
			return nil, err
		}
		logger.Info().Msg("migrations applied")
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.Postgres.ConnString())
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	poolCfg.MaxConns = cfg.Postgres.MaxConns

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	q := queries.New(pool)
	categoryRepo := repository.NewCategoryRepository(q)
	questionRepo := repository.NewQuestionRepository(q)

	var (
		redisClient *redis.Client
		cache       trivia.CategoryCache
	)
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		cache = trivia.NewCache(redisClient, cfg.Trivia.CategoryCacheTTL)
	} else {
		logger.Warn().Msg("redis disabled; categories are read from postgres on every request")
	}

	svc := trivia.NewService(categoryRepo, questionRepo, cache, trivia.ServiceOptions{
		PageSize: cfg.Trivia.QuestionsPerPage,
	})

	var warmer *trivia.CategoryWarmer
	if cache != nil && cfg.Trivia.CategoryRefreshInterval > 0 {
		warmer = trivia.NewCategoryWarmer(svc, cfg.Trivia.CategoryRefreshInterval, logger)
	}

	apiServer := server.NewHTTPServer(cfg, logger, pool, redisClient, trivia.NewHTTPHandlers(svc))

	return &Application{
		cfg:       cfg,
		logger:    logger,
		pool:      pool,
		redis:     redisClient,
		http:      apiServer,
		warmer:    warmer,
		bgCancels: make([]context.CancelFunc, 0, 1),
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	a.startBackgroundWorkers(ctx)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		a.close()
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	a.close()
	a.logger.Info().Msg("shutdown complete")
	return nil
}

func (a *Application) close() {
	for _, cancel := range a.bgCancels {
		cancel()
	}

	a.pool.Close()
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error().Err(err).Msg("redis shutdown error")
		}
	}
}

func (a *Application) startBackgroundWorkers(ctx context.Context) {
	if a.warmer != nil {
		bgCtx, cancel := context.WithCancel(ctx)
		a.bgCancels = append(a.bgCancels, cancel)
		go func() {
			if err := a.warmer.Run(bgCtx); err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Warn().Err(err).Msg("category warmer stopped")
			}
		}()
	}
}
