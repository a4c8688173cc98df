package server

import (
	"context"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/metrics"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// RouteRegistrar mounts feature routes on the shared mux.
type RouteRegistrar interface {
	Register(mux *http.ServeMux)
}

// NewHTTPServer wires base routes (health, metrics, ping) and the trivia API.
// pool and redis may be nil; ping skips whatever is absent.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, pool *pgxpool.Pool, redis *redis.Client, routes RouteRegistrar) *http.Server {
	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: NewHandler(cfg.CORS, logger, pinger(pool, redis), routes),
	}
}

// NewHandler builds the full middleware chain around the route mux.
func NewHandler(corsCfg config.CORS, logger zerolog.Logger, ping func(context.Context) error, routes RouteRegistrar) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("GET /metrics", metrics.Handler())

	mux.HandleFunc("GET /v1/ping", func(w http.ResponseWriter, r *http.Request) {
		if err := ping(r.Context()); err != nil {
			logger := logging.FromContext(r.Context())
			logger.Error().Err(err).Msg("dependency ping failed")
			httperrors.RespondServiceUnavailable(w, "upstream dependency unavailable")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	if routes != nil {
		routes.Register(mux)
	}

	var handler http.Handler = jsonFallback(mux)
	handler = recoverer(handler)
	handler = metrics.Middleware(mux)(handler)
	handler = logging.Middleware(logger)(handler)
	handler = cors.Handler(cors.Options{
		AllowedOrigins:   corsCfg.AllowedOrigins,
		AllowedMethods:   corsCfg.AllowedMethods,
		AllowedHeaders:   corsCfg.AllowedHeaders,
		ExposedHeaders:   []string{logging.RequestIDHeader},
		AllowCredentials: corsCfg.AllowCredentials,
		MaxAge:           corsCfg.MaxAge,
	})(handler)
	return handler
}

// recoverer turns a handler panic into the standard JSON 500 body. If the
// handler already sent headers the response is left as is.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}

			logger := logging.FromContext(r.Context())
			logger.Error().
				Interface("panic", rvr).
				Bytes("stack", debug.Stack()).
				Msg("handler panicked")

			if ww.Status() == 0 {
				httperrors.RespondInternalError(ww)
			}
		}()
		next.ServeHTTP(ww, r)
	})
}

// jsonFallback replaces the mux's plain-text 404 and 405 replies with the
// standard JSON error body.
func jsonFallback(mux *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, pattern := mux.Handler(r); pattern != "" {
			mux.ServeHTTP(w, r)
			return
		}

		probe := &statusProbe{header: http.Header{}}
		mux.ServeHTTP(probe, r)
		if probe.status == http.StatusMethodNotAllowed {
			if allow := probe.header.Get("Allow"); allow != "" {
				w.Header().Set("Allow", allow)
			}
			httperrors.RespondMethodNotAllowed(w)
			return
		}
		httperrors.RespondNotFound(w, "no route for "+r.URL.Path)
	})
}

// statusProbe captures the status and headers of the mux's built-in
// fallback reply and discards the body.
type statusProbe struct {
	header http.Header
	status int
}

func (p *statusProbe) Header() http.Header         { return p.header }
func (p *statusProbe) Write(b []byte) (int, error) { return len(b), nil }
func (p *statusProbe) WriteHeader(status int)      { p.status = status }

func pinger(pool *pgxpool.Pool, redis *redis.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		if pool != nil {
			if err := pool.Ping(ctx); err != nil {
				return err
			}
		}
		if redis != nil {
			if err := redis.Ping(ctx).Err(); err != nil {
				return err
			}
		}
		return nil
	}
}
