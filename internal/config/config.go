package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"trivia-api"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	LogLevel                string        `env:"LOG_LEVEL" envDefault:"info"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`
	MigrateOnStart          bool          `env:"MIGRATE_ON_START" envDefault:"false"`

	Postgres Postgres
	Redis    Redis
	Trivia   Trivia
	CORS     CORS
}

// Postgres captures connection info for the SQL database.
type Postgres struct {
	Host     string `env:"PG_HOST,notEmpty"`
	Port     int    `env:"PG_PORT" envDefault:"5432"`
	User     string `env:"PG_USER,notEmpty"`
	Password string `env:"PG_PASSWORD,notEmpty"`
	Database string `env:"PG_DATABASE,notEmpty"`
	SSLMode  string `env:"PG_SSL_MODE" envDefault:"disable"`
	MaxConns int32  `env:"PG_MAX_CONNS" envDefault:"10"`
}

// ConnString renders the key/value DSN understood by pgx and goose.
func (p Postgres) ConnString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}

// Redis holds category cache configuration.
type Redis struct {
	Enabled  bool   `env:"REDIS_ENABLED" envDefault:"true"`
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"20"`
}

// Trivia groups API behavior defaults.
type Trivia struct {
	QuestionsPerPage        int           `env:"QUESTIONS_PER_PAGE" envDefault:"10"`
	CategoryCacheTTL        time.Duration `env:"CATEGORY_CACHE_TTL" envDefault:"10m"`
	CategoryRefreshInterval time.Duration `env:"CATEGORY_REFRESH_INTERVAL" envDefault:"5m"`
}

// CORS holds Cross-Origin Resource Sharing configuration.
type CORS struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"Content-Type,Authorization"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS" envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE" envDefault:"3600"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := ParseInto(cfg); err != nil {
		return nil, err
	}
	if cfg.Trivia.QuestionsPerPage <= 0 {
		return nil, fmt.Errorf("QUESTIONS_PER_PAGE must be positive, got %d", cfg.Trivia.QuestionsPerPage)
	}
	return cfg, nil
}

// ParseInto fills any config section from the environment. Fields without a
// default are required.
func ParseInto(section any) error {
	if err := env.ParseWithOptions(section, env.Options{RequiredIfNoDef: true}); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
