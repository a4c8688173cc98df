package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status or reset")
		envFile = flag.String("env-file", "configs/.env", "Optional dotenv file read outside production")
		timeout = flag.Duration("timeout", 2*time.Minute, "Upper bound for the whole migration run")
	)
	flag.Parse()

	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Str("component", "migrator").Logger()

	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(*envFile); err != nil {
			log.Warn().Err(err).Str("file", *envFile).Msg("could not load env file")
		}
	}

	var pg config.Postgres
	if err := config.ParseInto(&pg); err != nil {
		log.Fatal().Err(err).Msg("invalid postgres configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	log.Info().
		Str("host", pg.Host).
		Int("port", pg.Port).
		Str("database", pg.Database).
		Str("command", *command).
		Msg("running migrations")

	if err := db.Migrate(ctx, pg.ConnString(), *command); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	log.Info().Str("command", *command).Msg("migrations finished")
}
