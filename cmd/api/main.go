package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gokatarajesh/trivia-api/internal/app"
	"github.com/gokatarajesh/trivia-api/internal/config"
)

func main() {
	envFile := flag.String("env-file", "configs/.env", "Optional dotenv file read outside production")
	flag.Parse()

	// bootstrap logger until the configured one exists
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(*envFile); err != nil {
			log.Warn().Err(err).Str("file", *envFile).Msg("could not load env file")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	appCtx := context.Background()
	instance, err := app.New(appCtx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build app")
	}

	if err := instance.Run(appCtx); err != nil {
		log.Fatal().Err(err).Msg("runtime error")
	}
}
