package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/gokatarajesh/wikiquiz/internal/app"
	"github.com/gokatarajesh/wikiquiz/internal/config"
)

const envFile = "configs/.env"

func main() {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(envFile); err != nil {
			log.Warn().Err(err).Str("file", envFile).Msg("dotenv not loaded")
		}
	}

	loadCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	cfg, err := config.Load(loadCtx)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	instance, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("build app")
	}

	if err := instance.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("api stopped")
	}
}
