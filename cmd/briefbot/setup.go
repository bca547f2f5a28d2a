package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sandevgo/briefbot/internal/config"
	"github.com/sandevgo/briefbot/internal/core"
	"github.com/sandevgo/briefbot/internal/transport/telegram"
	"github.com/sandevgo/briefbot/pkg/log"
	"golang.org/x/time/rate"
)

// initEnv loads an optional .env from the working directory before env
// parsing, so cron entries can keep settings next to the binary.
func initEnv(ctx context.Context) {
	logger := log.FromCtx(ctx)

	if _, err := os.Stat(".env"); err != nil {
		return
	}
	if err := godotenv.Load(".env"); err != nil {
		logger.Warn().Err(err).Msg("failed to load .env file")
		return
	}
	logger.Debug().Msg("loaded .env file")
}

func newPacer(interval time.Duration) core.Pacer {
	return rate.NewLimiter(rate.Every(interval), 1)
}

func newMessenger(appCfg *config.AppConfig) (*telegram.Messenger, error) {
	token, err := config.NewCredentialProvider().TelegramToken()
	if err != nil {
		return nil, err
	}
	return telegram.NewMessenger(token, newPacer(appCfg.ChunkPacing))
}
