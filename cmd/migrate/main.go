package main

import (
	"context"
	"os"

	"hotel/config"
	"hotel/helper"
	"hotel/shared/logger"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

func main() {
	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration action (up/down/drop/step-up/seed) is required")
	}

	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	var err error

	switch action := os.Args[1]; action {
	case helper.ActionSeed:
		err = helper.Seed(context.Background(), cfg)
	default:
		err = helper.Runner(cfg, action)
	}

	if err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}
