package main

import (
	"hotel/config"
	"hotel/di"
	_ "hotel/docs"
	"hotel/helper"
	"hotel/infras/metrics"
	"hotel/shared/logger"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// @title Hotel Front Desk API
// @version 1.0
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	decimal.MarshalJSONWithoutQuotes = true

	metrics.Register()

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Runner(cfg, helper.ActionUp); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
