package di

import (
	"context"
	"time"

	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/postgres"
	"hotel/infras/otel"
	authService "hotel/internal/domains/auth/service"
	authHandler "hotel/internal/handlers/auth"
	healthHandler "hotel/internal/handlers/health"
	"hotel/transport/http"
	"hotel/transport/http/middleware"
	"hotel/transport/http/router"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const otelShutdownTimeout = 5 * time.Second

func provideAuthHandler(service authService.Auth, otel otel.Otel, app middleware.AppMiddleware) authHandler.Handler {
	return authHandler.New(service, otel, app.LoginThrottle())
}

func provideHealthHandler(otel otel.Otel, db *postgres.Connection, client *goRedis.Client) healthHandler.Handler {
	return healthHandler.New(otel,
		healthHandler.Check{Name: "postgres", Ping: db.Ping},
		healthHandler.Check{Name: "redis", Ping: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}},
	)
}

func provideHTTP(cfg *config.Config, r router.Router, db *postgres.Connection, client *goRedis.Client, publisher kafka.Client, tracer otel.Otel) *http.HTTP {
	return http.New(cfg, r,
		func() {
			ctx, cancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
			defer cancel()

			if err := tracer.Shutdown(ctx); err != nil {
				log.Error().Err(err).Msg("Failed to flush traces")
			}
		},
		func() {
			if err := publisher.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close kafka writer")
			}
		},
		func() {
			if err := client.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close redis client")
			}
		},
		db.Close,
	)
}
