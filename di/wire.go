//go:build wireinject
// +build wireinject

package di

import (
	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/infras/redis"
	"hotel/infras/s3"
	"hotel/permissions"
	"hotel/shared/cache"
	"hotel/shared/repository"
	"hotel/transport/http"
	"hotel/transport/http/middleware"
	"hotel/transport/http/router"

	"github.com/google/wire"

	archiveService "hotel/internal/domains/archive/service"
	authService "hotel/internal/domains/auth/service"
	bookingRepository "hotel/internal/domains/booking/repository"
	bookingService "hotel/internal/domains/booking/service"
	expenseRepository "hotel/internal/domains/expense/repository"
	expenseService "hotel/internal/domains/expense/service"
	guestRepository "hotel/internal/domains/guest/repository"
	guestService "hotel/internal/domains/guest/service"
	reportService "hotel/internal/domains/report/service"
	roomRepository "hotel/internal/domains/room/repository"
	roomService "hotel/internal/domains/room/service"
	userRepository "hotel/internal/domains/user/repository"
	userService "hotel/internal/domains/user/service"
	bookingHandler "hotel/internal/handlers/booking"
	expenseHandler "hotel/internal/handlers/expense"
	guestHandler "hotel/internal/handlers/guest"
	reportHandler "hotel/internal/handlers/report"
	roomHandler "hotel/internal/handlers/room"
	userHandler "hotel/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
	wire.Struct(new(router.Middlewares), "*"),
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	repository.NewTransactor,
)

var repositories = wire.NewSet(
	userRepository.New,
	roomRepository.New,
	guestRepository.New,
	bookingRepository.New,
	expenseRepository.New,
)

var domains = wire.NewSet(
	authService.New,
	userService.New,
	roomService.New,
	guestService.New,
	bookingService.New,
	archiveService.New,
	reportService.New,
	expenseService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	provideHealthHandler,
	provideAuthHandler,
	userHandler.New,
	roomHandler.New,
	guestHandler.New,
	bookingHandler.New,
	reportHandler.New,
	expenseHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		repositories,
		domains,
		routing,
		provideHTTP,
	)

	return &http.HTTP{}
}
