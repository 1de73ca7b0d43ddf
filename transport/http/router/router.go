package router

import (
	"hotel/config"
	"hotel/infras/metrics"
	"hotel/internal/handlers/auth"
	"hotel/internal/handlers/booking"
	"hotel/internal/handlers/expense"
	"hotel/internal/handlers/guest"
	"hotel/internal/handlers/health"
	"hotel/internal/handlers/report"
	"hotel/internal/handlers/room"
	"hotel/internal/handlers/user"
	"hotel/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type DomainHandlers struct {
	Health  health.Handler
	Auth    auth.Handler
	User    user.Handler
	Room    room.Handler
	Guest   guest.Handler
	Booking booking.Handler
	Report  report.Handler
	Expense expense.Handler
}

type Middlewares struct {
	App      middleware.AppMiddleware
	AuthRole middleware.AuthRole
}

type Router struct {
	Config         *config.Config
	DomainHandlers DomainHandlers
	Middlewares    Middlewares
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(chiMiddleware.RequestID, chiMiddleware.Recoverer)

	if corsConfig := r.Config.App.CORS; corsConfig.Enable {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   corsConfig.AllowedOrigins,
			AllowedMethods:   corsConfig.AllowedMethods,
			AllowedHeaders:   corsConfig.AllowedHeaders,
			AllowCredentials: corsConfig.AllowCredentials,
			MaxAge:           corsConfig.MaxAgeSeconds,
		}))
	}

	router.Use(r.Middlewares.App.Tracing, r.Middlewares.App.Metrics)

	r.DomainHandlers.Health.Router(router)

	if r.Config.Metrics.Enable {
		router.Handle("/metrics", metrics.Handler())
	}

	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Route("/api", func(routerGroup chi.Router) {
		routerGroup.Use(
			r.Middlewares.App.RateLimit(),
			r.Middlewares.AuthRole.APIKey,
			r.Middlewares.AuthRole.Auth,
			r.Middlewares.AuthRole.RBAC,
		)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Guest.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Report.Router(routerGroup)
		r.DomainHandlers.Expense.Router(routerGroup)
	})
}

func New(cfg *config.Config, domainHandlers DomainHandlers, middlewares Middlewares) Router {
	return Router{
		Config:         cfg,
		DomainHandlers: domainHandlers,
		Middlewares:    middlewares,
	}
}
