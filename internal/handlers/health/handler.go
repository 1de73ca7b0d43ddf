package health

import (
	"context"
	"net/http"
	"time"

	"hotel/infras/otel"
	"hotel/shared/constant"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const checkTimeout = 2 * time.Second

// Check names a dependency and how to reach it.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

type Status struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type Handler struct {
	checks []Check
	otel   otel.Otel
}

func New(otel otel.Otel, checks ...Check) Handler {
	return Handler{
		checks: checks,
		otel:   otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/health", handler.Health)
}

// Health pings every dependency.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Data[Status]
// @Failure 503 {object} response.Data[Status]
// @Router /health [get]
func (handler *Handler) Health(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Health")
	defer scope.End()

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	res := Status{Status: "ok", Checks: make(map[string]string, len(handler.checks))}
	code := http.StatusOK

	for _, check := range handler.checks {
		if err := check.Ping(ctx); err != nil {
			log.Error().Err(err).Str("dependency", check.Name).Msg("health check failed")
			scope.TraceError(err)

			res.Checks[check.Name] = "down"
			res.Status = "degraded"
			code = http.StatusServiceUnavailable

			continue
		}

		res.Checks[check.Name] = "up"
	}

	response.WithJSON(writer, code, res)
}
