package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"hotel/config"
	"hotel/infras/metrics"
	"hotel/infras/otel"
	"hotel/shared/cache"
	"hotel/shared/constant"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	otelGlobal "go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

const (
	otelHTTPScopeName = "http"
	unmatchedRoute    = "unmatched"
)

type AppMiddleware interface {
	Tracing(next http.Handler) http.Handler
	Metrics(next http.Handler) http.Handler
	RateLimit() func(http.Handler) http.Handler
	LoginThrottle() func(http.Handler) http.Handler
}

type appMiddleware struct {
	otel     otel.Otel
	config   *config.Config
	cache    cache.RedisCache
	limiters sync.Map
}

func NewAppMiddleware(otel otel.Otel, config *config.Config, cache cache.RedisCache) AppMiddleware {
	return &appMiddleware{
		otel:   otel,
		config: config,
		cache:  cache,
	}
}

func (a *appMiddleware) Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		parent := otelGlobal.GetTextMapPropagator().Extract(request.Context(), propagation.HeaderCarrier(request.Header))

		ctx, scope := a.otel.NewScope(parent, otelHTTPScopeName, fmt.Sprintf("%s %s", request.Method, request.URL.Path))
		defer scope.End()

		scope.SetAttributes(map[string]any{
			"app.name":        a.config.App.Name,
			"http.path":       request.URL.Path,
			"http.method":     request.Method,
			"http.user_agent": request.Header.Get(constant.RequestHeaderUserAgent),
			"http.host":       request.Host,
			"http.source":     a.getClientIP(request),
		})

		ww := chiMiddleware.NewWrapResponseWriter(writer, request.ProtoMajor)

		next.ServeHTTP(ww, request.WithContext(ctx))

		scope.SetAttributes(map[string]any{
			"http.route":       routePattern(request),
			"http.status_code": ww.Status(),
		})
	})
}

// Metrics counts requests by route pattern so path ids do not explode the label set.
func (a *appMiddleware) Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if !a.config.Metrics.Enable {
			next.ServeHTTP(writer, request)

			return
		}

		ww := chiMiddleware.NewWrapResponseWriter(writer, request.ProtoMajor)

		next.ServeHTTP(ww, request)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		metrics.IncHTTP(routePattern(request), request.Method, strconv.Itoa(status))
	})
}

func routePattern(request *http.Request) string {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil {
		return unmatchedRoute
	}

	if pattern := rctx.RoutePattern(); pattern != constant.Empty {
		return pattern
	}

	return unmatchedRoute
}
