package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"

	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/otel"
	"hotel/permissions"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// trustedCaller marks requests authenticated by API key; Auth and RBAC let them through.
type trustedCaller struct{}

func isTrusted(ctx context.Context) bool {
	trusted, _ := ctx.Value(trustedCaller{}).(bool)

	return trusted
}

// Auth defines the interface for authentication middleware
type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

// Role defines the interface for role-based access control middleware
type Role interface {
	RBAC(http.Handler) http.Handler
}

type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

func (m *authRoleImpl) endpoint(request *http.Request) (string, permissions.Permission) {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil || rctx.Routes == nil {
		return request.URL.Path, permissions.Permission{}
	}

	path := rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)
	if m.permission == nil {
		return path, permissions.Permission{}
	}

	return path, m.permission.FindPermissions(path, request.Method)
}

// authenticate resolves the bearer access token of request into claims, or an Unauthorized failure.
func (m *authRoleImpl) authenticate(request *http.Request) (*jwt.Claims, error) {
	header := request.Header.Get(constant.RequestHeaderAuthorization)
	if header == constant.Empty {
		return nil, failure.Unauthorized("Missing authorization header")
	}

	token, err := jwt.ExtractTokenFromHeader(header)
	if err != nil {
		return nil, failure.Unauthorized("Invalid authorization header format")
	}

	claims, err := m.jwtService.ValidateToken(token, jwt.AccessToken)

	switch {
	case errors.Is(err, jwt.ErrExpiredToken):
		return nil, failure.Unauthorized("Token expired")
	case errors.Is(err, jwt.ErrInvalidClaim):
		return nil, failure.Unauthorized("Invalid token claims")
	case err != nil:
		return nil, failure.Unauthorized("Invalid token")
	}

	if claims.UserID == constant.Empty || claims.Username == constant.Empty {
		log.Error().Str("token_id", claims.ID).Msg("JWT claims missing user")

		return nil, failure.Unauthorized("Invalid token claims")
	}

	return claims, nil
}

// Auth validates the bearer access token and stores its claims in the request context.
// Routes marked skip in the permission table are public.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if isTrusted(request.Context()) {
			next.ServeHTTP(writer, request)

			return
		}

		path, permission := m.endpoint(request)
		if permission.Skip {
			next.ServeHTTP(writer, request)

			return
		}

		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "auth.middleware")
		scope.SetAttributes(map[string]any{
			"http.route":  path,
			"http.method": request.Method,
		})

		claims, err := m.authenticate(request)
		if err != nil {
			scope.TraceError(err)
			scope.End()
			response.WithError(writer, err)

			return
		}

		scope.SetAttribute("user_role", claims.Role)
		scope.End()

		ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, constant.ContextKeyUsername, claims.Username)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, claims.Role)
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.ID)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// RBAC checks the authenticated role against the roles listed for the route. It must run after Auth.
// A route missing from the permission table, or listed without roles, is open to any authenticated user.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if isTrusted(request.Context()) {
			next.ServeHTTP(writer, request)

			return
		}

		if m.permission == nil {
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		path, permission := m.endpoint(request)
		if m.permission.Skip || permission.Skip {
			next.ServeHTTP(writer, request)

			return
		}

		role, _ := request.Context().Value(constant.ContextKeyUserRole).(string)
		if permission.Allows(role) {
			next.ServeHTTP(writer, request)

			return
		}

		_, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "rbac.middleware")
		scope.TraceError(failure.ForbiddenError)
		scope.SetAttributes(map[string]any{
			"http.route":    path,
			"user_role":     role,
			"allowed_roles": permission.Roles,
		})
		scope.End()

		log.Warn().Str("route", path).Str("method", request.Method).Str("role", role).Msg("role not allowed")

		response.WithError(writer, failure.ForbiddenError)
	})
}

// APIKey lets internal callers holding the configured key bypass Auth and RBAC.
// Requests without the header continue to Auth unchanged.
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		presented := request.Header.Get(constant.RequestHeaderAPIKey)
		if presented == constant.Empty || m.cfg.App.APIKey == constant.Empty {
			next.ServeHTTP(writer, request)

			return
		}

		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "api_key.middleware")
		defer scope.End()

		if subtle.ConstantTimeCompare([]byte(presented), []byte(m.cfg.App.APIKey)) != 1 {
			scope.TraceError(failure.ForbiddenError)
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		ctx = context.WithValue(ctx, trustedCaller{}, true)
		ctx = context.WithValue(ctx, constant.ContextKeyUsername, constant.ContextSystem)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}
