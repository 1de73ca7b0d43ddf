package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel/config"
	"hotel/infras/jwt"
	jwtMocks "hotel/infras/jwt/mocks"
	"hotel/infras/otel/mocks"
	"hotel/permissions"
	"hotel/shared/constant"
	"hotel/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const apiKey = "internal-key"

func newAuthRouter(t *testing.T) (http.Handler, *jwtMocks.MockJWT) {
	t.Helper()

	ctrl := gomock.NewController(t)
	jwtService := jwtMocks.NewMockJWT(ctrl)

	cfg := &config.Config{}
	cfg.App.APIKey = apiKey

	authRole := middleware.NewAuthRoleMiddleware(jwtService, mocks.NewOtel(), permissions.Get(), cfg)

	whoami := func(w http.ResponseWriter, r *http.Request) {
		username, _ := r.Context().Value(constant.ContextKeyUsername).(string)
		_, _ = w.Write([]byte(username))
	}

	router := chi.NewRouter()
	router.Route("/api", func(r chi.Router) {
		r.Use(authRole.APIKey, authRole.Auth, authRole.RBAC)

		r.Post("/auth/login", whoami)
		r.Route("/rooms", func(r chi.Router) {
			r.Get("/", whoami)
			r.Delete("/{id}", whoami)
		})
		r.Get("/users", whoami)
		r.Get("/reports/daily", whoami)
		r.Get("/unlisted", whoami)
	})

	return router, jwtService
}

func errorMessage(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Error string `json:"error"`
	}

	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	return body.Error
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		path     string
		header   string
		mock     func(m *jwtMocks.MockJWT)
		wantCode int
		wantBody string
		wantErr  string
	}{
		{
			name:     "login is public",
			method:   http.MethodPost,
			path:     "/api/auth/login",
			wantCode: http.StatusOK,
		},
		{
			name:     "missing header",
			method:   http.MethodGet,
			path:     "/api/rooms",
			wantCode: http.StatusUnauthorized,
			wantErr:  "Missing authorization header",
		},
		{
			name:     "not a bearer token",
			method:   http.MethodGet,
			path:     "/api/rooms",
			header:   "Token abc",
			wantCode: http.StatusUnauthorized,
			wantErr:  "Invalid authorization header format",
		},
		{
			name:   "expired token",
			method: http.MethodGet,
			path:   "/api/rooms",
			header: "Bearer expired",
			mock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken("expired", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)
			},
			wantCode: http.StatusUnauthorized,
			wantErr:  "Token expired",
		},
		{
			name:   "claims without a user",
			method: http.MethodGet,
			path:   "/api/rooms",
			header: "Bearer anonymous",
			mock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken("anonymous", jwt.AccessToken).Return(&jwt.Claims{Role: constant.RoleAdmin}, nil)
			},
			wantCode: http.StatusUnauthorized,
			wantErr:  "Invalid token claims",
		},
		{
			name:   "receptionist lists rooms",
			method: http.MethodGet,
			path:   "/api/rooms",
			header: "Bearer reception",
			mock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken("reception", jwt.AccessToken).
					Return(&jwt.Claims{UserID: "u-2", Username: "reception", Role: constant.RoleReceptionist}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: "reception",
		},
		{
			name:   "receptionist cannot delete rooms",
			method: http.MethodDelete,
			path:   "/api/rooms/r-1",
			header: "Bearer reception",
			mock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken("reception", jwt.AccessToken).
					Return(&jwt.Claims{UserID: "u-2", Username: "reception", Role: constant.RoleReceptionist}, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:   "receptionist cannot manage users",
			method: http.MethodGet,
			path:   "/api/users",
			header: "Bearer reception",
			mock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken("reception", jwt.AccessToken).
					Return(&jwt.Claims{UserID: "u-2", Username: "reception", Role: constant.RoleReceptionist}, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:   "accountant reads reports",
			method: http.MethodGet,
			path:   "/api/reports/daily",
			header: "Bearer accountant",
			mock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken("accountant", jwt.AccessToken).
					Return(&jwt.Claims{UserID: "u-3", Username: "accountant", Role: constant.RoleAccountant}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: "accountant",
		},
		{
			name:   "route without permission entry admits any signed in role",
			method: http.MethodGet,
			path:   "/api/unlisted",
			header: "Bearer reception",
			mock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken("reception", jwt.AccessToken).
					Return(&jwt.Claims{UserID: "u-2", Username: "reception", Role: constant.RoleReceptionist}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: "reception",
		},
		{
			name:     "route without permission entry still needs a token",
			method:   http.MethodGet,
			path:     "/api/unlisted",
			wantCode: http.StatusUnauthorized,
			wantErr:  "Missing authorization header",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, jwtService := newAuthRouter(t)
			if tt.mock != nil {
				tt.mock(jwtService)
			}

			request := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				request.Header.Set(constant.RequestHeaderAuthorization, tt.header)
			}

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantCode, recorder.Code)

			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, recorder.Body.String())
			}

			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, errorMessage(t, recorder))
			}
		})
	}
}

func TestAPIKey(t *testing.T) {
	t.Run("valid key skips token checks", func(t *testing.T) {
		router, _ := newAuthRouter(t)

		request := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		request.Header.Set(constant.RequestHeaderAPIKey, apiKey)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, constant.ContextSystem, recorder.Body.String())
	})

	t.Run("wrong key is rejected", func(t *testing.T) {
		router, _ := newAuthRouter(t)

		request := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		request.Header.Set(constant.RequestHeaderAPIKey, "guess")

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})
}
