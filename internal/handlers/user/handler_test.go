package user_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hotel/infras/otel/mocks"
	"hotel/internal/domains/user/model/dto"
	"hotel/internal/handlers/user"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	created    dto.CreateUserRequest
	lastFilter gDto.FilterGroup
	deleteErr  error
	getErr     error
}

func (f *fakeUsers) Create(_ context.Context, req dto.CreateUserRequest) (dto.UserResponse, error) {
	f.created = req

	return dto.UserResponse{ID: "u-9", Username: req.Username, Role: req.Role}, nil
}

func (f *fakeUsers) GetAll(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetUsersResponse, error) {
	f.lastFilter = filter

	return dto.GetUsersResponse{Users: []dto.UserResponse{{ID: "u-2", Role: constant.RoleReceptionist}}, TotalPage: 1, TotalData: 1}, nil
}

func (f *fakeUsers) Get(_ context.Context, id string) (dto.UserResponse, error) {
	if f.getErr != nil {
		return dto.UserResponse{}, f.getErr
	}

	return dto.UserResponse{ID: id}, nil
}

func (f *fakeUsers) Update(_ context.Context, _ dto.UpdateUserRequest, id string) (dto.UserResponse, error) {
	return dto.UserResponse{ID: id, Role: constant.RoleAccountant}, nil
}

func (f *fakeUsers) Delete(_ context.Context, _ string) error {
	return f.deleteErr
}

func serve(t *testing.T, svc *fakeUsers, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	handler := user.New(svc, mocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	request := httptest.NewRequest(method, target, strings.NewReader(body))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	return recorder
}

func decode(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var payload map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))

	return payload
}

func TestHandler_CreateUser(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &fakeUsers{}

		recorder := serve(t, svc, http.MethodPost, "/users", `{"username":"night","password":"secret1","role":"receptionist"}`)

		assert.Equal(t, http.StatusCreated, recorder.Code)
		assert.Equal(t, "night", svc.created.Username)

		data := decode(t, recorder)["data"].(map[string]any)
		assert.Equal(t, "u-9", data["id"])
	})

	t.Run("validation error", func(t *testing.T) {
		recorder := serve(t, &fakeUsers{}, http.MethodPost, "/users", `{"username":"night","role":"receptionist"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, "password is required", decode(t, recorder)["error"])
	})

	t.Run("unknown role", func(t *testing.T) {
		recorder := serve(t, &fakeUsers{}, http.MethodPost, "/users", `{"username":"night","password":"secret1","role":"owner"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestHandler_GetUsers(t *testing.T) {
	svc := &fakeUsers{}

	recorder := serve(t, svc, http.MethodGet, "/users?role=receptionist&page=1&limit=5", "")

	require.Equal(t, http.StatusOK, recorder.Code)

	where, args := svc.lastFilter.GetWhereClause()
	assert.Equal(t, "(users.role = :role)", where)
	assert.Equal(t, constant.RoleReceptionist, args["role"])
}

func TestHandler_GetUserByID(t *testing.T) {
	recorder := serve(t, &fakeUsers{getErr: failure.NotFound("User not found")}, http.MethodGet, "/users/u-404", "")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "User not found", decode(t, recorder)["error"])
}

func TestHandler_UpdateUser(t *testing.T) {
	recorder := serve(t, &fakeUsers{}, http.MethodPut, "/users/u-2", `{"role":"accountant"}`)

	require.Equal(t, http.StatusOK, recorder.Code)

	data := decode(t, recorder)["data"].(map[string]any)
	assert.Equal(t, "u-2", data["id"])
	assert.Equal(t, constant.RoleAccountant, data["role"])
}

func TestHandler_DeleteUser(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		recorder := serve(t, &fakeUsers{}, http.MethodDelete, "/users/u-2", "")

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "User deleted successfully", decode(t, recorder)["message"])
	})

	t.Run("self delete refused", func(t *testing.T) {
		svc := &fakeUsers{deleteErr: failure.BadRequestFromString("You cannot delete your own account")}

		recorder := serve(t, svc, http.MethodDelete, "/users/u-1", "")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, "You cannot delete your own account", decode(t, recorder)["error"])
	})
}
