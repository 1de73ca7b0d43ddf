package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"hotel/shared/failure"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("check_in_date is required")), wantCode: http.StatusBadRequest, wantMsg: "check_in_date is required"},
		{name: "bad request from string", err: failure.BadRequestFromString("Invalid date range"), wantCode: http.StatusBadRequest, wantMsg: "Invalid date range"},
		{name: "unauthorized", err: failure.Unauthorized("Token expired"), wantCode: http.StatusUnauthorized, wantMsg: "Token expired"},
		{name: "forbidden", err: failure.Forbidden("Admins only"), wantCode: http.StatusForbidden, wantMsg: "Admins only"},
		{name: "forbidden default", err: failure.ForbiddenError, wantCode: http.StatusForbidden, wantMsg: "You don't have the required permissions"},
		{name: "not found", err: failure.NotFound("Room not found"), wantCode: http.StatusNotFound, wantMsg: "Room not found"},
		{name: "conflict", err: failure.Conflict("Room is no longer available"), wantCode: http.StatusConflict, wantMsg: "Room is no longer available"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, failure.GetCode(tt.err))
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestBadRequest_Nil(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
}

func TestGetCode(t *testing.T) {
	wrapped := fmt.Errorf("failed to check in: %w", failure.BadRequestFromString("Only confirmed bookings can be checked in"))

	assert.Equal(t, http.StatusBadRequest, failure.GetCode(wrapped))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("pq: connection refused")))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(nil))
}

func TestGetMessage(t *testing.T) {
	wrapped := fmt.Errorf("failed to create booking: %w", failure.NotFound("Guest not found"))

	assert.Equal(t, "Guest not found", failure.GetMessage(wrapped))
	assert.Equal(t, "pq: connection refused", failure.GetMessage(errors.New("pq: connection refused")))
}
