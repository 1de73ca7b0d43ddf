package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hotel/infras/jwt"
	"hotel/internal/domains/auth/model/dto"
	userModel "hotel/internal/domains/user/model"
	"hotel/shared/constant"
)

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresIn:    3600,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair, userModel.User{ID: "u-1", Username: "reception", Password: "hash", Role: constant.RoleReceptionist})

	assert.Equal(t, "access", response.Token)
	assert.Equal(t, "refresh", response.RefreshToken)
	assert.Equal(t, int64(3600), response.ExpiresIn)
	assert.Equal(t, "reception", response.User.Username)
	assert.Contains(t, response.User.Permissions, userModel.PageBookings)
}
