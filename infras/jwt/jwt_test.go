package jwt_test

import (
	"hotel/config"
	"hotel/infras/jwt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() jwt.JWT {
	cfg := &config.Config{}
	cfg.App.Name = "hotel"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	return jwt.New(cfg)
}

func TestService_GenerateAndValidate(t *testing.T) {
	svc := newService()

	pair, err := svc.GenerateTokenPair("user-1", "reception", "receptionist")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(15*60), pair.ExpiresIn)

	claims, err := svc.ValidateToken(pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "reception", claims.Username)
	assert.Equal(t, "receptionist", claims.Role)

	_, err = svc.ValidateToken(pair.AccessToken, jwt.RefreshToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken, "access token is signed with a different secret")

	_, err = svc.ValidateToken("not-a-token", jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestService_ValidateTokenErrors(t *testing.T) {
	t.Run("expired token", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.App.Name = "hotel"
		cfg.JWT.AccessSecret = "access-secret"
		cfg.JWT.RefreshSecret = "refresh-secret"
		cfg.JWT.AccessExpireMin = -1
		cfg.JWT.RefreshExpireMin = 60

		svc := jwt.New(cfg)

		pair, err := svc.GenerateTokenPair("user-1", "admin", "admin")
		require.NoError(t, err)

		_, err = svc.ValidateToken(pair.AccessToken, jwt.AccessToken)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("token type mismatch with shared secret", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.App.Name = "hotel"
		cfg.JWT.AccessSecret = "same"
		cfg.JWT.RefreshSecret = "same"
		cfg.JWT.AccessExpireMin = 15
		cfg.JWT.RefreshExpireMin = 60

		svc := jwt.New(cfg)

		pair, err := svc.GenerateTokenPair("user-1", "admin", "admin")
		require.NoError(t, err)

		_, err = svc.ValidateToken(pair.RefreshToken, jwt.AccessToken)
		assert.ErrorIs(t, err, jwt.ErrInvalidClaim)
	})

	t.Run("foreign issuer", func(t *testing.T) {
		other := &config.Config{}
		other.App.Name = "elsewhere"
		other.JWT.AccessSecret = "access-secret"
		other.JWT.RefreshSecret = "refresh-secret"
		other.JWT.AccessExpireMin = 15
		other.JWT.RefreshExpireMin = 60

		pair, err := jwt.New(other).GenerateTokenPair("user-1", "admin", "admin")
		require.NoError(t, err)

		_, err = newService().ValidateToken(pair.AccessToken, jwt.AccessToken)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("unknown token type", func(t *testing.T) {
		_, err := newService().ValidateToken("x", jwt.TokenType("session"))
		assert.Error(t, err)
	})
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "bearer token", header: "Bearer abc.def", want: "abc.def"},
		{name: "empty header", header: "", wantErr: true},
		{name: "wrong scheme", header: "Basic abc", wantErr: true},
		{name: "prefix only", header: "Bearer ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := jwt.ExtractTokenFromHeader(tt.header)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
