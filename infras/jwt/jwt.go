package jwt

//go:generate go run go.uber.org/mock/mockgen -source=./jwt.go -destination=./mocks/jwt_mock.go -package=mocks

import (
	"errors"
	"fmt"
	"hotel/config"
	"hotel/shared/constant"
	"hotel/shared/timezone"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidClaim = errors.New("invalid token claim")

	errMissingHeader = errors.New("authorization header is required")
	errBearerFormat  = errors.New("authorization header must start with 'Bearer '")
)

const bearerScheme = "Bearer"

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// Claims identifies the staff account a token was issued to. The token id lives in RegisteredClaims.ID.
type Claims struct {
	UserID   string    `json:"user_id"`
	Username string    `json:"username"`
	Role     string    `json:"role,omitempty"`
	Type     TokenType `json:"type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type JWT interface {
	GenerateTokenPair(userID, username, role string) (*TokenPair, error)
	ValidateToken(tokenString string, tokenType TokenType) (*Claims, error)
}

// key is the signing secret and lifetime of one token type.
type key struct {
	secret []byte
	ttl    time.Duration
}

type Service struct {
	issuer string
	keys   map[TokenType]key
}

func New(cfg *config.Config) JWT {
	return &Service{
		issuer: cfg.App.Name,
		keys: map[TokenType]key{
			AccessToken:  {secret: []byte(cfg.JWT.AccessSecret), ttl: time.Duration(cfg.JWT.AccessExpireMin) * time.Minute},
			RefreshToken: {secret: []byte(cfg.JWT.RefreshSecret), ttl: time.Duration(cfg.JWT.RefreshExpireMin) * time.Minute},
		},
	}
}

// GenerateTokenPair signs an access and a refresh token sharing the same issue instant.
func (s *Service) GenerateTokenPair(userID, username, role string) (*TokenPair, error) {
	now := timezone.Now()

	access, err := s.sign(AccessToken, userID, username, role, now)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refresh, err := s.sign(RefreshToken, userID, username, role, now)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    bearerScheme,
		ExpiresIn:    int64(s.keys[AccessToken].ttl / time.Second),
	}, nil
}

func (s *Service) sign(tokenType TokenType, userID, username, role string, now time.Time) (string, error) {
	k, ok := s.keys[tokenType]
	if !ok {
		return constant.Empty, fmt.Errorf("unknown token type: %s", tokenType)
	}

	claims := Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		Type:     tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(k.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(k.secret)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// ValidateToken checks the signature with the secret of tokenType and rejects tokens of any other type.
func (s *Service) ValidateToken(tokenString string, tokenType TokenType) (*Claims, error) {
	k, ok := s.keys[tokenType]
	if !ok {
		return nil, fmt.Errorf("unknown token type: %s", tokenType)
	}

	claims := &Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return k.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(s.issuer))

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case err != nil:
		return nil, ErrInvalidToken
	case claims.Type != tokenType:
		return nil, ErrInvalidClaim
	}

	return claims, nil
}

// ExtractTokenFromHeader returns the credentials of a "Bearer <token>" Authorization header.
func ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == constant.Empty {
		return constant.Empty, errMissingHeader
	}

	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || scheme != bearerScheme || token == constant.Empty {
		return constant.Empty, errBearerFormat
	}

	return token, nil
}
