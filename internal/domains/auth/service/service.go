package service

import (
	"context"
	"fmt"

	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/otel"
	"hotel/internal/domains/auth/model/dto"
	userModel "hotel/internal/domains/user/model"
	userDto "hotel/internal/domains/user/model/dto"
	userRepo "hotel/internal/domains/user/repository"
	"hotel/shared"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/password"

	"github.com/rs/zerolog/log"
)

var (
	errInvalidCredentials = failure.Unauthorized("Invalid credentials")
	errInvalidRefresh     = failure.Unauthorized("Invalid refresh token")
	errUserNotFound       = failure.Unauthorized("User not found")
	errWrongPassword      = failure.BadRequestFromString("current password is incorrect")
)

type Auth interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	Me(ctx context.Context) (userDto.UserResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.LoginResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error
}

type serviceImpl struct {
	userRepo   userRepo.User
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(userRepo userRepo.User, cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
	}
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.userRepo.Get(ctx, shared.FilterByID(req.Username, userModel.FieldUsername, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		log.Warn().Str("username", req.Username).Msg("login attempt with unknown username")

		return res, errInvalidCredentials
	}

	if err = password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("username", req.Username).Msg("login attempt with wrong password")

		return res, errInvalidCredentials
	}

	return s.issue(user)
}

func (s *serviceImpl) Me(ctx context.Context) (res userDto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Me")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.current(ctx)
	if err != nil {
		return res, err
	}

	res.FromModel(user)

	return res, nil
}

// RefreshToken reloads the user so role and permission changes reach the new tokens.
func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	claims, err := s.jwtService.ValidateToken(req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to validate refresh token")

		return res, errInvalidRefresh
	}

	user, err := s.find(ctx, claims.UserID)
	if err != nil {
		return res, err
	}

	return s.issue(user)
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.current(ctx)
	if err != nil {
		return err
	}

	if err = password.Verify(req.CurrentPassword, user.Password); err != nil {
		return errWrongPassword
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updatedFields := shared.TransformFields(dto.UpdatePasswordRequest{Password: hashedPassword}, user.Username)

	if err = s.userRepo.Update(ctx, updatedFields, shared.FilterByID(user.ID, userModel.FieldID, userModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

func (s *serviceImpl) issue(user userModel.User) (res dto.LoginResponse, err error) {
	tokenPair, err := s.jwtService.GenerateTokenPair(user.ID, user.Username, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(tokenPair, user)

	return res, nil
}

func (s *serviceImpl) current(ctx context.Context) (userModel.User, error) {
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if userID == constant.Empty {
		return userModel.User{}, errUserNotFound
	}

	return s.find(ctx, userID)
}

func (s *serviceImpl) find(ctx context.Context, id string) (userModel.User, error) {
	user, err := s.userRepo.Get(ctx, shared.FilterByID(id, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return user, errUserNotFound
	}

	return user, nil
}
