package service

import (
	"context"
	"fmt"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/internal/domains/user/model"
	"hotel/internal/domains/user/model/dto"
	"hotel/internal/domains/user/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/password"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetUser    = "user:get"
	cacheGetAllUser = "user:gets"
)

var (
	errUserNotFound   = failure.NotFound("User not found")
	errUsernameTaken  = failure.BadRequestFromString("Username already exists")
	errNoDataToUpdate = failure.BadRequestFromString("No data to update")
	errDeleteSelf     = failure.BadRequestFromString("You cannot delete your own account")
)

type User interface {
	Create(ctx context.Context, req dto.CreateUserRequest) (dto.UserResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetUsersResponse, error)
	Get(ctx context.Context, id string) (dto.UserResponse, error)
	Update(ctx context.Context, req dto.UpdateUserRequest, id string) (dto.UserResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.User
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) User {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateUserRequest) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)

	exists, err := s.repo.Exist(ctx, shared.FilterByID(req.Username, model.FieldUsername, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if username exists")

		return res, fmt.Errorf("failed to check if username exists: %w", err)
	}

	if exists {
		return res, errUsernameTaken
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	created := req.ToModel(user, hashedPassword)

	if err = s.repo.Insert(ctx, created); err != nil {
		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	go shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheGetAllUser)

	res.FromModel(created)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetUsersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Sanitize(dto.SortableFields, constant.FieldCreatedAt)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllUser, req, filter)

	if s.cache.Get(ctx, cacheKey, &res) == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for users")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count users")

		return res, fmt.Errorf("failed to count users: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get users")

		return res, fmt.Errorf("failed to get users: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save users to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetUser, id)

	if s.cache.Get(ctx, cacheKey, &res) == nil {
		return res, nil
	}

	user, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(user)

	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save user to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateUserRequest, id string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Role == nil && req.Permissions == nil && req.Password == nil {
		return res, errNoDataToUpdate
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)

	current, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	updatedFields := shared.TransformFields(req, user)

	if req.Permissions != nil {
		role := current.Role
		if req.Role != nil {
			role = *req.Role
		}

		updatedFields[model.FieldPermissions] = pq.StringArray(model.NormalizePermissions(req.Permissions, role))
	}

	if req.Password != nil {
		hashedPassword, err := password.Hash(*req.Password)
		if err != nil {
			log.Error().Err(err).Msg("failed to hash password")

			return res, fmt.Errorf("failed to hash password: %w", err)
		}

		updatedFields[model.FieldPassword] = hashedPassword
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update user")

		return res, fmt.Errorf("failed to update user: %w", err)
	}

	go s.invalidate(context.WithoutCancel(ctx), id)

	updated, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(updated)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if self, _ := ctx.Value(constant.ContextKeyUserID).(string); self == id {
		return errDeleteSelf
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !exist {
		return errUserNotFound
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete user")

		return fmt.Errorf("failed to delete user: %w", err)
	}

	go s.invalidate(context.WithoutCancel(ctx), id)

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.User, error) {
	user, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return user, errUserNotFound
	}

	return user, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetUser, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete user cache")
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllUser)
}
