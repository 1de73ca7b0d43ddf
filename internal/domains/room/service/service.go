package service

import (
	"context"
	"fmt"

	"hotel/config"
	"hotel/infras/metrics"
	"hotel/infras/otel"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetRoom    = "room:get"
	cacheGetAllRoom = "room:gets"
	cacheCountRoom  = "room:count"
)

var (
	errRoomNotFound     = failure.NotFound("Room not found")
	errRoomNumberExists = failure.BadRequestFromString("Room number already exists")
	errNoDataToUpdate   = failure.BadRequestFromString("No data to update")
	errNegativePrice    = failure.BadRequestFromString("price_per_night must not be negative")
)

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (dto.RoomResponse, error)
	Delete(ctx context.Context, id string) error
	MarkCleaning(ctx context.Context, id string) error
	MarkAvailable(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Room
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Room {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// InvalidateCaches drops the cached room and every cached room listing.
// Booking transitions call it after they move a room between statuses.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, ids ...string) {
	for _, id := range ids {
		if err := redisCache.Delete(ctx, shared.BuildCacheKey(cacheGetRoom, id)); err != nil {
			log.Error().Err(err).Str("id", id).Msg("failed to delete room cache")
		}
	}

	shared.InvalidateCaches(ctx, redisCache, cacheGetAllRoom)
	shared.InvalidateCaches(ctx, redisCache, cacheCountRoom)
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.PricePerNight.IsNegative() {
		return res, errNegativePrice
	}

	exist, err := s.repo.Exist(ctx, shared.FilterByID(req.RoomNumber, model.FieldRoomNumber, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check room number")

		return res, fmt.Errorf("failed to check room number: %w", err)
	}

	if exist {
		return res, errRoomNumberExists
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	room := req.ToModel(user)

	if err = s.repo.Insert(ctx, room); err != nil {
		log.Error().Err(err).Msg("failed to create room")

		return res, fmt.Errorf("failed to create room: %w", err)
	}

	metrics.IncRoomStatus(room.Status)

	go InvalidateCaches(context.WithoutCancel(ctx), s.cache)

	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Sanitize(dto.SortableFields, model.FieldRoomNumber)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRoom, req, filter)

	if s.cache.Get(ctx, cacheKey, &res) == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountRoom, gDto.QueryParams{}, filter)

	if s.cache.Get(ctx, cacheKey, &res) == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetRoom, id)

	if s.cache.Get(ctx, cacheKey, &res) == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	room, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(room)

	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)

	updatedFields := shared.TransformFields(req, user)
	if !shared.HasChanges(updatedFields) {
		return res, errNoDataToUpdate
	}

	if req.PricePerNight != nil && req.PricePerNight.IsNegative() {
		return res, errNegativePrice
	}

	current, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if req.RoomNumber != nil && *req.RoomNumber != current.RoomNumber {
		filter := gDto.FilterGroup{}
		filter.Add(
			gDto.Filter{Field: model.FieldRoomNumber, Value: *req.RoomNumber, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorNotEq, Table: model.TableName},
		)

		exist, err := s.repo.Exist(ctx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to check room number")

			return res, fmt.Errorf("failed to check room number: %w", err)
		}

		if exist {
			return res, errRoomNumberExists
		}
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update room")

		return res, fmt.Errorf("failed to update room: %w", err)
	}

	if req.Status != nil {
		metrics.IncRoomStatus(*req.Status)
	}

	go InvalidateCaches(context.WithoutCancel(ctx), s.cache, id)

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

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !exist {
		return errRoomNotFound
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete room")

		return fmt.Errorf("failed to delete room: %w", err)
	}

	go InvalidateCaches(context.WithoutCancel(ctx), s.cache, id)

	return nil
}

func (s *serviceImpl) MarkCleaning(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkCleaning")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.forceStatus(ctx, id, constant.RoomStatusCleaning)
}

func (s *serviceImpl) MarkAvailable(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkAvailable")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.forceStatus(ctx, id, constant.RoomStatusAvailable)
}

// forceStatus sets the room status regardless of its current value.
func (s *serviceImpl) forceStatus(ctx context.Context, id, status string) error {
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !exist {
		return errRoomNotFound
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)

	fields := shared.TransformFields(struct {
		Status string `db:"status"`
	}{Status: status}, user)

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Str("status", status).Msg("failed to update room status")

		return fmt.Errorf("failed to update room status: %w", err)
	}

	metrics.IncRoomStatus(status)

	go InvalidateCaches(context.WithoutCancel(ctx), s.cache, id)

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Room, error) {
	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return room, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return room, errRoomNotFound
	}

	return room, nil
}
