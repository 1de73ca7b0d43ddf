package service

import (
	"context"
	"fmt"

	"hotel/config"
	"hotel/infras/otel"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	"hotel/internal/domains/expense/model"
	"hotel/internal/domains/expense/model/dto"
	"hotel/internal/domains/expense/repository"
	reportModel "hotel/internal/domains/report/model"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/validator"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetExpense    = "expense:get"
	cacheGetAllExpense = "expense:gets"
)

var (
	errExpenseNotFound = failure.NotFound("Expense not found")
	errNoDataToUpdate  = failure.BadRequestFromString("No data to update")
	errNegativeAmount  = failure.BadRequestFromString("amount must not be negative")
)

type Expense interface {
	Create(ctx context.Context, req dto.CreateExpenseRequest) (dto.ExpenseResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetExpensesResponse, error)
	Get(ctx context.Context, id string) (dto.ExpenseResponse, error)
	Update(ctx context.Context, req dto.UpdateExpenseRequest, id string) (dto.ExpenseResponse, error)
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context, req dto.SummaryRequest) (dto.SummaryResponse, error)
}

type serviceImpl struct {
	repo        repository.Expense
	bookingRepo bookingRepo.Booking
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(repo repository.Expense, bookingRepo bookingRepo.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Expense {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateExpenseRequest) (res dto.ExpenseResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Amount.IsNegative() {
		return res, errNegativeAmount
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	expense := req.ToModel(user)

	if err = s.repo.Insert(ctx, expense); err != nil {
		log.Error().Err(err).Msg("failed to create expense")

		return res, fmt.Errorf("failed to create expense: %w", err)
	}

	go shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheGetAllExpense)

	res.FromModel(expense)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetExpensesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Sanitize(dto.SortableFields, model.FieldDate)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllExpense, req, filter)

	if s.cache.Get(ctx, cacheKey, &res) == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for expenses")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count expenses")

		return res, fmt.Errorf("failed to count expenses: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get expenses")

		return res, fmt.Errorf("failed to get expenses: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save expenses to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ExpenseResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetExpense, id)

	if s.cache.Get(ctx, cacheKey, &res) == nil {
		return res, nil
	}

	expense, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(expense)

	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save expense to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateExpenseRequest, id string) (res dto.ExpenseResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Amount != nil && req.Amount.IsNegative() {
		return res, errNegativeAmount
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)

	updatedFields := shared.TransformFields(req, user)
	if !shared.HasChanges(updatedFields) {
		return res, errNoDataToUpdate
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.ensureExists(ctx, filter); err != nil {
		return res, err
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update expense")

		return res, fmt.Errorf("failed to update expense: %w", err)
	}

	go s.invalidate(context.WithoutCancel(ctx), id)

	expense, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(expense)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.ensureExists(ctx, filter); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete expense")

		return fmt.Errorf("failed to delete expense: %w", err)
	}

	go s.invalidate(context.WithoutCancel(ctx), id)

	return nil
}

func (s *serviceImpl) Summary(ctx context.Context, req dto.SummaryRequest) (res dto.SummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Summary")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	params := gDto.QueryParams{Limit: s.fetchLimit()}

	expenses, err := s.repo.GetAll(ctx, params,
		shared.FilterByRange(model.FieldDate, model.TableName, req.DateFrom, req.DateTo),
		model.FieldID, model.FieldCategory, model.FieldAmount,
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to get expenses for summary")

		return res, fmt.Errorf("failed to get expenses for summary: %w", err)
	}

	income := shared.FilterByRange(bookingModel.FieldCheckedInAt, bookingModel.TableName, req.DateFrom, req.DateTo)
	income.Add(gDto.Filter{Field: bookingModel.FieldCheckedInAt, Operator: gDto.FilterIsNotNull, Table: bookingModel.TableName})

	bookings, err := s.bookingRepo.GetAll(ctx, params, income, bookingModel.FieldID, bookingModel.FieldTotalPrice)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for summary")

		return res, fmt.Errorf("failed to get bookings for summary: %w", err)
	}

	res.DateFrom = req.DateFrom
	res.DateTo = req.DateTo
	res.Summarize(expenses, reportModel.Income(bookings))

	return res, nil
}

func (s *serviceImpl) ensureExists(ctx context.Context, filter gDto.FilterGroup) error {
	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if expense exists")

		return fmt.Errorf("failed to check if expense exists: %w", err)
	}

	if !exist {
		return errExpenseNotFound
	}

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Expense, error) {
	expense, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get expense")

		return expense, fmt.Errorf("failed to get expense: %w", err)
	}

	if expense.ID == constant.Empty {
		return expense, errExpenseNotFound
	}

	return expense, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetExpense, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete expense cache")
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllExpense)
}

func (s *serviceImpl) fetchLimit() int {
	if s.cfg.Report.FetchLimit > 0 {
		return s.cfg.Report.FetchLimit
	}

	return constant.DefaultValueFetchLimit
}
