package service

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/s3"
	bookingModel "hotel/internal/domains/booking/model"
	bookingDto "hotel/internal/domains/booking/model/dto"
	bookingRepo "hotel/internal/domains/booking/repository"
	"hotel/internal/domains/report/model"
	"hotel/internal/domains/report/model/dto"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/timezone"
	"hotel/shared/validator"

	"github.com/rs/zerolog/log"
)

type Report interface {
	DashboardStats(ctx context.Context) (dto.DashboardStatsResponse, error)
	Daily(ctx context.Context, req dto.DailyRequest) (dto.DailyReportResponse, error)
	Monthly(ctx context.Context, req dto.MonthlyRequest) (dto.MonthlyReportResponse, error)
	Revenue(ctx context.Context, req dto.RevenueRequest) ([]dto.MonthRevenue, error)
	ExportMonthly(ctx context.Context, req dto.MonthlyRequest) (dto.ExportResponse, error)
}

type serviceImpl struct {
	bookingRepo bookingRepo.Booking
	roomRepo    roomRepo.Room
	s3          s3.S3
	cfg         *config.Config
	otel        otel.Otel
}

func New(bookingRepo bookingRepo.Booking, roomRepo roomRepo.Room, s3 s3.S3, cfg *config.Config, otel otel.Otel) Report {
	return &serviceImpl{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		s3:          s3,
		cfg:         cfg,
		otel:        otel,
	}
}

func (s *serviceImpl) DashboardStats(ctx context.Context) (res dto.DashboardStatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DashboardStats")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	counts := []struct {
		status string
		target *int
	}{
		{constant.Empty, &res.TotalRooms},
		{constant.RoomStatusAvailable, &res.AvailableRooms},
		{constant.RoomStatusOccupied, &res.OccupiedRooms},
		{constant.RoomStatusCleaning, &res.CleaningRooms},
		{constant.RoomStatusReserved, &res.ReservedRooms},
	}

	for _, count := range counts {
		filter := gDto.FilterGroup{}
		if count.status != constant.Empty {
			filter = shared.FilterByID(count.status, roomModel.FieldStatus, roomModel.TableName)
		}

		*count.target, err = s.roomRepo.Count(ctx, filter)
		if err != nil {
			log.Error().Err(err).Str("status", count.status).Msg("failed to count rooms")

			return res, fmt.Errorf("failed to count rooms: %w", err)
		}
	}

	today := timezone.Today()

	bookings, err := s.fetch(ctx, bookingDto.FilterCheckedInOn(today),
		bookingModel.FieldID, bookingModel.FieldTotalPrice, bookingModel.FieldStatus,
		bookingModel.FieldCheckInDate, bookingModel.FieldCheckedInAt,
	)
	if err != nil {
		return res, err
	}

	res.TodayIncome = model.Income(slices.DeleteFunc(bookings, func(b bookingModel.Booking) bool {
		return b.EffectiveCheckInDate() != today
	}))

	res.UpcomingReservations, err = s.bookingRepo.Count(ctx,
		shared.FilterByID(constant.BookingStatusConfirmed, bookingModel.FieldStatus, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to count upcoming reservations")

		return res, fmt.Errorf("failed to count upcoming reservations: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) Daily(ctx context.Context, req dto.DailyRequest) (res dto.DailyReportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Daily")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	res.Date = req.Date
	if res.Date == constant.Empty {
		res.Date = timezone.Today()
	}

	checkedIn := shared.FilterByID(res.Date, bookingModel.FieldCheckedInAt, bookingModel.TableName)

	res.CheckIns, err = s.bookingRepo.Count(ctx, checkedIn)
	if err != nil {
		log.Error().Err(err).Msg("failed to count check-ins")

		return res, fmt.Errorf("failed to count check-ins: %w", err)
	}

	res.CheckOuts, err = s.bookingRepo.Count(ctx, shared.FilterByID(res.Date, bookingModel.FieldCheckedOutAt, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to count check-outs")

		return res, fmt.Errorf("failed to count check-outs: %w", err)
	}

	bookings, err := s.fetch(ctx, checkedIn, bookingModel.FieldID, bookingModel.FieldTotalPrice)
	if err != nil {
		return res, err
	}

	res.TotalRevenue = model.Income(bookings)
	res.GuestsToday = res.CheckIns

	return res, nil
}

func (s *serviceImpl) Monthly(ctx context.Context, req dto.MonthlyRequest) (res dto.MonthlyReportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Monthly")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, _, _, err = s.monthly(ctx, req)

	return res, err
}

func (s *serviceImpl) Revenue(ctx context.Context, req dto.RevenueRequest) (res []dto.MonthRevenue, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Revenue")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	year := req.Year
	if year == constant.Empty {
		year = strconv.Itoa(timezone.Now().Year())
	}

	bookings, err := s.fetch(ctx, bookingDto.FilterCheckedInWithin(year+"-"),
		bookingModel.FieldID, bookingModel.FieldTotalPrice, bookingModel.FieldCheckedInAt,
	)
	if err != nil {
		return res, err
	}

	revenue := model.RevenueByMonth(bookings)

	return dto.FromRevenue(revenue[:]), nil
}

func (s *serviceImpl) ExportMonthly(ctx context.Context, req dto.MonthlyRequest) (res dto.ExportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ExportMonthly")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	summary, bookings, rooms, err := s.monthly(ctx, req)
	if err != nil {
		return res, err
	}

	workbook, err := buildWorkbook(summary, bookings, rooms)
	if err != nil {
		log.Error().Err(err).Str("month", summary.Month).Msg("failed to build monthly workbook")

		return res, fmt.Errorf("failed to build monthly workbook: %w", err)
	}

	res.Month = summary.Month
	res.FileName = fmt.Sprintf("monthly-report-%s-%d.xlsx", summary.Month, timezone.Now().Unix())

	res.URL, err = s.s3.Put(ctx, s3.Object{
		Directory:   s.cfg.Report.ExportDirectory,
		Name:        res.FileName,
		ContentType: constant.ContentTypeXLSX,
		Body:        workbook,
	})
	if err != nil {
		return res, fmt.Errorf("failed to upload monthly workbook: %w", err)
	}

	return res, nil
}

// monthly aggregates the bookings checked in during the month and returns them with their rooms.
func (s *serviceImpl) monthly(ctx context.Context, req dto.MonthlyRequest) (res dto.MonthlyReportResponse, bookings []bookingModel.Booking, rooms map[string]roomModel.Room, err error) {
	if err = validator.ValidateStruct(&req); err != nil {
		return res, nil, nil, err
	}

	res.Month = req.Month
	if res.Month == constant.Empty {
		res.Month = timezone.Now().Format(constant.MonthFormat)
	}

	bookings, err = s.fetch(ctx, bookingDto.FilterCheckedInWithin(res.Month))
	if err != nil {
		return res, nil, nil, err
	}

	rooms, err = s.rooms(ctx, bookings)
	if err != nil {
		return res, nil, nil, err
	}

	roomTypes := make(map[string]string, len(rooms))
	for id, room := range rooms {
		roomTypes[id] = room.RoomType
	}

	res.TotalGuests = len(bookings)
	res.TotalIncome = model.Income(bookings)
	res.TotalOccupiedDays = model.OccupiedDays(bookings)
	res.MostUsedRoomType = model.MostUsedRoomType(bookings, roomTypes)

	return res, bookings, rooms, nil
}

func (s *serviceImpl) fetch(ctx context.Context, filter gDto.FilterGroup, columns ...string) ([]bookingModel.Booking, error) {
	bookings, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{Limit: s.fetchLimit()}, filter, columns...)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for report")

		return nil, fmt.Errorf("failed to get bookings for report: %w", err)
	}

	return bookings, nil
}

func (s *serviceImpl) rooms(ctx context.Context, bookings []bookingModel.Booking) (map[string]roomModel.Room, error) {
	res := map[string]roomModel.Room{}

	ids := make([]string, 0, len(bookings))
	for _, booking := range bookings {
		ids = append(ids, booking.RoomID)
	}

	slices.Sort(ids)

	ids = slices.Compact(ids)
	if len(ids) == 0 {
		return res, nil
	}

	rooms, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{},
		shared.FilterByIDs(ids, roomModel.FieldID, roomModel.TableName),
		roomModel.FieldID, roomModel.FieldRoomNumber, roomModel.FieldRoomType,
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms for report")

		return nil, fmt.Errorf("failed to get rooms for report: %w", err)
	}

	for _, room := range rooms {
		res[room.ID] = room
	}

	return res, nil
}

func (s *serviceImpl) fetchLimit() int {
	if s.cfg.Report.FetchLimit > 0 {
		return s.cfg.Report.FetchLimit
	}

	return constant.DefaultValueFetchLimit
}
