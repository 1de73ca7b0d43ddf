package service

import (
	"context"
	"fmt"
	"slices"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/internal/domains/archive/model"
	"hotel/internal/domains/archive/model/dto"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	guestModel "hotel/internal/domains/guest/model"
	guestRepo "hotel/internal/domains/guest/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/validator"

	"github.com/rs/zerolog/log"
)

var (
	errGuestNotFound = failure.NotFound("Guest not found")
	errInvalidStatus = failure.BadRequestFromString("status must be one of confirmed checked_in checked_out cancelled")
)

type Archive interface {
	List(ctx context.Context, req dto.ArchiveRequest) (dto.ArchiveResponse, error)
	GuestHistory(ctx context.Context, guestID string, req dto.ArchiveRequest) (dto.ArchiveResponse, error)
}

type serviceImpl struct {
	bookingRepo bookingRepo.Booking
	guestRepo   guestRepo.Guest
	roomRepo    roomRepo.Room
	cfg         *config.Config
	otel        otel.Otel
}

func New(bookingRepo bookingRepo.Booking, guestRepo guestRepo.Guest, roomRepo roomRepo.Room, cfg *config.Config, otel otel.Otel) Archive {
	return &serviceImpl{
		bookingRepo: bookingRepo,
		guestRepo:   guestRepo,
		roomRepo:    roomRepo,
		cfg:         cfg,
		otel:        otel,
	}
}

func (s *serviceImpl) List(ctx context.Context, req dto.ArchiveRequest) (res dto.ArchiveResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.list(ctx, req)
}

func (s *serviceImpl) GuestHistory(ctx context.Context, guestID string, req dto.ArchiveRequest) (res dto.ArchiveResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GuestHistory")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	exist, err := s.guestRepo.Exist(ctx, shared.FilterByID(guestID, guestModel.FieldID, guestModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if guest exists")

		return res, fmt.Errorf("failed to check if guest exists: %w", err)
	}

	if !exist {
		return res, errGuestNotFound
	}

	req.GuestID = guestID

	return s.list(ctx, req)
}

func (s *serviceImpl) list(ctx context.Context, req dto.ArchiveRequest) (res dto.ArchiveResponse, err error) {
	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	filter, err := s.filter(req)
	if err != nil {
		return res, err
	}

	bookings, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{
		Limit:   s.fetchLimit(),
		SortBy:  bookingModel.FieldCheckInDate,
		SortDir: gDto.SortDirDesc,
	}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for archive")

		return res, fmt.Errorf("failed to get bookings for archive: %w", err)
	}

	guests, rooms, err := s.lookups(ctx, bookings)
	if err != nil {
		return res, err
	}

	rows := slices.DeleteFunc(model.Flatten(bookings, guests, rooms), func(row model.Row) bool {
		if req.GuestID != constant.Empty && row.GuestID != req.GuestID {
			return true
		}

		return !row.Matches(req.Query)
	})

	req.Sanitize(model.SortableFields, model.SortCheckInDate)
	model.Sort(rows, req.SortBy, req.SortDir == gDto.SortDirDesc)

	page, limit := req.Page, req.Limit
	if page <= 0 {
		page = constant.DefaultValuePage
	}

	if limit <= 0 {
		limit = constant.DefaultArchiveLimit
	}

	res.Paginate(rows, page, limit)

	return res, nil
}

// filter pushes the guest, status and check-in range predicates down to the store.
func (s *serviceImpl) filter(req dto.ArchiveRequest) (gDto.FilterGroup, error) {
	filter := shared.FilterByRange(bookingModel.FieldCheckInDate, bookingModel.TableName, req.DateFrom, req.DateTo)

	if req.GuestID != constant.Empty {
		filter.Add(gDto.Filter{
			Field:    bookingModel.FieldGuestIDs,
			ArgName:  constant.RequestParamGuestID,
			Value:    req.GuestID,
			Operator: gDto.FilterOperatorAny,
			Table:    bookingModel.TableName,
		})
	}

	if req.Status != constant.Empty {
		status, ok := model.NormalizeStatus(req.Status)
		if !ok {
			return filter, errInvalidStatus
		}

		filter.Add(gDto.Filter{Field: bookingModel.FieldStatus, Value: status, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName})
	}

	return filter, nil
}

func (s *serviceImpl) lookups(ctx context.Context, bookings []bookingModel.Booking) (map[string]guestModel.Guest, map[string]roomModel.Room, error) {
	guestIDs, roomIDs := []string{}, []string{}

	for _, booking := range bookings {
		guestIDs = append(guestIDs, booking.GuestIDs...)
		roomIDs = append(roomIDs, booking.RoomID)
	}

	slices.Sort(guestIDs)
	slices.Sort(roomIDs)

	guests := map[string]guestModel.Guest{}
	rooms := map[string]roomModel.Room{}

	if guestIDs = slices.Compact(guestIDs); len(guestIDs) > 0 {
		models, err := s.guestRepo.GetAll(ctx, gDto.QueryParams{},
			shared.FilterByIDs(guestIDs, guestModel.FieldID, guestModel.TableName),
			guestModel.FieldID, guestModel.FieldFullName, guestModel.FieldPhone,
		)
		if err != nil {
			log.Error().Err(err).Msg("failed to get guests for archive")

			return nil, nil, fmt.Errorf("failed to get guests for archive: %w", err)
		}

		for _, guest := range models {
			guests[guest.ID] = guest
		}
	}

	if roomIDs = slices.Compact(roomIDs); len(roomIDs) > 0 {
		models, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{},
			shared.FilterByIDs(roomIDs, roomModel.FieldID, roomModel.TableName),
			roomModel.FieldID, roomModel.FieldRoomNumber, roomModel.FieldRoomType,
		)
		if err != nil {
			log.Error().Err(err).Msg("failed to get rooms for archive")

			return nil, nil, fmt.Errorf("failed to get rooms for archive: %w", err)
		}

		for _, room := range models {
			rooms[room.ID] = room
		}
	}

	return guests, rooms, nil
}

func (s *serviceImpl) fetchLimit() int {
	if s.cfg.Report.FetchLimit > 0 {
		return s.cfg.Report.FetchLimit
	}

	return constant.DefaultValueFetchLimit
}
