package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/metrics"
	"hotel/infras/otel"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	guestModel "hotel/internal/domains/guest/model"
	guestRepo "hotel/internal/domains/guest/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	roomService "hotel/internal/domains/room/service"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gRepo "hotel/shared/repository"
	"hotel/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
)

var (
	errBookingNotFound  = failure.NotFound("Booking not found")
	errRoomNotFound     = failure.NotFound("Room not found")
	errGuestNotFound    = failure.NotFound("Guest not found")
	errRoomNotAvailable = failure.BadRequestFromString("Room is not available")
	errCreateDateFormat = failure.BadRequestFromString("Invalid date format. Use YYYY-MM-DD")
	errCreateDateRange  = failure.BadRequestFromString("Check-out date must be after check-in date")
	errUpdateDateFormat = failure.BadRequestFromString("Invalid date format")
	errUpdateDateRange  = failure.BadRequestFromString("Invalid date range")
	errNotUpdatable     = failure.BadRequestFromString("Cannot update completed or cancelled booking")
	errNoDataToUpdate   = failure.BadRequestFromString("No data to update")
	errRoomTaken        = failure.Conflict("Room was booked by another request")
	errBookingChanged   = failure.Conflict("Booking was modified by another request")
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	CheckIn(ctx context.Context, id string) error
	CheckOut(ctx context.Context, id string) (dto.CheckOutResponse, error)
	UpdateDates(ctx context.Context, req dto.UpdateBookingRequest, id string) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string) error
}

// transition describes one step of the booking state machine.
// from maps each accepted source status to the room status it drives; an empty room status leaves the room untouched.
type transition struct {
	name      string
	event     string
	from      map[string]string
	to        string
	stamp     string
	rejection error
}

var (
	checkIn = transition{
		name:      "CheckIn",
		event:     model.EventCheckedIn,
		from:      map[string]string{constant.BookingStatusConfirmed: constant.RoomStatusOccupied},
		to:        constant.BookingStatusCheckedIn,
		stamp:     model.FieldCheckedInAt,
		rejection: failure.BadRequestFromString("Booking must be Confirmed to check-in"),
	}
	checkOut = transition{
		name:      "CheckOut",
		event:     model.EventCheckedOut,
		from:      map[string]string{constant.BookingStatusCheckedIn: constant.RoomStatusCleaning},
		to:        constant.BookingStatusCheckedOut,
		stamp:     model.FieldCheckedOutAt,
		rejection: failure.BadRequestFromString("Booking must be Checked In to check-out"),
	}
	cancel = transition{
		name:      "Cancel",
		event:     model.EventCancelled,
		// The room of a checked in booking keeps its status until housekeeping changes it.
		from: map[string]string{
			constant.BookingStatusConfirmed: constant.RoomStatusAvailable,
			constant.BookingStatusCheckedIn: constant.Empty,
		},
		to:        constant.BookingStatusCancelled,
		rejection: failure.BadRequestFromString("Only Confirmed or Checked In bookings can be cancelled"),
	}
)

type serviceImpl struct {
	repo       repository.Booking
	roomRepo   roomRepo.Room
	guestRepo  guestRepo.Guest
	transactor gRepo.Transactor
	kafka      kafka.Client
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	guestRepo guestRepo.Guest,
	transactor gRepo.Transactor,
	kafka kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:       repo,
		roomRepo:   roomRepo,
		guestRepo:  guestRepo,
		transactor: transactor,
		kafka:      kafka,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, err := s.findRoom(ctx, req.RoomID)
	if err != nil {
		return res, err
	}

	if room.Status != constant.RoomStatusAvailable {
		return res, errRoomNotAvailable
	}

	if !room.Fits(len(req.GuestIDs)) {
		return res, capacityError(room, len(req.GuestIDs))
	}

	nights, err := model.StayNights(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return res, dateError(err, errCreateDateFormat, errCreateDateRange)
	}

	guestNames, err := s.guestNames(ctx, req.GuestIDs)
	if err != nil {
		return res, err
	}

	if len(guestNames) != len(req.GuestIDs) {
		return res, errGuestNotFound
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	booking := req.ToModel(user, model.Price(room.PricePerNight, nights))

	err = s.transactor.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		reserved, err := s.roomRepo.CompareAndUpdateTx(ctx, tx,
			roomStatusFields(constant.RoomStatusReserved, user),
			roomStatusFilter(room.ID, constant.RoomStatusAvailable),
		)
		if err != nil {
			return fmt.Errorf("failed to reserve room: %w", err)
		}

		if !reserved {
			return errRoomTaken
		}

		if err := s.repo.InsertTx(ctx, tx, booking); err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("room_id", room.ID).Msg("failed to create booking")

		return res, err
	}

	s.publish(ctx, model.EventCreated, booking, user)
	metrics.IncBookingTransition(booking.Status)
	metrics.IncRoomStatus(constant.RoomStatusReserved)
	s.invalidate(ctx, booking)

	res.FromModel(booking, guestNames, map[string]string{room.ID: room.RoomNumber})

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Sanitize(dto.SortableFields, constant.FieldCreatedAt)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	if s.cache.Get(ctx, cacheKey, &res) == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	bookings, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	guestNames, roomNumbers, err := s.lookups(ctx, bookings)
	if err != nil {
		return res, err
	}

	res.FromModels(bookings, guestNames, roomNumbers, total, req.Limit)

	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	if s.cache.Get(ctx, cacheKey, &res) == nil {
		return res, nil
	}

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	guestNames, roomNumbers, err := s.lookups(ctx, []model.Booking{booking})
	if err != nil {
		return res, err
	}

	res.FromModel(booking, guestNames, roomNumbers)

	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) CheckIn(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckIn")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	_, err = s.apply(ctx, id, checkIn)

	return err
}

func (s *serviceImpl) CheckOut(ctx context.Context, id string) (res dto.CheckOutResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckOut")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.apply(ctx, id, checkOut)
	if err != nil {
		return res, err
	}

	return dto.CheckOutResponse{
		Message:    "Check-out successful. Room marked for cleaning",
		TotalPrice: booking.TotalPrice,
	}, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	_, err = s.apply(ctx, id, cancel)

	return err
}

func (s *serviceImpl) UpdateDates(ctx context.Context, req dto.UpdateBookingRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateDates")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return res, errNoDataToUpdate
	}

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if booking.IsTerminal() {
		return res, errNotUpdatable
	}

	checkInDate, checkOutDate := req.Merge(booking)

	nights, err := model.StayNights(checkInDate, checkOutDate)
	if err != nil {
		return res, dateError(err, errUpdateDateFormat, errUpdateDateRange)
	}

	room, err := s.findRoom(ctx, booking.RoomID)
	if err != nil {
		return res, err
	}

	if !room.Fits(len(booking.GuestIDs)) {
		return res, capacityError(room, len(booking.GuestIDs))
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)

	booking.CheckInDate = checkInDate
	booking.CheckOutDate = checkOutDate
	booking.TotalPrice = model.Price(room.PricePerNight, nights)

	fields := shared.TransformFields(struct {
		CheckInDate  string `db:"check_in_date"`
		CheckOutDate string `db:"check_out_date"`
	}{CheckInDate: checkInDate, CheckOutDate: checkOutDate}, user)
	fields[model.FieldTotalPrice] = booking.TotalPrice

	err = s.transactor.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		updated, err := s.repo.CompareAndUpdateTx(ctx, tx, fields, bookingStatusFilter(booking.ID, booking.Status))
		if err != nil {
			return fmt.Errorf("failed to update booking: %w", err)
		}

		if !updated {
			return errBookingChanged
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update booking dates")

		return res, err
	}

	s.publish(ctx, model.EventUpdated, booking, user)
	s.invalidate(ctx, booking)

	guestNames, err := s.guestNames(ctx, booking.GuestIDs)
	if err != nil {
		return res, err
	}

	res.FromModel(booking, guestNames, map[string]string{room.ID: room.RoomNumber})

	return res, nil
}

// apply moves the booking along t and drives the paired room status in the same transaction.
func (s *serviceImpl) apply(ctx context.Context, id string, t transition) (model.Booking, error) {
	booking, err := s.find(ctx, id)
	if err != nil {
		return booking, err
	}

	source := booking.Status

	roomStatus, ok := t.from[source]
	if !ok {
		return booking, t.rejection
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)

	fields := shared.TransformFields(struct {
		Status string `db:"status"`
	}{Status: t.to}, user)

	if t.stamp != constant.Empty {
		today := timezone.Today()
		fields[t.stamp] = today

		switch t.stamp {
		case model.FieldCheckedInAt:
			booking.CheckedInAt = &today
		case model.FieldCheckedOutAt:
			booking.CheckedOutAt = &today
		}
	}

	err = s.transactor.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		moved, err := s.repo.CompareAndUpdateTx(ctx, tx, fields, bookingStatusFilter(booking.ID, source))
		if err != nil {
			return fmt.Errorf("failed to update booking status: %w", err)
		}

		if !moved {
			return errBookingChanged
		}

		if roomStatus == constant.Empty {
			return nil
		}

		err = s.roomRepo.UpdateTx(ctx, tx,
			roomStatusFields(roomStatus, user),
			shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName),
		)
		if err != nil {
			return fmt.Errorf("failed to update room status: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("id", id).Str("transition", t.name).Msg("failed to apply booking transition")

		return booking, err
	}

	booking.Status = t.to

	s.publish(ctx, t.event, booking, user)
	metrics.IncBookingTransition(t.to)
	if roomStatus != constant.Empty {
		metrics.IncRoomStatus(roomStatus)
	}
	s.invalidate(ctx, booking)

	return booking, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, errBookingNotFound
	}

	return booking, nil
}

func (s *serviceImpl) findRoom(ctx context.Context, id string) (roomModel.Room, error) {
	room, err := s.roomRepo.Get(ctx, shared.FilterByID(id, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return room, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return room, errRoomNotFound
	}

	return room, nil
}

// guestNames maps each resolvable guest id to its full name.
func (s *serviceImpl) guestNames(ctx context.Context, ids []string) (map[string]string, error) {
	names := map[string]string{}
	if len(ids) == 0 {
		return names, nil
	}

	guests, err := s.guestRepo.GetAll(ctx, gDto.QueryParams{},
		shared.FilterByIDs(ids, guestModel.FieldID, guestModel.TableName),
		guestModel.FieldID, guestModel.FieldFullName,
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to get guests")

		return nil, fmt.Errorf("failed to get guests: %w", err)
	}

	for _, guest := range guests {
		names[guest.ID] = guest.FullName
	}

	return names, nil
}

func (s *serviceImpl) lookups(ctx context.Context, bookings []model.Booking) (guestNames, roomNumbers map[string]string, err error) {
	guestIDs := []string{}
	roomIDs := []string{}

	for _, booking := range bookings {
		guestIDs = append(guestIDs, booking.GuestIDs...)
		roomIDs = append(roomIDs, booking.RoomID)
	}

	slices.Sort(guestIDs)
	slices.Sort(roomIDs)

	guestNames, err = s.guestNames(ctx, slices.Compact(guestIDs))
	if err != nil {
		return nil, nil, err
	}

	roomNumbers = map[string]string{}

	roomIDs = slices.Compact(roomIDs)
	if len(roomIDs) == 0 {
		return guestNames, roomNumbers, nil
	}

	rooms, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{},
		shared.FilterByIDs(roomIDs, roomModel.FieldID, roomModel.TableName),
		roomModel.FieldID, roomModel.FieldRoomNumber,
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return nil, nil, fmt.Errorf("failed to get rooms: %w", err)
	}

	for _, room := range rooms {
		roomNumbers[room.ID] = room.RoomNumber
	}

	return guestNames, roomNumbers, nil
}

// publish emits the booking event. Delivery failures never fail the request.
func (s *serviceImpl) publish(ctx context.Context, eventType string, booking model.Booking, user string) {
	event := model.NewEvent(eventType, booking, user, timezone.Now())

	err := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topics.BookingEvents, kafka.Message{Key: booking.ID, Value: event})
	if err != nil {
		log.Error().Err(err).Str("event", eventType).Str("booking_id", booking.ID).Msg("failed to publish booking event")
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, booking model.Booking) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, booking.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		roomService.InvalidateCaches(c, s.cache, booking.RoomID)
	}()
}

func roomStatusFields(status, user string) map[string]any {
	return shared.TransformFields(struct {
		Status string `db:"status"`
	}{Status: status}, user)
}

func roomStatusFilter(id, status string) gDto.FilterGroup {
	filter := shared.FilterByID(id, roomModel.FieldID, roomModel.TableName)
	filter.Add(gDto.Filter{Field: roomModel.FieldStatus, Value: status, Operator: gDto.FilterOperatorEq, Table: roomModel.TableName})

	return filter
}

func bookingStatusFilter(id, status string) gDto.FilterGroup {
	filter := shared.FilterByID(id, model.FieldID, model.TableName)
	filter.Add(gDto.Filter{Field: model.FieldStatus, Value: status, Operator: gDto.FilterOperatorEq, Table: model.TableName})

	return filter
}

func capacityError(room roomModel.Room, guests int) error {
	return failure.BadRequestFromString(fmt.Sprintf("Room capacity is %d guests, %d selected", room.Capacity, guests))
}

func dateError(err, formatErr, rangeErr error) error {
	if errors.Is(err, model.ErrInvalidRange) {
		return rangeErr
	}

	return formatErr
}
