package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/config"
	kafkaMocks "hotel/infras/kafka/mocks"
	"hotel/infras/otel/mocks"
	bookingMocks "hotel/internal/domains/booking/mocks"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/service"
	guestMocks "hotel/internal/domains/guest/mocks"
	guestModel "hotel/internal/domains/guest/model"
	roomMocks "hotel/internal/domains/room/mocks"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared/cache/cachetest"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	repoMocks "hotel/shared/repository/mocks"
	"hotel/shared/timezone"
)

type fixture struct {
	svc        service.Booking
	repo       *bookingMocks.MockBooking
	roomRepo   *roomMocks.MockRoom
	guestRepo  *guestMocks.MockGuest
	transactor *repoMocks.MockTransactor
	kafka      *kafkaMocks.MockClient
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	redisCache, _ := cachetest.New(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60
	cfg.Kafka.Topics.BookingEvents = "hotel.booking.events"

	f := fixture{
		repo:       bookingMocks.NewMockBooking(ctrl),
		roomRepo:   roomMocks.NewMockRoom(ctrl),
		guestRepo:  guestMocks.NewMockGuest(ctrl),
		transactor: repoMocks.NewMockTransactor(ctrl),
		kafka:      kafkaMocks.NewMockClient(ctrl),
	}

	f.svc = service.New(f.repo, f.roomRepo, f.guestRepo, f.transactor, f.kafka, cfg, redisCache, mocks.NewOtel())

	return f
}

// runsTransaction makes the transactor execute the unit of work without a database.
func (f fixture) runsTransaction() {
	f.transactor.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(tx *sqlx.Tx) error) error {
			return fn(nil)
		})
}

func userContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUsername, "reception")
}

func availableRoom() roomModel.Room {
	return roomModel.Room{
		ID:            "room-1",
		RoomNumber:    "101",
		RoomType:      "2 kishilik",
		Capacity:      2,
		PricePerNight: decimal.NewFromInt(100),
		Status:        constant.RoomStatusAvailable,
	}
}

func guests() []guestModel.Guest {
	return []guestModel.Guest{
		{ID: "g-1", FullName: "Aziz Karimov"},
		{ID: "g-2", FullName: "Dilnoza Rahimova"},
	}
}

func booking(status string) model.Booking {
	return model.Booking{
		ID:           "b-1",
		GuestIDs:     []string{"g-1", "g-2"},
		RoomID:       "room-1",
		CheckInDate:  "2025-01-10",
		CheckOutDate: "2025-01-12",
		TotalPrice:   decimal.NewFromInt(200),
		Status:       status,
	}
}

func validCreate() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		GuestIDs:     []string{"g-1", "g-2"},
		RoomID:       "room-1",
		CheckInDate:  "2025-01-10",
		CheckOutDate: "2025-01-12",
	}
}

func assertFailure(t *testing.T, err error, code int, message string) {
	t.Helper()

	require.Error(t, err)
	assert.Equal(t, code, failure.GetCode(err))

	if message != "" {
		assert.Equal(t, message, err.Error())
	}
}

func TestBookingService_Create(t *testing.T) {
	t.Run("prices the stay and reserves the room", func(t *testing.T) {
		f := newFixture(t)

		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(availableRoom(), nil)
		f.guestRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(guests(), nil)
		f.runsTransaction()
		f.roomRepo.EXPECT().CompareAndUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, filter gDto.FilterGroup) (bool, error) {
				assert.Equal(t, constant.RoomStatusReserved, fields[roomModel.FieldStatus])

				_, args := filter.GetWhereClause()
				assert.Equal(t, constant.RoomStatusAvailable, args[roomModel.FieldStatus], "reservation only wins while the room is available")

				return true, nil
			})
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, b model.Booking) error {
				assert.True(t, decimal.NewFromInt(200).Equal(b.TotalPrice))
				assert.Equal(t, constant.BookingStatusConfirmed, b.Status)
				assert.Nil(t, b.CheckedInAt)
				assert.Nil(t, b.CheckedOutAt)

				return nil
			})
		f.kafka.EXPECT().SendMessages(gomock.Any(), "hotel.booking.events", gomock.Any()).Return(nil)

		res, err := f.svc.Create(userContext(), validCreate())

		require.NoError(t, err)
		assert.Equal(t, 2, res.Nights)
		assert.True(t, decimal.NewFromInt(200).Equal(res.TotalPrice))
		assert.Equal(t, constant.BookingStatusConfirmed, res.Status)
		assert.Equal(t, "101", res.RoomNumber)
		assert.Equal(t, []string{"Aziz Karimov", "Dilnoza Rahimova"}, res.GuestNames)
	})

	t.Run("event publishing failure does not fail the booking", func(t *testing.T) {
		f := newFixture(t)

		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(availableRoom(), nil)
		f.guestRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(guests(), nil)
		f.runsTransaction()
		f.roomRepo.EXPECT().CompareAndUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		_, err := f.svc.Create(userContext(), validCreate())

		assert.NoError(t, err)
	})

	tests := []struct {
		name      string
		req       func() dto.CreateBookingRequest
		setupMock func(f fixture)
		wantCode  int
		wantMsg   string
	}{
		{
			name: "room missing",
			req:  validCreate,
			setupMock: func(f fixture) {
				f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil)
			},
			wantCode: http.StatusNotFound,
			wantMsg:  "Room not found",
		},
		{
			name: "room not available",
			req:  validCreate,
			setupMock: func(f fixture) {
				room := availableRoom()
				room.Status = constant.RoomStatusCleaning
				f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
			},
			wantCode: http.StatusBadRequest,
			wantMsg:  "Room is not available",
		},
		{
			name: "guest count exceeds capacity",
			req:  validCreate,
			setupMock: func(f fixture) {
				room := availableRoom()
				room.Capacity = 1
				f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
			},
			wantCode: http.StatusBadRequest,
			wantMsg:  "Room capacity is 1 guests, 2 selected",
		},
		{
			name: "unparsable date",
			req: func() dto.CreateBookingRequest {
				req := validCreate()
				req.CheckInDate = "10.01.2025"

				return req
			},
			setupMock: func(f fixture) {
				f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(availableRoom(), nil)
			},
			wantCode: http.StatusBadRequest,
			wantMsg:  "Invalid date format. Use YYYY-MM-DD",
		},
		{
			name: "check out equals check in",
			req: func() dto.CreateBookingRequest {
				req := validCreate()
				req.CheckOutDate = req.CheckInDate

				return req
			},
			setupMock: func(f fixture) {
				f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(availableRoom(), nil)
			},
			wantCode: http.StatusBadRequest,
			wantMsg:  "Check-out date must be after check-in date",
		},
		{
			name: "unknown guest",
			req:  validCreate,
			setupMock: func(f fixture) {
				f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(availableRoom(), nil)
				f.guestRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(guests()[:1], nil)
			},
			wantCode: http.StatusNotFound,
			wantMsg:  "Guest not found",
		},
		{
			name: "room reserved by a concurrent request",
			req:  validCreate,
			setupMock: func(f fixture) {
				f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(availableRoom(), nil)
				f.guestRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(guests(), nil)
				f.runsTransaction()
				f.roomRepo.EXPECT().CompareAndUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "insert failure",
			req:  validCreate,
			setupMock: func(f fixture) {
				f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(availableRoom(), nil)
				f.guestRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(guests(), nil)
				f.runsTransaction()
				f.roomRepo.EXPECT().CompareAndUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			_, err := f.svc.Create(userContext(), tt.req())

			assertFailure(t, err, tt.wantCode, tt.wantMsg)
		})
	}
}

func TestBookingService_Transitions(t *testing.T) {
	tests := []struct {
		name       string
		status     string
		call       func(svc service.Booking) error
		wantStatus string
		wantRoom   string
		wantStamp  string
	}{
		{
			name:       "check in",
			status:     constant.BookingStatusConfirmed,
			call:       func(svc service.Booking) error { return svc.CheckIn(userContext(), "b-1") },
			wantStatus: constant.BookingStatusCheckedIn,
			wantRoom:   constant.RoomStatusOccupied,
			wantStamp:  model.FieldCheckedInAt,
		},
		{
			name:   "check out",
			status: constant.BookingStatusCheckedIn,
			call: func(svc service.Booking) error {
				res, err := svc.CheckOut(userContext(), "b-1")
				if err == nil && !decimal.NewFromInt(200).Equal(res.TotalPrice) {
					return errors.New("unexpected total price " + res.TotalPrice.String())
				}

				return err
			},
			wantStatus: constant.BookingStatusCheckedOut,
			wantRoom:   constant.RoomStatusCleaning,
			wantStamp:  model.FieldCheckedOutAt,
		},
		{
			name:       "cancel confirmed booking frees the room",
			status:     constant.BookingStatusConfirmed,
			call:       func(svc service.Booking) error { return svc.Cancel(userContext(), "b-1") },
			wantStatus: constant.BookingStatusCancelled,
			wantRoom:   constant.RoomStatusAvailable,
		},
		{
			name:       "cancel checked in booking leaves the room alone",
			status:     constant.BookingStatusCheckedIn,
			call:       func(svc service.Booking) error { return svc.Cancel(userContext(), "b-1") },
			wantStatus: constant.BookingStatusCancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(tt.status), nil)
			f.runsTransaction()
			f.repo.EXPECT().CompareAndUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, filter gDto.FilterGroup) (bool, error) {
					assert.Equal(t, tt.wantStatus, fields[model.FieldStatus])
					assert.NotContains(t, fields, model.FieldTotalPrice, "transitions never reprice")

					if tt.wantStamp != "" {
						assert.Equal(t, timezone.Today(), fields[tt.wantStamp])
					}

					_, args := filter.GetWhereClause()
					assert.Equal(t, tt.status, args[model.FieldStatus])

					return true, nil
				})
			if tt.wantRoom != "" {
				f.roomRepo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, tt.wantRoom, fields[roomModel.FieldStatus])

						return nil
					})
			}
			f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

			require.NoError(t, tt.call(f.svc))
		})
	}
}

func TestBookingService_IllegalTransitions(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		call    func(svc service.Booking) error
		wantMsg string
	}{
		{
			name:    "check in a checked in booking",
			status:  constant.BookingStatusCheckedIn,
			call:    func(svc service.Booking) error { return svc.CheckIn(userContext(), "b-1") },
			wantMsg: "Booking must be Confirmed to check-in",
		},
		{
			name:    "check out a confirmed booking",
			status:  constant.BookingStatusConfirmed,
			call:    func(svc service.Booking) error { _, err := svc.CheckOut(userContext(), "b-1"); return err },
			wantMsg: "Booking must be Checked In to check-out",
		},
		{
			name:   "check in a cancelled booking",
			status: constant.BookingStatusCancelled,
			call:   func(svc service.Booking) error { return svc.CheckIn(userContext(), "b-1") },
		},
		{
			name:    "cancel a checked out booking",
			status:  constant.BookingStatusCheckedOut,
			call:    func(svc service.Booking) error { return svc.Cancel(userContext(), "b-1") },
			wantMsg: "Only Confirmed or Checked In bookings can be cancelled",
		},
		{
			name:   "cancel a cancelled booking",
			status: constant.BookingStatusCancelled,
			call:   func(svc service.Booking) error { return svc.Cancel(userContext(), "b-1") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(tt.status), nil)

			assertFailure(t, tt.call(f.svc), http.StatusBadRequest, tt.wantMsg)
		})
	}

	t.Run("missing booking", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		assertFailure(t, f.svc.CheckIn(userContext(), "missing"), http.StatusNotFound, "Booking not found")
	})

	t.Run("lost race against another transition", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(constant.BookingStatusConfirmed), nil)
		f.runsTransaction()
		f.repo.EXPECT().CompareAndUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)

		assertFailure(t, f.svc.CheckIn(userContext(), "b-1"), http.StatusConflict, "")
	})
}

func TestBookingService_UpdateDates(t *testing.T) {
	newCheckOut := "2025-01-13"
	sameDay := "2025-01-10"

	t.Run("empty payload", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.UpdateDates(userContext(), dto.UpdateBookingRequest{}, "b-1")

		assertFailure(t, err, http.StatusBadRequest, "No data to update")
	})

	t.Run("terminal booking", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(constant.BookingStatusCheckedOut), nil)

		_, err := f.svc.UpdateDates(userContext(), dto.UpdateBookingRequest{CheckOutDate: &newCheckOut}, "b-1")

		assertFailure(t, err, http.StatusBadRequest, "Cannot update completed or cancelled booking")
	})

	t.Run("invalid range", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(constant.BookingStatusConfirmed), nil)

		_, err := f.svc.UpdateDates(userContext(), dto.UpdateBookingRequest{CheckOutDate: &sameDay}, "b-1")

		assertFailure(t, err, http.StatusBadRequest, "Invalid date range")
	})

	t.Run("capacity revalidated against the current room", func(t *testing.T) {
		f := newFixture(t)
		room := availableRoom()
		room.Capacity = 1

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(constant.BookingStatusConfirmed), nil)
		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)

		_, err := f.svc.UpdateDates(userContext(), dto.UpdateBookingRequest{CheckOutDate: &newCheckOut}, "b-1")

		assertFailure(t, err, http.StatusBadRequest, "")
	})

	t.Run("reprices with the current room price", func(t *testing.T) {
		f := newFixture(t)
		room := availableRoom()
		room.Status = constant.RoomStatusOccupied
		room.PricePerNight = decimal.NewFromInt(150)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(constant.BookingStatusCheckedIn), nil)
		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
		f.runsTransaction()
		f.repo.EXPECT().CompareAndUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) (bool, error) {
				assert.Equal(t, "2025-01-10", fields[model.FieldCheckInDate])
				assert.Equal(t, newCheckOut, fields[model.FieldCheckOutDate])

				price, ok := fields[model.FieldTotalPrice].(decimal.Decimal)
				require.True(t, ok)
				assert.True(t, decimal.NewFromInt(450).Equal(price))

				return true, nil
			})
		f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.guestRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(guests(), nil)

		res, err := f.svc.UpdateDates(userContext(), dto.UpdateBookingRequest{CheckOutDate: &newCheckOut}, "b-1")

		require.NoError(t, err)
		assert.Equal(t, 3, res.Nights)
		assert.True(t, decimal.NewFromInt(450).Equal(res.TotalPrice))
		assert.Equal(t, constant.BookingStatusCheckedIn, res.Status)
	})
}

func TestBookingService_GetAll(t *testing.T) {
	f := newFixture(t)

	orphan := booking(constant.BookingStatusConfirmed)
	orphan.ID = "b-2"
	orphan.RoomID = "room-deleted"
	orphan.GuestIDs = []string{"g-1", "g-unknown"}

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{booking(constant.BookingStatusConfirmed), orphan}, nil)
	f.guestRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(guests(), nil)
	f.roomRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]roomModel.Room{availableRoom()}, nil)

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

	require.NoError(t, err)
	require.Len(t, res.Bookings, 2)
	assert.Equal(t, "101", res.Bookings[0].RoomNumber)
	assert.Equal(t, constant.Unknown, res.Bookings[1].RoomNumber)
	assert.Equal(t, []string{"Aziz Karimov"}, res.Bookings[1].GuestNames, "unresolvable guests are skipped")
}
