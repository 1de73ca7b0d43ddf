package booking

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Put("/{id}", handler.UpdateBooking)
		routerGroup.Delete("/{id}", handler.CancelBooking)
		routerGroup.Post("/{id}/checkin", handler.CheckIn)
		routerGroup.Post("/{id}/checkout", handler.CheckOut)
	})
}

func listFilter(request *http.Request) gDto.FilterGroup {
	query := request.URL.Query()
	filter := gDto.FilterGroup{}

	if status := query.Get(constant.RequestParamStatus); status != constant.Empty {
		filter.Add(gDto.Filter{Field: model.FieldStatus, Value: status, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if roomID := query.Get(constant.RequestParamRoomID); roomID != constant.Empty {
		filter.Add(gDto.Filter{Field: model.FieldRoomID, Value: roomID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if guestID := query.Get(constant.RequestParamGuestID); guestID != constant.Empty {
		filter.Add(gDto.Filter{
			Field:    model.FieldGuestIDs,
			ArgName:  constant.RequestParamGuestID,
			Value:    guestID,
			Operator: gDto.FilterOperatorAny,
			Table:    model.TableName,
		})
	}

	return filter
}

// CreateBooking reserves a room for one or more guests.
// @Summary Create a new booking
// @Description Books an Available room. The total is nights times the nightly rate.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Booking"
// @Success 201 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /api/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	var req dto.CreateBookingRequest

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetBookings lists bookings.
// @Summary Get all bookings
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Param room_id query string false "Filter by room"
// @Param guest_id query string false "Bookings that include this guest"
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Router /api/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	res, err := handler.service.GetAll(ctx, queryParams, listFilter(request))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetBookingByID returns one booking with guest names and room number.
// @Summary Get booking by ID
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 404 {object} response.Error
// @Router /api/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdateBooking moves the stay dates and reprices the booking.
// @Summary Update booking dates
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdateBookingRequest true "New dates"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/bookings/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBooking")
	defer scope.End()

	var req dto.UpdateBookingRequest

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.UpdateDates(ctx, req, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update booking")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// CancelBooking cancels a confirmed or checked in booking. Only a confirmed booking frees its room.
// @Summary Cancel booking
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/bookings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) CancelBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	if err := handler.service.Cancel(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel booking")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Booking cancelled successfully")
}

// CheckIn marks the guests as arrived.
// @Summary Check in
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/bookings/{id}/checkin [post]
// @Security BearerAuth
func (handler *Handler) CheckIn(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckIn")
	defer scope.End()

	if err := handler.service.CheckIn(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check in")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Checked in successfully")
}

// CheckOut closes the stay and sends the room to cleaning.
// @Summary Check out
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.CheckOutResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/bookings/{id}/checkout [post]
// @Security BearerAuth
func (handler *Handler) CheckOut(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckOut")
	defer scope.End()

	res, err := handler.service.CheckOut(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check out")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
