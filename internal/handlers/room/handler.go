package room

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Room
	otel    otel.Otel
}

func New(service service.Room, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRoom)
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Get("/{id}", handler.GetRoomByID)
		routerGroup.Put("/{id}", handler.UpdateRoom)
		routerGroup.Delete("/{id}", handler.DeleteRoom)
		routerGroup.Post("/{id}/mark-cleaning", handler.MarkCleaning)
		routerGroup.Post("/{id}/mark-available", handler.MarkAvailable)
	})
}

// CreateRoom handles the creation of a new room.
// @Summary Create a new room
// @Description Create a room. The status defaults to Available.
// @Tags Room
// @Accept json
// @Produce json
// @Param request body dto.CreateRoomRequest true "Room"
// @Success 201 {object} response.Data[dto.RoomResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/rooms [post]
// @Security BearerAuth
func (handler *Handler) CreateRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	var req dto.CreateRoomRequest

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetRooms lists rooms.
// @Summary Get all rooms
// @Description List rooms with optional status and type filters, pagination and sorting.
// @Tags Room
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Param room_type query string false "Filter by room type"
// @Success 200 {object} response.Data[dto.GetRoomsResponse]
// @Failure 500 {object} response.Error
// @Router /api/rooms [get]
// @Security BearerAuth
func (handler *Handler) GetRooms(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	filter := gDto.FilterGroup{}

	if status := request.URL.Query().Get(constant.RequestParamStatus); status != constant.Empty {
		filter.Add(gDto.Filter{Field: model.FieldStatus, Value: status, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if roomType := request.URL.Query().Get(constant.RequestParamRoomType); roomType != constant.Empty {
		filter.Add(gDto.Filter{Field: model.FieldRoomType, Value: roomType, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	res, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetRoomByID returns one room.
// @Summary Get room by ID
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Data[dto.RoomResponse]
// @Failure 404 {object} response.Error
// @Router /api/rooms/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetRoomByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdateRoom changes room attributes.
// @Summary Update room
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body dto.UpdateRoomRequest true "Fields to change"
// @Success 200 {object} response.Data[dto.RoomResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/rooms/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	var req dto.UpdateRoomRequest

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Update(ctx, req, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update room")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// DeleteRoom removes a room.
// @Summary Delete room
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /api/rooms/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoom")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete room")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Room deleted successfully")
}

// MarkCleaning puts a room into housekeeping.
// @Summary Mark room as cleaning
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /api/rooms/{id}/mark-cleaning [post]
// @Security BearerAuth
func (handler *Handler) MarkCleaning(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MarkCleaning")
	defer scope.End()

	if err := handler.service.MarkCleaning(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Room marked as cleaning")
}

// MarkAvailable returns a room to the pool.
// @Summary Mark room as available
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /api/rooms/{id}/mark-available [post]
// @Security BearerAuth
func (handler *Handler) MarkAvailable(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MarkAvailable")
	defer scope.End()

	if err := handler.service.MarkAvailable(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Room marked as available")
}
