package guest

import (
	"net/http"

	"hotel/infras/otel"
	archiveDto "hotel/internal/domains/archive/model/dto"
	archiveService "hotel/internal/domains/archive/service"
	"hotel/internal/domains/guest/model/dto"
	"hotel/internal/domains/guest/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Guest
	archive archiveService.Archive
	otel    otel.Otel
}

func New(service service.Guest, archive archiveService.Archive, otel otel.Otel) Handler {
	return Handler{
		service: service,
		archive: archive,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/guests", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateGuest)
		routerGroup.Get("/", handler.GetGuests)
		routerGroup.Get("/archive", handler.GetArchive)
		routerGroup.Get("/{id}", handler.GetGuestByID)
		routerGroup.Put("/{id}", handler.UpdateGuest)
		routerGroup.Get("/{id}/history", handler.GetGuestHistory)
	})
}

// CreateGuest registers a guest.
// @Summary Create a new guest
// @Tags Guest
// @Accept json
// @Produce json
// @Param request body dto.CreateGuestRequest true "Guest"
// @Success 201 {object} response.Data[dto.GuestResponse]
// @Failure 400 {object} response.Error
// @Router /api/guests [post]
// @Security BearerAuth
func (handler *Handler) CreateGuest(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateGuest")
	defer scope.End()

	var req dto.CreateGuestRequest

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create guest")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetGuests lists guests, optionally matching q against name, phone and document numbers.
// @Summary Get all guests
// @Tags Guest
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param q query string false "Search text"
// @Success 200 {object} response.Data[dto.GetGuestsResponse]
// @Router /api/guests [get]
// @Security BearerAuth
func (handler *Handler) GetGuests(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGuests")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	res, err := handler.service.GetAll(ctx, queryParams, dto.SearchFilter(request.URL.Query().Get(constant.RequestParamQuery)))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get guests")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetGuestByID returns one guest.
// @Summary Get guest by ID
// @Tags Guest
// @Produce json
// @Param id path string true "Guest ID"
// @Success 200 {object} response.Data[dto.GuestResponse]
// @Failure 404 {object} response.Error
// @Router /api/guests/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetGuestByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGuestByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdateGuest changes guest details.
// @Summary Update guest
// @Tags Guest
// @Accept json
// @Produce json
// @Param id path string true "Guest ID"
// @Param request body dto.UpdateGuestRequest true "Fields to change"
// @Success 200 {object} response.Data[dto.GuestResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/guests/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateGuest(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateGuest")
	defer scope.End()

	var req dto.UpdateGuestRequest

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Update(ctx, req, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update guest")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetArchive returns one row per guest per booking.
// @Summary Guest stay archive
// @Tags Guest
// @Produce json
// @Param guest_id query string false "Only this guest"
// @Param status query string false "Booking status or alias"
// @Param date_from query string false "Check-in on or after (YYYY-MM-DD)"
// @Param date_to query string false "Check-in on or before (YYYY-MM-DD)"
// @Param q query string false "Search guest name, phone, document or room"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[archiveDto.ArchiveResponse]
// @Failure 400 {object} response.Error
// @Router /api/guests/archive [get]
// @Security BearerAuth
func (handler *Handler) GetArchive(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetArchive")
	defer scope.End()

	req := archiveDto.ArchiveRequest{}
	req.FromRequest(request)

	res, err := handler.archive.List(ctx, req)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetGuestHistory returns the archive rows of a single guest.
// @Summary Guest stay history
// @Tags Guest
// @Produce json
// @Param id path string true "Guest ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[archiveDto.ArchiveResponse]
// @Failure 404 {object} response.Error
// @Router /api/guests/{id}/history [get]
// @Security BearerAuth
func (handler *Handler) GetGuestHistory(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGuestHistory")
	defer scope.End()

	req := archiveDto.ArchiveRequest{}
	req.FromRequest(request)

	res, err := handler.archive.GuestHistory(ctx, chi.URLParam(request, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
