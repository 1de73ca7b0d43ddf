package report

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/report/model/dto"
	"hotel/internal/domains/report/service"
	"hotel/shared/constant"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Report
	otel    otel.Otel
}

func New(service service.Report, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/dashboard/stats", handler.GetDashboardStats)

	router.Route("/reports", func(routerGroup chi.Router) {
		routerGroup.Get("/daily", handler.GetDailyReport)
		routerGroup.Get("/monthly", handler.GetMonthlyReport)
		routerGroup.Get("/monthly/export", handler.ExportMonthlyReport)
		routerGroup.Get("/revenue", handler.GetRevenue)
	})
}

// GetDashboardStats returns the live room and booking counters.
// @Summary Dashboard statistics
// @Tags Report
// @Produce json
// @Success 200 {object} response.Data[dto.DashboardStatsResponse]
// @Router /api/dashboard/stats [get]
// @Security BearerAuth
func (handler *Handler) GetDashboardStats(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDashboardStats")
	defer scope.End()

	res, err := handler.service.DashboardStats(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get dashboard stats")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetDailyReport returns the check-ins and revenue of one day.
// @Summary Daily report
// @Tags Report
// @Produce json
// @Param date query string false "Day (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Data[dto.DailyReportResponse]
// @Failure 400 {object} response.Error
// @Router /api/reports/daily [get]
// @Security BearerAuth
func (handler *Handler) GetDailyReport(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDailyReport")
	defer scope.End()

	res, err := handler.service.Daily(ctx, dto.DailyRequest{Date: request.URL.Query().Get(constant.RequestParamDate)})
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetMonthlyReport returns the check-ins and revenue of one month.
// @Summary Monthly report
// @Tags Report
// @Produce json
// @Param month query string false "Month (YYYY-MM), defaults to the current month"
// @Success 200 {object} response.Data[dto.MonthlyReportResponse]
// @Failure 400 {object} response.Error
// @Router /api/reports/monthly [get]
// @Security BearerAuth
func (handler *Handler) GetMonthlyReport(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMonthlyReport")
	defer scope.End()

	res, err := handler.service.Monthly(ctx, dto.MonthlyRequest{Month: request.URL.Query().Get(constant.RequestParamMonth)})
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// ExportMonthlyReport renders the monthly report as a spreadsheet and uploads it.
// @Summary Export monthly report
// @Tags Report
// @Produce json
// @Param month query string false "Month (YYYY-MM), defaults to the current month"
// @Success 200 {object} response.Data[dto.ExportResponse]
// @Failure 400 {object} response.Error
// @Router /api/reports/monthly/export [get]
// @Security BearerAuth
func (handler *Handler) ExportMonthlyReport(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExportMonthlyReport")
	defer scope.End()

	res, err := handler.service.ExportMonthly(ctx, dto.MonthlyRequest{Month: request.URL.Query().Get(constant.RequestParamMonth)})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to export monthly report")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetRevenue returns twelve monthly revenue totals.
// @Summary Yearly revenue
// @Tags Report
// @Produce json
// @Param year query string false "Year (YYYY), defaults to the current year"
// @Success 200 {object} response.Data[[]dto.MonthRevenue]
// @Failure 400 {object} response.Error
// @Router /api/reports/revenue [get]
// @Security BearerAuth
func (handler *Handler) GetRevenue(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRevenue")
	defer scope.End()

	res, err := handler.service.Revenue(ctx, dto.RevenueRequest{Year: request.URL.Query().Get(constant.RequestParamYear)})
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
