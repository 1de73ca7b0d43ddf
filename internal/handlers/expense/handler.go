package expense

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/expense/model"
	"hotel/internal/domains/expense/model/dto"
	"hotel/internal/domains/expense/service"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Expense
	otel    otel.Otel
}

func New(service service.Expense, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/expenses", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateExpense)
		routerGroup.Get("/", handler.GetExpenses)
		routerGroup.Get("/summary/stats", handler.GetSummary)
		routerGroup.Get("/{id}", handler.GetExpenseByID)
		routerGroup.Put("/{id}", handler.UpdateExpense)
		routerGroup.Delete("/{id}", handler.DeleteExpense)
	})
}

// CreateExpense records an expense.
// @Summary Create a new expense
// @Tags Expense
// @Accept json
// @Produce json
// @Param request body dto.CreateExpenseRequest true "Expense"
// @Success 201 {object} response.Data[dto.ExpenseResponse]
// @Failure 400 {object} response.Error
// @Router /api/expenses [post]
// @Security BearerAuth
func (handler *Handler) CreateExpense(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateExpense")
	defer scope.End()

	var req dto.CreateExpenseRequest

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create expense")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetExpenses lists expenses.
// @Summary Get all expenses
// @Tags Expense
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param category query string false "Filter by category"
// @Param date_from query string false "On or after (YYYY-MM-DD)"
// @Param date_to query string false "On or before (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetExpensesResponse]
// @Router /api/expenses [get]
// @Security BearerAuth
func (handler *Handler) GetExpenses(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetExpenses")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	query := request.URL.Query()
	filter := gDto.FilterGroup{}

	if category := query.Get(constant.RequestParamCategory); category != constant.Empty {
		filter.Add(gDto.Filter{Field: model.FieldCategory, Value: category, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	filter.Add(shared.FilterByRange(model.FieldDate, model.TableName, query.Get(constant.RequestParamDateFrom), query.Get(constant.RequestParamDateTo)))

	res, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get expenses")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetSummary totals expenses by category against booking income.
// @Summary Expense summary
// @Tags Expense
// @Produce json
// @Param date_from query string false "On or after (YYYY-MM-DD)"
// @Param date_to query string false "On or before (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.SummaryResponse]
// @Failure 400 {object} response.Error
// @Router /api/expenses/summary/stats [get]
// @Security BearerAuth
func (handler *Handler) GetSummary(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSummary")
	defer scope.End()

	query := request.URL.Query()

	res, err := handler.service.Summary(ctx, dto.SummaryRequest{
		DateFrom: query.Get(constant.RequestParamDateFrom),
		DateTo:   query.Get(constant.RequestParamDateTo),
	})
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetExpenseByID returns one expense.
// @Summary Get expense by ID
// @Tags Expense
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} response.Data[dto.ExpenseResponse]
// @Failure 404 {object} response.Error
// @Router /api/expenses/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetExpenseByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetExpenseByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdateExpense changes an expense.
// @Summary Update expense
// @Tags Expense
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param request body dto.UpdateExpenseRequest true "Fields to change"
// @Success 200 {object} response.Data[dto.ExpenseResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/expenses/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateExpense(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateExpense")
	defer scope.End()

	var req dto.UpdateExpenseRequest

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Update(ctx, req, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update expense")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// DeleteExpense removes an expense.
// @Summary Delete expense
// @Tags Expense
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /api/expenses/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteExpense(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteExpense")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete expense")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Expense deleted successfully")
}
