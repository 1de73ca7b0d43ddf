package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/otel/mocks"
	bookingMocks "hotel/internal/domains/booking/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	expenseMocks "hotel/internal/domains/expense/mocks"
	"hotel/internal/domains/expense/model"
	"hotel/internal/domains/expense/model/dto"
	"hotel/internal/domains/expense/service"
	"hotel/shared/cache/cachetest"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
)

func newService(t *testing.T) (service.Expense, *expenseMocks.MockExpense, *bookingMocks.MockBooking) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := expenseMocks.NewMockExpense(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	redisCache, _ := cachetest.New(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	return service.New(mockRepo, mockBookingRepo, cfg, redisCache, mocks.NewOtel()), mockRepo, mockBookingRepo
}

func userContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUsername, "accountant")
}

func amount(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)

	return &d
}

func TestExpenseService_Create(t *testing.T) {
	t.Run("records the acting user", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, expense model.Expense) error {
			assert.Equal(t, "accountant", expense.CreatedBy)
			assert.NotEmpty(t, expense.ID)

			return nil
		})

		res, err := svc.Create(userContext(), dto.CreateExpenseRequest{
			Title:    "Laundry",
			Category: "Housekeeping",
			Amount:   decimal.NewFromInt(120),
			Date:     "2025-01-10",
		})

		require.NoError(t, err)
		assert.Equal(t, "Laundry", res.Title)
		assert.True(t, decimal.NewFromInt(120).Equal(res.Amount))
	})

	t.Run("negative amount", func(t *testing.T) {
		svc, _, _ := newService(t)

		_, err := svc.Create(userContext(), dto.CreateExpenseRequest{Title: "Refund", Category: "Misc", Amount: decimal.NewFromInt(-1), Date: "2025-01-10"})

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("repository error", func(t *testing.T) {
		svc, repo, _ := newService(t)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))

		_, err := svc.Create(userContext(), dto.CreateExpenseRequest{Title: "Laundry", Category: "Housekeeping", Date: "2025-01-10"})

		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestExpenseService_GetAll(t *testing.T) {
	svc, repo, _ := newService(t)

	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(12, nil)
	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Expense, error) {
			assert.Equal(t, model.FieldDate, params.SortBy, "unknown sort keys fall back to date")
			assert.Equal(t, gDto.SortDirDesc, params.SortDir)

			return []model.Expense{{ID: "e-1", Title: "Laundry"}}, nil
		})

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10, SortBy: "password"}, gDto.FilterGroup{})

	require.NoError(t, err)
	assert.Equal(t, 12, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	require.Len(t, res.Expenses, 1)
}

func TestExpenseService_Get(t *testing.T) {
	svc, repo, _ := newService(t)
	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Expense{}, nil)

	_, err := svc.Get(context.Background(), "missing")

	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestExpenseService_Update(t *testing.T) {
	title := "Dry cleaning"

	tests := []struct {
		name      string
		req       dto.UpdateExpenseRequest
		setupMock func(repo *expenseMocks.MockExpense)
		wantCode  int
	}{
		{
			name:      "empty payload",
			req:       dto.UpdateExpenseRequest{},
			setupMock: func(_ *expenseMocks.MockExpense) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "negative amount",
			req:       dto.UpdateExpenseRequest{Amount: amount("-5")},
			setupMock: func(_ *expenseMocks.MockExpense) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "missing expense",
			req:  dto.UpdateExpenseRequest{Title: &title},
			setupMock: func(repo *expenseMocks.MockExpense) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "updates changed fields",
			req:  dto.UpdateExpenseRequest{Title: &title, Amount: amount("80.25")},
			setupMock: func(repo *expenseMocks.MockExpense) {
				gomock.InOrder(
					repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil),
					repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
						DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
							assert.Equal(t, title, fields[model.FieldTitle])
							assert.Equal(t, *amount("80.25"), fields[model.FieldAmount])
							assert.NotContains(t, fields, model.FieldCategory)

							return nil
						}),
					repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Expense{ID: "e-1", Title: title}, nil),
				)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService(t)
			tt.setupMock(repo)

			res, err := svc.Update(userContext(), tt.req, "e-1")

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, title, res.Title)
		})
	}
}

func TestExpenseService_Delete(t *testing.T) {
	t.Run("missing expense", func(t *testing.T) {
		svc, repo, _ := newService(t)
		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(svc.Delete(context.Background(), "missing")))
	})

	t.Run("deletes", func(t *testing.T) {
		svc, repo, _ := newService(t)
		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, svc.Delete(context.Background(), "e-1"))
	})
}

func TestExpenseService_Summary(t *testing.T) {
	t.Run("invalid range bound", func(t *testing.T) {
		svc, _, _ := newService(t)

		_, err := svc.Summary(context.Background(), dto.SummaryRequest{DateFrom: "01/01/2025"})

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("totals by category and nets against income", func(t *testing.T) {
		svc, repo, bookingRepo := newService(t)

		repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Expense, error) {
				assert.Equal(t, constant.DefaultValueFetchLimit, params.Limit)

				_, args := filter.GetWhereClause()
				assert.Equal(t, "2025-01-01", args["date_from"])
				assert.Equal(t, "2025-01-31", args["date_to"])

				return []model.Expense{
					{Category: "Utilities", Amount: decimal.NewFromInt(300)},
					{Category: "Housekeeping", Amount: decimal.NewFromInt(120)},
					{Category: "Utilities", Amount: decimal.NewFromInt(80)},
				}, nil
			})
		bookingRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]bookingModel.Booking, error) {
				where, args := filter.GetWhereClause()
				assert.Equal(t, "2025-01-01", args["checked_in_at_from"])
				assert.Contains(t, where, "IS NOT NULL")

				return []bookingModel.Booking{
					{TotalPrice: decimal.NewFromInt(1000)},
					{TotalPrice: decimal.NewFromInt(200)},
				}, nil
			})

		res, err := svc.Summary(context.Background(), dto.SummaryRequest{DateFrom: "2025-01-01", DateTo: "2025-01-31"})

		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(500).Equal(res.TotalExpenses))
		assert.True(t, decimal.NewFromInt(1200).Equal(res.TotalIncome))
		assert.True(t, decimal.NewFromInt(700).Equal(res.NetProfit))

		require.Len(t, res.ByCategory, 2)
		assert.Equal(t, "Housekeeping", res.ByCategory[0].Category)
		assert.Equal(t, "Utilities", res.ByCategory[1].Category)
		assert.Equal(t, 2, res.ByCategory[1].Count)
		assert.True(t, decimal.NewFromInt(380).Equal(res.ByCategory[1].Total))
	})

	t.Run("no data", func(t *testing.T) {
		svc, repo, bookingRepo := newService(t)

		repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		bookingRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := svc.Summary(context.Background(), dto.SummaryRequest{})

		require.NoError(t, err)
		assert.Empty(t, res.ByCategory)
		assert.True(t, decimal.Zero.Equal(res.NetProfit))
	})
}
