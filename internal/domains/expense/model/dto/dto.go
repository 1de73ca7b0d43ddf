package dto

import (
	"sort"

	"hotel/internal/domains/expense/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var SortableFields = []string{
	model.FieldDate,
	model.FieldAmount,
	constant.FieldCreatedAt,
	model.FieldTitle,
	model.FieldCategory,
}

type CreateExpenseRequest struct {
	Title       string          `json:"title"       validate:"required,max=200"`
	Category    string          `json:"category"    validate:"required,max=100"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" validate:"omitempty,max=500"`
	Date        string          `json:"date"        validate:"required,date"`
}

func (c *CreateExpenseRequest) ToModel(user string) model.Expense {
	return model.Expense{
		ID:          uuid.NewString(),
		Title:       c.Title,
		Category:    c.Category,
		Amount:      c.Amount,
		Description: c.Description,
		Date:        c.Date,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateExpenseRequest struct {
	Title       *string          `db:"title"       json:"title"       validate:"omitempty,min=1,max=200"`
	Category    *string          `db:"category"    json:"category"    validate:"omitempty,min=1,max=100"`
	Amount      *decimal.Decimal `db:"amount"      json:"amount"`
	Description *string          `db:"description" json:"description" validate:"omitempty,max=500"`
	Date        *string          `db:"date"        json:"date"        validate:"omitempty,date"`
}

type ExpenseResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	gDto.Metadata
}

func (e *ExpenseResponse) FromModel(model model.Expense) {
	e.ID = model.ID
	e.Title = model.Title
	e.Category = model.Category
	e.Amount = model.Amount
	e.Description = model.Description
	e.Date = model.Date
	e.Metadata = gDto.NewMetadata(model.Metadata)
}

type GetExpensesResponse struct {
	Expenses  []ExpenseResponse `json:"expenses"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (g *GetExpensesResponse) FromModels(models []model.Expense, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Expenses = make([]ExpenseResponse, len(models))
	for i, mod := range models {
		g.Expenses[i].FromModel(mod)
	}
}

type SummaryRequest struct {
	DateFrom string `json:"date_from" validate:"omitempty,date"`
	DateTo   string `json:"date_to"   validate:"omitempty,date"`
}

type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

type SummaryResponse struct {
	DateFrom      string          `json:"date_from,omitempty"`
	DateTo        string          `json:"date_to,omitempty"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	ByCategory    []CategoryTotal `json:"by_category"`
	TotalIncome   decimal.Decimal `json:"total_income"`
	NetProfit     decimal.Decimal `json:"net_profit"`
}

// Summarize totals the expenses per category, sorted by category, and derives the net profit.
func (s *SummaryResponse) Summarize(expenses []model.Expense, income decimal.Decimal) {
	totals := map[string]*CategoryTotal{}

	s.TotalExpenses = decimal.Zero
	for _, expense := range expenses {
		total, ok := totals[expense.Category]
		if !ok {
			total = &CategoryTotal{Category: expense.Category, Total: decimal.Zero}
			totals[expense.Category] = total
		}

		total.Total = total.Total.Add(expense.Amount)
		total.Count++

		s.TotalExpenses = s.TotalExpenses.Add(expense.Amount)
	}

	s.ByCategory = make([]CategoryTotal, 0, len(totals))
	for _, total := range totals {
		s.ByCategory = append(s.ByCategory, *total)
	}

	sort.Slice(s.ByCategory, func(i, j int) bool {
		return s.ByCategory[i].Category < s.ByCategory[j].Category
	})

	s.TotalIncome = income
	s.NetProfit = income.Sub(s.TotalExpenses)
}
