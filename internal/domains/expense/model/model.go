package model

import (
	"hotel/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "expenses"
	EntityName = "expense"

	FieldID          = "id"
	FieldTitle       = "title"
	FieldCategory    = "category"
	FieldAmount      = "amount"
	FieldDescription = "description"
	FieldDate        = "date"
)

type Expense struct {
	ID          string          `db:"id"`
	Title       string          `db:"title"`
	Category    string          `db:"category"`
	Amount      decimal.Decimal `db:"amount"`
	Description string          `db:"description"`
	Date        string          `db:"date"`
	model.Metadata
}
