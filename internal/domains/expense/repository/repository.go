package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/expense/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"
)

type Expense interface {
	Insert(ctx context.Context, model model.Expense) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Expense, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Expense, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Expense]
}

func New(db *postgres.Connection, otel otel.Otel) Expense {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Expense](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
