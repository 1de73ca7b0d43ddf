package repository

//go:generate go run go.uber.org/mock/mockgen -source=./transaction.go -destination=./mocks/transaction_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/shared/constant"
	"hotel/shared/logger"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// Transactor runs a unit of work inside a single write transaction.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

type transactorImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func NewTransactor(db *postgres.Connection, otel otel.Otel) Transactor {
	return &transactorImpl{
		db:   db,
		otel: otel,
	}
}

// WithTransaction commits when fn returns nil and rolls back otherwise, including on panic.
func (t *transactorImpl) WithTransaction(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	ctx, scope := t.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".WithTransaction")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tx, err := t.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}
	}()

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("failed to rollback transaction")
		}

		return err
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
