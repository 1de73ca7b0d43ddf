package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/shared/constant"
	"hotel/shared/dto"
	"hotel/shared/logger"
	"reflect"
	"slices"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

var errRequiredFilter = errors.New("required filter")

// setArgPrefix keeps SET arguments apart from WHERE arguments bound to the same column.
const setArgPrefix = "set_"

type execer interface {
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
}

// Repository is a table gateway for models whose fields carry `db` tags.
// Embedded structs (such as dto.Metadata) contribute their columns too.
type Repository[T any] struct {
	db         *postgres.Connection
	otel       otel.Otel
	entity     string
	table      string
	key        string
	columns    []string
	insertStmt string
}

func NewRepository[T any](entity, table, key string, db *postgres.Connection, otl otel.Otel) Repository[T] {
	columns := dbColumns(reflect.TypeFor[T]())

	return Repository[T]{
		db:         db,
		otel:       otl,
		entity:     entity,
		table:      table,
		key:        key,
		columns:    columns,
		insertStmt: insertQuery(table, columns),
	}
}

func (repo *Repository[T]) span(ctx context.Context, op string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+repo.entity+"."+op)
}

// fail records err on the scope and wraps it with the operation and entity.
func (repo *Repository[T]) fail(scope otel.Scope, action string, err error) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s (%s): %w", action, repo.entity, err)
}

// queryOne scans a single row into dest. sql.ErrNoRows is returned unwrapped.
func (repo *Repository[T]) queryOne(ctx context.Context, scope otel.Scope, query string, args map[string]any, dest any) error {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	stmt, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		return repo.fail(scope, "prepare statement", err)
	}
	defer stmt.Close()

	err = stmt.GetContext(ctx, dest, args)
	if errors.Is(err, sql.ErrNoRows) {
		return err
	}

	if err != nil {
		return repo.fail(scope, "query", err)
	}

	return nil
}

func (repo *Repository[T]) exec(ctx context.Context, scope otel.Scope, exec execer, action, query string, arg any) (sql.Result, error) {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := exec.NamedExecContext(ctx, query, arg)
	if err != nil {
		return nil, repo.fail(scope, action, err)
	}

	return result, nil
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	return repo.InsertTx(ctx, nil, model)
}

// InsertTx inserts model inside sqltx, or on the write pool when sqltx is nil.
func (repo *Repository[T]) InsertTx(ctx context.Context, sqltx *sqlx.Tx, model T) error {
	ctx, scope := repo.span(ctx, "Insert")
	defer scope.End()

	_, err := repo.exec(ctx, scope, repo.writer(sqltx), "insert data", repo.insertStmt, model)

	return err
}

func (repo *Repository[T]) InsertBulk(ctx context.Context, models []T) error {
	return repo.InsertBulkTx(ctx, nil, models)
}

func (repo *Repository[T]) InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []T) error {
	ctx, scope := repo.span(ctx, "InsertBulk")
	defer scope.End()

	if len(models) == 0 {
		return nil
	}

	scope.SetAttribute("rows", len(models))

	_, err := repo.exec(ctx, scope, repo.writer(sqltx), "bulk insert data", repo.insertStmt, models)

	return err
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.span(ctx, "Exist")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return false, errRequiredFilter
	}

	var exist bool

	err := repo.queryOne(ctx, scope, fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s%s)", repo.table, where), args, &exist)
	if err != nil {
		return false, err
	}

	return exist, nil
}

// Get returns the first row matching filter, or the zero model when nothing matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	ctx, scope := repo.span(ctx, "Get")
	defer scope.End()

	var model T

	where, args := repo.BuildWhereClause(ctx, filter)
	query := fmt.Sprintf("SELECT %s FROM %s%s", repo.selectList(columns), repo.table, where)

	err := repo.queryOne(ctx, scope, query, args, &model)
	if errors.Is(err, sql.ErrNoRows) {
		var zero T

		return zero, nil
	}

	return model, err
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.span(ctx, "GetAll")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)

	var query strings.Builder

	fmt.Fprintf(&query, "SELECT %s FROM %s%s", repo.selectList(columns), repo.table, where)

	if params.SortBy != "" && params.SortDir != "" {
		fmt.Fprintf(&query, " ORDER BY %s %s", params.SortBy, params.SortDir)
	}

	if params.Limit > 0 {
		args["limit"] = params.Limit
		args["offset"] = params.Offset()

		query.WriteString(" LIMIT :limit OFFSET :offset")
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query.String())

	stmt, err := repo.db.Read.PrepareNamedContext(ctx, query.String())
	if err != nil {
		return nil, repo.fail(scope, "prepare statement", err)
	}
	defer stmt.Close()

	models := []T{}

	if err = stmt.SelectContext(ctx, &models, args); err != nil {
		return nil, repo.fail(scope, "get all data", err)
	}

	return models, nil
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.span(ctx, "Count")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)

	var count int

	err := repo.queryOne(ctx, scope, fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s%s", repo.table, repo.key, repo.table, where), args, &count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	return repo.DeleteTx(ctx, nil, filter)
}

func (repo *Repository[T]) DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) error {
	ctx, scope := repo.span(ctx, "Delete")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return errRequiredFilter
	}

	_, err := repo.exec(ctx, scope, repo.writer(sqltx), "delete data", "DELETE FROM "+repo.table+where, args)

	return err
}

func (repo *Repository[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error {
	_, err := repo.update(ctx, nil, mod, filter)

	return err
}

func (repo *Repository[T]) UpdateTx(ctx context.Context, sqltx *sqlx.Tx, mod map[string]any, filter dto.FilterGroup) error {
	_, err := repo.update(ctx, sqltx, mod, filter)

	return err
}

// CompareAndUpdateTx applies mod to the rows matched by filter and reports whether any row matched.
// Callers put the expected current state into filter to get compare-and-swap semantics.
func (repo *Repository[T]) CompareAndUpdateTx(ctx context.Context, sqltx *sqlx.Tx, mod map[string]any, filter dto.FilterGroup) (bool, error) {
	affected, err := repo.update(ctx, sqltx, mod, filter)
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (repo *Repository[T]) update(ctx context.Context, sqltx *sqlx.Tx, mod map[string]any, filter dto.FilterGroup) (int64, error) {
	ctx, scope := repo.span(ctx, "Update")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return 0, errRequiredFilter
	}

	query := fmt.Sprintf("UPDATE %s SET %s%s", repo.table, setClause(mod, args), where)

	result, err := repo.exec(ctx, scope, repo.writer(sqltx), "update data", query, args)
	if err != nil {
		return 0, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, repo.fail(scope, "read affected rows", err)
	}

	scope.SetAttribute("rows_affected", affected)

	return affected, nil
}

// BuildWhereClause renders filter as " WHERE ..." with its named arguments.
// An empty filter yields an empty clause and a fresh argument map.
func (repo *Repository[T]) BuildWhereClause(_ context.Context, filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()
	if where == "" {
		return "", map[string]any{}
	}

	return " WHERE " + where, args
}

func (repo *Repository[T]) writer(sqltx *sqlx.Tx) execer {
	if sqltx != nil {
		return sqltx
	}

	return repo.db.Write
}

// selectList qualifies the model columns with the table, restricted to only when given.
func (repo *Repository[T]) selectList(only []string) string {
	list := make([]string, 0, len(repo.columns))

	for _, col := range repo.columns {
		if len(only) > 0 && !slices.Contains(only, col) {
			continue
		}

		list = append(list, repo.table+"."+col)
	}

	return strings.Join(list, ", ")
}

func insertQuery(table string, columns []string) string {
	placeholders := make([]string, len(columns))
	for i, col := range columns {
		placeholders[i] = ":" + col
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))
}

// setClause renders mod as sorted assignments and binds each value into args under setArgPrefix.
func setClause(mod map[string]any, args map[string]any) string {
	assignments := make([]string, 0, len(mod))

	for col, value := range mod {
		args[setArgPrefix+col] = value
		assignments = append(assignments, col+" = :"+setArgPrefix+col)
	}

	sort.Strings(assignments)

	return strings.Join(assignments, ", ")
}

func dbColumns(typ reflect.Type) []string {
	var columns []string

	for i := range typ.NumField() {
		field := typ.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			columns = append(columns, dbColumns(field.Type)...)

			continue
		}

		if tag := field.Tag.Get("db"); tag != "" && tag != "-" {
			columns = append(columns, tag)
		}
	}

	return columns
}
