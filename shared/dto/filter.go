package dto

import (
	"fmt"
	"maps"
	"reflect"
	"strings"
)

const (
	FilterOperatorEq        = "eq"
	FilterOperatorLike      = "like"
	FilterOperatorIn        = "in"
	FilterOperatorNotEq     = "not_eq"
	FilterOperatorLessEq    = "less_eq"
	FilterOperatorGreaterEq = "greater_eq"
	FilterIsNotNull         = "is_not_null"
	FilterIsNull            = "is_null"
	FilterOperatorPrefix    = "prefix"
	FilterOperatorAny       = "any"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

// comparisons are the operators rendered as "column <op> :arg".
var comparisons = map[string]string{
	FilterOperatorEq:        "=",
	FilterOperatorNotEq:     "!=",
	FilterOperatorLessEq:    "<=",
	FilterOperatorGreaterEq: ">=",
}

// Clause is anything that renders to a named-parameter SQL predicate.
type Clause interface {
	GetWhereClause() (string, map[string]any)
}

// Filter is a single predicate on one column. ArgName defaults to Field and must be unique
// within a FilterGroup when the same column is constrained twice.
type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string `validate:"required,oneof=eq like in not_eq less_eq greater_eq prefix any is_null is_not_null"`
	Table    string
}

func (f Filter) column() string {
	if f.Table == "" {
		return f.Field
	}

	return f.Table + "." + f.Field
}

func (f Filter) arg() string {
	if f.ArgName == "" {
		return f.Field
	}

	return f.ArgName
}

// GetWhereClause renders the predicate. An unknown operator renders nothing.
func (f Filter) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	column, name := f.column(), f.arg()

	if op, ok := comparisons[f.Operator]; ok {
		args[name] = f.Value

		return fmt.Sprintf("%s %s :%s", column, op, name), args
	}

	switch f.Operator {
	case FilterOperatorLike:
		args[name] = fmt.Sprintf("%%%v%%", f.Value)

		return fmt.Sprintf("%s ILIKE :%s", column, name), args
	case FilterOperatorPrefix:
		args[name] = fmt.Sprintf("%v%%", f.Value)

		return fmt.Sprintf("%s LIKE :%s", column, name), args
	case FilterOperatorAny:
		args[name] = f.Value

		return fmt.Sprintf(":%s = ANY(%s)", name, column), args
	case FilterOperatorIn:
		return f.inClause(column, name, args)
	case FilterIsNull:
		return column + " IS NULL", args
	case FilterIsNotNull:
		return column + " IS NOT NULL", args
	default:
		return "", args
	}
}

// inClause expands a slice into one named argument per element. An empty slice matches nothing.
func (f Filter) inClause(column, name string, args map[string]any) (string, map[string]any) {
	values := reflect.ValueOf(f.Value)
	if kind := values.Kind(); kind != reflect.Slice && kind != reflect.Array {
		args[name] = f.Value

		return fmt.Sprintf("%s IN (:%s)", column, name), args
	}

	if values.Len() == 0 {
		return "FALSE", args
	}

	placeholders := make([]string, values.Len())
	for i := range values.Len() {
		key := fmt.Sprintf("%s_%d", name, i)
		args[key] = values.Index(i).Interface()
		placeholders[i] = ":" + key
	}

	return fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholders, ", ")), args
}

// FilterGroup joins Filters and nested FilterGroups with Operator, AND when unset.
// Members that render empty are skipped.
type FilterGroup struct {
	Filters  []any
	Operator string
}

// Add appends filters to the group and returns it for chaining.
func (f *FilterGroup) Add(filters ...any) *FilterGroup {
	f.Filters = append(f.Filters, filters...)

	return f
}

func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	parts := make([]string, 0, len(f.Filters))

	for _, member := range f.Filters {
		var clause Clause

		switch m := member.(type) {
		case Filter:
			clause = m
		case FilterGroup:
			clause = &m
		case Clause:
			clause = m
		default:
			continue
		}

		where, memberArgs := clause.GetWhereClause()
		if strings.TrimSpace(where) == "" {
			continue
		}

		parts = append(parts, where)
		maps.Copy(args, memberArgs)
	}

	if len(parts) == 0 {
		return "", args
	}

	operator := f.Operator
	if operator == "" {
		operator = FilterGroupOperatorAnd
	}

	return "(" + strings.Join(parts, " "+operator+" ") + ")", args
}
