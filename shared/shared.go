package shared

import (
	"context"
	"encoding/json"
	"fmt"
	"hotel/shared/cache"
	"hotel/shared/constant"
	"hotel/shared/dto"
	"hotel/shared/timezone"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

func ConvertStringToBool(value string) *bool {
	if value == "" {
		return nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to bool")

		return nil
	}

	return &boolValue
}

func ConvertStringToInt(value string) (int, error) {
	res, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("failed to convert string to int: %w", err)
	}

	return res, nil
}

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// TransformFields converts the non-zero db-tagged fields of a struct into a map of updated fields.
// Pointer fields are dereferenced so that explicit zero values can still be written.
func TransformFields(data any, username string) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" {
			continue
		}

		if field.Kind() == reflect.Pointer {
			updatedFields[fieldName] = field.Elem().Interface()

			continue
		}

		updatedFields[fieldName] = field.Interface()
	}

	updatedFields[constant.FieldModifiedAt] = timezone.Now()
	updatedFields[constant.FieldModifiedBy] = username

	return updatedFields
}

// HasChanges reports whether a payload built by TransformFields carries anything besides the audit columns.
func HasChanges(fields map[string]any) bool {
	for key := range fields {
		if key != constant.FieldModifiedAt && key != constant.FieldModifiedBy {
			return true
		}
	}

	return false
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

func FilterByIDs(ids []string, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    ids,
				Operator: dto.FilterOperatorIn,
				Table:    table,
			},
		},
	}
}

// FilterByRange bounds field by the inclusive range; an empty bound is left open.
func FilterByRange(field, table, from, to string) dto.FilterGroup {
	filter := dto.FilterGroup{}

	if from != constant.Empty {
		filter.Add(dto.Filter{Field: field, ArgName: field + "_from", Value: from, Operator: dto.FilterOperatorGreaterEq, Table: table})
	}

	if to != constant.Empty {
		filter.Add(dto.Filter{Field: field, ArgName: field + "_to", Value: to, Operator: dto.FilterOperatorLessEq, Table: table})
	}

	return filter
}

// BuildCacheKey joins the prefix and parts with ':'.
func BuildCacheKey(prefix string, parts ...string) string {
	if len(parts) == 0 {
		return prefix
	}

	return prefix + ":" + strings.Join(parts, ":")
}

// BuildCacheKeyWithQuery derives a deterministic key from the query params and filter.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	raw, err := json.Marshal(args)
	if err != nil {
		raw = []byte(fmt.Sprintf("%v", args))
	}

	return BuildCacheKey(
		prefix,
		strconv.Itoa(params.Page),
		strconv.Itoa(params.Limit),
		params.SortBy,
		params.SortDir,
		where,
		string(raw),
	)
}

// InvalidateCaches removes every key under prefix. Failures are logged only.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}
