package shared_test

import (
	"context"
	"hotel/infras/otel/mocks"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	"hotel/shared/dto"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool {
	return &b
}

func intPtr(i int) *int {
	return &i
}

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{name: "empty string returns nil", input: "", expected: nil},
		{name: "true", input: "true", expected: boolPtr(true)},
		{name: "false", input: "false", expected: boolPtr(false)},
		{name: "numeric true", input: "1", expected: boolPtr(true)},
		{name: "upper case false", input: "FALSE", expected: boolPtr(false)},
		{name: "garbage returns nil", input: "maybe", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestConvertStringToInt(t *testing.T) {
	value, err := shared.ConvertStringToInt(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, 42, value)

	_, err = shared.ConvertStringToInt("forty-two")
	assert.Error(t, err)
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "zero total returns 1", total: 0, limit: 10, expected: 1},
		{name: "zero limit returns 1", total: 100, limit: 0, expected: 1},
		{name: "exact division", total: 100, limit: 10, expected: 10},
		{name: "division with remainder", total: 101, limit: 10, expected: 11},
		{name: "limit greater than total", total: 5, limit: 50, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type updateRoom struct {
		RoomNumber string  `db:"room_number"`
		Capacity   *int    `db:"capacity"`
		Status     string  `db:"status"`
		Note       *string `db:"description"`
		Untracked  string
	}

	result := shared.TransformFields(updateRoom{
		RoomNumber: "301",
		Capacity:   intPtr(0),
		Untracked:  "ignored",
	}, "admin")

	assert.Equal(t, "301", result["room_number"])
	assert.Equal(t, 0, result["capacity"], "explicit zero behind a pointer is kept")
	assert.NotContains(t, result, "status")
	assert.NotContains(t, result, "description")
	assert.NotContains(t, result, "Untracked")
	assert.Equal(t, "admin", result[constant.FieldModifiedBy])
	assert.IsType(t, time.Time{}, result[constant.FieldModifiedAt])
	assert.True(t, shared.HasChanges(result))
}

func TestHasChanges(t *testing.T) {
	type empty struct {
		Status string `db:"status"`
	}

	assert.False(t, shared.HasChanges(shared.TransformFields(empty{}, "admin")))
	assert.True(t, shared.HasChanges(map[string]any{"status": "Cleaning"}))
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID("room-1", "id", "rooms")
	where, args := filter.GetWhereClause()

	assert.Equal(t, "(rooms.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "room-1"}, args)
}

func TestFilterByIDs(t *testing.T) {
	filter := shared.FilterByIDs([]string{"g-1", "g-2"}, "id", "guests")
	where, args := filter.GetWhereClause()

	assert.Equal(t, "(guests.id IN (:id_0, :id_1))", where)
	assert.Equal(t, map[string]any{"id_0": "g-1", "id_1": "g-2"}, args)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "room:get", shared.BuildCacheKey("room:get"))
	assert.Equal(t, "room:get:abc", shared.BuildCacheKey("room:get", "abc"))
	assert.Equal(t, "limiter:1.1.1.1:curl", shared.BuildCacheKey("limiter", "1.1.1.1", "curl"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10, SortBy: "created_at", SortDir: dto.SortDirDesc}
	available := shared.FilterByID(constant.RoomStatusAvailable, "status", "rooms")
	cleaning := shared.FilterByID(constant.RoomStatusCleaning, "status", "rooms")

	first := shared.BuildCacheKeyWithQuery("room:gets", params, available)
	second := shared.BuildCacheKeyWithQuery("room:gets", params, available)
	other := shared.BuildCacheKeyWithQuery("room:gets", params, cleaning)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.Contains(t, first, "room:gets:1:10:created_at:DESC")
}

func TestInvalidateCaches(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	redisCache := cache.NewRedisCache(client, mocks.NewOtel())

	ctx := context.Background()

	require.NoError(t, server.Set("room:gets:1", "a"))
	require.NoError(t, server.Set("room:gets:2", "b"))
	require.NoError(t, server.Set("guest:gets:1", "c"))

	shared.InvalidateCaches(ctx, redisCache, "room:gets")

	assert.False(t, server.Exists("room:gets:1"))
	assert.False(t, server.Exists("room:gets:2"))
	assert.True(t, server.Exists("guest:gets:1"))
}

func TestFilterByRange(t *testing.T) {
	full := shared.FilterByRange("date", "expenses", "2025-01-01", "2025-01-31")
	where, args := full.GetWhereClause()
	assert.Equal(t, "(expenses.date >= :date_from AND expenses.date <= :date_to)", where)
	assert.Equal(t, map[string]any{"date_from": "2025-01-01", "date_to": "2025-01-31"}, args)

	toOnly := shared.FilterByRange("date", "expenses", "", "2025-01-31")
	where, _ = toOnly.GetWhereClause()
	assert.Equal(t, "(expenses.date <= :date_to)", where)

	none := shared.FilterByRange("date", "expenses", "", "")
	where, _ = none.GetWhereClause()
	assert.Empty(t, where)
}
