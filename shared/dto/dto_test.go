package dto_test

import (
	"hotel/shared/constant"
	"hotel/shared/dto"
	"hotel/shared/model"
	"math"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewMetadata(t *testing.T) {
	createdAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)

	metadata := dto.NewMetadata(model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "admin",
		ModifiedBy: "reception",
	})

	assert.Equal(t, createdAt.Format(constant.DateFormat), metadata.CreatedAt)
	assert.Equal(t, modifiedAt.Format(constant.DateFormat), metadata.ModifiedAt)
	assert.Equal(t, "admin", metadata.CreatedBy)
	assert.Equal(t, "reception", metadata.ModifiedBy)

	assert.Empty(t, dto.NewMetadata(model.Metadata{}).CreatedAt, "zero time renders empty")
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name:     "all parameters",
			query:    "page=2&limit=20&sort_by=room_number&sort_dir=asc",
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "room_number", SortDir: dto.SortDirAsc},
		},
		{
			name:           "defaults applied",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "defaults not applied",
			expected: dto.QueryParams{},
		},
		{
			name:           "invalid numbers fall back to defaults",
			query:          "page=-1&limit=abc",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "unknown sort direction ignored",
			query:    "sort_dir=sideways",
			expected: dto.QueryParams{},
		},
		{
			name:     "limit capped",
			query:    "page=9223372036854775807&limit=100000",
			expected: dto.QueryParams{Page: math.MaxInt, Limit: constant.MaxValueLimit},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/rooms?"+tt.query, nil)

			params := dto.QueryParams{}
			params.FromRequest(req, tt.defaultRequest)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestQueryParams_Sanitize(t *testing.T) {
	allowed := []string{"check_in_date", "total_price"}

	params := dto.QueryParams{SortBy: "password; DROP TABLE users", SortDir: ""}
	params.Sanitize(allowed, "check_in_date")
	assert.Equal(t, "check_in_date", params.SortBy)
	assert.Equal(t, dto.SortDirDesc, params.SortDir)

	params = dto.QueryParams{SortBy: "total_price", SortDir: dto.SortDirAsc}
	params.Sanitize(allowed, "check_in_date")
	assert.Equal(t, "total_price", params.SortBy)
	assert.Equal(t, dto.SortDirAsc, params.SortDir)
}

func TestQueryParams_Offset(t *testing.T) {
	assert.Equal(t, 0, (&dto.QueryParams{}).Offset())
	assert.Equal(t, 0, (&dto.QueryParams{Page: 1, Limit: 50}).Offset())
	assert.Equal(t, 100, (&dto.QueryParams{Page: 3, Limit: 50}).Offset())
	assert.Equal(t, math.MaxInt, (&dto.QueryParams{Page: math.MaxInt, Limit: 2}).Offset(), "saturates instead of wrapping")
	assert.Equal(t, math.MaxInt-1, (&dto.QueryParams{Page: math.MaxInt/2 + 1, Limit: 2}).Offset())
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "prefix match",
			filter:    dto.Filter{Field: "checked_in_at", Value: "2024-05", Operator: dto.FilterOperatorPrefix, Table: "bookings"},
			wantWhere: "bookings.checked_in_at LIKE :checked_in_at",
			wantArgs:  map[string]any{"checked_in_at": "2024-05%"},
		},
		{
			name:      "array contains",
			filter:    dto.Filter{Field: "guest_ids", ArgName: "guest_id", Value: "g-1", Operator: dto.FilterOperatorAny},
			wantWhere: ":guest_id = ANY(guest_ids)",
			wantArgs:  map[string]any{"guest_id": "g-1"},
		},
		{
			name:      "case insensitive substring",
			filter:    dto.Filter{Field: "full_name", Value: "ali", Operator: dto.FilterOperatorLike},
			wantWhere: "full_name ILIKE :full_name",
			wantArgs:  map[string]any{"full_name": "%ali%"},
		},
		{
			name:      "empty in list never matches",
			filter:    dto.Filter{Field: "id", Value: []string{}, Operator: dto.FilterOperatorIn},
			wantWhere: "FALSE",
			wantArgs:  map[string]any{},
		},
		{
			name:      "in list",
			filter:    dto.Filter{Field: "id", Value: []string{"r-1", "r-2"}, Operator: dto.FilterOperatorIn, Table: "rooms"},
			wantWhere: "rooms.id IN (:id_0, :id_1)",
			wantArgs:  map[string]any{"id_0": "r-1", "id_1": "r-2"},
		},
		{
			name:      "not null",
			filter:    dto.Filter{Field: "checked_in_at", Operator: dto.FilterIsNotNull, Table: "bookings"},
			wantWhere: "bookings.checked_in_at IS NOT NULL",
			wantArgs:  map[string]any{},
		},
		{
			name:      "unknown operator renders nothing",
			filter:    dto.Filter{Field: "id", Value: "x", Operator: "between"},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
		{
			name:      "range bound",
			filter:    dto.Filter{Field: "date", ArgName: "date_from", Value: "2024-01-01", Operator: dto.FilterOperatorGreaterEq},
			wantWhere: "date >= :date_from",
			wantArgs:  map[string]any{"date_from": "2024-01-01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	search := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorOr,
		Filters: []any{
			dto.Filter{Field: "full_name", ArgName: "q_name", Value: "ali", Operator: dto.FilterOperatorLike},
			dto.Filter{Field: "phone", ArgName: "q_phone", Value: "ali", Operator: dto.FilterOperatorLike},
		},
	}

	group := dto.FilterGroup{}
	group.Add(dto.Filter{Field: "status", Value: "Confirmed", Operator: dto.FilterOperatorEq}, search, dto.FilterGroup{})

	where, args := group.GetWhereClause()

	assert.Equal(t, "(status = :status AND (full_name ILIKE :q_name OR phone ILIKE :q_phone))", where)
	assert.Len(t, args, 3)

	empty := dto.FilterGroup{}
	where, args = empty.GetWhereClause()
	assert.Empty(t, where)
	assert.Empty(t, args)
}
