package dto_test

import (
	"math"
	"net/http/httptest"
	"testing"

	"hotel/internal/domains/archive/model"
	"hotel/internal/domains/archive/model/dto"
	"hotel/shared/constant"

	"github.com/stretchr/testify/assert"
)

func rows(n int) []model.Row {
	res := make([]model.Row, n)
	for i := range res {
		res[i] = model.Row{BookingID: string(rune('a' + i))}
	}

	return res
}

func TestArchiveResponse_Paginate(t *testing.T) {
	tests := []struct {
		name      string
		rows      int
		page      int
		limit     int
		wantIDs   []string
		wantPages int
	}{
		{name: "first page", rows: 5, page: 1, limit: 2, wantIDs: []string{"a", "b"}, wantPages: 3},
		{name: "last partial page", rows: 5, page: 3, limit: 2, wantIDs: []string{"e"}, wantPages: 3},
		{name: "past the end", rows: 5, page: 4, limit: 2, wantIDs: []string{}, wantPages: 3},
		{name: "page beyond the addressable range", rows: 2, page: math.MaxInt, limit: 2, wantIDs: []string{}, wantPages: 1},
		{name: "huge limit", rows: 3, page: 1, limit: math.MaxInt, wantIDs: []string{"a", "b", "c"}, wantPages: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var res dto.ArchiveResponse

			assert.NotPanics(t, func() { res.Paginate(rows(tt.rows), tt.page, tt.limit) })

			ids := []string{}
			for _, row := range res.Items {
				ids = append(ids, row.BookingID)
			}

			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.rows, res.Total)
			assert.Equal(t, tt.wantPages, res.TotalPage)
		})
	}
}

func TestArchiveRequest_FromRequest(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var req dto.ArchiveRequest
		req.FromRequest(httptest.NewRequest("GET", "/api/guests/archive?status=checkin", nil))

		assert.Equal(t, "checkin", req.Status)
		assert.Equal(t, constant.DefaultValuePage, req.Page)
		assert.Equal(t, constant.DefaultArchiveLimit, req.Limit)
	})

	t.Run("oversized paging is bounded", func(t *testing.T) {
		var req dto.ArchiveRequest
		req.FromRequest(httptest.NewRequest("GET", "/api/guests/archive?page=9223372036854775807&limit=99999", nil))

		assert.Equal(t, math.MaxInt, req.Page)
		assert.Equal(t, constant.MaxValueLimit, req.Limit)
		assert.Equal(t, math.MaxInt, req.Offset())
	})
}
