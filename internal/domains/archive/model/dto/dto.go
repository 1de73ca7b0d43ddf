package dto

import (
	"hotel/internal/domains/archive/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"net/http"
)

type ArchiveRequest struct {
	GuestID  string `json:"guest_id"`
	Status   string `json:"status"`
	DateFrom string `json:"date_from" validate:"omitempty,date"`
	DateTo   string `json:"date_to"   validate:"omitempty,date"`
	Query    string `json:"q"         validate:"omitempty,max=100"`
	gDto.QueryParams
}

// FromRequest reads the archive filters and pagination from the query string.
func (a *ArchiveRequest) FromRequest(r *http.Request) {
	query := r.URL.Query()

	a.GuestID = query.Get(constant.RequestParamGuestID)
	a.Status = query.Get(constant.RequestParamStatus)
	a.DateFrom = query.Get(constant.RequestParamDateFrom)
	a.DateTo = query.Get(constant.RequestParamDateTo)
	a.Query = query.Get(constant.RequestParamQuery)

	a.QueryParams.FromRequest(r, false)

	if a.Page == 0 {
		a.Page = constant.DefaultValuePage
	}

	if a.Limit == 0 {
		a.Limit = constant.DefaultArchiveLimit
	}
}

type ArchiveResponse struct {
	Items     []model.Row `json:"items"`
	Total     int         `json:"total"`
	Page      int         `json:"page"`
	Limit     int         `json:"limit"`
	TotalPage int         `json:"total_page"`
}

// Paginate slices the already sorted rows down to the requested page.
func (a *ArchiveResponse) Paginate(rows []model.Row, page, limit int) {
	a.Total = len(rows)
	a.Page = page
	a.Limit = limit
	a.TotalPage = shared.CalculateTotalPage(a.Total, limit)

	params := gDto.QueryParams{Page: page, Limit: limit}

	start := min(max(params.Offset(), 0), len(rows))
	end := start + min(max(limit, 0), len(rows)-start)

	a.Items = rows[start:end]
}
