package dto

import (
	"hotel/internal/domains/guest/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

var SortableFields = []string{
	model.FieldFullName,
	model.FieldPhone,
	constant.FieldCreatedAt,
}

type CreateGuestRequest struct {
	FullName   string `json:"full_name"   validate:"required,max=150"`
	Phone      string `json:"phone"       validate:"required,max=30"`
	IDType     string `json:"id_type"     validate:"omitempty,max=30"`
	IDNumber   string `json:"id_number"   validate:"omitempty,max=50"`
	PassportID string `json:"passport_id" validate:"omitempty,max=50"`
	BirthDate  string `json:"birth_date"  validate:"omitempty,date"`
	Nation     string `json:"nation"      validate:"omitempty,max=100"`
	Region     string `json:"region"      validate:"omitempty,max=100"`
	Street     string `json:"street"      validate:"omitempty,max=200"`
}

func (c *CreateGuestRequest) ToModel(user string) model.Guest {
	idType := c.IDType
	if idType == constant.Empty {
		idType = model.DefaultIDType
	}

	return model.Guest{
		ID:         uuid.NewString(),
		FullName:   c.FullName,
		Phone:      c.Phone,
		IDType:     idType,
		IDNumber:   c.IDNumber,
		PassportID: c.PassportID,
		BirthDate:  c.BirthDate,
		Nation:     c.Nation,
		Region:     c.Region,
		Street:     c.Street,
		Metadata:   gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateGuestRequest struct {
	FullName   *string `db:"full_name"   json:"full_name"   validate:"omitempty,min=1,max=150"`
	Phone      *string `db:"phone"       json:"phone"       validate:"omitempty,min=1,max=30"`
	IDType     *string `db:"id_type"     json:"id_type"     validate:"omitempty,max=30"`
	IDNumber   *string `db:"id_number"   json:"id_number"   validate:"omitempty,max=50"`
	PassportID *string `db:"passport_id" json:"passport_id" validate:"omitempty,max=50"`
	BirthDate  *string `db:"birth_date"  json:"birth_date"  validate:"omitempty,date"`
	Nation     *string `db:"nation"      json:"nation"      validate:"omitempty,max=100"`
	Region     *string `db:"region"      json:"region"      validate:"omitempty,max=100"`
	Street     *string `db:"street"      json:"street"      validate:"omitempty,max=200"`
}

type GuestResponse struct {
	ID         string `json:"id"`
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	IDType     string `json:"id_type"`
	IDNumber   string `json:"id_number"`
	PassportID string `json:"passport_id"`
	BirthDate  string `json:"birth_date"`
	Nation     string `json:"nation"`
	Region     string `json:"region"`
	Street     string `json:"street"`
	gDto.Metadata
}

func (g *GuestResponse) FromModel(model model.Guest) {
	g.ID = model.ID
	g.FullName = model.FullName
	g.Phone = model.Phone
	g.IDType = model.IDType
	g.IDNumber = model.IDNumber
	g.PassportID = model.PassportID
	g.BirthDate = model.BirthDate
	g.Nation = model.Nation
	g.Region = model.Region
	g.Street = model.Street
	g.Metadata = gDto.NewMetadata(model.Metadata)
}

type GetGuestsResponse struct {
	Guests    []GuestResponse `json:"guests"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (g *GetGuestsResponse) FromModels(models []model.Guest, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Guests = make([]GuestResponse, len(models))
	for i, mod := range models {
		g.Guests[i].FromModel(mod)
	}
}

// SearchFilter matches the query against name, phone and identity document numbers.
func SearchFilter(query string) gDto.FilterGroup {
	if query == constant.Empty {
		return gDto.FilterGroup{}
	}

	filters := []any{}
	for _, field := range []string{model.FieldFullName, model.FieldPhone, model.FieldPassportID, model.FieldIDNumber} {
		filters = append(filters, gDto.Filter{
			ArgName:  "q_" + field,
			Field:    field,
			Value:    query,
			Operator: gDto.FilterOperatorLike,
			Table:    model.TableName,
		})
	}

	return gDto.FilterGroup{Operator: gDto.FilterGroupOperatorOr, Filters: filters}
}
