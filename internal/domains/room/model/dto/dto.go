package dto

import (
	"hotel/internal/domains/room/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var SortableFields = []string{
	model.FieldRoomNumber,
	model.FieldRoomType,
	model.FieldCapacity,
	model.FieldPricePerNight,
	model.FieldStatus,
	constant.FieldCreatedAt,
}

type CreateRoomRequest struct {
	RoomNumber    string          `json:"room_number"     validate:"required,max=20"`
	RoomType      string          `json:"room_type"       validate:"required,max=50"`
	Capacity      int             `json:"capacity"        validate:"gt=0"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
	Status        string          `json:"status"          validate:"omitempty,oneof=Available Reserved Occupied Cleaning"`
	Description   string          `json:"description"     validate:"omitempty,max=500"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	status := c.Status
	if status == constant.Empty {
		status = constant.RoomStatusAvailable
	}

	return model.Room{
		ID:            uuid.NewString(),
		RoomNumber:    c.RoomNumber,
		RoomType:      c.RoomType,
		Capacity:      c.Capacity,
		PricePerNight: c.PricePerNight,
		Status:        status,
		Description:   c.Description,
		Metadata:      gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateRoomRequest struct {
	RoomNumber    *string          `db:"room_number"     json:"room_number"     validate:"omitempty,min=1,max=20"`
	RoomType      *string          `db:"room_type"       json:"room_type"       validate:"omitempty,min=1,max=50"`
	Capacity      *int             `db:"capacity"        json:"capacity"        validate:"omitempty,gt=0"`
	PricePerNight *decimal.Decimal `db:"price_per_night" json:"price_per_night"`
	Status        *string          `db:"status"          json:"status"          validate:"omitempty,oneof=Available Reserved Occupied Cleaning"`
	Description   *string          `db:"description"     json:"description"     validate:"omitempty,max=500"`
}

type RoomResponse struct {
	ID            string          `json:"id"`
	RoomNumber    string          `json:"room_number"`
	RoomType      string          `json:"room_type"`
	Capacity      int             `json:"capacity"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
	Status        string          `json:"status"`
	Description   string          `json:"description"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.RoomNumber = model.RoomNumber
	r.RoomType = model.RoomType
	r.Capacity = model.Capacity
	r.PricePerNight = model.PricePerNight
	r.Status = model.Status
	r.Description = model.Description
	r.Metadata = gDto.NewMetadata(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
