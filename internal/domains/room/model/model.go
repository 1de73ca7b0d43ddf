package model

import (
	"hotel/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID            = "id"
	FieldRoomNumber    = "room_number"
	FieldRoomType      = "room_type"
	FieldCapacity      = "capacity"
	FieldPricePerNight = "price_per_night"
	FieldStatus        = "status"
	FieldDescription   = "description"
)

type Room struct {
	ID            string          `db:"id"`
	RoomNumber    string          `db:"room_number"`
	RoomType      string          `db:"room_type"`
	Capacity      int             `db:"capacity"`
	PricePerNight decimal.Decimal `db:"price_per_night"`
	Status        string          `db:"status"`
	Description   string          `db:"description"`
	model.Metadata
}

// Fits reports whether the room can host the given number of guests.
func (r Room) Fits(guests int) bool {
	return guests >= 1 && guests <= r.Capacity
}
