package dto

import (
	"hotel/internal/domains/booking/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var SortableFields = []string{
	constant.FieldCreatedAt,
	model.FieldCheckInDate,
	model.FieldCheckOutDate,
	model.FieldTotalPrice,
	model.FieldStatus,
}

type CreateBookingRequest struct {
	GuestIDs     []string `json:"guest_ids"      validate:"required,min=1,unique,dive,required"`
	RoomID       string   `json:"room_id"        validate:"required"`
	CheckInDate  string   `json:"check_in_date"  validate:"required"`
	CheckOutDate string   `json:"check_out_date" validate:"required"`
}

func (c *CreateBookingRequest) ToModel(user string, totalPrice decimal.Decimal) model.Booking {
	return model.Booking{
		ID:           uuid.NewString(),
		GuestIDs:     c.GuestIDs,
		RoomID:       c.RoomID,
		CheckInDate:  c.CheckInDate,
		CheckOutDate: c.CheckOutDate,
		TotalPrice:   totalPrice,
		Status:       constant.BookingStatusConfirmed,
		Metadata:     gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateBookingRequest struct {
	CheckInDate  *string `json:"check_in_date"`
	CheckOutDate *string `json:"check_out_date"`
}

func (u *UpdateBookingRequest) IsEmpty() bool {
	return (u.CheckInDate == nil || *u.CheckInDate == constant.Empty) &&
		(u.CheckOutDate == nil || *u.CheckOutDate == constant.Empty)
}

// Merge returns the requested dates, keeping the current value for any date left unset.
func (u *UpdateBookingRequest) Merge(current model.Booking) (checkIn, checkOut string) {
	checkIn, checkOut = current.CheckInDate, current.CheckOutDate

	if u.CheckInDate != nil && *u.CheckInDate != constant.Empty {
		checkIn = *u.CheckInDate
	}

	if u.CheckOutDate != nil && *u.CheckOutDate != constant.Empty {
		checkOut = *u.CheckOutDate
	}

	return checkIn, checkOut
}

type BookingResponse struct {
	ID           string          `json:"id"`
	GuestIDs     []string        `json:"guest_ids"`
	GuestNames   []string        `json:"guest_names"`
	RoomID       string          `json:"room_id"`
	RoomNumber   string          `json:"room_number"`
	CheckInDate  string          `json:"check_in_date"`
	CheckOutDate string          `json:"check_out_date"`
	Nights       int             `json:"nights"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	Status       string          `json:"status"`
	CheckedInAt  *string         `json:"checked_in_at"`
	CheckedOutAt *string         `json:"checked_out_at"`
	gDto.Metadata
}

// FromModel fills the response; guest names and the room number come from the caller's lookups.
func (r *BookingResponse) FromModel(model model.Booking, guestNames map[string]string, roomNumbers map[string]string) {
	r.ID = model.ID
	r.GuestIDs = model.GuestIDs
	r.RoomID = model.RoomID
	r.CheckInDate = model.CheckInDate
	r.CheckOutDate = model.CheckOutDate
	r.Nights = model.Nights()
	r.TotalPrice = model.TotalPrice
	r.Status = model.Status
	r.CheckedInAt = model.CheckedInAt
	r.CheckedOutAt = model.CheckedOutAt
	r.Metadata = gDto.NewMetadata(model.Metadata)

	r.GuestNames = make([]string, 0, len(model.GuestIDs))
	for _, id := range model.GuestIDs {
		if name, ok := guestNames[id]; ok {
			r.GuestNames = append(r.GuestNames, name)
		}
	}

	r.RoomNumber = constant.Unknown
	if number, ok := roomNumbers[model.RoomID]; ok {
		r.RoomNumber = number
	}
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, guestNames, roomNumbers map[string]string, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod, guestNames, roomNumbers)
	}
}

type CheckOutResponse struct {
	Message    string          `json:"message"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// FilterCheckedInOn matches bookings whose revenue falls on date: stamped check-ins plus
// unstamped rows that are checked in with a matching check_in_date.
func FilterCheckedInOn(date string) gDto.FilterGroup {
	unstamped := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters: []any{
			gDto.Filter{Field: model.FieldCheckedInAt, Operator: gDto.FilterIsNull, Table: model.TableName},
			gDto.Filter{Field: model.FieldCheckedInAt, ArgName: "unstamped_checked_in_at", Value: constant.Empty, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters: []any{
			gDto.Filter{Field: model.FieldCheckedInAt, Value: date, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.FilterGroup{
				Filters: []any{
					gDto.Filter{Field: model.FieldCheckInDate, ArgName: "legacy_check_in_date", Value: date, Operator: gDto.FilterOperatorEq, Table: model.TableName},
					gDto.Filter{Field: model.FieldStatus, ArgName: "legacy_status", Value: constant.BookingStatusCheckedIn, Operator: gDto.FilterOperatorEq, Table: model.TableName},
					unstamped,
				},
			},
		},
	}
}

// FilterCheckedInWithin matches bookings stamped as checked in on a day with the given prefix (YYYY or YYYY-MM).
func FilterCheckedInWithin(prefix string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldCheckedInAt, Value: prefix, Operator: gDto.FilterOperatorPrefix, Table: model.TableName},
		},
	}
}
