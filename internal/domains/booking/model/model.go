package model

import (
	"errors"
	"hotel/shared/constant"
	"hotel/shared/model"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID           = "id"
	FieldGuestIDs     = "guest_ids"
	FieldRoomID       = "room_id"
	FieldCheckInDate  = "check_in_date"
	FieldCheckOutDate = "check_out_date"
	FieldTotalPrice   = "total_price"
	FieldStatus       = "status"
	FieldCheckedInAt  = "checked_in_at"
	FieldCheckedOutAt = "checked_out_at"
)

const (
	EventCreated    = "booking.created"
	EventCheckedIn  = "booking.checked_in"
	EventCheckedOut = "booking.checked_out"
	EventCancelled  = "booking.cancelled"
	EventUpdated    = "booking.updated"
)

const hoursPerDay = 24

var (
	ErrInvalidDate  = errors.New("invalid date")
	ErrInvalidRange = errors.New("invalid date range")
)

type Booking struct {
	ID           string          `db:"id"`
	GuestIDs     pq.StringArray  `db:"guest_ids"`
	RoomID       string          `db:"room_id"`
	CheckInDate  string          `db:"check_in_date"`
	CheckOutDate string          `db:"check_out_date"`
	TotalPrice   decimal.Decimal `db:"total_price"`
	Status       string          `db:"status"`
	CheckedInAt  *string         `db:"checked_in_at"`
	CheckedOutAt *string         `db:"checked_out_at"`
	model.Metadata
}

// EffectiveCheckInDate is the day the booking's revenue is attributed to.
// Rows written before checked_in_at existed fall back to check_in_date while checked in.
func (b Booking) EffectiveCheckInDate() string {
	if b.CheckedInAt != nil && *b.CheckedInAt != constant.Empty {
		return *b.CheckedInAt
	}

	if b.Status == constant.BookingStatusCheckedIn {
		return b.CheckInDate
	}

	return constant.Empty
}

// Nights returns the stay length, or 0 when the stored dates do not parse.
func (b Booking) Nights() int {
	nights, err := StayNights(b.CheckInDate, b.CheckOutDate)
	if err != nil {
		return 0
	}

	return nights
}

func (b Booking) IsTerminal() bool {
	return b.Status == constant.BookingStatusCheckedOut || b.Status == constant.BookingStatusCancelled
}

// StayNights returns the whole-day difference between two YYYY-MM-DD dates.
// It fails with ErrInvalidDate when either date does not parse and ErrInvalidRange when the difference is not positive.
func StayNights(checkIn, checkOut string) (int, error) {
	in, err := time.Parse(constant.DateOnlyFormat, checkIn)
	if err != nil {
		return 0, ErrInvalidDate
	}

	out, err := time.Parse(constant.DateOnlyFormat, checkOut)
	if err != nil {
		return 0, ErrInvalidDate
	}

	nights := int(out.Sub(in).Hours() / hoursPerDay)
	if nights <= 0 {
		return nights, ErrInvalidRange
	}

	return nights, nil
}

// Price is the stay price for the given nightly rate.
func Price(pricePerNight decimal.Decimal, nights int) decimal.Decimal {
	return pricePerNight.Mul(decimal.NewFromInt(int64(nights)))
}

// Event is the payload published for every lifecycle transition.
type Event struct {
	Type         string          `json:"type"`
	BookingID    string          `json:"booking_id"`
	RoomID       string          `json:"room_id"`
	GuestIDs     []string        `json:"guest_ids"`
	Status       string          `json:"status"`
	CheckInDate  string          `json:"check_in_date"`
	CheckOutDate string          `json:"check_out_date"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	Actor        string          `json:"actor"`
	OccurredAt   time.Time       `json:"occurred_at"`
}

func NewEvent(eventType string, booking Booking, actor string, at time.Time) Event {
	return Event{
		Type:         eventType,
		BookingID:    booking.ID,
		RoomID:       booking.RoomID,
		GuestIDs:     booking.GuestIDs,
		Status:       booking.Status,
		CheckInDate:  booking.CheckInDate,
		CheckOutDate: booking.CheckOutDate,
		TotalPrice:   booking.TotalPrice,
		Actor:        actor,
		OccurredAt:   at,
	}
}
