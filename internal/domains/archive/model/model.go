package model

import (
	"cmp"
	"slices"
	"strings"

	bookingModel "hotel/internal/domains/booking/model"
	guestModel "hotel/internal/domains/guest/model"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared/constant"

	"github.com/shopspring/decimal"
)

const (
	SortCheckInDate     = "check_in_date"
	SortCheckOutDate    = "check_out_date"
	SortGuestName       = "guest_name"
	SortRoomNumber      = "room_number"
	SortNights          = "nights"
	SortTotalPrice      = "total_price"
	SortGuestSharePrice = "guest_share_price"
	SortStatus          = "status"
	SortCreatedAt       = "created_at"
)

const sharePricePlaces = 2

var SortableFields = []string{
	SortCheckInDate,
	SortCheckOutDate,
	SortGuestName,
	SortRoomNumber,
	SortNights,
	SortTotalPrice,
	SortGuestSharePrice,
	SortStatus,
	SortCreatedAt,
}

var statusAliases = map[string]string{
	"confirmed":   constant.BookingStatusConfirmed,
	"reserved":    constant.BookingStatusConfirmed,
	"checked_in":  constant.BookingStatusCheckedIn,
	"checkin":     constant.BookingStatusCheckedIn,
	"checked_out": constant.BookingStatusCheckedOut,
	"checkout":    constant.BookingStatusCheckedOut,
	"cancelled":   constant.BookingStatusCancelled,
	"canceled":    constant.BookingStatusCancelled,
}

// NormalizeStatus maps a status alias such as "checked_in" or "Checked In" to the stored status.
func NormalizeStatus(status string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(status))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)

	normalized, ok := statusAliases[key]

	return normalized, ok
}

// Row is one guest's share of one booking.
type Row struct {
	BookingID       string          `json:"booking_id"`
	GuestID         string          `json:"guest_id"`
	GuestName       string          `json:"guest_name"`
	GuestPhone      string          `json:"guest_phone"`
	RoomID          string          `json:"room_id"`
	RoomNumber      string          `json:"room_number"`
	RoomType        string          `json:"room_type"`
	CheckInDate     string          `json:"check_in_date"`
	CheckOutDate    string          `json:"check_out_date"`
	Nights          int             `json:"nights"`
	GuestCount      int             `json:"guest_count"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	GuestSharePrice decimal.Decimal `json:"guest_share_price"`
	Status          string          `json:"status"`
	CheckedInAt     *string         `json:"checked_in_at"`
	CheckedOutAt    *string         `json:"checked_out_at"`
	CreatedAt       string          `json:"created_at"`
}

// Flatten expands every booking into one row per guest, splitting the price evenly between them.
func Flatten(bookings []bookingModel.Booking, guests map[string]guestModel.Guest, rooms map[string]roomModel.Room) []Row {
	rows := []Row{}

	for _, booking := range bookings {
		count := len(booking.GuestIDs)
		if count == 0 {
			continue
		}

		share := booking.TotalPrice.DivRound(decimal.NewFromInt(int64(count)), sharePricePlaces)

		room, ok := rooms[booking.RoomID]
		if !ok {
			room.RoomNumber = constant.Unknown
		}

		for _, guestID := range booking.GuestIDs {
			guest := guests[guestID]

			rows = append(rows, Row{
				BookingID:       booking.ID,
				GuestID:         guestID,
				GuestName:       guest.FullName,
				GuestPhone:      guest.Phone,
				RoomID:          booking.RoomID,
				RoomNumber:      room.RoomNumber,
				RoomType:        room.RoomType,
				CheckInDate:     booking.CheckInDate,
				CheckOutDate:    booking.CheckOutDate,
				Nights:          booking.Nights(),
				GuestCount:      count,
				TotalPrice:      booking.TotalPrice,
				GuestSharePrice: share,
				Status:          booking.Status,
				CheckedInAt:     booking.CheckedInAt,
				CheckedOutAt:    booking.CheckedOutAt,
				CreatedAt:       booking.CreatedAt.Format(constant.DateFormat),
			})
		}
	}

	return rows
}

// Matches reports whether query is a case-insensitive substring of any searchable column.
func (r Row) Matches(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == constant.Empty {
		return true
	}

	for _, value := range []string{r.GuestName, r.GuestPhone, r.RoomNumber, r.Status, r.CheckInDate, r.CheckOutDate} {
		if strings.Contains(strings.ToLower(value), query) {
			return true
		}
	}

	return false
}

func compareBy(key string) func(a, b Row) int {
	switch key {
	case SortCheckOutDate:
		return func(a, b Row) int { return cmp.Compare(a.CheckOutDate, b.CheckOutDate) }
	case SortGuestName:
		return func(a, b Row) int { return cmp.Compare(strings.ToLower(a.GuestName), strings.ToLower(b.GuestName)) }
	case SortRoomNumber:
		return func(a, b Row) int { return cmp.Compare(a.RoomNumber, b.RoomNumber) }
	case SortNights:
		return func(a, b Row) int { return cmp.Compare(a.Nights, b.Nights) }
	case SortTotalPrice:
		return func(a, b Row) int { return a.TotalPrice.Cmp(b.TotalPrice) }
	case SortGuestSharePrice:
		return func(a, b Row) int { return a.GuestSharePrice.Cmp(b.GuestSharePrice) }
	case SortStatus:
		return func(a, b Row) int { return cmp.Compare(a.Status, b.Status) }
	case SortCreatedAt:
		return func(a, b Row) int { return cmp.Compare(a.CreatedAt, b.CreatedAt) }
	default:
		return func(a, b Row) int { return cmp.Compare(a.CheckInDate, b.CheckInDate) }
	}
}

// Sort orders rows by key. Equal keys keep booking then guest order so pages stay stable.
func Sort(rows []Row, key string, descending bool) {
	compare := compareBy(key)

	slices.SortStableFunc(rows, func(a, b Row) int {
		c := compare(a, b)
		if descending {
			c = -c
		}

		if c != 0 {
			return c
		}

		return cmp.Or(cmp.Compare(a.BookingID, b.BookingID), cmp.Compare(a.GuestID, b.GuestID))
	})
}
