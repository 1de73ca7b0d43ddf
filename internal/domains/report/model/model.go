package model

import (
	bookingModel "hotel/internal/domains/booking/model"
	"hotel/shared/constant"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

const SheetSummary = "Summary"

const SheetBookings = "Bookings"

// Income sums the total price of the given bookings.
func Income(bookings []bookingModel.Booking) decimal.Decimal {
	total := decimal.Zero
	for _, booking := range bookings {
		total = total.Add(booking.TotalPrice)
	}

	return total
}

// OccupiedDays sums the stay length of every booking, skipping rows whose dates do not parse.
func OccupiedDays(bookings []bookingModel.Booking) int {
	days := 0

	for _, booking := range bookings {
		nights, err := bookingModel.StayNights(booking.CheckInDate, booking.CheckOutDate)
		if err != nil {
			continue
		}

		days += nights
	}

	return days
}

// MostUsedRoomType returns the room type booked most often. Ties go to the lexicographically
// smallest type; N/A is returned when no booking resolves to a known room.
func MostUsedRoomType(bookings []bookingModel.Booking, roomTypes map[string]string) string {
	counts := map[string]int{}

	for _, booking := range bookings {
		if roomType, ok := roomTypes[booking.RoomID]; ok {
			counts[roomType]++
		}
	}

	if len(counts) == 0 {
		return constant.NotAvailable
	}

	types := make([]string, 0, len(counts))
	for roomType := range counts {
		types = append(types, roomType)
	}

	slices.Sort(types)

	best := types[0]
	for _, roomType := range types[1:] {
		if counts[roomType] > counts[best] {
			best = roomType
		}
	}

	return best
}

// RevenueByMonth buckets booking income by the month of the check-in stamp. Index 0 is January.
func RevenueByMonth(bookings []bookingModel.Booking) [constant.MonthsInYear]decimal.Decimal {
	var revenue [constant.MonthsInYear]decimal.Decimal

	for i := range revenue {
		revenue[i] = decimal.Zero
	}

	for _, booking := range bookings {
		stamp := booking.EffectiveCheckInDate()
		if len(stamp) < len(constant.MonthFormat) {
			continue
		}

		month, err := time.Parse(constant.MonthFormat, stamp[:len(constant.MonthFormat)])
		if err != nil {
			continue
		}

		revenue[month.Month()-1] = revenue[month.Month()-1].Add(booking.TotalPrice)
	}

	return revenue
}
