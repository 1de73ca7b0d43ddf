package model_test

import (
	"hotel/internal/domains/booking/model"
	"hotel/shared/constant"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStayNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		want     int
		wantErr  error
	}{
		{name: "two nights", checkIn: "2025-01-10", checkOut: "2025-01-12", want: 2},
		{name: "across month end", checkIn: "2025-01-30", checkOut: "2025-02-02", want: 3},
		{name: "across leap day", checkIn: "2024-02-28", checkOut: "2024-03-01", want: 2},
		{name: "same day", checkIn: "2025-01-10", checkOut: "2025-01-10", wantErr: model.ErrInvalidRange},
		{name: "reversed", checkIn: "2025-01-12", checkOut: "2025-01-10", wantErr: model.ErrInvalidRange},
		{name: "bad check in", checkIn: "10/01/2025", checkOut: "2025-01-12", wantErr: model.ErrInvalidDate},
		{name: "bad check out", checkIn: "2025-01-10", checkOut: "2025-02-30", wantErr: model.ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := model.StayNights(tt.checkIn, tt.checkOut)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrice(t *testing.T) {
	assert.True(t, decimal.NewFromInt(200).Equal(model.Price(decimal.NewFromInt(100), 2)))
	assert.True(t, decimal.RequireFromString("301.50").Equal(model.Price(decimal.RequireFromString("100.50"), 3)))
}

func TestBooking_EffectiveCheckInDate(t *testing.T) {
	stamp := "2025-01-11"
	empty := ""

	tests := []struct {
		name    string
		booking model.Booking
		want    string
	}{
		{
			name:    "stamped",
			booking: model.Booking{CheckInDate: "2025-01-10", CheckedInAt: &stamp, Status: constant.BookingStatusCheckedOut},
			want:    stamp,
		},
		{
			name:    "legacy checked in row without stamp",
			booking: model.Booking{CheckInDate: "2025-01-10", Status: constant.BookingStatusCheckedIn},
			want:    "2025-01-10",
		},
		{
			name:    "legacy row with empty stamp",
			booking: model.Booking{CheckInDate: "2025-01-10", CheckedInAt: &empty, Status: constant.BookingStatusCheckedIn},
			want:    "2025-01-10",
		},
		{
			name:    "confirmed booking has not checked in",
			booking: model.Booking{CheckInDate: "2025-01-10", Status: constant.BookingStatusConfirmed},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.booking.EffectiveCheckInDate())
		})
	}
}

func TestBooking_Nights(t *testing.T) {
	assert.Equal(t, 3, model.Booking{CheckInDate: "2025-03-01", CheckOutDate: "2025-03-04"}.Nights())
	assert.Equal(t, 0, model.Booking{CheckInDate: "garbage", CheckOutDate: "2025-03-04"}.Nights())
}
