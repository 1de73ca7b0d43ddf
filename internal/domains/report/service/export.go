package service

import (
	"fmt"

	bookingModel "hotel/internal/domains/booking/model"
	"hotel/internal/domains/report/model"
	"hotel/internal/domains/report/model/dto"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared/constant"

	"github.com/xuri/excelize/v2"
)

var bookingHeaders = []string{
	"Booking ID", "Room", "Room Type", "Check-in Date", "Check-out Date", "Checked In At", "Nights", "Guests", "Status", "Total Price",
}

func buildWorkbook(summary dto.MonthlyReportResponse, bookings []bookingModel.Booking, rooms map[string]roomModel.Room) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", model.SheetSummary); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	rows := [][]any{
		{"Month", summary.Month},
		{"Total Guests", summary.TotalGuests},
		{"Total Occupied Days", summary.TotalOccupiedDays},
		{"Total Income", summary.TotalIncome.InexactFloat64()},
		{"Most Used Room Type", summary.MostUsedRoomType},
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(model.SheetSummary, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write summary row: %w", err)
		}
	}

	_ = f.SetCellStyle(model.SheetSummary, "A1", fmt.Sprintf("A%d", len(rows)), bold)
	_ = f.SetColWidth(model.SheetSummary, "A", "B", 24)

	if _, err := f.NewSheet(model.SheetBookings); err != nil {
		return nil, fmt.Errorf("failed to create bookings sheet: %w", err)
	}

	if err := f.SetSheetRow(model.SheetBookings, "A1", &bookingHeaders); err != nil {
		return nil, fmt.Errorf("failed to write booking headers: %w", err)
	}

	lastHeader, _ := excelize.CoordinatesToCellName(len(bookingHeaders), 1)
	_ = f.SetCellStyle(model.SheetBookings, "A1", lastHeader, bold)
	_ = f.SetColWidth(model.SheetBookings, "A", "A", 38)
	_ = f.SetColWidth(model.SheetBookings, "B", "J", 16)

	for i, booking := range bookings {
		room, ok := rooms[booking.RoomID]
		if !ok {
			room = roomModel.Room{RoomNumber: constant.Unknown, RoomType: constant.NotAvailable}
		}

		row := []any{
			booking.ID,
			room.RoomNumber,
			room.RoomType,
			booking.CheckInDate,
			booking.CheckOutDate,
			booking.EffectiveCheckInDate(),
			booking.Nights(),
			len(booking.GuestIDs),
			booking.Status,
			booking.TotalPrice.InexactFloat64(),
		}

		cell, _ := excelize.CoordinatesToCellName(1, i+2) //nolint:mnd
		if err := f.SetSheetRow(model.SheetBookings, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write booking row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}
