package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type DailyRequest struct {
	Date string `json:"date" validate:"omitempty,date"`
}

type MonthlyRequest struct {
	Month string `json:"month" validate:"omitempty,month"`
}

type RevenueRequest struct {
	Year string `json:"year" validate:"omitempty,year"`
}

type DashboardStatsResponse struct {
	TotalRooms           int             `json:"total_rooms"`
	AvailableRooms       int             `json:"available_rooms"`
	OccupiedRooms        int             `json:"occupied_rooms"`
	CleaningRooms        int             `json:"cleaning_rooms"`
	ReservedRooms        int             `json:"reserved_rooms"`
	TodayIncome          decimal.Decimal `json:"today_income"`
	UpcomingReservations int             `json:"upcoming_reservations"`
}

type DailyReportResponse struct {
	Date         string          `json:"date"`
	GuestsToday  int             `json:"guests_today"`
	CheckIns     int             `json:"check_ins"`
	CheckOuts    int             `json:"check_outs"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

type MonthlyReportResponse struct {
	Month             string          `json:"month"`
	TotalGuests       int             `json:"total_guests"`
	TotalOccupiedDays int             `json:"total_occupied_days"`
	TotalIncome       decimal.Decimal `json:"total_income"`
	MostUsedRoomType  string          `json:"most_used_room_type"`
}

type MonthRevenue struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}

// FromRevenue names each bucket with its English month name.
func FromRevenue(revenue []decimal.Decimal) []MonthRevenue {
	res := make([]MonthRevenue, len(revenue))
	for i, amount := range revenue {
		res[i] = MonthRevenue{Month: time.Month(i + 1).String(), Revenue: amount}
	}

	return res
}

type ExportResponse struct {
	Month    string `json:"month"`
	FileName string `json:"file_name"`
	URL      string `json:"url"`
}
