package model

import (
	"slices"
	"strings"

	"hotel/shared/constant"
	"hotel/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID          = "id"
	FieldUsername    = "username"
	FieldPassword    = "password"
	FieldRole        = "role"
	FieldPermissions = "permissions"
)

// Page keys a user can be granted.
const (
	PageDashboard = "dashboard"
	PageRooms     = "rooms"
	PageGuests    = "guests"
	PageBookings  = "bookings"
	PageCalendar  = "calendar"
	PageReports   = "reports"
	PageExpenses  = "expenses"
	PageUsers     = "users"
)

var Pages = []string{
	PageDashboard,
	PageRooms,
	PageGuests,
	PageBookings,
	PageCalendar,
	PageReports,
	PageExpenses,
	PageUsers,
}

var roleDefaults = map[string][]string{
	constant.RoleAdmin:        Pages,
	constant.RoleReceptionist: {PageDashboard, PageRooms, PageGuests, PageBookings, PageCalendar},
	constant.RoleAccountant:   {PageDashboard, PageReports, PageExpenses},
}

type User struct {
	ID          string         `db:"id"`
	Username    string         `db:"username"`
	Password    string         `db:"password"`
	Role        string         `db:"role"`
	Permissions pq.StringArray `db:"permissions"`
	model.Metadata
}

// NormalizePermissions keeps known page keys once each, in order, with dashboard always first when missing.
// An empty list falls back to the role default.
func NormalizePermissions(permissions []string, role string) []string {
	base := permissions
	if len(base) == 0 {
		base = roleDefaults[role]
	}

	res := []string{}

	for _, permission := range base {
		key := strings.ToLower(strings.TrimSpace(permission))
		if !slices.Contains(Pages, key) || slices.Contains(res, key) {
			continue
		}

		res = append(res, key)
	}

	if !slices.Contains(res, PageDashboard) {
		res = append([]string{PageDashboard}, res...)
	}

	return res
}

// HasPermission reports whether the user may open page. Admins may open every page.
func (u User) HasPermission(page string) bool {
	if u.Role == constant.RoleAdmin {
		return true
	}

	return slices.Contains(NormalizePermissions(u.Permissions, u.Role), page)
}
