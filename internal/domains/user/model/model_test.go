package model_test

import (
	"testing"

	"hotel/internal/domains/user/model"
	"hotel/shared/constant"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePermissions(t *testing.T) {
	tests := []struct {
		name        string
		permissions []string
		role        string
		expected    []string
	}{
		{
			name:     "receptionist default",
			role:     constant.RoleReceptionist,
			expected: []string{"dashboard", "rooms", "guests", "bookings", "calendar"},
		},
		{
			name:     "accountant default",
			role:     constant.RoleAccountant,
			expected: []string{"dashboard", "reports", "expenses"},
		},
		{
			name:     "admin default grants every page",
			role:     constant.RoleAdmin,
			expected: model.Pages,
		},
		{
			name:     "unknown role gets dashboard only",
			role:     "cleaner",
			expected: []string{"dashboard"},
		},
		{
			name:        "unknown keys dropped and duplicates removed",
			permissions: []string{" Rooms", "rooms", "billing", "REPORTS"},
			role:        constant.RoleReceptionist,
			expected:    []string{"dashboard", "rooms", "reports"},
		},
		{
			name:        "dashboard kept in place when present",
			permissions: []string{"guests", "dashboard"},
			role:        constant.RoleReceptionist,
			expected:    []string{"guests", "dashboard"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, model.NormalizePermissions(tt.permissions, tt.role))
		})
	}
}

func TestUser_HasPermission(t *testing.T) {
	admin := model.User{Role: constant.RoleAdmin, Permissions: []string{"dashboard"}}
	assert.True(t, admin.HasPermission(model.PageUsers))

	reception := model.User{Role: constant.RoleReceptionist}
	assert.True(t, reception.HasPermission(model.PageBookings))
	assert.False(t, reception.HasPermission(model.PageReports))

	custom := model.User{Role: constant.RoleReceptionist, Permissions: []string{"reports"}}
	assert.True(t, custom.HasPermission(model.PageReports))
	assert.True(t, custom.HasPermission(model.PageDashboard))
	assert.False(t, custom.HasPermission(model.PageRooms))
}
