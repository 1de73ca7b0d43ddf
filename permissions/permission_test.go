package permissions_test

import (
	"testing"

	"hotel/permissions"
	"hotel/shared/constant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	login := data.FindPermissions("/api/auth/login", "POST")
	assert.True(t, login.Skip)

	users := data.FindPermissions("/api/users/", "GET")
	assert.True(t, users.Allows(constant.RoleAdmin))
	assert.False(t, users.Allows(constant.RoleReceptionist))

	export := data.FindPermissions("/api/reports/monthly/export", "GET")
	assert.True(t, export.Allows(constant.RoleAccountant))
	assert.False(t, export.Allows(constant.RoleReceptionist))

	checkIn := data.FindPermissions("/api/bookings/{id}/checkin", "POST")
	assert.True(t, checkIn.Allows(constant.RoleReceptionist))

	deleteRoom := data.FindPermissions("/api/rooms/{id}", "DELETE")
	assert.False(t, deleteRoom.Allows(constant.RoleReceptionist))
}

func TestPermissionData_FindPermissions(t *testing.T) {
	data := permissions.PermissionData{
		Endpoints: []permissions.Permission{{Path: "/api/rooms/", Method: "GET", Roles: []string{"admin"}}},
	}

	assert.Equal(t, []string{"admin"}, data.FindPermissions("/api/rooms", "GET").Roles)
	assert.Empty(t, data.FindPermissions("/api/rooms", "POST").Roles)
	assert.True(t, data.FindPermissions("/api/unknown", "GET").Allows("anyone"))
}
