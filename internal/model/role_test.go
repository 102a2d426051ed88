package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_HasPermission(t *testing.T) {
	t.Run("admin holds every permission", func(t *testing.T) {
		for _, p := range []Permission{
			PermissionViewUsers,
			PermissionManageUsers,
			PermissionCreateEvent,
			PermissionEditEvent,
			PermissionDeleteEvent,
			PermissionViewAnalytics,
			PermissionManageFeatureFlags,
		} {
			assert.True(t, RoleAdmin.HasPermission(p), string(p))
		}
	})

	t.Run("organizer manages events and analytics only", func(t *testing.T) {
		assert.True(t, RoleOrganizer.HasPermission(PermissionCreateEvent))
		assert.True(t, RoleOrganizer.HasPermission(PermissionEditEvent))
		assert.True(t, RoleOrganizer.HasPermission(PermissionViewAnalytics))
		assert.False(t, RoleOrganizer.HasPermission(PermissionManageUsers))
		assert.False(t, RoleOrganizer.HasPermission(PermissionManageFeatureFlags))
	})

	t.Run("user holds no direct permissions", func(t *testing.T) {
		assert.False(t, RoleUser.HasPermission(PermissionViewUsers))
		assert.False(t, RoleUser.HasPermission(PermissionCreateEvent))
	})

	t.Run("unknown role holds nothing", func(t *testing.T) {
		assert.False(t, Role("ghost").HasPermission(PermissionViewUsers))
	})
}
