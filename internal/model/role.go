package model

// Role 使用者角色
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleOrganizer Role = "organizer"
	RoleUser      Role = "user"
)

// Permission 角色可持有的權限
type Permission string

const (
	PermissionViewUsers          Permission = "view_users"
	PermissionManageUsers        Permission = "manage_users"
	PermissionCreateEvent        Permission = "create_event"
	PermissionEditEvent          Permission = "edit_event"
	PermissionDeleteEvent        Permission = "delete_event"
	PermissionViewAnalytics      Permission = "view_analytics"
	PermissionManageFeatureFlags Permission = "manage_feature_flags"
)

// rolePermissions 靜態的角色權限表，一般使用者只能操作自己的資料（由 ABAC 處理）
var rolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionViewUsers,
		PermissionManageUsers,
		PermissionCreateEvent,
		PermissionEditEvent,
		PermissionDeleteEvent,
		PermissionViewAnalytics,
		PermissionManageFeatureFlags,
	},
	RoleOrganizer: {
		PermissionCreateEvent,
		PermissionEditEvent,
		PermissionViewAnalytics,
	},
	RoleUser: {},
}

// HasPermission 檢查角色是否持有指定權限
func (r Role) HasPermission(p Permission) bool {
	for _, perm := range rolePermissions[r] {
		if perm == p {
			return true
		}
	}
	return false
}
