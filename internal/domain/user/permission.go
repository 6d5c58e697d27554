package user

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"

	// Analytics
	PermissionAnalyticsViewOwn  Permission = "analytics.view_own"
	PermissionAnalyticsViewTeam Permission = "analytics.view_team"
	PermissionAnalyticsViewAll  Permission = "analytics.view_all"

	// Reports
	PermissionReportsExport Permission = "reports.export"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		// Admin has all permissions
		PermissionViewOwnProfile,
		PermissionAnalyticsViewOwn,
		PermissionAnalyticsViewTeam,
		PermissionAnalyticsViewAll,
		PermissionReportsExport,
	},
	RoleManager: {
		// Manager can view direct reports
		PermissionViewOwnProfile,
		PermissionAnalyticsViewOwn,
		PermissionAnalyticsViewTeam,
		PermissionReportsExport,
	},
	RoleDepartmentHead: {
		// Department head can view their department
		PermissionViewOwnProfile,
		PermissionAnalyticsViewOwn,
		PermissionAnalyticsViewTeam,
		PermissionReportsExport,
	},
	RoleEmployee: {
		// Employee has basic access
		PermissionViewOwnProfile,
		PermissionAnalyticsViewOwn,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
