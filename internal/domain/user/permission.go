package user

type Permission string

const (
	PermissionViewLeague        Permission = "canViewLeague"
	PermissionViewTeam          Permission = "canViewTeam"
	PermissionViewStats         Permission = "canViewStats"
	PermissionEditProfile       Permission = "canEditProfile"
	PermissionManageTeam        Permission = "canManageTeam"
	PermissionCreateGames       Permission = "canCreateGames"
	PermissionEnterStats        Permission = "canEnterStats"
	PermissionManageLeague      Permission = "canManageLeague"
	PermissionManageUsers       Permission = "canManageUsers"
	PermissionConfigureBranding Permission = "canConfigureBranding"
	PermissionImportExport      Permission = "canImportExport"
)

var playerPermissions = permissionSet(
	PermissionViewLeague,
	PermissionViewTeam,
	PermissionViewStats,
	PermissionEditProfile,
)

var managerPermissions = permissionSet(
	PermissionViewLeague,
	PermissionViewTeam,
	PermissionViewStats,
	PermissionEditProfile,
	PermissionManageTeam,
	PermissionCreateGames,
	PermissionEnterStats,
	PermissionImportExport,
)

var adminPermissions = permissionSet(
	PermissionViewLeague,
	PermissionViewTeam,
	PermissionViewStats,
	PermissionEditProfile,
	PermissionManageTeam,
	PermissionCreateGames,
	PermissionEnterStats,
	PermissionManageLeague,
	PermissionManageUsers,
	PermissionConfigureBranding,
	PermissionImportExport,
)

func permissionSet(perms ...Permission) map[Permission]struct{} {
	out := make(map[Permission]struct{}, len(perms))
	for _, p := range perms {
		out[p] = struct{}{}
	}
	return out
}

// HasPermission reports whether role grants perm.
func HasPermission(role Role, perm Permission) bool {
	var set map[Permission]struct{}
	switch ParseRole(string(role)) {
	case RoleAdmin:
		set = adminPermissions
	case RoleManager:
		set = managerPermissions
	default:
		set = playerPermissions
	}
	_, ok := set[perm]
	return ok
}
