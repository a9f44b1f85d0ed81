package user

import "strings"

// Role is the league role carried by an authenticated caller.
type Role string

const (
	RolePlayer  Role = "PLAYER"
	RoleManager Role = "MANAGER"
	RoleAdmin   Role = "ADMIN"
)

// ParseRole maps an identity-provider role claim to a Role. Unknown or empty
// values become RolePlayer.
func ParseRole(value string) Role {
	switch Role(strings.ToUpper(strings.TrimSpace(value))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleManager:
		return RoleManager
	default:
		return RolePlayer
	}
}

// Principal is the caller resolved from an access token.
type Principal struct {
	UserID string
	Email  string
	Role   Role
}

func (p Principal) Can(perm Permission) bool {
	return HasPermission(p.Role, perm)
}
