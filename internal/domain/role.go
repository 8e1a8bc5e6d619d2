package domain

import "strings"

// Role is a discrete permission tag attached to a profile.
type Role string

const (
	RoleClient   Role = "CLIENT"
	RoleMechanic Role = "MECHANIC"
	RoleCarWash  Role = "CARWASH"
	RoleAdmin    Role = "ADMIN"
)

// ParseRole maps free-form input to a Role. Matching is case-insensitive;
// unrecognized input returns ErrUnknownRole rather than passing through.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleClient:
		return RoleClient, nil
	case RoleMechanic:
		return RoleMechanic, nil
	case RoleCarWash:
		return RoleCarWash, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", ErrUnknownRole
	}
}

// HasRole reports whether the tag appears in the set.
func HasRole(roles []Role, role Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
