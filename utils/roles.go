package utils

import (
	"strings"

	"porchlite-server/pkg/logger"
)

// Role strings carried on users and tenant memberships.
const (
	RoleOwner   = "owner"
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
	RoleFamily  = "family"
	RoleFriend  = "friend"
	RoleTenant  = "tenant"
	RoleGuest   = "guest"
)

// roleLevels is the privilege ladder. Anything unknown resolves to guest.
var roleLevels = map[string]int{
	RoleOwner:   6,
	RoleAdmin:   5,
	RoleManager: 4,
	RoleStaff:   3,
	RoleFamily:  2,
	RoleFriend:  1,
	RoleTenant:  1,
	RoleGuest:   0,
}

// RoleLevel maps a role string to its privilege level. Unknown or empty
// roles degrade to the lowest privilege rather than failing.
func RoleLevel(role string) int {
	if level, ok := roleLevels[role]; ok {
		return level
	}
	return 0
}

// HasPermission reports whether userRole carries at least the privilege of
// requiredRole.
func HasPermission(userRole, requiredRole string) bool {
	return RoleLevel(userRole) >= RoleLevel(requiredRole)
}

// ParseRole validates a role string read from the outside (request payloads,
// stored rows). Unknown values are logged once and demoted to guest so a bad
// row can never elevate or crash a request.
func ParseRole(role string) string {
	r := strings.ToLower(strings.TrimSpace(role))
	if r == "" {
		return RoleGuest
	}
	if _, ok := roleLevels[r]; !ok {
		logger.Log.WithField("role", role).Warn("unknown role, treating as guest")
		return RoleGuest
	}
	return r
}

// ValidRole reports whether the string is one of the known role names.
func ValidRole(role string) bool {
	_, ok := roleLevels[role]
	return ok
}
