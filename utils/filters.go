package utils

import (
	"strings"

	"golang.org/x/exp/slices"
)

// In-memory filter predicates used by the list endpoints. All of them are
// nil-safe: missing fields never match, they never panic.

var openTaskStatuses = []string{"pending", "in_progress"}

// MatchesSearch reports whether any of the fields contains term,
// case-insensitively. An empty term matches everything.
func MatchesSearch(term string, fields ...string) bool {
	if strings.TrimSpace(term) == "" {
		return true
	}
	needle := strings.ToLower(term)
	for _, f := range fields {
		if f == "" {
			continue
		}
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// MatchesRole filters by exact role. A missing role counts as guest; the
// filter values "" and "all" pass everything.
func MatchesRole(role, filter string) bool {
	if filter == "" || filter == "all" {
		return true
	}
	if role == "" {
		role = RoleGuest
	}
	return role == filter
}

// IsOpenStatus reports whether a task status counts as open work.
func IsOpenStatus(status string) bool {
	return slices.Contains(openTaskStatuses, status)
}

// MatchesStatus filters by exact status, with "open" expanding to the open
// set and ""/"all" passing everything.
func MatchesStatus(status, filter string) bool {
	switch filter {
	case "", "all":
		return true
	case "open":
		return IsOpenStatus(status)
	default:
		return status == filter
	}
}
