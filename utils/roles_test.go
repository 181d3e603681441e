package utils

import "testing"

func TestRoleLevelOrdering(t *testing.T) {
	ordered := []string{RoleGuest, RoleFriend, RoleFamily, RoleStaff, RoleManager, RoleAdmin, RoleOwner}

	for i := 1; i < len(ordered); i++ {
		lower, higher := ordered[i-1], ordered[i]
		if RoleLevel(lower) >= RoleLevel(higher) {
			t.Errorf("expected level(%s)=%d < level(%s)=%d", lower, RoleLevel(lower), higher, RoleLevel(higher))
		}
	}
}

func TestHasPermissionReflexive(t *testing.T) {
	for role := range roleLevels {
		if !HasPermission(role, role) {
			t.Errorf("HasPermission(%q, %q) = false, want true", role, role)
		}
	}
}

func TestHasPermission(t *testing.T) {
	cases := []struct {
		userRole string
		required string
		want     bool
	}{
		{RoleOwner, RoleAdmin, true},
		{RoleAdmin, RoleOwner, false},
		{RoleManager, RoleStaff, true},
		{RoleStaff, RoleManager, false},
		{RoleFamily, RoleFriend, true},
		{RoleTenant, RoleFriend, true}, // same level
		{RoleGuest, RoleFriend, false},
		{"", RoleGuest, true},          // missing role degrades to guest
		{"mystery", RoleFriend, false}, // unknown role never elevates
		{"mystery", RoleGuest, true},
	}

	for _, tc := range cases {
		if got := HasPermission(tc.userRole, tc.required); got != tc.want {
			t.Errorf("HasPermission(%q, %q) = %v, want %v", tc.userRole, tc.required, got, tc.want)
		}
	}
}

func TestRoleLevelUnknownIsLowest(t *testing.T) {
	if got := RoleLevel("superuser"); got != 0 {
		t.Errorf("RoleLevel(unknown) = %d, want 0", got)
	}
	if got := RoleLevel(""); got != 0 {
		t.Errorf("RoleLevel(empty) = %d, want 0", got)
	}
}

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"owner", RoleOwner},
		{" Manager ", RoleManager},
		{"FAMILY", RoleFamily},
		{"", RoleGuest},
		{"superuser", RoleGuest},
	}

	for _, tc := range cases {
		if got := ParseRole(tc.in); got != tc.want {
			t.Errorf("ParseRole(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
