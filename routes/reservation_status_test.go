package routes

import (
	"testing"

	"porchlite-server/models"
	"porchlite-server/utils"
)

func TestDetermineStatusNewReservation(t *testing.T) {
	cases := []struct {
		role string
		want string
	}{
		{utils.RoleOwner, models.ReservationStatusConfirmed},
		{utils.RoleAdmin, models.ReservationStatusConfirmed},
		{utils.RoleManager, models.ReservationStatusConfirmed},
		{utils.RoleFamily, models.ReservationStatusConfirmed},
		{utils.RoleFriend, models.ReservationStatusConfirmed},
		{utils.RoleStaff, models.ReservationStatusPending},
		{utils.RoleTenant, models.ReservationStatusPending},
		{utils.RoleGuest, models.ReservationStatusPending},
		{"mystery", models.ReservationStatusPending}, // unknown role fails safe
	}

	for _, tc := range cases {
		canApprove := utils.HasPermission(tc.role, utils.RoleManager)
		if got := DetermineStatus(tc.role, false, canApprove); got != tc.want {
			t.Errorf("DetermineStatus(%q, false, %v) = %q, want %q", tc.role, canApprove, got, tc.want)
		}
	}
}

func TestDetermineStatusEditing(t *testing.T) {
	// Editing without approval rights keeps the stored status.
	for _, role := range []string{utils.RoleGuest, utils.RoleFriend, utils.RoleFamily, utils.RoleStaff} {
		if got := DetermineStatus(role, true, false); got != StatusUnchanged {
			t.Errorf("DetermineStatus(%q, true, false) = %q, want sentinel", role, got)
		}
	}

	// Approvers re-resolve status even when editing.
	if got := DetermineStatus(utils.RoleManager, true, true); got != models.ReservationStatusConfirmed {
		t.Errorf("DetermineStatus(manager, true, true) = %q, want confirmed", got)
	}
}
