package models

import (
	"testing"
	"time"
)

func TestReservationNights(t *testing.T) {
	r := Reservation{
		StartDate: time.Date(2024, 7, 1, 15, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 7, 4, 15, 0, 0, 0, time.UTC),
	}
	if got := r.Nights(); got != 3 {
		t.Errorf("Nights() = %d, want 3", got)
	}

	// Early checkout on the last day still counts whole nights only.
	r.EndDate = time.Date(2024, 7, 4, 10, 0, 0, 0, time.UTC)
	if got := r.Nights(); got != 2 {
		t.Errorf("Nights() with early checkout = %d, want 2", got)
	}
}

func TestInventoryNeedsRestock(t *testing.T) {
	cases := []struct {
		quantity  int
		threshold int
		want      bool
	}{
		{0, 1, true},
		{1, 1, true}, // at the threshold counts as low
		{2, 1, false},
		{5, 10, true},
	}

	for _, tc := range cases {
		item := InventoryItem{Quantity: tc.quantity, RestockThreshold: tc.threshold}
		if got := item.NeedsRestock(); got != tc.want {
			t.Errorf("NeedsRestock(qty=%d, threshold=%d) = %v, want %v", tc.quantity, tc.threshold, got, tc.want)
		}
	}
}

func TestGuestBookPubliclyVisible(t *testing.T) {
	cases := []struct {
		public   bool
		approved bool
		want     bool
	}{
		{true, true, true},
		{true, false, false},
		{false, true, false},
		{false, false, false},
	}

	for _, tc := range cases {
		e := GuestBookEntry{IsPublic: tc.public, IsApproved: tc.approved}
		if got := e.PubliclyVisible(); got != tc.want {
			t.Errorf("PubliclyVisible(public=%v, approved=%v) = %v, want %v", tc.public, tc.approved, got, tc.want)
		}
	}
}
