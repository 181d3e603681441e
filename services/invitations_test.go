package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"porchlite-server/models"
)

type fakeMailer struct {
	mu      sync.Mutex
	sent    []string
	failFor map[string]bool
}

func (m *fakeMailer) SendInvitation(email, name, propertyName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFor[email] {
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, email)
	return nil
}

func companion(id uint, email string, invited bool, sentAt *time.Time) models.ReservationCompanion {
	c := models.ReservationCompanion{
		Name:            "Companion",
		Email:           email,
		InvitedToSystem: invited,
		InviteSentAt:    sentAt,
	}
	c.ID = id
	return c
}

// newTestService wires a dispatcher whose stamp writes to an in-memory map
// instead of the database.
func newTestService(mailer Mailer) (*InvitationService, map[uint]time.Time, *sync.Mutex) {
	stamps := make(map[uint]time.Time)
	var mu sync.Mutex

	s := &InvitationService{mailer: mailer}
	s.stamp = func(c *models.ReservationCompanion) error {
		mu.Lock()
		defer mu.Unlock()
		if _, already := stamps[c.ID]; already {
			return nil // at-most-once: second stamp is a no-op
		}
		stamps[c.ID] = time.Now()
		return nil
	}
	return s, stamps, &mu
}

func TestEligibleForInvite(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name string
		c    models.ReservationCompanion
		want bool
	}{
		{"flagged with email", companion(1, "a@example.com", true, nil), true},
		{"not flagged", companion(2, "b@example.com", false, nil), false},
		{"no email", companion(3, "", true, nil), false},
		{"already invited", companion(4, "c@example.com", true, &now), false},
	}

	for _, tc := range cases {
		if got := eligibleForInvite(tc.c); got != tc.want {
			t.Errorf("%s: eligibleForInvite = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestDispatchCountsSuccesses(t *testing.T) {
	mailer := &fakeMailer{}
	s, stamps, _ := newTestService(mailer)

	companions := []models.ReservationCompanion{
		companion(1, "one@example.com", true, nil),
		companion(2, "two@example.com", true, nil),
		companion(3, "", true, nil),                  // no email, skipped
		companion(4, "four@example.com", false, nil), // not flagged, skipped
	}

	sent := s.dispatch("Lakehouse", companions)
	if sent != 2 {
		t.Fatalf("dispatch returned %d, want 2", sent)
	}
	if len(stamps) != 2 {
		t.Fatalf("stamped %d companions, want 2", len(stamps))
	}
}

func TestDispatchPartialFailureDoesNotBlockOthers(t *testing.T) {
	mailer := &fakeMailer{failFor: map[string]bool{"bad@example.com": true}}
	s, stamps, _ := newTestService(mailer)

	companions := []models.ReservationCompanion{
		companion(1, "good@example.com", true, nil),
		companion(2, "bad@example.com", true, nil),
		companion(3, "also-good@example.com", true, nil),
	}

	sent := s.dispatch("Lakehouse", companions)
	if sent != 2 {
		t.Fatalf("dispatch returned %d, want 2 (one failure)", sent)
	}
	if _, stamped := stamps[2]; stamped {
		t.Error("failed dispatch must not stamp invite_sent_at")
	}
}

func TestDispatchIdempotent(t *testing.T) {
	mailer := &fakeMailer{}
	s, stamps, mu := newTestService(mailer)

	companions := []models.ReservationCompanion{
		companion(1, "one@example.com", true, nil),
		companion(2, "two@example.com", true, nil),
	}

	if sent := s.dispatch("Lakehouse", companions); sent != 2 {
		t.Fatalf("first dispatch returned %d, want 2", sent)
	}

	// Second call sees the stamped rows, as the DB query would.
	mu.Lock()
	for i := range companions {
		if at, ok := stamps[companions[i].ID]; ok {
			ts := at
			companions[i].InviteSentAt = &ts
		}
	}
	mu.Unlock()

	if sent := s.dispatch("Lakehouse", companions); sent != 0 {
		t.Fatalf("second dispatch returned %d, want 0", sent)
	}
	if len(mailer.sent) != 2 {
		t.Fatalf("mailer sent %d invitations total, want 2", len(mailer.sent))
	}
}
