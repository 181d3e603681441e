package services

import (
	"sync"
	"sync/atomic"
	"time"

	"porchlite-server/models"
	"porchlite-server/pkg/logger"

	"gorm.io/gorm"
)

// InvitationService dispatches portal invitations to reservation companions.
// Dispatch is best-effort: each companion is attempted independently and a
// failure for one never blocks the others. The caller only sees how many
// invitations went out.
type InvitationService struct {
	db     *gorm.DB
	mailer Mailer

	// stamp marks a companion as invited; overridable in tests.
	stamp func(companion *models.ReservationCompanion) error
}

func NewInvitationService(db *gorm.DB, mailer Mailer) *InvitationService {
	s := &InvitationService{db: db, mailer: mailer}
	s.stamp = s.stampInviteSent
	return s
}

// eligibleForInvite: flagged for invitation, has an email, and has never been
// invited before. InviteSentAt is set at most once, which is what makes
// repeated dispatch calls idempotent.
func eligibleForInvite(c models.ReservationCompanion) bool {
	return c.InvitedToSystem && c.InviteSentAt == nil && c.Email != ""
}

// SendGuestInvitations invites every eligible companion of the reservation
// and returns the number of invitations dispatched successfully.
func (s *InvitationService) SendGuestInvitations(reservationID uint) (int, error) {
	var reservation models.Reservation
	if err := s.db.Preload("Property").First(&reservation, reservationID).Error; err != nil {
		return 0, err
	}

	var companions []models.ReservationCompanion
	if err := s.db.
		Where("reservation_id = ? AND invited_to_system = ? AND invite_sent_at IS NULL AND email <> ''", reservationID, true).
		Find(&companions).Error; err != nil {
		return 0, err
	}

	return s.dispatch(reservation.Property.Name, companions), nil
}

// dispatch sends invitations concurrently. Partial failure is logged per
// companion and reflected only in the returned count.
func (s *InvitationService) dispatch(propertyName string, companions []models.ReservationCompanion) int {
	var sent int64
	var wg sync.WaitGroup

	for i := range companions {
		companion := companions[i]
		if !eligibleForInvite(companion) {
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()

			if err := s.mailer.SendInvitation(companion.Email, companion.Name, propertyName); err != nil {
				logger.Log.WithError(err).WithField("companionID", companion.ID).Warn("invitation dispatch failed")
				return
			}
			if err := s.stamp(&companion); err != nil {
				logger.Log.WithError(err).WithField("companionID", companion.ID).Warn("failed to stamp invite_sent_at")
				return
			}
			atomic.AddInt64(&sent, 1)
		}()
	}

	wg.Wait()
	return int(sent)
}

// stampInviteSent sets invite_sent_at, guarded so the timestamp is written
// at most once even under concurrent dispatches.
func (s *InvitationService) stampInviteSent(companion *models.ReservationCompanion) error {
	now := time.Now()
	return s.db.Model(&models.ReservationCompanion{}).
		Where("id = ? AND invite_sent_at IS NULL", companion.ID).
		Update("invite_sent_at", now).Error
}
