package services

import (
	"fmt"

	"porchlite-server/models"
	"porchlite-server/pkg/logger"

	"gorm.io/gorm"
)

// NotificationService writes in-app notification rows. Delivery to devices is
// out of scope; the portal polls the notification list.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

func (ns *NotificationService) notify(userID uint, notifType, title, body, resourceType string, resourceID uint) {
	n := models.Notification{
		UserID:       userID,
		Type:         notifType,
		Title:        title,
		Body:         body,
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
	if err := ns.db.Create(&n).Error; err != nil {
		logger.Log.WithError(err).WithField("userID", userID).Warn("failed to create notification")
	}
}

func (ns *NotificationService) ReservationApproved(reservation *models.Reservation) {
	ns.notify(reservation.UserID,
		"reservation_approved",
		"Reservation confirmed",
		fmt.Sprintf("Your stay starting %s has been approved.", reservation.StartDate.Format("Jan 2, 2006")),
		"reservation", reservation.ID)
}

func (ns *NotificationService) ReservationRejected(reservation *models.Reservation, notes string) {
	body := fmt.Sprintf("Your stay starting %s was not approved.", reservation.StartDate.Format("Jan 2, 2006"))
	if notes != "" {
		body += " " + notes
	}
	ns.notify(reservation.UserID, "reservation_rejected", "Reservation declined", body, "reservation", reservation.ID)
}

func (ns *NotificationService) TaskAssigned(task *models.Task) {
	if task.AssignedTo == nil {
		return
	}
	ns.notify(*task.AssignedTo,
		"task_assigned",
		"New task assigned",
		task.Title,
		"task", task.ID)
}
