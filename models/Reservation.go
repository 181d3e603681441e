package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ReservationStatusPending   = "pending approval"
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusCancelled = "cancelled"
	ReservationStatusRejected  = "rejected"
	ReservationStatusDenied    = "denied"
)

type Reservation struct {
	gorm.Model
	PropertyID      uint                   `json:"propertyID" gorm:"not null;index"`
	Property        Property               `json:"property" gorm:"foreignKey:PropertyID"`
	UserID          uint                   `json:"userID" gorm:"not null;index"`
	User            User                   `json:"user" gorm:"foreignKey:UserID"`
	Title           string                 `json:"title"`
	StartDate       time.Time              `json:"startDate" gorm:"not null;index"`
	EndDate         time.Time              `json:"endDate" gorm:"not null"`
	GuestCount      int                    `json:"guestCount" gorm:"default:1"`
	Status          string                 `json:"status" gorm:"type:varchar(20);default:'pending approval';index"`
	SpecialRequests string                 `json:"specialRequests" gorm:"type:text"`
	Companions      []ReservationCompanion `json:"companions" gorm:"foreignKey:ReservationID"`
	Approvals       []ReservationApproval  `json:"approvals" gorm:"foreignKey:ReservationID"`
}

// Nights returns the stay length in whole nights.
func (r *Reservation) Nights() int {
	return int(r.EndDate.Sub(r.StartDate).Hours() / 24)
}

// ReservationCompanion is a guest travelling with a reservation. InviteSentAt
// is stamped at most once, when a portal invitation has been dispatched.
type ReservationCompanion struct {
	gorm.Model
	ReservationID   uint       `json:"reservationID" gorm:"not null;index"`
	Name            string     `json:"name" gorm:"not null"`
	Relationship    string     `json:"relationship"`
	AgeRange        string     `json:"ageRange"` // adult, teen, child, infant
	Email           string     `json:"email"`
	PhoneNumber     string     `json:"phoneNumber"`
	InvitedToSystem bool       `json:"invitedToSystem" gorm:"default:false"`
	InviteSentAt    *time.Time `json:"inviteSentAt"`
}

type ReservationApproval struct {
	gorm.Model
	ReservationID uint   `json:"reservationID" gorm:"not null;index"`
	ApproverID    uint   `json:"approverID" gorm:"not null"`
	Approver      User   `json:"approver" gorm:"foreignKey:ApproverID"`
	Action        string `json:"action" gorm:"type:varchar(20)"` // approved, rejected
	Notes         string `json:"notes" gorm:"type:text"`
}
