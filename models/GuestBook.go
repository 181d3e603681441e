package models

import (
	"time"

	"gorm.io/gorm"
)

type GuestBookEntry struct {
	gorm.Model
	PropertyID uint             `json:"propertyID" gorm:"not null;index"`
	UserID     uint             `json:"userID" gorm:"not null;index"`
	User       User             `json:"user" gorm:"foreignKey:UserID"`
	Title      string           `json:"title"`
	Body       string           `json:"body" gorm:"type:text"`
	Rating     int              `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	VisitDate  *time.Time       `json:"visitDate"`
	IsPublic   bool             `json:"isPublic" gorm:"default:false;index"`
	IsApproved bool             `json:"isApproved" gorm:"default:false;index"`
	Photos     []GuestBookPhoto `json:"photos" gorm:"foreignKey:EntryID"`
}

// PubliclyVisible: an entry shows on the public page only when the author
// published it and a manager approved it.
func (e *GuestBookEntry) PubliclyVisible() bool {
	return e.IsPublic && e.IsApproved
}

type GuestBookPhoto struct {
	gorm.Model
	EntryID uint   `json:"entryID" gorm:"not null;index"`
	URL     string `json:"url" gorm:"not null"`
	Caption string `json:"caption"`
}
