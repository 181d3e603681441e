package models

import "gorm.io/gorm"

type Notification struct {
	gorm.Model
	UserID       uint   `json:"userID" gorm:"not null;index"`
	Type         string `json:"type" gorm:"type:varchar(40);index"` // reservation_approved, reservation_rejected, task_assigned...
	Title        string `json:"title"`
	Body         string `json:"body" gorm:"type:text"`
	ResourceType string `json:"resourceType" gorm:"type:varchar(40)"`
	ResourceID   uint   `json:"resourceID"`
	IsRead       bool   `json:"isRead" gorm:"default:false;index"`
}
