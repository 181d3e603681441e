package models

import "gorm.io/gorm"

type Recommendation struct {
	gorm.Model
	PropertyID  uint     `json:"propertyID" gorm:"not null;index"`
	CreatedByID uint     `json:"createdByID"`
	CreatedBy   User     `json:"createdBy" gorm:"foreignKey:CreatedByID"`
	Category    string   `json:"category" gorm:"index"` // restaurant, activity, shopping, service...
	Title       string   `json:"title" gorm:"not null"`
	Body        string   `json:"body" gorm:"type:text"`
	Address     string   `json:"address"`
	Website     string   `json:"website"`
	PhoneNumber string   `json:"phoneNumber"`
	Rating      *int     `json:"rating" gorm:"check:rating >= 1 AND rating <= 5"`
	ImageURL    string   `json:"imageURL"`
	Property    Property `json:"-" gorm:"foreignKey:PropertyID"`
}
