package models

import "gorm.io/gorm"

// Walkthrough manuals: ordered sections, each with ordered steps. Used for
// arrival instructions, appliance guides and checkout checklists.

type WalkthroughSection struct {
	gorm.Model
	PropertyID  uint              `json:"propertyID" gorm:"not null;index"`
	Title       string            `json:"title" gorm:"not null"`
	Description string            `json:"description" gorm:"type:text"`
	SortOrder   int               `json:"sortOrder" gorm:"default:0;index"`
	Steps       []WalkthroughStep `json:"steps" gorm:"foreignKey:SectionID"`
}

type WalkthroughStep struct {
	gorm.Model
	SectionID uint   `json:"sectionID" gorm:"not null;index"`
	Title     string `json:"title" gorm:"not null"`
	Body      string `json:"body" gorm:"type:text"`
	PhotoURL  string `json:"photoURL"`
	SortOrder int    `json:"sortOrder" gorm:"default:0;index"`
}
