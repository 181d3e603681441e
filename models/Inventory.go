package models

import "gorm.io/gorm"

type InventoryItem struct {
	gorm.Model
	PropertyID       uint     `json:"propertyID" gorm:"not null;index"`
	Property         Property `json:"-" gorm:"foreignKey:PropertyID"`
	Name             string   `json:"name" gorm:"not null"`
	Category         string   `json:"category" gorm:"index"`
	Quantity         int      `json:"quantity" gorm:"default:0"`
	RestockThreshold int      `json:"restockThreshold" gorm:"default:1"`
	Location         string   `json:"location"` // pantry, garage, bathroom...
	Notes            string   `json:"notes" gorm:"type:text"`
}

// NeedsRestock reports whether the item is at or below its threshold.
func (i *InventoryItem) NeedsRestock() bool {
	return i.Quantity <= i.RestockThreshold
}

// DefaultStaple is a system-provided staple template shared by every property.
type DefaultStaple struct {
	gorm.Model
	Name            string `json:"name" gorm:"not null;uniqueIndex:idx_default_staple"`
	Category        string `json:"category" gorm:"uniqueIndex:idx_default_staple"`
	DefaultQuantity int    `json:"defaultQuantity" gorm:"default:1"`
}

// CustomStaple is a per-property staple template added by a manager.
type CustomStaple struct {
	gorm.Model
	PropertyID      uint   `json:"propertyID" gorm:"not null;index"`
	CreatedByID     uint   `json:"createdByID"`
	Name            string `json:"name" gorm:"not null"`
	Category        string `json:"category"`
	DefaultQuantity int    `json:"defaultQuantity" gorm:"default:1"`
}
