package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Property struct {
	gorm.Model
	OwnerID        uint           `json:"ownerID" gorm:"not null;index"`
	Owner          User           `json:"owner" gorm:"foreignKey:OwnerID;references:ID"`
	Name           string         `json:"name" gorm:"not null"`
	Description    string         `json:"description" gorm:"type:text"`
	AddressLine1   string         `json:"addressLine1"`
	AddressLine2   string         `json:"addressLine2"`
	City           string         `json:"city"`
	State          string         `json:"state"`
	Zip            string         `json:"zip"`
	Country        string         `json:"country"`
	HeaderImageURL string         `json:"headerImageURL"`
	Amenities      datatypes.JSON `json:"amenities" gorm:"type:jsonb"`
	CheckInTime    string         `json:"checkInTime" gorm:"type:varchar(10)"`
	CheckOutTime   string         `json:"checkOutTime" gorm:"type:varchar(10)"`
	MaxGuests      int            `json:"maxGuests"`
	Members        []TenantUser   `json:"members" gorm:"foreignKey:PropertyID;references:ID"`
}

// TenantUser scopes a user to a property with a role at that property.
// The global User.Role is a fallback when no membership row exists.
type TenantUser struct {
	gorm.Model
	PropertyID uint     `json:"propertyID" gorm:"not null;index;uniqueIndex:idx_property_user"`
	UserID     uint     `json:"userID" gorm:"not null;index;uniqueIndex:idx_property_user"`
	Role       string   `json:"role" gorm:"type:varchar(20);default:guest"`
	Property   Property `json:"-" gorm:"foreignKey:PropertyID"`
	User       User     `json:"user" gorm:"foreignKey:UserID"`
}

// Amenities are stored as a JSON array; expose them that way.
func (p *Property) MarshalJSON() ([]byte, error) {
	type Alias Property
	aux := &struct {
		Amenities []string `json:"amenities"`
		*Alias
	}{
		Amenities: []string{},
		Alias:     (*Alias)(p),
	}

	if p.Amenities != nil {
		var amenities []string
		if err := json.Unmarshal(p.Amenities, &amenities); err == nil {
			aux.Amenities = amenities
		}
	}

	return json.Marshal(aux)
}
