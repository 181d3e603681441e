package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FirstName           string         `json:"firstName"`
	LastName            string         `json:"lastName"`
	Email               string         `json:"email" gorm:"uniqueIndex"`
	PhoneNumber         string         `json:"phoneNumber"`
	Password            string         `json:"password"`
	AvatarURL           string         `json:"avatarURL"`
	Bio                 string         `json:"bio"`
	Role                string         `json:"role" gorm:"type:varchar(20);default:guest;index"` // owner, admin, manager, staff, family, friend, tenant, guest
	PushTokens          datatypes.JSON `json:"pushTokens"`
	AllowsNotifications *bool          `json:"allowsNotifications"`
	Memberships         []TenantUser   `json:"memberships" gorm:"foreignKey:UserID;references:ID"`
}

// Custom JSON marshaling: expose push tokens as a plain array and never
// leak the password hash.
func (u *User) MarshalJSON() ([]byte, error) {
	type Alias User
	aux := &struct {
		Password   string   `json:"password,omitempty"`
		PushTokens []string `json:"pushTokens,omitempty"`
		*Alias
	}{
		PushTokens: []string{},
		Alias:      (*Alias)(u),
	}

	if u.PushTokens != nil {
		var tokens []string
		if err := json.Unmarshal(u.PushTokens, &tokens); err == nil {
			aux.PushTokens = tokens
		}
	}

	return json.Marshal(aux)
}

func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
