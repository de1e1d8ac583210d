package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is keyed by the identity provider's stable subject id.
type User struct {
	ID          string    `json:"id" gorm:"primaryKey;size:191"`
	Username    string    `json:"username" gorm:"uniqueIndex;size:64;not null"`
	Avatar      string    `json:"avatar,omitempty"`
	Cover       string    `json:"cover,omitempty"`
	Name        string    `json:"name,omitempty" gorm:"size:60"`
	Surname     string    `json:"surname,omitempty" gorm:"size:60"`
	Description string    `json:"description,omitempty" gorm:"size:255"`
	City        string    `json:"city,omitempty" gorm:"size:60"`
	School      string    `json:"school,omitempty" gorm:"size:60"`
	Work        string    `json:"work,omitempty" gorm:"size:60"`
	Website     string    `json:"website,omitempty" gorm:"size:60"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserCompact is the projection embedded in feed items, stories and
// search results.
type UserCompact struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Surname  string `json:"surname,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Surname:  u.Surname,
		Avatar:   u.Avatar,
	}
}

// UpdateProfileRequest mirrors the profile form. Empty fields are left
// unchanged.
type UpdateProfileRequest struct {
	Cover       string `json:"cover" form:"cover" validate:"omitempty,max=255"`
	Name        string `json:"name" form:"name" validate:"omitempty,max=60"`
	Surname     string `json:"surname" form:"surname" validate:"omitempty,max=60"`
	Description string `json:"description" form:"description" validate:"omitempty,max=255"`
	City        string `json:"city" form:"city" validate:"omitempty,max=60"`
	School      string `json:"school" form:"school" validate:"omitempty,max=60"`
	Work        string `json:"work" form:"work" validate:"omitempty,max=60"`
	Website     string `json:"website" form:"website" validate:"omitempty,max=60"`
}

// Fields returns the non-empty fields keyed by column name.
func (r UpdateProfileRequest) Fields() map[string]interface{} {
	all := map[string]string{
		"cover":       r.Cover,
		"name":        r.Name,
		"surname":     r.Surname,
		"description": r.Description,
		"city":        r.City,
		"school":      r.School,
		"work":        r.Work,
		"website":     r.Website,
	}
	fields := make(map[string]interface{}, len(all))
	for k, v := range all {
		if v != "" {
			fields[k] = v
		}
	}
	return fields
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
