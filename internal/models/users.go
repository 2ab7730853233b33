package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role values understood by the permission layer.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// ReservedUsername is claimed by the self-profile endpoint and can never
// be registered.
const ReservedUsername = "me"

type User struct {
	ID               string    `gorm:"primaryKey;type:uuid" json:"id"`
	Username         string    `gorm:"uniqueIndex;not null" json:"username"`
	Email            string    `gorm:"uniqueIndex;not null" json:"email"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Bio              string    `gorm:"type:text" json:"bio"`
	Role             string    `gorm:"default:'user';not null" json:"role"`
	ConfirmationCode string    `gorm:"not null" json:"-"` // Not shown in JSON
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}
