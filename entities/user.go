package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Username          string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email             string    `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Password          string    `gorm:"not null" json:"-"`
	FirstName         string    `gorm:"size:150" json:"first_name"`
	LastName          string    `gorm:"size:150" json:"last_name"`
	Phone             string    `gorm:"size:20" json:"phone"`
	Location          string    `gorm:"size:200" json:"location"`
	Occupation        string    `gorm:"size:100" json:"occupation"`
	FacebookAccount   string    `gorm:"size:200" json:"facebook_account"`
	ProfilePicture    string    `json:"profile_picture,omitempty"`
	Role              string    `gorm:"size:10;not null" json:"role"`
	IsAdmin           bool      `gorm:"not null" json:"is_admin"`
	IsVerified        bool      `gorm:"not null" json:"is_verified"`
	VerificationToken *string   `gorm:"size:64;uniqueIndex" json:"-"`
	Timestamp
}

func (u *User) BeforeCreate(*gorm.DB) error {
	ensureID(&u.ID)
	return nil
}
