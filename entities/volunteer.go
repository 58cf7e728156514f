package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VolunteerApplication is unique per (user, crisis post).
type VolunteerApplication struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_volunteer_user_post" json:"user_id"`
	CrisisPostID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_volunteer_user_post;index" json:"crisis_post_id"`
	Message      string    `gorm:"type:text" json:"message"`
	Status       string    `gorm:"size:10;not null;index" json:"status"`
	AppliedAt    time.Time `gorm:"autoCreateTime;index" json:"applied_at"`

	User       *User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CrisisPost *CrisisPost `gorm:"foreignKey:CrisisPostID;constraint:OnDelete:CASCADE"`
}

func (a *VolunteerApplication) BeforeCreate(*gorm.DB) error {
	ensureID(&a.ID)
	return nil
}
