package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CrisisUpdate struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CrisisPostID uuid.UUID `gorm:"type:uuid;not null;index" json:"crisis_post_id"`
	CreatorID    uuid.UUID `gorm:"type:uuid;not null;index" json:"creator_id"`
	Title        string    `gorm:"size:200;not null" json:"title"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	Image        string    `json:"image,omitempty"`

	CrisisPost *CrisisPost `gorm:"foreignKey:CrisisPostID;constraint:OnDelete:CASCADE"`
	Creator    *User       `gorm:"foreignKey:CreatorID;constraint:OnDelete:CASCADE"`
	Comments   []*Comment  `gorm:"foreignKey:UpdateID;constraint:OnDelete:CASCADE"`
	Timestamp
}

func (u *CrisisUpdate) BeforeCreate(*gorm.DB) error {
	ensureID(&u.ID)
	return nil
}

type Comment struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UpdateID uuid.UUID `gorm:"type:uuid;not null;index" json:"update_id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Content  string    `gorm:"type:text;not null" json:"content"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Timestamp
}

func (c *Comment) BeforeCreate(*gorm.DB) error {
	ensureID(&c.ID)
	return nil
}
