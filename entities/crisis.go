package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CrisisPost struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	PostType    string    `gorm:"size:20;not null;index" json:"post_type"` // national, district or individual
	Location    string    `gorm:"size:200" json:"location"`
	BannerImage string    `json:"banner_image,omitempty"`
	Status      string    `gorm:"size:20;not null;index" json:"status"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`

	Owner    *User          `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Sections []*PostSection `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Timestamp
}

func (p *CrisisPost) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}

type PostSection struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	PostID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"post_id"`
	SectionType string     `gorm:"size:20;not null" json:"section_type"`
	Content     string     `gorm:"type:text" json:"content"`
	CreatedByID *uuid.UUID `gorm:"type:uuid" json:"created_by_id"`

	CreatedBy *User `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL"`
	Timestamp
}

func (s *PostSection) BeforeCreate(*gorm.DB) error {
	ensureID(&s.ID)
	return nil
}
