package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DonationMoney is either tied to a registered donor (DonorID) or carries
// guest contact fields, never both.
type DonationMoney struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CrisisPostID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"crisis_post_id"`
	DonorID       *uuid.UUID      `gorm:"type:uuid;index" json:"donor_id,omitempty"`
	DonorName     *string         `gorm:"size:100" json:"donor_name,omitempty"`
	DonorEmail    *string         `gorm:"size:254" json:"donor_email,omitempty"`
	DonorPhone    *string         `gorm:"size:20" json:"donor_phone,omitempty"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaymentMethod string          `gorm:"size:20;not null" json:"payment_method"`
	TransactionID *string         `gorm:"size:100" json:"transaction_id,omitempty"`
	Message       string          `gorm:"type:text" json:"message"`
	IsAnonymous   bool            `gorm:"not null" json:"is_anonymous"`
	DonatedAt     time.Time       `gorm:"autoCreateTime;index" json:"donated_at"`

	CrisisPost *CrisisPost `gorm:"foreignKey:CrisisPostID;constraint:OnDelete:CASCADE"`
	Donor      *User       `gorm:"foreignKey:DonorID;constraint:OnDelete:SET NULL"`
}

func (d *DonationMoney) BeforeCreate(*gorm.DB) error {
	ensureID(&d.ID)
	return nil
}

type DonationGoods struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	CrisisPostID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"crisis_post_id"`
	DonorID         *uuid.UUID `gorm:"type:uuid;index" json:"donor_id,omitempty"`
	DonorName       *string    `gorm:"size:100" json:"donor_name,omitempty"`
	DonorEmail      *string    `gorm:"size:254" json:"donor_email,omitempty"`
	DonorPhone      *string    `gorm:"size:20" json:"donor_phone,omitempty"`
	ItemDescription string     `gorm:"type:text;not null" json:"item_description"`
	Quantity        string     `gorm:"size:100" json:"quantity"`
	DeliveryMethod  string     `gorm:"size:100" json:"delivery_method"`
	Message         string     `gorm:"type:text" json:"message"`
	IsAnonymous     bool       `gorm:"not null" json:"is_anonymous"`
	DonatedAt       time.Time  `gorm:"autoCreateTime;index" json:"donated_at"`

	CrisisPost *CrisisPost `gorm:"foreignKey:CrisisPostID;constraint:OnDelete:CASCADE"`
	Donor      *User       `gorm:"foreignKey:DonorID;constraint:OnDelete:SET NULL"`
}

func (d *DonationGoods) BeforeCreate(*gorm.DB) error {
	ensureID(&d.ID)
	return nil
}
