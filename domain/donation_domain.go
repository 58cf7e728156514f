package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	AnonymousDonorName   = "Anonymous"
	DefaultPaymentMethod = "bkash"
)

var (
	MessageSuccessCreateDonation     = "Thank you for your donation!"
	MessageSuccessGetDonations       = "donations retrieved successfully"
	MessageSuccessGetDonationSummary = "donation summary retrieved successfully"
	MessageFailedCreateDonation      = "failed to create donation"
	MessageFailedGetDonations        = "failed to retrieve donations"

	ErrDonationNotFound = fmt.Errorf("donation %w", ErrNotFound)
)

// Donor is either a RegisteredDonor or a GuestDonor.
type Donor interface {
	donor()
}

type RegisteredDonor struct {
	UserID   uuid.UUID
	Username string
}

type GuestDonor struct {
	Name  string
	Email string
	Phone string
}

func (RegisteredDonor) donor() {}
func (GuestDonor) donor()      {}

// DisplayName is the public name shown for a donation.
func DisplayName(d Donor, isAnonymous bool) string {
	if isAnonymous {
		return AnonymousDonorName
	}
	switch v := d.(type) {
	case RegisteredDonor:
		if v.Username != "" {
			return v.Username
		}
		return v.UserID.String()
	case GuestDonor:
		if v.Name != "" {
			return v.Name
		}
	}
	return AnonymousDonorName
}

type (
	GuestDonorRequest struct {
		DonorName  string `json:"donor_name" validate:"omitempty,max=100"`
		DonorEmail string `json:"donor_email" validate:"omitempty,email"`
		DonorPhone string `json:"donor_phone" validate:"omitempty,max=20"`
	}

	MoneyDonationRequest struct {
		GuestDonorRequest
		CrisisPostID  string          `json:"crisis_post" validate:"required"`
		Amount        decimal.Decimal `json:"amount" validate:"required,gt=0"`
		PaymentMethod string          `json:"payment_method" validate:"omitempty,oneof=bkash nagad rocket bank card other"`
		TransactionID string          `json:"transaction_id" validate:"omitempty,max=100"`
		Message       string          `json:"message"`
		IsAnonymous   bool            `json:"is_anonymous"`
	}

	GoodsDonationRequest struct {
		GuestDonorRequest
		CrisisPostID    string `json:"crisis_post" validate:"required"`
		ItemDescription string `json:"item_description" validate:"required"`
		Quantity        string `json:"quantity" validate:"omitempty,max=100"`
		DeliveryMethod  string `json:"delivery_method" validate:"omitempty,max=100"`
		Message         string `json:"message"`
		IsAnonymous     bool   `json:"is_anonymous"`
	}

	MoneyDonation struct {
		ID            string          `json:"id"`
		CrisisPostID  string          `json:"crisis_post"`
		CrisisTitle   string          `json:"crisis_title"`
		DisplayName   string          `json:"display_name"`
		Amount        decimal.Decimal `json:"amount"`
		PaymentMethod string          `json:"payment_method"`
		TransactionID string          `json:"transaction_id,omitempty"`
		Message       string          `json:"message"`
		IsAnonymous   bool            `json:"is_anonymous"`
		DonatedAt     time.Time       `json:"donated_at"`
	}

	GoodsDonation struct {
		ID              string    `json:"id"`
		CrisisPostID    string    `json:"crisis_post"`
		CrisisTitle     string    `json:"crisis_title"`
		DisplayName     string    `json:"display_name"`
		ItemDescription string    `json:"item_description"`
		Quantity        string    `json:"quantity,omitempty"`
		DeliveryMethod  string    `json:"delivery_method,omitempty"`
		Message         string    `json:"message"`
		IsAnonymous     bool      `json:"is_anonymous"`
		DonatedAt       time.Time `json:"donated_at"`
	}

	DonationSummary struct {
		CrisisID            string           `json:"crisis_id"`
		CrisisTitle         string           `json:"crisis_title"`
		TotalMoney          decimal.Decimal  `json:"total_money"`
		TotalDonorsMoney    int              `json:"total_donors_money"`
		TotalGoodsDonations int              `json:"total_goods_donations"`
		MoneyDonations      []*MoneyDonation `json:"money_donations"`
		GoodsDonations      []*GoodsDonation `json:"goods_donations"`
	}

	MyDonations struct {
		MoneyDonations      []*MoneyDonation `json:"money_donations"`
		GoodsDonations      []*GoodsDonation `json:"goods_donations"`
		TotalMoneyDonated   decimal.Decimal  `json:"total_money_donated"`
		TotalDonationsCount int              `json:"total_donations_count"`
	}
)
