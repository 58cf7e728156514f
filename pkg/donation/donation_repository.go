package donation

import (
	"context"

	"github.com/DurjoyKumar177/CrisisAid-Backend/entities"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type (
	DonationRepository interface {
		CreateMoneyDonation(ctx context.Context, donation *entities.DonationMoney) error
		CreateGoodsDonation(ctx context.Context, donation *entities.DonationGoods) error
		GetMoneyDonationByID(ctx context.Context, id uuid.UUID) (*entities.DonationMoney, error)
		GetGoodsDonationByID(ctx context.Context, id uuid.UUID) (*entities.DonationGoods, error)

		GetMoneyDonationsByPost(ctx context.Context, postID uuid.UUID) ([]*entities.DonationMoney, error)
		GetGoodsDonationsByPost(ctx context.Context, postID uuid.UUID) ([]*entities.DonationGoods, error)
		GetMoneyDonationsByDonor(ctx context.Context, donorID uuid.UUID) ([]*entities.DonationMoney, error)
		GetGoodsDonationsByDonor(ctx context.Context, donorID uuid.UUID) ([]*entities.DonationGoods, error)

		SumMoneyByPost(ctx context.Context, postID uuid.UUID) (decimal.Decimal, error)
		SumMoneyByDonor(ctx context.Context, donorID uuid.UUID) (decimal.Decimal, error)
	}

	donationRepository struct {
		db *gorm.DB
	}
)

func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) CreateMoneyDonation(ctx context.Context, donation *entities.DonationMoney) error {
	return r.db.WithContext(ctx).Create(donation).Error
}

func (r *donationRepository) CreateGoodsDonation(ctx context.Context, donation *entities.DonationGoods) error {
	return r.db.WithContext(ctx).Create(donation).Error
}

func (r *donationRepository) GetMoneyDonationByID(ctx context.Context, id uuid.UUID) (*entities.DonationMoney, error) {
	var donation entities.DonationMoney
	if err := r.db.WithContext(ctx).
		Preload("CrisisPost").
		Preload("Donor").
		Where("id = ?", id).
		First(&donation).Error; err != nil {
		return nil, err
	}
	return &donation, nil
}

func (r *donationRepository) GetGoodsDonationByID(ctx context.Context, id uuid.UUID) (*entities.DonationGoods, error) {
	var donation entities.DonationGoods
	if err := r.db.WithContext(ctx).
		Preload("CrisisPost").
		Preload("Donor").
		Where("id = ?", id).
		First(&donation).Error; err != nil {
		return nil, err
	}
	return &donation, nil
}

func (r *donationRepository) GetMoneyDonationsByPost(ctx context.Context, postID uuid.UUID) ([]*entities.DonationMoney, error) {
	return r.moneyDonations(ctx, "crisis_post_id = ?", postID)
}

func (r *donationRepository) GetMoneyDonationsByDonor(ctx context.Context, donorID uuid.UUID) ([]*entities.DonationMoney, error) {
	return r.moneyDonations(ctx, "donor_id = ?", donorID)
}

func (r *donationRepository) GetGoodsDonationsByPost(ctx context.Context, postID uuid.UUID) ([]*entities.DonationGoods, error) {
	return r.goodsDonations(ctx, "crisis_post_id = ?", postID)
}

func (r *donationRepository) GetGoodsDonationsByDonor(ctx context.Context, donorID uuid.UUID) ([]*entities.DonationGoods, error) {
	return r.goodsDonations(ctx, "donor_id = ?", donorID)
}

func (r *donationRepository) moneyDonations(ctx context.Context, cond string, arg uuid.UUID) ([]*entities.DonationMoney, error) {
	var donations []*entities.DonationMoney
	if err := r.db.WithContext(ctx).
		Preload("CrisisPost").
		Preload("Donor").
		Where(cond, arg).
		Order("donated_at DESC").
		Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *donationRepository) goodsDonations(ctx context.Context, cond string, arg uuid.UUID) ([]*entities.DonationGoods, error) {
	var donations []*entities.DonationGoods
	if err := r.db.WithContext(ctx).
		Preload("CrisisPost").
		Preload("Donor").
		Where(cond, arg).
		Order("donated_at DESC").
		Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *donationRepository) SumMoneyByPost(ctx context.Context, postID uuid.UUID) (decimal.Decimal, error) {
	return r.sumMoney(ctx, "crisis_post_id = ?", postID)
}

func (r *donationRepository) SumMoneyByDonor(ctx context.Context, donorID uuid.UUID) (decimal.Decimal, error) {
	return r.sumMoney(ctx, "donor_id = ?", donorID)
}

func (r *donationRepository) sumMoney(ctx context.Context, cond string, arg uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.DonationMoney{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where(cond, arg).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}
