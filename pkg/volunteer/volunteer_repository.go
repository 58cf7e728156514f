package volunteer

import (
	"context"

	"github.com/DurjoyKumar177/CrisisAid-Backend/domain"
	"github.com/DurjoyKumar177/CrisisAid-Backend/entities"
	"github.com/DurjoyKumar177/CrisisAid-Backend/internal/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	VolunteerRepository interface {
		CreateApplication(ctx context.Context, application *entities.VolunteerApplication) error
		GetApplicationByID(ctx context.Context, id uuid.UUID) (*entities.VolunteerApplication, error)
		GetApplicationsByUser(ctx context.Context, userID uuid.UUID) ([]*entities.VolunteerApplication, error)
		GetApplicationsByPost(ctx context.Context, postID uuid.UUID) ([]*entities.VolunteerApplication, error)
		CountApplications(ctx context.Context, userID, postID uuid.UUID) (int64, error)
		HasApprovedApplication(ctx context.Context, userID, postID uuid.UUID) (bool, error)
		TransitionStatus(ctx context.Context, id uuid.UUID, from, to domain.Status) error
	}

	volunteerRepository struct {
		db *gorm.DB
	}
)

func NewVolunteerRepository(db *gorm.DB) VolunteerRepository {
	return &volunteerRepository{db: db}
}

func (r *volunteerRepository) CreateApplication(ctx context.Context, application *entities.VolunteerApplication) error {
	return r.db.WithContext(ctx).Create(application).Error
}

func (r *volunteerRepository) GetApplicationByID(ctx context.Context, id uuid.UUID) (*entities.VolunteerApplication, error) {
	var application entities.VolunteerApplication
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("CrisisPost").
		Where("id = ?", id).
		First(&application).Error; err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *volunteerRepository) GetApplicationsByUser(ctx context.Context, userID uuid.UUID) ([]*entities.VolunteerApplication, error) {
	var applications []*entities.VolunteerApplication
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("CrisisPost").
		Where("user_id = ?", userID).
		Order("applied_at DESC").
		Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

func (r *volunteerRepository) GetApplicationsByPost(ctx context.Context, postID uuid.UUID) ([]*entities.VolunteerApplication, error) {
	var applications []*entities.VolunteerApplication
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("CrisisPost").
		Where("crisis_post_id = ?", postID).
		Order("applied_at DESC").
		Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

func (r *volunteerRepository) CountApplications(ctx context.Context, userID, postID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.VolunteerApplication{}).
		Where("user_id = ? AND crisis_post_id = ?", userID, postID).
		Count(&count).Error
	return count, err
}

func (r *volunteerRepository) HasApprovedApplication(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.VolunteerApplication{}).
		Where("user_id = ? AND crisis_post_id = ? AND status = ?", userID, postID, domain.StatusApproved.String()).
		Count(&count).Error
	return count > 0, err
}

func (r *volunteerRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to domain.Status) error {
	return utils.TransitionStatus(ctx, r.db, &entities.VolunteerApplication{}, id, from, to)
}
