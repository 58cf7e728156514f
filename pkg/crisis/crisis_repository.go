package crisis

import (
	"context"
	"strings"

	"github.com/DurjoyKumar177/CrisisAid-Backend/domain"
	"github.com/DurjoyKumar177/CrisisAid-Backend/entities"
	"github.com/DurjoyKumar177/CrisisAid-Backend/internal/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	CrisisRepository interface {
		CreatePost(ctx context.Context, post *entities.CrisisPost) error
		GetPostByID(ctx context.Context, id uuid.UUID) (*entities.CrisisPost, error)
		GetPosts(ctx context.Context, filter PostFilter) ([]*entities.CrisisPost, int64, error)
		GetPostsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entities.CrisisPost, error)
		UpdatePost(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
		TransitionStatus(ctx context.Context, id uuid.UUID, from, to domain.Status) error
		DeletePost(ctx context.Context, id uuid.UUID) error

		CreateSection(ctx context.Context, section *entities.PostSection) error
	}

	// PostFilter narrows a post listing. Empty fields match everything.
	PostFilter struct {
		Status   string
		PostType string
		Search   string
		Page     int
		Limit    int
	}

	crisisRepository struct {
		db *gorm.DB
	}
)

func NewCrisisRepository(db *gorm.DB) CrisisRepository {
	return &crisisRepository{db: db}
}

func (r *crisisRepository) CreatePost(ctx context.Context, post *entities.CrisisPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *crisisRepository) GetPostByID(ctx context.Context, id uuid.UUID) (*entities.CrisisPost, error) {
	var post entities.CrisisPost
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Sections.CreatedBy").
		Where("id = ?", id).
		First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (f PostFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.PostType != "" {
		q = q.Where("post_type = ?", f.PostType)
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("(LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(post_type) LIKE ?)", like, like, like)
	}
	return q
}

func (r *crisisRepository) GetPosts(ctx context.Context, filter PostFilter) ([]*entities.CrisisPost, int64, error) {
	var posts []*entities.CrisisPost
	var count int64
	offset := (filter.Page - 1) * filter.Limit

	if err := filter.apply(r.db.WithContext(ctx).Model(&entities.CrisisPost{})).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := filter.apply(r.db.WithContext(ctx)).
		Preload("Owner").
		Order("created_at DESC").
		Offset(offset).
		Limit(filter.Limit).
		Find(&posts).Error; err != nil {
		return nil, 0, err
	}

	return posts, count, nil
}

func (r *crisisRepository) GetPostsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entities.CrisisPost, error) {
	var posts []*entities.CrisisPost
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *crisisRepository) UpdatePost(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).
		Model(&entities.CrisisPost{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *crisisRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to domain.Status) error {
	return utils.TransitionStatus(ctx, r.db, &entities.CrisisPost{}, id, from, to)
}

// DeletePost removes the post and everything hanging off it in one
// transaction, children first.
func (r *crisisRepository) DeletePost(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var updateIDs []uuid.UUID
		if err := tx.Model(&entities.CrisisUpdate{}).
			Where("crisis_post_id = ?", id).
			Pluck("id", &updateIDs).Error; err != nil {
			return err
		}
		if len(updateIDs) > 0 {
			if err := tx.Where("update_id IN ?", updateIDs).Delete(&entities.Comment{}).Error; err != nil {
				return err
			}
		}

		children := []interface{}{
			&entities.CrisisUpdate{},
			&entities.DonationMoney{},
			&entities.DonationGoods{},
			&entities.VolunteerApplication{},
		}
		for _, model := range children {
			if err := tx.Where("crisis_post_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("post_id = ?", id).Delete(&entities.PostSection{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&entities.CrisisPost{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *crisisRepository) CreateSection(ctx context.Context, section *entities.PostSection) error {
	return r.db.WithContext(ctx).Create(section).Error
}
