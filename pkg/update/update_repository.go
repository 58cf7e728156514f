package update

import (
	"context"

	"github.com/DurjoyKumar177/CrisisAid-Backend/entities"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	UpdateRepository interface {
		CreateUpdate(ctx context.Context, update *entities.CrisisUpdate) error
		GetUpdateByID(ctx context.Context, id uuid.UUID) (*entities.CrisisUpdate, error)
		GetUpdatesByPost(ctx context.Context, postID uuid.UUID) ([]*entities.CrisisUpdate, error)
		GetUpdatesByCreator(ctx context.Context, creatorID uuid.UUID) ([]*entities.CrisisUpdate, error)
		UpdateUpdate(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
		DeleteUpdate(ctx context.Context, id uuid.UUID) error
		CountCommentsByUpdates(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error)

		CreateComment(ctx context.Context, comment *entities.Comment) error
		GetCommentByID(ctx context.Context, id uuid.UUID) (*entities.Comment, error)
		GetCommentsByUpdate(ctx context.Context, updateID uuid.UUID) ([]*entities.Comment, error)
		GetCommentsByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Comment, error)
		UpdateComment(ctx context.Context, id uuid.UUID, content string) error
		DeleteComment(ctx context.Context, id uuid.UUID) error
	}

	updateRepository struct {
		db *gorm.DB
	}
)

func NewUpdateRepository(db *gorm.DB) UpdateRepository {
	return &updateRepository{db: db}
}

func (r *updateRepository) CreateUpdate(ctx context.Context, update *entities.CrisisUpdate) error {
	return r.db.WithContext(ctx).Create(update).Error
}

func (r *updateRepository) GetUpdateByID(ctx context.Context, id uuid.UUID) (*entities.CrisisUpdate, error) {
	var update entities.CrisisUpdate
	if err := r.db.WithContext(ctx).
		Preload("CrisisPost").
		Preload("Creator").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Comments.User").
		Where("id = ?", id).
		First(&update).Error; err != nil {
		return nil, err
	}
	return &update, nil
}

func (r *updateRepository) GetUpdatesByPost(ctx context.Context, postID uuid.UUID) ([]*entities.CrisisUpdate, error) {
	var updates []*entities.CrisisUpdate
	if err := r.db.WithContext(ctx).
		Preload("CrisisPost").
		Preload("Creator").
		Where("crisis_post_id = ?", postID).
		Order("created_at DESC").
		Find(&updates).Error; err != nil {
		return nil, err
	}
	return updates, nil
}

func (r *updateRepository) GetUpdatesByCreator(ctx context.Context, creatorID uuid.UUID) ([]*entities.CrisisUpdate, error) {
	var updates []*entities.CrisisUpdate
	if err := r.db.WithContext(ctx).
		Preload("CrisisPost").
		Preload("Creator").
		Where("creator_id = ?", creatorID).
		Order("created_at DESC").
		Find(&updates).Error; err != nil {
		return nil, err
	}
	return updates, nil
}

func (r *updateRepository) UpdateUpdate(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).
		Model(&entities.CrisisUpdate{}).
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

func (r *updateRepository) DeleteUpdate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("update_id = ?", id).Delete(&entities.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&entities.CrisisUpdate{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *updateRepository) CountCommentsByUpdates(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	var rows []struct {
		UpdateID uuid.UUID
		Total    int64
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.Comment{}).
		Select("update_id, COUNT(*) as total").
		Where("update_id IN ?", ids).
		Group("update_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.UpdateID] = row.Total
	}
	return counts, nil
}

func (r *updateRepository) CreateComment(ctx context.Context, comment *entities.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *updateRepository) GetCommentByID(ctx context.Context, id uuid.UUID) (*entities.Comment, error) {
	var comment entities.Comment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *updateRepository) GetCommentsByUpdate(ctx context.Context, updateID uuid.UUID) ([]*entities.Comment, error) {
	var comments []*entities.Comment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("update_id = ?", updateID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *updateRepository) GetCommentsByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Comment, error) {
	var comments []*entities.Comment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *updateRepository) UpdateComment(ctx context.Context, id uuid.UUID, content string) error {
	res := r.db.WithContext(ctx).
		Model(&entities.Comment{}).
		Where("id = ?", id).
		Update("content", content)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *updateRepository) DeleteComment(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Comment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
