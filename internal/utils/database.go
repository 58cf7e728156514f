package utils

import (
	"context"
	"errors"
	"strings"

	"github.com/DurjoyKumar177/CrisisAid-Backend/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// IsDuplicateKey reports whether err came from a unique index rejecting a
// row, across the drivers the store runs on.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// TransitionStatus moves one row from status from to status to in a single
// conditional UPDATE. A missing row reports gorm.ErrRecordNotFound and a row
// whose status no longer matches reports domain.ErrStatusChanged.
func TransitionStatus(ctx context.Context, db *gorm.DB, model any, id uuid.UUID, from, to domain.Status) error {
	res := db.WithContext(ctx).
		Model(model).
		Where("id = ? AND status = ?", id, from.String()).
		Update("status", to.String())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return domain.ErrStatusChanged
}
