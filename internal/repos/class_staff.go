package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studyloop/studyloop-backend/internal/logger"
	"github.com/studyloop/studyloop-backend/internal/types"
)

type ClassStaffRepo interface {
	GetByClassIDs(ctx context.Context, tx *gorm.DB, classIDs []uuid.UUID) ([]*types.ClassStaff, error)
}

type classStaffRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClassStaffRepo(db *gorm.DB, baseLog *logger.Logger) ClassStaffRepo {
	return &classStaffRepo{db: db, log: baseLog.With("repo", "ClassStaffRepo")}
}

func (cr *classStaffRepo) GetByClassIDs(ctx context.Context, tx *gorm.DB, classIDs []uuid.UUID) ([]*types.ClassStaff, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.ClassStaff
	if len(classIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("class_id IN ?", classIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
