package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studyloop/studyloop-backend/internal/logger"
	"github.com/studyloop/studyloop-backend/internal/types"
)

type ClassSessionRepo interface {
	GetByClassIDs(ctx context.Context, tx *gorm.DB, classIDs []uuid.UUID) ([]*types.ClassSession, error)
}

type classSessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClassSessionRepo(db *gorm.DB, baseLog *logger.Logger) ClassSessionRepo {
	return &classSessionRepo{db: db, log: baseLog.With("repo", "ClassSessionRepo")}
}

func (csr *classSessionRepo) GetByClassIDs(ctx context.Context, tx *gorm.DB, classIDs []uuid.UUID) ([]*types.ClassSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = csr.db
	}

	var results []*types.ClassSession
	if len(classIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("class_id IN ?", classIDs).
		Order("weekday asc, start_minute asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
