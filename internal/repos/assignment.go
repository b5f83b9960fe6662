package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studyloop/studyloop-backend/internal/logger"
	"github.com/studyloop/studyloop-backend/internal/types"
)

type AssignmentRepo interface {
	// GetWindowRelevant returns assignments for the given classes that are due
	// inside [weekStart, weekEndExcl), posted inside the window, or due on/after
	// weekEndExcl (upcoming). Assignments with no due date only match when
	// posted in-window.
	GetWindowRelevant(ctx context.Context, tx *gorm.DB, classIDs []uuid.UUID, weekStart, weekEndExcl time.Time) ([]*types.Assignment, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Assignment, error)
}

type assignmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssignmentRepo(db *gorm.DB, baseLog *logger.Logger) AssignmentRepo {
	return &assignmentRepo{db: db, log: baseLog.With("repo", "AssignmentRepo")}
}

func (ar *assignmentRepo) GetWindowRelevant(ctx context.Context, tx *gorm.DB, classIDs []uuid.UUID, weekStart, weekEndExcl time.Time) ([]*types.Assignment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []*types.Assignment
	if len(classIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("class_id IN ?", classIDs).
		Where(
			transaction.Where("due_date >= ? AND due_date < ?", weekStart, weekEndExcl).
				Or("posted_date >= ? AND posted_date < ?", weekStart, weekEndExcl).
				Or("due_date >= ?", weekEndExcl),
		).
		Order("due_date asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *assignmentRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Assignment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []*types.Assignment
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
