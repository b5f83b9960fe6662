package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studyloop/studyloop-backend/internal/logger"
	"github.com/studyloop/studyloop-backend/internal/types"
)

type SubmissionRepo interface {
	GetByStudentInWindow(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, weekStart, weekEndExcl time.Time) ([]*types.Submission, error)
}

type submissionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubmissionRepo(db *gorm.DB, baseLog *logger.Logger) SubmissionRepo {
	return &submissionRepo{db: db, log: baseLog.With("repo", "SubmissionRepo")}
}

func (sr *submissionRepo) GetByStudentInWindow(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, weekStart, weekEndExcl time.Time) ([]*types.Submission, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []*types.Submission
	if err := transaction.WithContext(ctx).
		Where("student_id = ?", studentID).
		Where("submitted_at >= ? AND submitted_at < ?", weekStart, weekEndExcl).
		Order("submitted_at asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
