package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studyloop/studyloop-backend/internal/logger"
	"github.com/studyloop/studyloop-backend/internal/types"
)

type GradeHistoryRepo interface {
	GetByStudentInWindow(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, weekStart, weekEndExcl time.Time) ([]*types.GradeHistory, error)
}

type gradeHistoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGradeHistoryRepo(db *gorm.DB, baseLog *logger.Logger) GradeHistoryRepo {
	return &gradeHistoryRepo{db: db, log: baseLog.With("repo", "GradeHistoryRepo")}
}

func (gr *gradeHistoryRepo) GetByStudentInWindow(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, weekStart, weekEndExcl time.Time) ([]*types.GradeHistory, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	var results []*types.GradeHistory
	if err := transaction.WithContext(ctx).
		Where("student_id = ?", studentID).
		Where("created_at >= ? AND created_at < ?", weekStart, weekEndExcl).
		Order("created_at asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
