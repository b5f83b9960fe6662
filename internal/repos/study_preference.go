package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studyloop/studyloop-backend/internal/logger"
	"github.com/studyloop/studyloop-backend/internal/types"
)

type StudyPreferenceRepo interface {
	// GetByStudentID returns (nil, nil) when the student has no stored
	// preferences; only a query failure produces an error.
	GetByStudentID(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) (*types.StudyPreference, error)
}

type studyPreferenceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStudyPreferenceRepo(db *gorm.DB, baseLog *logger.Logger) StudyPreferenceRepo {
	return &studyPreferenceRepo{db: db, log: baseLog.With("repo", "StudyPreferenceRepo")}
}

func (spr *studyPreferenceRepo) GetByStudentID(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) (*types.StudyPreference, error) {
	transaction := tx
	if transaction == nil {
		transaction = spr.db
	}

	var result types.StudyPreference
	if err := transaction.WithContext(ctx).
		Where("student_id = ?", studentID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}
