package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type StudyPreference struct {
	ID                uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StudentID         uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"student_id"`
	DailyStudyHours   float64        `gorm:"column:daily_study_hours;not null;default:0" json:"daily_study_hours"`
	PreferredSubjects datatypes.JSON `gorm:"column:preferred_subjects;type:jsonb" json:"preferred_subjects"`
	CreatedAt         time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (StudyPreference) TableName() string { return "study_preference" }
