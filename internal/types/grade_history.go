package types

import (
	"time"

	"github.com/google/uuid"
)

type GradeHistory struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;index" json:"student_id"`
	ClassID   uuid.UUID `gorm:"type:uuid;not null;index" json:"class_id"`
	Score     *float64  `gorm:"column:score" json:"score,omitempty"`
	MaxScore  *float64  `gorm:"column:max_score" json:"max_score,omitempty"`
	Grade     string    `gorm:"column:grade" json:"grade"`
	Feedback  string    `gorm:"column:feedback" json:"feedback"`
	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
}

func (GradeHistory) TableName() string { return "grade_history" }
