package types

import (
	"time"

	"github.com/google/uuid"
)

type Submission struct {
	ID           uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AssignmentID uuid.UUID   `gorm:"type:uuid;not null;index" json:"assignment_id"`
	Assignment   *Assignment `gorm:"constraint:OnDelete:CASCADE;foreignKey:AssignmentID;references:ID" json:"assignment,omitempty"`
	StudentID    uuid.UUID   `gorm:"type:uuid;not null;index" json:"student_id"`
	SubmittedAt  time.Time   `gorm:"column:submitted_at;not null;index" json:"submitted_at"`
	Grade        *float64    `gorm:"column:grade" json:"grade,omitempty"`
	Status       string      `gorm:"column:status;not null;default:submitted" json:"status"`
	CreatedAt    time.Time   `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"not null;default:now()" json:"updated_at"`
}

func (Submission) TableName() string { return "submission" }
