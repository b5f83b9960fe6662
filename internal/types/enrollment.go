package types

import (
	"time"

	"github.com/google/uuid"
)

// Enrollment.Progress is stored scaled by 100 (7550 means 75.50%).
type Enrollment struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;index" json:"student_id"`
	ClassID   uuid.UUID `gorm:"type:uuid;not null;index" json:"class_id"`
	Class     *Class    `gorm:"constraint:OnDelete:CASCADE;foreignKey:ClassID;references:ID" json:"class,omitempty"`
	Progress  int       `gorm:"column:progress;not null;default:0" json:"progress"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Enrollment) TableName() string { return "enrollment" }
