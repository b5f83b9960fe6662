package types

import (
	"time"

	"github.com/google/uuid"
)

type Assignment struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ClassID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"class_id"`
	Title       string     `gorm:"column:title;not null" json:"title"`
	Description string     `gorm:"column:description" json:"description"`
	TotalPoints float64    `gorm:"column:total_points;not null;default:0" json:"total_points"`
	DueDate     *time.Time `gorm:"column:due_date;index" json:"due_date,omitempty"`
	PostedDate  *time.Time `gorm:"column:posted_date;index" json:"posted_date,omitempty"`
	CreatedAt   time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (Assignment) TableName() string { return "assignment" }
