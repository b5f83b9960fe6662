package types

import (
	"time"

	"github.com/google/uuid"
)

// ClassStaff links a teacher profile to a class. There is intentionally no
// joined Profile here; display names are resolved through a second lookup
// keyed by teacher ids.
type ClassStaff struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ClassID   uuid.UUID `gorm:"type:uuid;not null;index" json:"class_id"`
	TeacherID uuid.UUID `gorm:"type:uuid;not null;index" json:"teacher_id"`
	Role      string    `gorm:"column:role;not null;default:teacher" json:"role"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (ClassStaff) TableName() string { return "class_staff" }
