package types

import (
	"time"

	"github.com/google/uuid"
)

// ClassSession is one recurring weekly slot on a class schedule.
// Weekday follows time.Weekday numbering (Sunday = 0).
type ClassSession struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ClassID     uuid.UUID `gorm:"type:uuid;not null;index" json:"class_id"`
	Weekday     int       `gorm:"column:weekday;not null" json:"weekday"`
	StartMinute int       `gorm:"column:start_minute;not null" json:"start_minute"`
	EndMinute   int       `gorm:"column:end_minute;not null" json:"end_minute"`
	Location    string    `gorm:"column:location" json:"location"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (ClassSession) TableName() string { return "class_session" }
