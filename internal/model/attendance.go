package model

import (
	"time"

	"github.com/google/uuid"
)

// Attendance status values. Status is a short free-form string in storage;
// these are the two values the system itself writes.
const (
	AttendanceAvailable   = "Available"
	AttendanceUnavailable = "Unavailable"
)

// AttendanceRecord is one clock-in/clock-out session. A nil ClockOutTime
// marks the record as open ("currently on shift"); at most one open record
// exists per user, enforced by the attendance service's pre-check inside the
// clock-in transaction.
type AttendanceRecord struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User            *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ClockInTime     time.Time  `gorm:"not null" json:"clock_in_time"`
	ClockOutTime    *time.Time `json:"clock_out_time"`
	Status          string     `gorm:"type:varchar(30);not null;default:'Available'" json:"status"`
	DurationMinutes *int       `json:"duration_minutes"` // computed once at clock-out, never recalculated
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// Open reports whether the record is still an active shift.
func (a *AttendanceRecord) Open() bool {
	return a.ClockOutTime == nil
}
