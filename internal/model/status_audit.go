package model

import (
	"time"

	"github.com/google/uuid"
)

// StaffStatusAudit tracks who forced whose attendance status, and why.
// Rows are created only inside the override transaction and are immutable.
type StaffStatusAudit struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User         *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ChangedByID  uuid.UUID `gorm:"type:uuid;not null;index" json:"changed_by_id"`
	ChangedBy    *User     `gorm:"foreignKey:ChangedByID" json:"changed_by,omitempty"`
	OldStatus    string    `gorm:"type:varchar(30);not null" json:"old_status"`
	NewStatus    string    `gorm:"type:varchar(30);not null" json:"new_status"`
	StatusReason string    `gorm:"type:text;not null" json:"status_reason"`
	ChangeTime   time.Time `gorm:"autoCreateTime;index" json:"change_time"`
}
