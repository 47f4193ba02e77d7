package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TimeOffRequest status values. A request is decided exactly once: Request
// moves to Approved or Rejected and never changes again.
const (
	TimeOffStatusRequest  = "Request"
	TimeOffStatusApproved = "Approved"
	TimeOffStatusRejected = "Rejected"
)

// TimeOffRequest is a balance-checked leave request bound to the requester's
// reporting manager at submission time.
type TimeOffRequest struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	User         *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ManagerID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"manager_id"`
	Manager      *User           `gorm:"foreignKey:ManagerID" json:"-"`
	StartDate    time.Time       `gorm:"type:date;not null" json:"start_date"`
	EndDate      time.Time       `gorm:"type:date;not null" json:"end_date"`
	RequestDays  decimal.Decimal `gorm:"type:decimal(4,1);not null" json:"request_days"`
	Reason       string          `gorm:"type:text" json:"reason"`
	Status       string          `gorm:"type:varchar(20);not null;default:'Request';index" json:"status"`
	ApprovalDate *time.Time      `json:"approval_date"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
