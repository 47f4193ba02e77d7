package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User represents the central identity entity. Email is the login identifier;
// RoleKey drives every capability check in the system.
type User struct {
	ID                 uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email              string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password           string          `gorm:"type:varchar(255);not null" json:"-"` // Omit password from JSON requests/responses
	FirstName          string          `gorm:"type:varchar(150)" json:"first_name"`
	LastName           string          `gorm:"type:varchar(150)" json:"last_name"`
	RoleKey            string          `gorm:"type:varchar(50);not null" json:"role_key"`
	IsSuperuser        bool            `gorm:"default:false" json:"is_superuser"`
	ReportingManagerID *uuid.UUID      `gorm:"type:uuid;index" json:"reporting_manager_id"`
	ReportingManager   *User           `gorm:"foreignKey:ReportingManagerID" json:"-"`
	PTOBalanceDays     decimal.Decimal `gorm:"type:decimal(4,1);not null;default:10.0" json:"pto_balance_days"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// FullName is used for display in audit feeds and dashboards.
func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Email
	}
	return u.FirstName + " " + u.LastName
}
