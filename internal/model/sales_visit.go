package model

import (
	"time"

	"github.com/google/uuid"
)

// Sales visit plan status values.
const (
	VisitStatusPlanned = "Planned"
	VisitStatusVisited = "Visited"
	VisitStatusMissed  = "Missed"
)

// ValidVisitStatus reports whether s is a known visit status.
func ValidVisitStatus(s string) bool {
	return s == VisitStatusPlanned || s == VisitStatusVisited || s == VisitStatusMissed
}

// SalesVisitPlan is a sales rep's planned client visit. MissedRemark is
// mandatory exactly when Status is Missed.
type SalesVisitPlan struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SalesRepID   uuid.UUID `gorm:"type:uuid;not null;index" json:"sales_rep_id"`
	SalesRep     *User     `gorm:"foreignKey:SalesRepID" json:"sales_rep,omitempty"`
	ClientName   string    `gorm:"type:varchar(255);not null" json:"client_name"`
	VisitDate    time.Time `gorm:"type:date;not null" json:"visit_date"`
	Status       string    `gorm:"type:varchar(20);not null;default:'Planned'" json:"status"`
	VisitNotes   string    `gorm:"type:text" json:"visit_notes"`
	MissedRemark string    `gorm:"type:text" json:"missed_remark"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
