package model

import (
	"time"

	"github.com/google/uuid"
)

// Proof types. A QC photo gates preparation completion; a POD photo gates
// delivery completion.
const (
	ProofTypeQC  = "QC_Photo"
	ProofTypePOD = "POD_Photo"
)

// ValidProofType reports whether t is a known proof type.
func ValidProofType(t string) bool {
	return t == ProofTypeQC || t == ProofTypePOD
}

// ProofOfExecutionRecord is photographic evidence tied to a workflow
// transition. Append-only: rows are never updated or deleted. PhotoReference
// is the identifier handed back by the external file-storage collaborator.
type ProofOfExecutionRecord struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID            uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	Order              *Order    `gorm:"foreignKey:OrderID" json:"-"`
	ExecutedByID       uuid.UUID `gorm:"type:uuid;not null;index" json:"executed_by_id"`
	ExecutedBy         *User     `gorm:"foreignKey:ExecutedByID" json:"executed_by,omitempty"`
	ProofType          string    `gorm:"type:varchar(20);not null" json:"proof_type"`
	PhotoReference     string    `gorm:"type:varchar(500);not null" json:"photo_reference"`
	GPSLat             float64   `gorm:"type:decimal(9,6)" json:"gps_lat"`
	GPSLong            float64   `gorm:"type:decimal(9,6)" json:"gps_long"`
	IsLocationVerified bool      `gorm:"not null" json:"is_location_verified"`
	ExecutedAt         time.Time `gorm:"autoCreateTime" json:"executed_at"`
}

// GPSTrackingPing is one immutable location sample from delivery personnel
// working a dispatched order. Append-only audit stream.
type GPSTrackingPing struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User       *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	Lat        float64   `gorm:"type:decimal(9,6);not null" json:"lat"`
	Long       float64   `gorm:"type:decimal(9,6);not null" json:"long"`
	RecordedAt time.Time `gorm:"autoCreateTime;index" json:"recorded_at"`
}
