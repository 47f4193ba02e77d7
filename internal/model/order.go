package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus constants. CurrentStatus only ever holds one of these six
// values; Delivered and Cancelled are terminal.
const (
	OrderStatusPending          = "Pending"
	OrderStatusPreparing        = "Accepted/Preparing"
	OrderStatusReadyForDispatch = "Ready for Dispatch"
	OrderStatusDispatched       = "Dispatched"
	OrderStatusDelivered        = "Delivered"
	OrderStatusCancelled        = "Cancelled"
)

// OrderStatuses enumerates every legal CurrentStatus value.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusPreparing,
	OrderStatusReadyForDispatch,
	OrderStatusDispatched,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// ValidOrderStatus reports whether status is one of the six enumerated values.
func ValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// ProcessingType routing tags, fixed at order creation.
const (
	ProcessingLab            = "Lab"
	ProcessingStore          = "Store"
	ProcessingDirectDispatch = "DirectDispatch"
)

// ValidProcessingType reports whether t is a known processing type.
func ValidProcessingType(t string) bool {
	return t == ProcessingLab || t == ProcessingStore || t == ProcessingDirectDispatch
}

// Order is the fulfillment workflow entity. CurrentStatus is moved only by the
// workflow service (manual Front Desk update, proof-gate side effects, and
// dispatch assignment); UpdatedAt feeds cycle-time metrics.
type Order struct {
	ID                 uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClientName         string      `gorm:"type:varchar(255);not null" json:"client_name"`
	ShippingAddress    string      `gorm:"type:text;not null" json:"shipping_address"`
	DestinationLat     *float64    `gorm:"type:decimal(9,6)" json:"destination_lat"`
	DestinationLong    *float64    `gorm:"type:decimal(9,6)" json:"destination_long"`
	CurrentStatus      string      `gorm:"type:varchar(30);not null;default:'Pending';index" json:"current_status"`
	ProcessingType     string      `gorm:"type:varchar(20);not null" json:"processing_type"`
	OrderCreatorID     uuid.UUID   `gorm:"type:uuid;not null;index" json:"order_creator_id"`
	OrderCreator       *User       `gorm:"foreignKey:OrderCreatorID" json:"order_creator,omitempty"`
	AssignedDeliveryID *uuid.UUID  `gorm:"type:uuid;index" json:"assigned_delivery_id"`
	AssignedDelivery   *User       `gorm:"foreignKey:AssignedDeliveryID" json:"assigned_delivery,omitempty"`
	Items              []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt          time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

// OrderItem is a line item within an Order. SKUCode is unique within the
// parent order (enforced at creation, not by constraint).
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	SKUCode   string          `gorm:"type:varchar(100);not null" json:"sku_code"`
	Quantity  int             `gorm:"type:int;not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
}
