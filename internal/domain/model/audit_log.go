package model

import "time"

type AuditAction string

const (
	// checkout moved the order from created to approved
	AuditActionApproveOrder AuditAction = "APPROVE_ORDER"
	// the owner emptied the cart
	AuditActionClearOrder AuditAction = "CLEAR_ORDER"
)

type AuditResourceType string

const (
	AuditResourceOrder AuditResourceType = "order"
)

// AuditLog records order status changes made through the storefront.
// Actor is the owner string (customer:<id> or session:<prefix>).
type AuditLog struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Actor string `gorm:"type:varchar(64);not null;index" json:"actor"`

	Action AuditAction `gorm:"type:varchar(50);not null;index" json:"action"`

	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`

	ResourceID int64 `gorm:"not null;index" json:"resource_id"`

	// JSON snapshots
	BeforeJSON string `gorm:"type:text" json:"before_json"`
	AfterJSON  string `gorm:"type:text" json:"after_json"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
