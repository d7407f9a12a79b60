package models

import (
	"time"
)

// OrderReturnAudit rows are append-only. They are written on every
// state-changing order or item action and read back only for the
// per-order timeline.
type OrderReturnAudit struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ReferenceID string    `json:"reference_id" gorm:"type:uuid;not null"`
	OrderID     uint      `json:"order_id" gorm:"not null;index"`
	OrderItemID *uint     `json:"order_item_id"`
	StaffID     uint      `json:"staff_id" gorm:"not null"`
	Action      string    `json:"action" gorm:"not null"`
	Details     string    `json:"details" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
}

const (
	AuditOrderCreated   = "order_created"
	AuditOrderUpdated   = "order_updated"
	AuditStatusChanged  = "status_changed"
	AuditOrderCancelled = "order_cancelled"
	AuditItemReturned   = "item_returned"
	AuditItemMissing    = "item_missing"
	AuditItemDamaged    = "item_damaged"
	AuditReturnClosed   = "return_closed"
)
