package models

import (
	"time"

	"gorm.io/gorm"
)

type Order struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	InvoiceNumber string         `json:"invoice_number" gorm:"unique;not null"` // GLAORD-YYYYMMDD-NNNN
	BranchID      uint           `json:"branch_id" gorm:"not null;index"`
	StaffID       uint           `json:"staff_id" gorm:"not null"`
	CustomerID    uint           `json:"customer_id" gorm:"not null;index"`
	StartDate     time.Time      `json:"start_date" gorm:"not null"`
	EndDate       time.Time      `json:"end_date" gorm:"not null"`
	StartAt       time.Time      `json:"start_at"`
	EndAt         time.Time      `json:"end_at"`
	Status        string         `json:"status" gorm:"default:'active'"`
	Subtotal      float64        `json:"subtotal" gorm:"not null"`
	GSTAmount     float64        `json:"gst_amount"`
	GSTRate       float64        `json:"gst_rate"`
	GSTIncluded   bool           `json:"gst_included"`
	LateFee       float64        `json:"late_fee"`
	TotalAmount   float64        `json:"total_amount" gorm:"not null"` // subtotal + gst_amount + late_fee
	Notes         string         `json:"notes" gorm:"type:text"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	Items    []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Customer *Customer   `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
}

type OrderStatus string

const (
	OrderScheduled         OrderStatus = "scheduled"
	OrderActive            OrderStatus = "active"
	OrderPendingReturn     OrderStatus = "pending_return"
	OrderPartiallyReturned OrderStatus = "partially_returned"
	OrderFlagged           OrderStatus = "flagged"
	OrderCompleted         OrderStatus = "completed"
	OrderCancelled         OrderStatus = "cancelled"
)
