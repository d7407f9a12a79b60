package models

import (
	"time"

	"gorm.io/gorm"
)

type OrderItem struct {
	ID                uint           `json:"id" gorm:"primaryKey"`
	OrderID           uint           `json:"order_id" gorm:"not null;index"`
	ProductName       string         `json:"product_name" gorm:"not null"`
	PhotoURL          string         `json:"photo_url"`
	Quantity          int            `json:"quantity" gorm:"not null"`
	PricePerDay       float64        `json:"price_per_day" gorm:"not null"`
	Days              int            `json:"days" gorm:"default:1"`
	LineTotal         float64        `json:"line_total" gorm:"not null"` // quantity * price_per_day
	ReturnStatus      string         `json:"return_status" gorm:"default:'not_yet_returned'"`
	ReturnedQuantity  int            `json:"returned_quantity" gorm:"default:0"`
	DamageFee         float64        `json:"damage_fee" gorm:"default:0"`
	DamageDescription string         `json:"damage_description" gorm:"type:text"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type ReturnStatus string

const (
	ItemNotYetReturned ReturnStatus = "not_yet_returned"
	ItemReturned       ReturnStatus = "returned"
	ItemMissing        ReturnStatus = "missing"
)
