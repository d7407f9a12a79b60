package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Username     string         `json:"username" gorm:"unique;not null"`
	Email        string         `json:"email" gorm:"unique;not null"`
	PasswordHash string         `json:"-" gorm:"not null"`
	PhoneNumber  string         `json:"phone_number"`
	Role         string         `json:"role" gorm:"default:'staff'"` // super_admin, branch_admin, staff
	BranchID     *uint          `json:"branch_id"`                   // nil only for super_admin
	IsActive     bool           `json:"is_active" gorm:"default:true"`
	GSTEnabled   bool           `json:"gst_enabled" gorm:"default:false"`
	GSTRate      float64        `json:"gst_rate" gorm:"default:5.00"`
	GSTIncluded  bool           `json:"gst_included" gorm:"default:false"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type UserRole string

const (
	SuperAdmin  UserRole = "super_admin"
	BranchAdmin UserRole = "branch_admin"
	Staff       UserRole = "staff"
)
