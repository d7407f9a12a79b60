package models

import (
	"time"

	"gorm.io/gorm"
)

type Customer struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	BranchID      uint           `json:"branch_id" gorm:"not null"`
	Name          string         `json:"name" gorm:"not null"`
	Phone         string         `json:"phone" gorm:"unique;not null"` // exactly 10 digits
	Address       string         `json:"address" gorm:"type:text"`
	IDProofType   string         `json:"id_proof_type"`
	IDProofNumber string         `json:"id_proof_number"`
	IDProofURL    string         `json:"id_proof_url"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
