package repository

import (
	"rental_manager/internal/models"

	"gorm.io/gorm"
)

// AuditRepository is append-only: entries are never updated or deleted
// after creation.
type AuditRepository interface {
	Create(entry *models.OrderReturnAudit) error
	GetByOrderID(orderID uint) ([]models.OrderReturnAudit, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(entry *models.OrderReturnAudit) error {
	return r.db.Create(entry).Error
}

func (r *auditRepository) GetByOrderID(orderID uint) ([]models.OrderReturnAudit, error) {
	var entries []models.OrderReturnAudit
	err := r.db.Where("order_id = ?", orderID).Order("created_at ASC").Find(&entries).Error
	return entries, err
}
