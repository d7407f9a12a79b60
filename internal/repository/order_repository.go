package repository

import (
	"time"

	"rental_manager/internal/models"

	"gorm.io/gorm"
)

type OrderRepository interface {
	CreateWithItems(order *models.Order, audit *models.OrderReturnAudit) error
	GetByID(id uint) (*models.Order, error)
	GetAll() ([]models.Order, error)
	GetByBranch(branchID uint) ([]models.Order, error)
	GetByCustomer(customerID uint) ([]models.Order, error)
	GetByDateRange(startDate, endDate time.Time) ([]models.Order, error)
	GetOverdue(now time.Time) ([]models.Order, error)
	ExistsByInvoiceNumber(invoiceNumber string) (bool, error)
	CountByCustomer(customerID uint) (int64, error)
	CountByStaff(staffID uint) (int64, error)
	Update(order *models.Order) error
	ReplaceItems(order *models.Order, items []models.OrderItem, audit *models.OrderReturnAudit) error
	CommitReturn(order *models.Order, items []models.OrderItem, audits []models.OrderReturnAudit) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// CreateWithItems inserts the order, its items and the creation audit
// row in one transaction.
func (r *orderRepository) CreateWithItems(order *models.Order, audit *models.OrderReturnAudit) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		audit.OrderID = order.ID
		return tx.Create(audit).Error
	})
}

func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Preload("Customer").First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Preload("Customer").Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetByBranch(branchID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Preload("Customer").
		Where("branch_id = ?", branchID).
		Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetByCustomer(customerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Where("customer_id = ?", customerID).
		Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetByDateRange(startDate, endDate time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").
		Where("start_date BETWEEN ? AND ?", startDate, endDate).
		Find(&orders).Error
	return orders, err
}

// GetOverdue returns open orders past their end datetime.
func (r *orderRepository) GetOverdue(now time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Customer").
		Where("end_at < ? AND status NOT IN ?", now,
			[]string{string(models.OrderCompleted), string(models.OrderCancelled)}).
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) ExistsByInvoiceNumber(invoiceNumber string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Order{}).Where("invoice_number = ?", invoiceNumber).Count(&count).Error
	return count > 0, err
}

func (r *orderRepository) CountByCustomer(customerID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Order{}).Where("customer_id = ?", customerID).Count(&count).Error
	return count, err
}

func (r *orderRepository) CountByStaff(staffID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Order{}).Where("staff_id = ?", staffID).Count(&count).Error
	return count, err
}

func (r *orderRepository) Update(order *models.Order) error {
	return r.db.Save(order).Error
}

// ReplaceItems swaps the order's full item list on edit. Old items go,
// new ones come in, totals on the order row change, all in one
// transaction.
func (r *orderRepository) ReplaceItems(order *models.Order, items []models.OrderItem, audit *models.OrderReturnAudit) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ID = 0
			items[i].OrderID = order.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		order.Items = nil
		if err := tx.Save(order).Error; err != nil {
			return err
		}
		return tx.Create(audit).Error
	})
}

// CommitReturn applies item return state, the order's aggregate status
// and fees, and the audit rows atomically.
func (r *orderRepository) CommitReturn(order *models.Order, items []models.OrderItem, audits []models.OrderReturnAudit) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range items {
			if err := tx.Save(&items[i]).Error; err != nil {
				return err
			}
		}
		order.Items = nil
		if err := tx.Save(order).Error; err != nil {
			return err
		}
		if len(audits) > 0 {
			return tx.Create(&audits).Error
		}
		return nil
	})
}
