package repository

import (
	"rental_manager/internal/models"

	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(customer *models.Customer) error
	GetByID(id uint) (*models.Customer, error)
	GetByPhone(phone string) (*models.Customer, error)
	GetAll() ([]models.Customer, error)
	GetByBranch(branchID uint) ([]models.Customer, error)
	Search(branchID uint, query string) ([]models.Customer, error)
	Update(customer *models.Customer) error
	Delete(id uint) error
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

func (r *customerRepository) GetByID(id uint) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.First(&customer, id).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) GetByPhone(phone string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.Where("phone = ?", phone).First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) GetAll() ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.Find(&customers).Error
	return customers, err
}

func (r *customerRepository) GetByBranch(branchID uint) ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.Where("branch_id = ?", branchID).Find(&customers).Error
	return customers, err
}

func (r *customerRepository) Search(branchID uint, query string) ([]models.Customer, error) {
	var customers []models.Customer
	q := r.db.Where("name ILIKE ? OR phone LIKE ?", "%"+query+"%", "%"+query+"%")
	if branchID != 0 {
		q = q.Where("branch_id = ?", branchID)
	}
	err := q.Find(&customers).Error
	return customers, err
}

func (r *customerRepository) Update(customer *models.Customer) error {
	return r.db.Save(customer).Error
}

func (r *customerRepository) Delete(id uint) error {
	return r.db.Delete(&models.Customer{}, id).Error
}
