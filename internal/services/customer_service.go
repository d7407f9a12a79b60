package services

import (
	"errors"
	"log"
	"unicode"

	"rental_manager/internal/models"
	"rental_manager/internal/repository"
)

var (
	ErrCustomerHasOrders = errors.New("customer has existing orders and cannot be deleted")
	ErrInvalidPhone      = errors.New("phone number must be exactly 10 digits")
)

type CustomerService interface {
	CreateCustomer(customer *models.Customer) error
	GetCustomerByID(id uint) (*models.Customer, error)
	GetCustomers(branchID uint) ([]models.Customer, error)
	SearchCustomers(branchID uint, query string) ([]models.Customer, error)
	GetCustomerOrders(customerID uint) ([]models.Order, error)
	UpdateCustomer(customer *models.Customer) error
	DeleteCustomer(id uint) error
}

// dashboardCache is the slice of the cache client the customer service
// needs: customer mutations move the dashboard counts, so the cached
// stats have to go.
type dashboardCache interface {
	InvalidateDashboard() error
}

type customerService struct {
	customerRepo repository.CustomerRepository
	orderRepo    repository.OrderRepository
	cache        dashboardCache
}

func NewCustomerService(customerRepo repository.CustomerRepository, orderRepo repository.OrderRepository, cache dashboardCache) CustomerService {
	return &customerService{customerRepo: customerRepo, orderRepo: orderRepo, cache: cache}
}

func (s *customerService) CreateCustomer(customer *models.Customer) error {
	if !validPhone(customer.Phone) {
		return ErrInvalidPhone
	}
	if err := s.customerRepo.Create(customer); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *customerService) GetCustomerByID(id uint) (*models.Customer, error) {
	return s.customerRepo.GetByID(id)
}

func (s *customerService) GetCustomers(branchID uint) ([]models.Customer, error) {
	if branchID == 0 {
		return s.customerRepo.GetAll()
	}
	return s.customerRepo.GetByBranch(branchID)
}

func (s *customerService) SearchCustomers(branchID uint, query string) ([]models.Customer, error) {
	return s.customerRepo.Search(branchID, query)
}

func (s *customerService) GetCustomerOrders(customerID uint) ([]models.Order, error) {
	return s.orderRepo.GetByCustomer(customerID)
}

func (s *customerService) UpdateCustomer(customer *models.Customer) error {
	if !validPhone(customer.Phone) {
		return ErrInvalidPhone
	}
	if err := s.customerRepo.Update(customer); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// DeleteCustomer refuses to remove customers referenced by orders.
func (s *customerService) DeleteCustomer(id uint) error {
	count, err := s.orderRepo.CountByCustomer(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCustomerHasOrders
	}
	if err := s.customerRepo.Delete(id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *customerService) invalidate() {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateDashboard(); err != nil {
		log.Printf("Warning: failed to invalidate dashboard cache: %v", err)
	}
}

func validPhone(phone string) bool {
	if len(phone) != 10 {
		return false
	}
	for _, r := range phone {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
