package services

import (
	"errors"

	"rental_manager/internal/models"
	"rental_manager/internal/rental"
	"rental_manager/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var ErrStaffHasOrders = errors.New("staff member has existing orders and cannot be deleted")

type UserService interface {
	CreateUser(user *models.User, password string) error
	GetUserByID(id uint) (*models.User, error)
	GetAllUsers() ([]models.User, error)
	GetUsersByBranch(branchID uint) ([]models.User, error)
	UpdateUser(user *models.User) error
	SetActive(id uint, active bool) error
	UpdateGSTSettings(id uint, enabled bool, rate float64, included bool) (*models.User, error)
	DeleteUser(id uint) error
}

type userService struct {
	userRepo  repository.UserRepository
	orderRepo repository.OrderRepository
}

func NewUserService(userRepo repository.UserRepository, orderRepo repository.OrderRepository) UserService {
	return &userService{userRepo: userRepo, orderRepo: orderRepo}
}

func (s *userService) CreateUser(user *models.User, password string) error {
	if user.Role != string(models.SuperAdmin) && user.BranchID == nil {
		return errors.New("branch is required for non super admin staff")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hashedPassword)
	return s.userRepo.Create(user)
}

func (s *userService) GetUserByID(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

func (s *userService) GetAllUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

func (s *userService) GetUsersByBranch(branchID uint) ([]models.User, error) {
	return s.userRepo.GetByBranch(branchID)
}

func (s *userService) UpdateUser(user *models.User) error {
	return s.userRepo.Update(user)
}

func (s *userService) SetActive(id uint, active bool) error {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return err
	}
	user.IsActive = active
	return s.userRepo.Update(user)
}

func (s *userService) UpdateGSTSettings(id uint, enabled bool, rate float64, included bool) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if check := rental.ValidateFee(rate); !check.Valid {
		return nil, errors.New("gst rate cannot be negative")
	}
	if rate == 0 {
		rate = rental.DefaultGSTRate
	}
	user.GSTEnabled = enabled
	user.GSTRate = rate
	user.GSTIncluded = included
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser refuses to remove staff who are referenced by orders.
func (s *userService) DeleteUser(id uint) error {
	count, err := s.orderRepo.CountByStaff(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrStaffHasOrders
	}
	return s.userRepo.Delete(id)
}
