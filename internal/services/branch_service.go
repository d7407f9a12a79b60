package services

import (
	"rental_manager/internal/models"
	"rental_manager/internal/repository"
)

type BranchService interface {
	CreateBranch(branch *models.Branch) error
	GetBranchByID(id uint) (*models.Branch, error)
	GetAllBranches() ([]models.Branch, error)
	UpdateBranch(branch *models.Branch) error
	DeleteBranch(id uint) error
}

type branchService struct {
	branchRepo repository.BranchRepository
}

func NewBranchService(branchRepo repository.BranchRepository) BranchService {
	return &branchService{branchRepo: branchRepo}
}

func (s *branchService) CreateBranch(branch *models.Branch) error {
	return s.branchRepo.Create(branch)
}

func (s *branchService) GetBranchByID(id uint) (*models.Branch, error) {
	return s.branchRepo.GetByID(id)
}

func (s *branchService) GetAllBranches() ([]models.Branch, error) {
	return s.branchRepo.GetAll()
}

func (s *branchService) UpdateBranch(branch *models.Branch) error {
	return s.branchRepo.Update(branch)
}

func (s *branchService) DeleteBranch(id uint) error {
	return s.branchRepo.Delete(id)
}
