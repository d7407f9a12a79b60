package handlers

import (
	"net/http"
	"strconv"

	"rental_manager/internal/models"
	"rental_manager/internal/services"

	"github.com/gin-gonic/gin"
)

type BranchHandler struct {
	branchService services.BranchService
}

func NewBranchHandler(branchService services.BranchService) *BranchHandler {
	return &BranchHandler{branchService: branchService}
}

func (h *BranchHandler) CreateBranch(c *gin.Context) {
	var req struct {
		Name    string `json:"name" binding:"required"`
		Address string `json:"address"`
		Phone   string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "branch name is required"})
		return
	}

	branch := &models.Branch{Name: req.Name, Address: req.Address, Phone: req.Phone}
	if err := h.branchService.CreateBranch(branch); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create branch"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"branch": branch})
}

func (h *BranchHandler) ListBranches(c *gin.Context) {
	branches, err := h.branchService.GetAllBranches()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load branches"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"branches": branches})
}

func (h *BranchHandler) UpdateBranch(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid branch id"})
		return
	}

	branch, err := h.branchService.GetBranchByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "branch not found"})
		return
	}

	var req struct {
		Name    *string `json:"name"`
		Address *string `json:"address"`
		Phone   *string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	if req.Name != nil {
		branch.Name = *req.Name
	}
	if req.Address != nil {
		branch.Address = *req.Address
	}
	if req.Phone != nil {
		branch.Phone = *req.Phone
	}

	if err := h.branchService.UpdateBranch(branch); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update branch"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"branch": branch})
}

func (h *BranchHandler) DeleteBranch(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid branch id"})
		return
	}

	if err := h.branchService.DeleteBranch(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete branch"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
