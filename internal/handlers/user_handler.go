package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"rental_manager/internal/middleware"
	"rental_manager/internal/models"
	"rental_manager/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) UpdateGSTSettings(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req struct {
		Enabled  bool    `json:"gst_enabled"`
		Rate     float64 `json:"gst_rate"`
		Included bool    `json:"gst_included"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	updated, err := h.userService.UpdateGSTSettings(user.ID, req.Enabled, req.Rate, req.Included)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": updated})
}

func (h *UserHandler) CreateStaff(c *gin.Context) {
	var req struct {
		Username    string  `json:"username" binding:"required"`
		Email       string  `json:"email" binding:"required,email"`
		Password    string  `json:"password" binding:"required,min=6"`
		PhoneNumber string  `json:"phone_number"`
		Role        string  `json:"role" binding:"required"`
		BranchID    *uint   `json:"branch_id"`
		GSTEnabled  bool    `json:"gst_enabled"`
		GSTRate     float64 `json:"gst_rate"`
		GSTIncluded bool    `json:"gst_included"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	// branch_admin can only create staff in its own branch
	actor := middleware.CurrentUser(c)
	if actor.Role == string(models.BranchAdmin) {
		if req.Role != string(models.Staff) {
			c.JSON(http.StatusForbidden, gin.H{"error": "branch admins can only create staff accounts"})
			return
		}
		req.BranchID = actor.BranchID
	}

	user := &models.User{
		Username:    req.Username,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Role:        req.Role,
		BranchID:    req.BranchID,
		IsActive:    true,
		GSTEnabled:  req.GSTEnabled,
		GSTRate:     req.GSTRate,
		GSTIncluded: req.GSTIncluded,
	}
	if err := h.userService.CreateUser(user, req.Password); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "username or email already exists"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func (h *UserHandler) ListStaff(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	var users []models.User
	var err error
	if actor.Role == string(models.SuperAdmin) {
		users, err = h.userService.GetAllUsers()
	} else {
		users, err = h.userService.GetUsersByBranch(*actor.BranchID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load staff"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *UserHandler) GetStaff(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid staff id"})
		return
	}

	user, err := h.userService.GetUserByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "staff member not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) UpdateStaff(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid staff id"})
		return
	}

	user, err := h.userService.GetUserByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "staff member not found"})
		return
	}

	var req struct {
		Email       *string `json:"email"`
		PhoneNumber *string `json:"phone_number"`
		Role        *string `json:"role"`
		BranchID    *uint   `json:"branch_id"`
		IsActive    *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.BranchID != nil {
		user.BranchID = req.BranchID
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := h.userService.UpdateUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update staff member"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) DeleteStaff(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid staff id"})
		return
	}

	if err := h.userService.DeleteUser(uint(id)); err != nil {
		if errors.Is(err, services.ErrStaffHasOrders) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete staff member"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
