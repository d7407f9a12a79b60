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

type CustomerHandler struct {
	customerService services.CustomerService
}

func NewCustomerHandler(customerService services.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// scopedBranchID resolves which branch the caller may see. Super
// admins can pass ?branch_id=N; everyone else is pinned to their own.
func scopedBranchID(c *gin.Context) uint {
	user := middleware.CurrentUser(c)
	if user.Role == string(models.SuperAdmin) {
		if raw := c.Query("branch_id"); raw != "" {
			if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
				return uint(id)
			}
		}
		return 0
	}
	if user.BranchID != nil {
		return *user.BranchID
	}
	return 0
}

func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req struct {
		Name          string `json:"name" binding:"required"`
		Phone         string `json:"phone" binding:"required"`
		Address       string `json:"address"`
		IDProofType   string `json:"id_proof_type"`
		IDProofNumber string `json:"id_proof_number"`
		IDProofURL    string `json:"id_proof_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and phone are required"})
		return
	}

	customer := &models.Customer{
		BranchID:      scopedBranchID(c),
		Name:          req.Name,
		Phone:         req.Phone,
		Address:       req.Address,
		IDProofType:   req.IDProofType,
		IDProofNumber: req.IDProofNumber,
		IDProofURL:    req.IDProofURL,
	}
	if err := h.customerService.CreateCustomer(customer); err != nil {
		if errors.Is(err, services.ErrInvalidPhone) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "a customer with this phone number already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create customer"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"customer": customer})
}

func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	branchID := scopedBranchID(c)

	if query := c.Query("q"); query != "" {
		customers, err := h.customerService.SearchCustomers(branchID, query)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search customers"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"customers": customers})
		return
	}

	customers, err := h.customerService.GetCustomers(branchID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load customers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer id"})
		return
	}

	customer, err := h.customerService.GetCustomerByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		return
	}

	orders, err := h.customerService.GetCustomerOrders(customer.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load customer orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": customer, "orders": orders})
}

func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer id"})
		return
	}

	customer, err := h.customerService.GetCustomerByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		return
	}

	var req struct {
		Name          *string `json:"name"`
		Phone         *string `json:"phone"`
		Address       *string `json:"address"`
		IDProofType   *string `json:"id_proof_type"`
		IDProofNumber *string `json:"id_proof_number"`
		IDProofURL    *string `json:"id_proof_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.IDProofType != nil {
		customer.IDProofType = *req.IDProofType
	}
	if req.IDProofNumber != nil {
		customer.IDProofNumber = *req.IDProofNumber
	}
	if req.IDProofURL != nil {
		customer.IDProofURL = *req.IDProofURL
	}

	if err := h.customerService.UpdateCustomer(customer); err != nil {
		if errors.Is(err, services.ErrInvalidPhone) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "a customer with this phone number already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update customer"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer id"})
		return
	}

	if err := h.customerService.DeleteCustomer(uint(id)); err != nil {
		if errors.Is(err, services.ErrCustomerHasOrders) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete customer"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
