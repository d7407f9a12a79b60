package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"rental_manager/internal/models"
	"rental_manager/internal/redis"
	"rental_manager/internal/rental"
	"rental_manager/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrOrderClosed   = errors.New("order is already completed or cancelled")
	ErrInvalidStatus = errors.New("invalid order status")
)

type OrderItemInput struct {
	ProductName string  `json:"product_name"`
	PhotoURL    string  `json:"photo_url"`
	Quantity    int     `json:"quantity"`
	PricePerDay float64 `json:"price_per_day"`
	Days        int     `json:"days"`
}

type OrderInput struct {
	CustomerID uint            `json:"customer_id"`
	StartAt    time.Time       `json:"start_at"`
	EndAt      time.Time       `json:"end_at"`
	Notes      string          `json:"notes"`
	Items      []OrderItemInput `json:"items"`
}

type ReturnItemInput struct {
	ItemID            uint    `json:"item_id"`
	ReturnedQuantity  int     `json:"returned_quantity"`
	Missing           bool    `json:"missing"`
	DamageFee         float64 `json:"damage_fee"`
	DamageDescription string  `json:"damage_description"`
}

// ReturnInput carries the full fee state for the order: a return pass
// replaces the late fee and per-item damage fees rather than merging
// with earlier passes, so omitting a fee resets it to zero.
type ReturnInput struct {
	LateFee float64           `json:"late_fee"`
	Items   []ReturnItemInput `json:"items"`
}

// OrderView is an order as shown on the order card: the stored row plus
// the resolved status and display category.
type OrderView struct {
	models.Order
	ResolvedStatus  string `json:"resolved_status"`
	DisplayCategory string `json:"display_category"`
	IsBooking       bool   `json:"is_booking"`
	IsLate          bool   `json:"is_late"`
}

type OrderService interface {
	CreateOrder(staff *models.User, input OrderInput) (*models.Order, error)
	GetOrder(id uint) (*models.Order, error)
	GetOrderTimeline(orderID uint) ([]models.OrderReturnAudit, error)
	ListOrders(branchID uint) ([]OrderView, error)
	UpdateOrder(staff *models.User, orderID uint, input OrderInput) (*models.Order, error)
	UpdateStatus(staff *models.User, orderID uint, status string) error
	CancelOrder(staff *models.User, orderID uint) error
	ProcessReturn(staff *models.User, orderID uint, input ReturnInput) (*models.Order, []string, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	itemRepo  repository.OrderItemRepository
	auditRepo repository.AuditRepository
	cache     *redis.Client
	cacheTTL  time.Duration
	now       func() time.Time
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	itemRepo repository.OrderItemRepository,
	auditRepo repository.AuditRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		auditRepo: auditRepo,
		cache:     cache,
		cacheTTL:  cacheTTL,
		now:       time.Now,
	}
}

func (s *orderService) CreateOrder(staff *models.User, input OrderInput) (*models.Order, error) {
	now := s.now()

	if check := rental.ValidateDateRange(input.StartAt, input.EndAt); !check.Valid {
		return nil, errors.New(check.Error)
	}

	items, draft, err := buildItems(input.Items)
	if err != nil {
		return nil, err
	}

	totals := rental.CalculateTotals(draft, taxConfig(staff))

	status := models.OrderActive
	if rental.IsBooking(input.StartAt, now) {
		status = models.OrderScheduled
	}

	invoiceNumber, err := rental.GenerateInvoiceNumber(now, s.orderRepo.ExistsByInvoiceNumber)
	if err != nil {
		return nil, err
	}

	branchID := uint(0)
	if staff.BranchID != nil {
		branchID = *staff.BranchID
	}

	order := &models.Order{
		InvoiceNumber: invoiceNumber,
		BranchID:      branchID,
		StaffID:       staff.ID,
		CustomerID:    input.CustomerID,
		StartDate:     input.StartAt,
		EndDate:       input.EndAt,
		StartAt:       input.StartAt,
		EndAt:         input.EndAt,
		Status:        string(status),
		Subtotal:      totals.Subtotal,
		GSTAmount:     totals.GSTAmount,
		GSTRate:       staff.GSTRate,
		GSTIncluded:   staff.GSTIncluded,
		TotalAmount:   totals.GrandTotal,
		Notes:         input.Notes,
		Items:         items,
	}

	audit := newAudit(0, nil, staff.ID, models.AuditOrderCreated,
		fmt.Sprintf("order created with %d items, total %.2f", len(items), totals.GrandTotal))

	if err := s.orderRepo.CreateWithItems(order, audit); err != nil {
		return nil, err
	}

	s.invalidate()
	return order, nil
}

func (s *orderService) GetOrder(id uint) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

func (s *orderService) GetOrderTimeline(orderID uint) ([]models.OrderReturnAudit, error) {
	return s.auditRepo.GetByOrderID(orderID)
}

func (s *orderService) ListOrders(branchID uint) ([]OrderView, error) {
	if s.cache != nil {
		var cached []OrderView
		if hit, err := s.cache.GetOrderList(branchID, &cached); err == nil && hit {
			return cached, nil
		}
	}

	var orders []models.Order
	var err error
	if branchID == 0 {
		orders, err = s.orderRepo.GetAll()
	} else {
		orders, err = s.orderRepo.GetByBranch(branchID)
	}
	if err != nil {
		return nil, err
	}

	now := s.now()
	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		stored := models.OrderStatus(order.Status)
		views = append(views, OrderView{
			Order:           order,
			ResolvedStatus:  string(rental.ResolveStatus(order.StartDate, order.EndDate, stored, now)),
			DisplayCategory: rental.DisplayCategory(order.StartDate, order.EndAt, stored, now),
			IsBooking:       rental.IsBooking(order.StartDate, now),
			IsLate:          rental.IsLate(order.EndAt, stored, now),
		})
	}

	if s.cache != nil {
		if err := s.cache.SetOrderList(branchID, views, s.cacheTTL); err != nil {
			log.Printf("Warning: failed to cache order list: %v", err)
		}
	}
	return views, nil
}

// UpdateOrder replaces the order's full item list and recomputes the
// billing columns with the tax configuration captured on the order.
func (s *orderService) UpdateOrder(staff *models.User, orderID uint, input OrderInput) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if orderClosed(order) {
		return nil, ErrOrderClosed
	}

	if check := rental.ValidateDateRange(input.StartAt, input.EndAt); !check.Valid {
		return nil, errors.New(check.Error)
	}

	items, draft, err := buildItems(input.Items)
	if err != nil {
		return nil, err
	}

	// The order keeps the tax mode it was created under; the staff
	// profile applies only when the order never had GST.
	cfg := taxConfig(staff)
	if order.GSTAmount > 0 {
		cfg = rental.TaxConfig{Enabled: true, Rate: order.GSTRate, Included: order.GSTIncluded}
	}
	totals := rental.CalculateTotals(draft, cfg)

	order.StartDate = input.StartAt
	order.EndDate = input.EndAt
	order.StartAt = input.StartAt
	order.EndAt = input.EndAt
	order.Notes = input.Notes
	order.Subtotal = totals.Subtotal
	order.GSTAmount = totals.GSTAmount
	order.TotalAmount = totals.GrandTotal + order.LateFee

	audit := newAudit(order.ID, nil, staff.ID, models.AuditOrderUpdated,
		fmt.Sprintf("order items replaced, %d items, total %.2f", len(items), order.TotalAmount))

	if err := s.orderRepo.ReplaceItems(order, items, audit); err != nil {
		return nil, err
	}

	s.invalidate()
	return s.orderRepo.GetByID(orderID)
}

func (s *orderService) UpdateStatus(staff *models.User, orderID uint, status string) error {
	if !validStatus(status) {
		return ErrInvalidStatus
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if orderClosed(order) {
		return ErrOrderClosed
	}

	previous := order.Status
	order.Status = status
	order.Items = nil
	if err := s.orderRepo.Update(order); err != nil {
		return err
	}

	audit := newAudit(order.ID, nil, staff.ID, models.AuditStatusChanged,
		fmt.Sprintf("status changed from %s to %s", previous, status))
	if err := s.auditRepo.Create(audit); err != nil {
		log.Printf("Warning: failed to write audit entry: %v", err)
	}

	s.invalidate()
	return nil
}

func (s *orderService) CancelOrder(staff *models.User, orderID uint) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if orderClosed(order) {
		return ErrOrderClosed
	}

	order.Status = string(models.OrderCancelled)
	order.Items = nil
	if err := s.orderRepo.Update(order); err != nil {
		return err
	}

	audit := newAudit(order.ID, nil, staff.ID, models.AuditOrderCancelled, "order cancelled")
	if err := s.auditRepo.Create(audit); err != nil {
		log.Printf("Warning: failed to write audit entry: %v", err)
	}

	s.invalidate()
	return nil
}

// ProcessReturn applies per-item return state, reconciles the order
// status and commits everything with the audit rows in one
// transaction. Returned warnings (clamped quantities) are advisory.
func (s *orderService) ProcessReturn(staff *models.User, orderID uint, input ReturnInput) (*models.Order, []string, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, nil, err
	}
	if orderClosed(order) {
		return nil, nil, ErrOrderClosed
	}

	if check := rental.ValidateFee(input.LateFee); !check.Valid {
		return nil, nil, errors.New(check.Error)
	}

	items, err := s.itemRepo.GetByOrderID(orderID)
	if err != nil {
		return nil, nil, err
	}
	itemsByID := make(map[uint]*models.OrderItem, len(items))
	for i := range items {
		itemsByID[items[i].ID] = &items[i]
	}

	var warnings []string
	var touched []models.OrderItem
	var audits []models.OrderReturnAudit

	for _, in := range input.Items {
		item, ok := itemsByID[in.ItemID]
		if !ok {
			return nil, nil, fmt.Errorf("item %d does not belong to order %d", in.ItemID, orderID)
		}

		if check := rental.ValidateFee(in.DamageFee); !check.Valid {
			return nil, nil, fmt.Errorf("item %q: %s", item.ProductName, check.Error)
		}
		if !rental.ValidateDamageDescription(in.DamageFee, in.DamageDescription) {
			return nil, nil, fmt.Errorf("item %q: damage description is required when a damage fee is set", item.ProductName)
		}

		if in.Missing {
			item.ReturnStatus = string(models.ItemMissing)
			audits = append(audits, *newAudit(order.ID, &item.ID, staff.ID, models.AuditItemMissing,
				fmt.Sprintf("%s marked missing", item.ProductName)))
		} else {
			clamp := rental.ClampReturnedQuantity(in.ReturnedQuantity, item.Quantity)
			if !clamp.Valid {
				return nil, nil, fmt.Errorf("item %q: %s", item.ProductName, clamp.Error)
			}
			if clamp.Warning != "" {
				warnings = append(warnings, fmt.Sprintf("item %q: %s", item.ProductName, clamp.Warning))
			}
			item.ReturnedQuantity = clamp.Clamped
			if clamp.Clamped > 0 {
				item.ReturnStatus = string(models.ItemReturned)
				audits = append(audits, *newAudit(order.ID, &item.ID, staff.ID, models.AuditItemReturned,
					fmt.Sprintf("%d of %d %s returned", clamp.Clamped, item.Quantity, item.ProductName)))
			}
		}

		item.DamageFee = in.DamageFee
		item.DamageDescription = in.DamageDescription
		if in.DamageFee > 0 {
			audits = append(audits, *newAudit(order.ID, &item.ID, staff.ID, models.AuditItemDamaged,
				fmt.Sprintf("%s damaged: %s (fee %.2f)", item.ProductName, in.DamageDescription, in.DamageFee)))
		}

		touched = append(touched, *item)
	}

	returnItems := make([]rental.ReturnItem, 0, len(items))
	for i := range items {
		item := &items[i]
		returnItems = append(returnItems, rental.ReturnItem{
			Quantity:          item.Quantity,
			ReturnedQuantity:  item.ReturnedQuantity,
			ReturnStatus:      models.ReturnStatus(item.ReturnStatus),
			DamageFee:         item.DamageFee,
			DamageDescription: item.DamageDescription,
		})
	}

	previous := order.Status
	resolved := rental.Reconcile(returnItems, models.OrderStatus(order.Status))
	order.Status = string(resolved)
	order.LateFee = input.LateFee
	order.TotalAmount = order.Subtotal + order.GSTAmount + order.LateFee
	if order.GSTIncluded {
		// Included-mode GST lives inside the subtotal already.
		order.TotalAmount = order.Subtotal + order.LateFee
	}

	if string(resolved) != previous {
		audits = append(audits, *newAudit(order.ID, nil, staff.ID, models.AuditReturnClosed,
			fmt.Sprintf("return processed, status %s", resolved)))
	}

	if err := s.orderRepo.CommitReturn(order, touched, audits); err != nil {
		return nil, nil, err
	}

	s.invalidate()
	updated, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, nil, err
	}
	return updated, warnings, nil
}

func (s *orderService) invalidate() {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateOrders(); err != nil {
		log.Printf("Warning: failed to invalidate order cache: %v", err)
	}
}

func buildItems(inputs []OrderItemInput) ([]models.OrderItem, []rental.DraftItem, error) {
	if len(inputs) == 0 {
		return nil, nil, errors.New("order must have at least one item")
	}

	items := make([]models.OrderItem, 0, len(inputs))
	draft := make([]rental.DraftItem, 0, len(inputs))
	for _, in := range inputs {
		if check := rental.ValidateItem(in.ProductName, in.Quantity, in.PricePerDay, in.PhotoURL); !check.Valid {
			return nil, nil, fmt.Errorf("item %q: %s", in.ProductName, check.Error)
		}
		lineTotal := rental.LineTotal(in.Quantity, in.PricePerDay)
		days := in.Days
		if days <= 0 {
			days = 1
		}
		items = append(items, models.OrderItem{
			ProductName:  in.ProductName,
			PhotoURL:     in.PhotoURL,
			Quantity:     in.Quantity,
			PricePerDay:  in.PricePerDay,
			Days:         days,
			LineTotal:    lineTotal,
			ReturnStatus: string(models.ItemNotYetReturned),
		})
		draft = append(draft, rental.DraftItem{
			Quantity:    in.Quantity,
			PricePerDay: in.PricePerDay,
			LineTotal:   lineTotal,
		})
	}
	return items, draft, nil
}

func taxConfig(staff *models.User) rental.TaxConfig {
	return rental.TaxConfig{
		Enabled:  staff.GSTEnabled,
		Rate:     staff.GSTRate,
		Included: staff.GSTIncluded,
	}
}

func newAudit(orderID uint, itemID *uint, staffID uint, action, details string) *models.OrderReturnAudit {
	return &models.OrderReturnAudit{
		ReferenceID: uuid.NewString(),
		OrderID:     orderID,
		OrderItemID: itemID,
		StaffID:     staffID,
		Action:      action,
		Details:     details,
	}
}

func orderClosed(order *models.Order) bool {
	return order.Status == string(models.OrderCompleted) || order.Status == string(models.OrderCancelled)
}

func validStatus(status string) bool {
	switch models.OrderStatus(status) {
	case models.OrderScheduled, models.OrderActive, models.OrderPendingReturn,
		models.OrderPartiallyReturned, models.OrderFlagged, models.OrderCompleted,
		models.OrderCancelled:
		return true
	}
	return false
}
