package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"rental_manager/internal/models"
	"rental_manager/internal/repository"

	"gorm.io/gorm"
)

type fakeOrderRepo struct {
	orders map[uint]*models.Order
	audits []models.OrderReturnAudit
	nextID uint
	taken  map[string]bool
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uint]*models.Order), taken: make(map[string]bool)}
}

func (f *fakeOrderRepo) CreateWithItems(order *models.Order, audit *models.OrderReturnAudit) error {
	f.nextID++
	order.ID = f.nextID
	for i := range order.Items {
		order.Items[i].ID = uint(i + 1)
		order.Items[i].OrderID = order.ID
	}
	f.orders[order.ID] = order
	audit.OrderID = order.ID
	f.audits = append(f.audits, *audit)
	return nil
}

func (f *fakeOrderRepo) GetByID(id uint) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *order
	copied.Items = append([]models.OrderItem(nil), order.Items...)
	return &copied, nil
}

func (f *fakeOrderRepo) GetAll() ([]models.Order, error) {
	var orders []models.Order
	for _, order := range f.orders {
		orders = append(orders, *order)
	}
	return orders, nil
}

func (f *fakeOrderRepo) GetByBranch(branchID uint) ([]models.Order, error) {
	var orders []models.Order
	for _, order := range f.orders {
		if order.BranchID == branchID {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

func (f *fakeOrderRepo) GetByCustomer(customerID uint) ([]models.Order, error) { return nil, nil }
func (f *fakeOrderRepo) GetByDateRange(start, end time.Time) ([]models.Order, error) {
	return nil, nil
}
func (f *fakeOrderRepo) GetOverdue(now time.Time) ([]models.Order, error) { return nil, nil }

func (f *fakeOrderRepo) ExistsByInvoiceNumber(invoiceNumber string) (bool, error) {
	return f.taken[invoiceNumber], nil
}

func (f *fakeOrderRepo) CountByCustomer(customerID uint) (int64, error) {
	var count int64
	for _, order := range f.orders {
		if order.CustomerID == customerID {
			count++
		}
	}
	return count, nil
}

func (f *fakeOrderRepo) CountByStaff(staffID uint) (int64, error) {
	var count int64
	for _, order := range f.orders {
		if order.StaffID == staffID {
			count++
		}
	}
	return count, nil
}

func (f *fakeOrderRepo) Update(order *models.Order) error {
	stored, ok := f.orders[order.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	items := stored.Items
	copied := *order
	copied.Items = items
	f.orders[order.ID] = &copied
	return nil
}

func (f *fakeOrderRepo) ReplaceItems(order *models.Order, items []models.OrderItem, audit *models.OrderReturnAudit) error {
	for i := range items {
		items[i].ID = uint(i + 1)
		items[i].OrderID = order.ID
	}
	copied := *order
	copied.Items = items
	f.orders[order.ID] = &copied
	f.audits = append(f.audits, *audit)
	return nil
}

func (f *fakeOrderRepo) CommitReturn(order *models.Order, items []models.OrderItem, audits []models.OrderReturnAudit) error {
	stored, ok := f.orders[order.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for _, item := range items {
		for i := range stored.Items {
			if stored.Items[i].ID == item.ID {
				stored.Items[i] = item
			}
		}
	}
	items2 := stored.Items
	copied := *order
	copied.Items = items2
	f.orders[order.ID] = &copied
	f.audits = append(f.audits, audits...)
	return nil
}

type fakeItemRepo struct {
	orders *fakeOrderRepo
}

func (f *fakeItemRepo) GetByID(id uint) (*models.OrderItem, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeItemRepo) GetByOrderID(orderID uint) ([]models.OrderItem, error) {
	order, ok := f.orders.orders[orderID]
	if !ok {
		return nil, nil
	}
	return append([]models.OrderItem(nil), order.Items...), nil
}

func (f *fakeItemRepo) Update(item *models.OrderItem) error { return nil }

type fakeAuditRepo struct {
	entries []models.OrderReturnAudit
}

func (f *fakeAuditRepo) Create(entry *models.OrderReturnAudit) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeAuditRepo) GetByOrderID(orderID uint) ([]models.OrderReturnAudit, error) {
	var entries []models.OrderReturnAudit
	for _, e := range f.entries {
		if e.OrderID == orderID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

var (
	_ repository.OrderRepository     = (*fakeOrderRepo)(nil)
	_ repository.OrderItemRepository = (*fakeItemRepo)(nil)
	_ repository.AuditRepository     = (*fakeAuditRepo)(nil)
)

func testService(orderRepo *fakeOrderRepo, at time.Time) *orderService {
	svc := &orderService{
		orderRepo: orderRepo,
		itemRepo:  &fakeItemRepo{orders: orderRepo},
		auditRepo: &fakeAuditRepo{},
		now:       func() time.Time { return at },
	}
	return svc
}

func testStaff() *models.User {
	branchID := uint(1)
	return &models.User{
		ID:         7,
		Username:   "counter1",
		Role:       string(models.Staff),
		BranchID:   &branchID,
		IsActive:   true,
		GSTEnabled: true,
		GSTRate:    5,
	}
}

func testInput(start, end time.Time) OrderInput {
	return OrderInput{
		CustomerID: 3,
		StartAt:    start,
		EndAt:      end,
		Items: []OrderItemInput{
			{ProductName: "DSLR Camera", PhotoURL: "https://cdn.example.com/cam.jpg", Quantity: 2, PricePerDay: 100, Days: 1},
		},
	}
}

func TestCreateOrderComputesTotalsAndInvoice(t *testing.T) {
	at := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	repo := newFakeOrderRepo()
	svc := testService(repo, at)

	order, err := svc.CreateOrder(testStaff(), testInput(at, at.Add(48*time.Hour)))
	if err != nil {
		t.Fatal(err)
	}

	if order.Subtotal != 200 || order.GSTAmount != 10 || order.TotalAmount != 210 {
		t.Errorf("totals = %v/%v/%v, want 200/10/210", order.Subtotal, order.GSTAmount, order.TotalAmount)
	}
	if !strings.HasPrefix(order.InvoiceNumber, "GLAORD-20260315-") {
		t.Errorf("invoice number %q lacks expected prefix", order.InvoiceNumber)
	}
	if order.Status != string(models.OrderActive) {
		t.Errorf("status = %q, want active", order.Status)
	}
	if order.BranchID != 1 || order.StaffID != 7 {
		t.Errorf("order not stamped with staff/branch: %+v", order)
	}
	if len(repo.audits) != 1 || repo.audits[0].Action != models.AuditOrderCreated {
		t.Errorf("expected one order_created audit entry, got %+v", repo.audits)
	}
}

func TestCreateOrderFutureStartIsScheduled(t *testing.T) {
	at := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	svc := testService(newFakeOrderRepo(), at)

	start := at.AddDate(0, 0, 2)
	order, err := svc.CreateOrder(testStaff(), testInput(start, start.Add(24*time.Hour)))
	if err != nil {
		t.Fatal(err)
	}
	if order.Status != string(models.OrderScheduled) {
		t.Errorf("status = %q, want scheduled", order.Status)
	}
}

func TestCreateOrderRejectsBadInput(t *testing.T) {
	at := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	svc := testService(newFakeOrderRepo(), at)
	staff := testStaff()

	// end before start
	if _, err := svc.CreateOrder(staff, testInput(at, at.Add(-time.Hour))); err == nil {
		t.Error("expected date range error")
	}

	// no items
	input := testInput(at, at.Add(24*time.Hour))
	input.Items = nil
	if _, err := svc.CreateOrder(staff, input); err == nil {
		t.Error("expected missing items error")
	}

	// local preview photo
	input = testInput(at, at.Add(24*time.Hour))
	input.Items[0].PhotoURL = "blob:http://localhost/x"
	if _, err := svc.CreateOrder(staff, input); err == nil {
		t.Error("expected photo placeholder error")
	}
}

func TestProcessReturnCleanCompletion(t *testing.T) {
	at := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	repo := newFakeOrderRepo()
	svc := testService(repo, at)
	staff := testStaff()

	order, err := svc.CreateOrder(staff, testInput(at, at.Add(24*time.Hour)))
	if err != nil {
		t.Fatal(err)
	}

	updated, warnings, err := svc.ProcessReturn(staff, order.ID, ReturnInput{
		Items: []ReturnItemInput{{ItemID: order.Items[0].ID, ReturnedQuantity: 2}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if updated.Status != string(models.OrderCompleted) {
		t.Errorf("status = %q, want completed", updated.Status)
	}
}

func TestProcessReturnDamageFlags(t *testing.T) {
	at := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	repo := newFakeOrderRepo()
	svc := testService(repo, at)
	staff := testStaff()

	order, err := svc.CreateOrder(staff, testInput(at, at.Add(24*time.Hour)))
	if err != nil {
		t.Fatal(err)
	}

	updated, _, err := svc.ProcessReturn(staff, order.ID, ReturnInput{
		Items: []ReturnItemInput{{
			ItemID:            order.Items[0].ID,
			ReturnedQuantity:  2,
			DamageFee:         75,
			DamageDescription: "cracked lens",
		}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != string(models.OrderFlagged) {
		t.Errorf("status = %q, want flagged (damage beats full return)", updated.Status)
	}

	var damagedAudit bool
	for _, a := range repo.audits {
		if a.Action == models.AuditItemDamaged {
			damagedAudit = true
		}
	}
	if !damagedAudit {
		t.Error("expected an item_damaged audit entry")
	}
}

func TestProcessReturnClampsWithWarning(t *testing.T) {
	at := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	repo := newFakeOrderRepo()
	svc := testService(repo, at)
	staff := testStaff()

	order, err := svc.CreateOrder(staff, testInput(at, at.Add(24*time.Hour)))
	if err != nil {
		t.Fatal(err)
	}

	updated, warnings, err := svc.ProcessReturn(staff, order.ID, ReturnInput{
		Items: []ReturnItemInput{{ItemID: order.Items[0].ID, ReturnedQuantity: 5}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one clamp warning, got %v", warnings)
	}
	if updated.Items[0].ReturnedQuantity != 2 {
		t.Errorf("returned quantity = %d, want clamped to 2", updated.Items[0].ReturnedQuantity)
	}
	if updated.Status != string(models.OrderCompleted) {
		t.Errorf("status = %q, want completed after clamp", updated.Status)
	}
}

func TestProcessReturnDamageFeeNeedsDescription(t *testing.T) {
	at := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	svc := testService(newFakeOrderRepo(), at)
	staff := testStaff()

	order, err := svc.CreateOrder(staff, testInput(at, at.Add(24*time.Hour)))
	if err != nil {
		t.Fatal(err)
	}

	_, _, err = svc.ProcessReturn(staff, order.ID, ReturnInput{
		Items: []ReturnItemInput{{ItemID: order.Items[0].ID, ReturnedQuantity: 2, DamageFee: 40}},
	})
	if err == nil {
		t.Error("expected damage description error")
	}
}

func TestProcessReturnLateFeeInTotal(t *testing.T) {
	at := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	svc := testService(newFakeOrderRepo(), at)
	staff := testStaff()

	order, err := svc.CreateOrder(staff, testInput(at, at.Add(24*time.Hour)))
	if err != nil {
		t.Fatal(err)
	}

	updated, _, err := svc.ProcessReturn(staff, order.ID, ReturnInput{
		LateFee: 50,
		Items:   []ReturnItemInput{{ItemID: order.Items[0].ID, ReturnedQuantity: 2}},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := updated.Subtotal + updated.GSTAmount + 50
	if updated.TotalAmount != want {
		t.Errorf("total = %v, want %v (subtotal + gst + late fee)", updated.TotalAmount, want)
	}

	if _, _, err := svc.ProcessReturn(staff, order.ID, ReturnInput{LateFee: -5}); err == nil {
		t.Error("expected negative late fee on a closed order to fail")
	}
}

func TestProcessReturnSecondPassReplacesFees(t *testing.T) {
	at := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	repo := newFakeOrderRepo()
	svc := testService(repo, at)
	staff := testStaff()

	order, err := svc.CreateOrder(staff, testInput(at, at.Add(24*time.Hour)))
	if err != nil {
		t.Fatal(err)
	}

	// First pass: one of two units back, scratched, late.
	first, _, err := svc.ProcessReturn(staff, order.ID, ReturnInput{
		LateFee: 50,
		Items: []ReturnItemInput{{
			ItemID:            order.Items[0].ID,
			ReturnedQuantity:  1,
			DamageFee:         20,
			DamageDescription: "scratched body",
		}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if first.Status != string(models.OrderFlagged) {
		t.Fatalf("status after partial damaged return = %q, want flagged", first.Status)
	}
	if first.LateFee != 50 {
		t.Fatalf("late fee after first pass = %v, want 50", first.LateFee)
	}

	// Second pass restates the whole fee picture; omitted fees reset.
	second, _, err := svc.ProcessReturn(staff, order.ID, ReturnInput{
		Items: []ReturnItemInput{{ItemID: order.Items[0].ID, ReturnedQuantity: 2}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if second.Status != string(models.OrderCompleted) {
		t.Errorf("status after full clean return = %q, want completed", second.Status)
	}
	if second.LateFee != 0 {
		t.Errorf("late fee after second pass = %v, want 0 (replaced)", second.LateFee)
	}
	if second.Items[0].DamageFee != 0 {
		t.Errorf("damage fee after second pass = %v, want 0 (replaced)", second.Items[0].DamageFee)
	}
	if second.TotalAmount != second.Subtotal+second.GSTAmount {
		t.Errorf("total = %v, want %v without fees", second.TotalAmount, second.Subtotal+second.GSTAmount)
	}
}

func TestClosedOrderRejectsMutation(t *testing.T) {
	at := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	svc := testService(newFakeOrderRepo(), at)
	staff := testStaff()

	order, err := svc.CreateOrder(staff, testInput(at, at.Add(24*time.Hour)))
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.CancelOrder(staff, order.ID); err != nil {
		t.Fatal(err)
	}

	if err := svc.CancelOrder(staff, order.ID); !errors.Is(err, ErrOrderClosed) {
		t.Errorf("double cancel: err = %v, want ErrOrderClosed", err)
	}
	if _, _, err := svc.ProcessReturn(staff, order.ID, ReturnInput{}); !errors.Is(err, ErrOrderClosed) {
		t.Errorf("return on cancelled order: err = %v, want ErrOrderClosed", err)
	}
	if err := svc.UpdateStatus(staff, order.ID, string(models.OrderActive)); !errors.Is(err, ErrOrderClosed) {
		t.Errorf("status update on cancelled order: err = %v, want ErrOrderClosed", err)
	}
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	at := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	svc := testService(newFakeOrderRepo(), at)
	staff := testStaff()

	order, err := svc.CreateOrder(staff, testInput(at, at.Add(24*time.Hour)))
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.UpdateStatus(staff, order.ID, "shipped"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("err = %v, want ErrInvalidStatus", err)
	}
}
