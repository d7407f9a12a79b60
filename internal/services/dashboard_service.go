package services

import (
	"fmt"
	"log"
	"time"

	"rental_manager/internal/models"
	"rental_manager/internal/redis"
	"rental_manager/internal/rental"
	"rental_manager/internal/repository"
)

// DashboardStats is the payload behind the dashboard reporting screen.
type DashboardStats struct {
	TotalOrders     int64              `json:"total_orders"`
	StatusCounts    map[string]int64   `json:"status_counts"`
	ActiveRentals   int64              `json:"active_rentals"`
	LateReturns     int64              `json:"late_returns"`
	Bookings        int64              `json:"bookings"`
	Revenue         float64            `json:"revenue"`
	GSTCollected    float64            `json:"gst_collected"`
	LateFees        float64            `json:"late_fees"`
	TotalCustomers  int64              `json:"total_customers"`
	RevenueByBranch map[string]float64 `json:"revenue_by_branch,omitempty"`
	GeneratedAt     time.Time          `json:"generated_at"`
}

type DashboardService interface {
	GetStats(branchID uint) (*DashboardStats, error)
}

type dashboardService struct {
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	branchRepo   repository.BranchRepository
	cache        *redis.Client
	cacheTTL     time.Duration
	now          func() time.Time
}

func NewDashboardService(
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	branchRepo repository.BranchRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
) DashboardService {
	return &dashboardService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		branchRepo:   branchRepo,
		cache:        cache,
		cacheTTL:     cacheTTL,
		now:          time.Now,
	}
}

func (s *dashboardService) GetStats(branchID uint) (*DashboardStats, error) {
	cacheKey := fmt.Sprintf("stats:%d", branchID)
	if s.cache != nil {
		var cached DashboardStats
		if hit, err := s.cache.GetDashboard(cacheKey, &cached); err == nil && hit {
			return &cached, nil
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

	var customers []models.Customer
	if branchID == 0 {
		customers, err = s.customerRepo.GetAll()
	} else {
		customers, err = s.customerRepo.GetByBranch(branchID)
	}
	if err != nil {
		return nil, err
	}

	now := s.now()
	stats := &DashboardStats{
		TotalOrders:    int64(len(orders)),
		StatusCounts:   make(map[string]int64),
		TotalCustomers: int64(len(customers)),
		GeneratedAt:    now,
	}

	branchRevenue := make(map[uint]float64)
	for _, order := range orders {
		stored := models.OrderStatus(order.Status)

		// Cancelled orders bucket as cancelled and carry no revenue.
		if stored == models.OrderCancelled {
			stats.StatusCounts[string(models.OrderCancelled)]++
			continue
		}

		stats.Revenue += order.TotalAmount
		stats.GSTCollected += order.GSTAmount
		stats.LateFees += order.LateFee
		branchRevenue[order.BranchID] += order.TotalAmount

		// Orders that have not started yet bucket as scheduled, never
		// as active rentals.
		if rental.IsBooking(order.StartDate, now) {
			stats.StatusCounts[string(models.OrderScheduled)]++
			stats.Bookings++
			continue
		}

		resolved := rental.ResolveStatus(order.StartDate, order.EndDate, stored, now)
		stats.StatusCounts[string(resolved)]++
		if resolved == models.OrderActive {
			stats.ActiveRentals++
		}
		if rental.IsLate(order.EndAt, stored, now) {
			stats.LateReturns++
		}
	}

	// Per-branch breakdown only on the all-branches view.
	if branchID == 0 {
		branches, err := s.branchRepo.GetAll()
		if err == nil {
			stats.RevenueByBranch = make(map[string]float64, len(branches))
			for _, branch := range branches {
				stats.RevenueByBranch[branch.Name] = branchRevenue[branch.ID]
			}
		}
	}

	if s.cache != nil {
		if err := s.cache.SetDashboard(cacheKey, stats, s.cacheTTL); err != nil {
			log.Printf("Warning: failed to cache dashboard stats: %v", err)
		}
	}
	return stats, nil
}
