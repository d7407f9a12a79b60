package rental

import (
	"time"

	"rental_manager/internal/models"
)

// Display categories for the order card UI. Precedence:
// cancelled > completed/returned > late > scheduled > ongoing.
const (
	CategoryCancelled = "cancelled"
	CategoryReturned  = "returned"
	CategoryLate      = "late"
	CategoryScheduled = "scheduled"
	CategoryOngoing   = "ongoing"
)

// ResolveStatus derives the display status of an order from its dates
// and stored status. Completed is terminal and never overridden.
func ResolveStatus(startDate, endDate time.Time, stored models.OrderStatus, now time.Time) models.OrderStatus {
	if stored == models.OrderCompleted {
		return models.OrderCompleted
	}
	if dateOnly(now).After(dateOnly(endDate)) {
		return models.OrderPendingReturn
	}
	return models.OrderActive
}

// IsBooking reports whether the rental period has not started yet.
// Date-only comparison: an order starting later today is not a booking.
func IsBooking(startDate, now time.Time) bool {
	return dateOnly(startDate).After(dateOnly(now))
}

// IsLate reports whether the order is past its end datetime and still
// open.
func IsLate(endAt time.Time, stored models.OrderStatus, now time.Time) bool {
	if stored == models.OrderCompleted || stored == models.OrderCancelled {
		return false
	}
	return now.After(endAt)
}

// DisplayCategory maps an order onto its card category.
func DisplayCategory(startDate time.Time, endAt time.Time, stored models.OrderStatus, now time.Time) string {
	switch stored {
	case models.OrderCancelled:
		return CategoryCancelled
	case models.OrderCompleted:
		return CategoryReturned
	}
	if IsLate(endAt, stored, now) {
		return CategoryLate
	}
	if stored == models.OrderScheduled || IsBooking(startDate, now) {
		return CategoryScheduled
	}
	return CategoryOngoing
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
