package rental

import (
	"testing"
	"time"

	"rental_manager/internal/models"
)

var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return now.AddDate(0, 0, offset)
}

func TestResolveStatus(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		end    time.Time
		stored models.OrderStatus
		want   models.OrderStatus
	}{
		{"completed is terminal", day(-10), day(-5), models.OrderCompleted, models.OrderCompleted},
		{"completed ignores future end", day(-1), day(5), models.OrderCompleted, models.OrderCompleted},
		{"past end date is pending return", day(-3), day(-1), models.OrderActive, models.OrderPendingReturn},
		{"ends today stays active", day(-3), day(0), models.OrderActive, models.OrderActive},
		{"started today is active", day(0), day(2), models.OrderActive, models.OrderActive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveStatus(tt.start, tt.end, tt.stored, now); got != tt.want {
				t.Errorf("ResolveStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveStatusIdempotent(t *testing.T) {
	got := ResolveStatus(day(-10), day(-5), models.OrderCompleted, now)
	if again := ResolveStatus(day(-10), day(-5), got, now); again != got {
		t.Errorf("resolver not idempotent: %v then %v", got, again)
	}
}

func TestIsBooking(t *testing.T) {
	if !IsBooking(day(1), now) {
		t.Error("order starting tomorrow should be a booking")
	}
	// Date-only comparison: later today is not a booking.
	if IsBooking(now.Add(3*time.Hour), now) {
		t.Error("order starting later today should not be a booking")
	}
	if IsBooking(day(-1), now) {
		t.Error("order started yesterday should not be a booking")
	}
}

func TestIsLate(t *testing.T) {
	past := now.Add(-time.Hour)
	if !IsLate(past, models.OrderActive, now) {
		t.Error("active order past end datetime should be late")
	}
	if IsLate(past, models.OrderCompleted, now) {
		t.Error("completed order is never late")
	}
	if IsLate(past, models.OrderCancelled, now) {
		t.Error("cancelled order is never late")
	}
	if IsLate(now.Add(time.Hour), models.OrderActive, now) {
		t.Error("order ending in the future is not late")
	}
}

func TestDisplayCategoryPrecedence(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		endAt  time.Time
		stored models.OrderStatus
		want   string
	}{
		{"cancelled wins over late", day(-5), now.Add(-time.Hour), models.OrderCancelled, CategoryCancelled},
		{"completed shows returned", day(-5), now.Add(-time.Hour), models.OrderCompleted, CategoryReturned},
		{"late beats scheduled status", day(-5), now.Add(-time.Hour), models.OrderScheduled, CategoryLate},
		{"scheduled", day(2), day(4), models.OrderScheduled, CategoryScheduled},
		{"future start is scheduled", day(2), day(4), models.OrderActive, CategoryScheduled},
		{"default ongoing", day(-1), day(2), models.OrderActive, CategoryOngoing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayCategory(tt.start, tt.endAt, tt.stored, now); got != tt.want {
				t.Errorf("DisplayCategory() = %v, want %v", got, tt.want)
			}
		})
	}
}
