package rental

import (
	"strings"
	"time"
)

// MinRentalDuration is the shortest rental period an order may cover.
const MinRentalDuration = time.Hour

// Validators never panic and have no side effects; callers must check
// the returned result before proceeding.

type DateRangeResult struct {
	Valid bool
	Error string
}

// ValidateDateRange checks that both ends are set, the end is strictly
// after the start, and the rental lasts at least an hour.
func ValidateDateRange(start, end time.Time) DateRangeResult {
	if start.IsZero() || end.IsZero() {
		return DateRangeResult{Error: "start and end dates are required"}
	}
	if !end.After(start) {
		return DateRangeResult{Error: "end date must be after start date"}
	}
	if end.Sub(start) < MinRentalDuration {
		return DateRangeResult{Error: "rental duration must be at least 1 hour"}
	}
	return DateRangeResult{Valid: true}
}

type QuantityResult struct {
	Valid   bool
	Clamped int
	Warning string
	Error   string
}

// ClampReturnedQuantity validates a returned quantity against the
// original quantity. Values above the maximum are accepted but clamped
// with a warning; negative values are rejected.
func ClampReturnedQuantity(input, max int) QuantityResult {
	if input < 0 {
		return QuantityResult{Error: "returned quantity cannot be negative"}
	}
	if input > max {
		return QuantityResult{
			Valid:   true,
			Clamped: max,
			Warning: "returned quantity exceeds original quantity, clamped",
		}
	}
	return QuantityResult{Valid: true, Clamped: input}
}

type FeeResult struct {
	Valid   bool
	Clamped float64
	Error   string
}

// ValidateFee checks a damage or late fee. Negative input is an error,
// not silently clamped.
func ValidateFee(fee float64) FeeResult {
	if fee < 0 {
		return FeeResult{Error: "fee cannot be negative"}
	}
	return FeeResult{Valid: true, Clamped: fee}
}

// ValidateDamageDescription enforces that a description accompanies
// any non-zero damage fee.
func ValidateDamageDescription(fee float64, description string) bool {
	if fee > 0 {
		return strings.TrimSpace(description) != ""
	}
	return true
}

type ItemResult struct {
	Valid bool
	Error string
}

// ValidateItem checks an order item draft for completeness before it
// may be added to an order. A blob: photo URL is a transient local
// preview that never survived upload.
func ValidateItem(productName string, quantity int, pricePerDay float64, photoURL string) ItemResult {
	if strings.TrimSpace(productName) == "" {
		return ItemResult{Error: "product name is required"}
	}
	if quantity <= 0 {
		return ItemResult{Error: "quantity must be greater than zero"}
	}
	if pricePerDay <= 0 {
		return ItemResult{Error: "price per day must be greater than zero"}
	}
	if photoURL == "" {
		return ItemResult{Error: "item photo is required"}
	}
	if strings.HasPrefix(photoURL, "blob:") {
		return ItemResult{Error: "item photo has not finished uploading"}
	}
	return ItemResult{Valid: true}
}
