package rental

import (
	"rental_manager/internal/models"
)

type ReturnItem struct {
	Quantity          int
	ReturnedQuantity  int
	ReturnStatus      models.ReturnStatus
	DamageFee         float64
	DamageDescription string
}

// Reconcile determines an order's status from the return state of its
// items. Rules are evaluated in fixed priority order:
//
//  1. everything returned in full, no damage, nothing missing → completed
//  2. any damage, partial quantity, or missing item → flagged
//  3. some quantity returned but not all → partially_returned
//  4. nothing touched yet → keep the current status
func Reconcile(items []ReturnItem, current models.OrderStatus) models.OrderStatus {
	if len(items) == 0 {
		return current
	}

	allReturned := true
	anyDamage := false
	anyMissing := false
	anyPartial := false
	anyTouched := false

	for _, item := range items {
		if item.ReturnStatus == models.ItemReturned && item.ReturnedQuantity == item.Quantity {
			anyTouched = true
		} else {
			allReturned = false
		}
		if item.DamageFee > 0 || item.DamageDescription != "" {
			anyDamage = true
		}
		if item.ReturnStatus == models.ItemMissing {
			anyMissing = true
			anyTouched = true
		}
		if item.ReturnedQuantity > 0 {
			anyTouched = true
			if item.ReturnedQuantity < item.Quantity {
				anyPartial = true
			}
		}
	}

	switch {
	case allReturned && !anyDamage && !anyMissing:
		return models.OrderCompleted
	case anyDamage || anyPartial || anyMissing:
		return models.OrderFlagged
	case anyTouched:
		return models.OrderPartiallyReturned
	default:
		return current
	}
}
