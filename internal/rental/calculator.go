package rental

// DefaultGSTRate is used when a staff profile has GST enabled but no
// rate configured.
const DefaultGSTRate = 5.00

// TaxConfig is a staff member's GST configuration. When Included is
// set, item prices already contain the tax and the GST amount is
// carved out of the subtotal instead of added on top.
type TaxConfig struct {
	Enabled  bool
	Rate     float64
	Included bool
}

type DraftItem struct {
	Quantity    int
	PricePerDay float64
	LineTotal   float64
}

type Totals struct {
	Subtotal   float64
	GSTAmount  float64
	GrandTotal float64
}

// LineTotal recomputes an item's line total from quantity and daily
// price. A multi-day multiplier is applied at display time, not stored.
func LineTotal(quantity int, pricePerDay float64) float64 {
	return float64(quantity) * pricePerDay
}

// CalculateTotals computes subtotal, GST and grand total for a draft
// order. Pure: safe to call on every item mutation.
func CalculateTotals(items []DraftItem, cfg TaxConfig) Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.LineTotal
	}

	t := Totals{Subtotal: subtotal, GrandTotal: subtotal}
	if !cfg.Enabled {
		return t
	}

	rate := cfg.Rate
	if rate <= 0 {
		rate = DefaultGSTRate
	}

	if cfg.Included {
		// Tax is embedded in the subtotal; the grand total does not change.
		t.GSTAmount = subtotal * (rate / (100 + rate))
	} else {
		t.GSTAmount = subtotal * (rate / 100)
		t.GrandTotal = subtotal + t.GSTAmount
	}
	return t
}
