package utils

import (
	"github.com/foodslinkx/foodslinkx-api/models"
)

// ComputeSubTotal returns the sum of price * quantity over the given items.
// Prices are the snapshots copied onto the order when each item was added,
// never a live menu lookup.
func ComputeSubTotal(items []models.OrderItem) float64 {
	var sum float64
	for _, item := range items {
		sum += item.Price * float64(item.Quantity)
	}
	return sum
}

// ResolveTotal returns the caller-supplied total when one was given.
// Without one it falls back to the plain item sum. Additional charges are
// never folded into the fallback: a caller that wants charges or discounts
// reflected must pass the final figure itself. Existing clients depend on
// that asymmetry.
func ResolveTotal(total *float64, items []models.OrderItem) float64 {
	if total != nil {
		return *total
	}
	return ComputeSubTotal(items)
}
