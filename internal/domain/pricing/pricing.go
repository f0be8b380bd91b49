// Package pricing derives order totals from line items.
package pricing

import (
	"pizzeria/internal/domain/model"

	"github.com/shopspring/decimal"
)

// minor unit of the currency
const places = 2

// LineTotal is dish price x quantity for one line item.
func LineTotal(li model.LineItem) decimal.Decimal {
	return li.Dish.Price.Mul(decimal.NewFromInt(li.Quantity)).Round(places)
}

// TotalFor sums LineTotal over the lines. An empty order totals 0.00.
// Dish must be loaded on every line.
func TotalFor(lines []model.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, li := range lines {
		total = total.Add(LineTotal(li))
	}
	return total.Round(places)
}

// Format renders an amount with exactly two fractional digits.
func Format(d decimal.Decimal) string {
	return d.StringFixed(places)
}
