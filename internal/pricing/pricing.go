// Package pricing computes rental durations and cart totals.
package pricing

import (
	"math"
	"time"

	"github.com/aaravmahajanofficial/rental-checkout/internal/models"
	"github.com/shopspring/decimal"
)

// TaxRate is the flat sales tax applied to every cart.
const TaxRate = 0.075

const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04"
	dateTimeLayout = DateLayout + " " + TimeLayout
)

var taxRate = decimal.NewFromFloat(TaxRate)

type Breakdown struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// DurationHours returns the number of started hours between the two instants.
// Unparseable input yields 1.
func DurationHours(startDate, endDate, startTime, endTime string) int {
	start, err := time.Parse(dateTimeLayout, startDate+" "+startTime)
	if err != nil {
		return 1
	}

	end, err := time.Parse(dateTimeLayout, endDate+" "+endTime)
	if err != nil {
		return 1
	}

	return ceilUnits(end.Sub(start), time.Hour)
}

// DurationDays returns the number of started days between the two dates.
// Unparseable input yields 1.
func DurationDays(startDate, endDate string) int {
	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return 1
	}

	end, err := time.Parse(DateLayout, endDate)
	if err != nil {
		return 1
	}

	return ceilUnits(end.Sub(start), 24*time.Hour)
}

// Duration picks hours or days depending on the order mode.
func Duration(mode models.OrderMode, dr models.DateRange) int {
	if mode == models.OrderModeOrderByDate {
		return DurationDays(dr.StartDate, dr.EndDate)
	}

	return DurationHours(dr.StartDate, dr.EndDate, dr.StartTime, dr.EndTime)
}

func ceilUnits(d, unit time.Duration) int {
	n := int(math.Ceil(float64(d) / float64(unit)))

	return max(n, 1)
}

// ItemTotal is price × quantity × duration for one line. Broken prices and
// quantities contribute nothing.
func ItemTotal(item models.CartLineItem) float64 {
	total, _ := itemTotal(item).Float64()

	return total
}

func itemTotal(item models.CartLineItem) decimal.Decimal {
	if math.IsNaN(item.Price) || math.IsInf(item.Price, 0) || item.Price < 0 || item.Quantity < 1 {
		return decimal.Zero
	}

	duration := max(item.Duration, 1)

	return decimal.NewFromFloat(item.Price).
		Mul(decimal.NewFromInt(int64(item.Quantity))).
		Mul(decimal.NewFromInt(int64(duration)))
}

func LineTotal(items []models.CartLineItem) float64 {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(itemTotal(item))
	}

	total, _ := sum.Float64()

	return total
}

// Tax is the subtotal times TaxRate, rounded to cents.
func Tax(subtotal float64) float64 {
	tax, _ := decimal.NewFromFloat(subtotal).Mul(taxRate).Round(2).Float64()

	return tax
}

func TotalWithTax(subtotal float64) float64 {
	total, _ := decimal.NewFromFloat(subtotal).Add(decimal.NewFromFloat(Tax(subtotal))).Float64()

	return total
}

func Calculate(items []models.CartLineItem) Breakdown {
	subtotal := LineTotal(items)

	return Breakdown{
		Subtotal: subtotal,
		Tax:      Tax(subtotal),
		Total:    TotalWithTax(subtotal),
	}
}
