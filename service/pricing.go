package service

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// TicketPrice is the flat price of a single ticket.
	TicketPrice = decimal.NewFromInt(12)

	memberRate     = decimal.RequireFromString("0.90")
	specialDayRate = decimal.RequireFromString("0.90")
)

// Pricing carries the pricing inputs that are not part of a booking.
type Pricing struct {
	IsSpecialDay bool
}

// DefaultPricing treats every day as a special day.
func DefaultPricing() Pricing {
	return Pricing{IsSpecialDay: true}
}

// CalculatePayment returns the amount owed for the tickets. Only the member
// discount is applied here; the special-day discount is a receipt figure.
func CalculatePayment(tickets int, isMember bool) decimal.Decimal {
	total := TicketPrice.Mul(decimal.NewFromInt(int64(tickets)))
	if isMember {
		total = total.Mul(memberRate)
	}
	return total
}

// SpecialDayPrice derives the discounted figure shown on the receipt.
func SpecialDayPrice(payment decimal.Decimal, isSpecialDay bool) decimal.Decimal {
	if !isSpecialDay {
		return payment
	}
	return payment.Mul(specialDayRate)
}

func FormatAmount(amount decimal.Decimal) string {
	return fmt.Sprintf("$%s", amount.StringFixed(2))
}
