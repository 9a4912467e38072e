package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculatePayment(t *testing.T) {
	tests := []struct {
		name     string
		tickets  int
		isMember bool
		want     string
	}{
		{name: "member", tickets: 2, isMember: true, want: "21.60"},
		{name: "non member", tickets: 2, isMember: false, want: "24.00"},
		{name: "zero tickets member", tickets: 0, isMember: true, want: "0.00"},
		{name: "zero tickets non member", tickets: 0, isMember: false, want: "0.00"},
		{name: "single ticket", tickets: 1, isMember: false, want: "12.00"},
		{name: "large member order", tickets: 7, isMember: true, want: "75.60"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculatePayment(tt.tickets, tt.isMember)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestSpecialDayPrice(t *testing.T) {
	payment := CalculatePayment(2, true)

	discounted := SpecialDayPrice(payment, true)
	assert.Equal(t, "19.44", discounted.StringFixed(2))
	assert.Equal(t, "21.60", payment.StringFixed(2), "payment must not change")

	assert.True(t, SpecialDayPrice(payment, false).Equal(payment))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "$21.60", FormatAmount(decimal.RequireFromString("21.6")))
	assert.Equal(t, "$0.00", FormatAmount(decimal.Zero))
	assert.Equal(t, "$19.44", FormatAmount(decimal.RequireFromString("19.440")))
}

func TestDefaultPricing(t *testing.T) {
	assert.True(t, DefaultPricing().IsSpecialDay)
}
