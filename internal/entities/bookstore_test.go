package entities

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIsPaidStatus(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{"paid", true},
		{"PAID", true},
		{" Completed ", true},
		{"pending", false},
		{"refunded", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPaidStatus(tt.status))
		})
	}
}

func TestOrderItem_LineTotal(t *testing.T) {
	item := OrderItem{
		Quantity:  2,
		UnitPrice: decimal.RequireFromString("9.99"),
		Discount:  decimal.Zero,
	}
	assert.Equal(t, "19.98", item.LineTotal().StringFixed(2))

	item.Discount = decimal.RequireFromString("1.50")
	assert.Equal(t, "18.48", item.LineTotal().StringFixed(2))

	item.Quantity = 0
	assert.Equal(t, "-1.50", item.LineTotal().StringFixed(2))
}
