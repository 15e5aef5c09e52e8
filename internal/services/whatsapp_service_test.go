package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		amount string
		want   string
	}{
		{"0", "₹0"},
		{"900", "₹900"},
		{"3330", "₹3,330"},
		{"1234567", "₹1,234,567"},
		{"899.99", "₹900"},
	}

	for _, tc := range cases {
		got := FormatPrice(decimal.RequireFromString(tc.amount))
		assert.Equal(t, tc.want, got, "amount=%s", tc.amount)
	}
}
