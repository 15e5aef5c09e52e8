package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/cakeshop/internal/models"
)

func TestGiftBoxTotalCalculated(t *testing.T) {
	items := []GiftBoxItemSpec{
		{UnitPrice: d("250"), Quantity: 2},
		{UnitPrice: d("500"), Quantity: 1},
	}

	total := GiftBoxTotal(models.GiftBoxPricingCalculated, nil, nil, items)
	assert.True(t, total.Equal(d("1000")))
	assert.Equal(t, 3, GiftBoxItemsCount(items))
}

func TestGiftBoxTotalFixed(t *testing.T) {
	fixed := d("1499")
	items := []GiftBoxItemSpec{{UnitPrice: d("9999"), Quantity: 5}}

	total := GiftBoxTotal(models.GiftBoxPricingFixed, &fixed, nil, items)
	assert.True(t, total.Equal(fixed), "fixed price ignores the item sum")
}

func TestGiftBoxTotalDiscounted(t *testing.T) {
	discount := d("10")
	items := []GiftBoxItemSpec{
		{UnitPrice: d("250"), Quantity: 2},
		{UnitPrice: d("500"), Quantity: 1},
	}

	total := GiftBoxTotal(models.GiftBoxPricingDiscounted, nil, &discount, items)
	assert.True(t, total.Equal(d("900")), "1000 less 10%%")
}

func TestGiftBoxTotalFixedWithoutPriceFallsBack(t *testing.T) {
	// Misconfigured fixed box with no price sums its items instead.
	items := []GiftBoxItemSpec{{UnitPrice: d("300"), Quantity: 2}}

	total := GiftBoxTotal(models.GiftBoxPricingFixed, nil, nil, items)
	assert.True(t, total.Equal(d("600")))
}

func TestGiftBoxTotalMissingPricesDegradeToZero(t *testing.T) {
	items := []GiftBoxItemSpec{
		{UnitPrice: d("0"), Quantity: 3},
		{UnitPrice: d("450"), Quantity: 1},
	}

	total := GiftBoxTotal(models.GiftBoxPricingCalculated, nil, nil, items)
	assert.True(t, total.Equal(d("450")))
	assert.Equal(t, 4, GiftBoxItemsCount(items))
}
