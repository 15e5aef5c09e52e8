package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/example/cakeshop/internal/models"
)

// GiftBoxItemSpec is one resolved gift box line. UnitPrice is zero when the
// product+size has no price row.
type GiftBoxItemSpec struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// Subtotal is unit price times quantity.
func (i GiftBoxItemSpec) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

var hundred = decimal.NewFromInt(100)

// GiftBoxTotal prices a box by its pricing type: fixed returns the fixed
// price, calculated sums the items, discounted takes a percentage off the
// sum.
func GiftBoxTotal(pricingType string, fixedPrice, discountPercentage *decimal.Decimal, items []GiftBoxItemSpec) decimal.Decimal {
	if pricingType == models.GiftBoxPricingFixed && fixedPrice != nil {
		return fixedPrice.RoundBank(2)
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}

	if pricingType == models.GiftBoxPricingDiscounted && discountPercentage != nil {
		discount := total.Mul(*discountPercentage).Div(hundred)
		total = total.Sub(discount)
	}

	return total.RoundBank(2)
}

// GiftBoxItemsCount sums line quantities.
func GiftBoxItemsCount(items []GiftBoxItemSpec) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

// GiftBoxSpecs resolves a box's items through the price lookup.
func GiftBoxSpecs(box *models.GiftBox, lookup PriceLookup) []GiftBoxItemSpec {
	specs := make([]GiftBoxItemSpec, 0, len(box.Items))
	for _, item := range box.Items {
		price, ok := lookup(item.ProductID, item.SizeID)
		if !ok {
			price = decimal.Zero
		}
		specs = append(specs, GiftBoxItemSpec{UnitPrice: price, Quantity: item.Quantity})
	}
	return specs
}
