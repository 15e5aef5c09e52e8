// Package pricing computes custom cake estimates and gift box totals.
// Everything here is a pure function over resolved inputs: callers look up
// catalog rows and product prices, pricing only does arithmetic. Missing
// price lookups degrade to zero cost so the customer flow is never blocked;
// the admin reconciles through the final-price override at review time.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FlavorSourceKind enumerates where the flavor cost comes from. Exactly one
// source is authoritative per order, decided once when the order is
// assembled: product+size beats a catalog flavor, which beats an admin-set
// custom per-kg price.
type FlavorSourceKind int

const (
	// FlavorNone means no source is set yet; flavor cost is zero until an
	// admin supplies a price.
	FlavorNone FlavorSourceKind = iota
	// FlavorProduct uses a product+size price as a flat flavor cost.
	FlavorProduct
	// FlavorCatalog uses a catalog flavor priced per kg.
	FlavorCatalog
	// FlavorCustom uses the admin-set per-kg price for a free-text flavor.
	FlavorCustom
)

// FlavorSource is the resolved flavor pricing input. Price is the flat
// product-size price for FlavorProduct, and the per-kg rate for
// FlavorCatalog and FlavorCustom.
type FlavorSource struct {
	Kind  FlavorSourceKind
	Label string
	Price decimal.Decimal
}

// NoFlavor is the unset source.
func NoFlavor() FlavorSource {
	return FlavorSource{Kind: FlavorNone, Label: "Not set"}
}

// ProductFlavor prices the flavor with a flat product+size price.
func ProductFlavor(price decimal.Decimal, productName, sizeName string) FlavorSource {
	return FlavorSource{
		Kind:  FlavorProduct,
		Label: fmt.Sprintf("%s - %s (Product)", productName, sizeName),
		Price: price,
	}
}

// MissingProductFlavor marks a product+size reference whose price row is
// absent. Cost degrades to zero; no fallback to the flavor table.
func MissingProductFlavor() FlavorSource {
	return FlavorSource{Kind: FlavorProduct, Label: "Product price not found"}
}

// CatalogFlavor prices the flavor per kg from the flavor table.
func CatalogFlavor(pricePerKg decimal.Decimal, name string) FlavorSource {
	return FlavorSource{
		Kind:  FlavorCatalog,
		Label: fmt.Sprintf("%s (₹%s/kg)", name, pricePerKg.StringFixed(2)),
		Price: pricePerKg,
	}
}

// CustomFlavor prices a free-text flavor with an admin-set per-kg rate.
func CustomFlavor(pricePerKg decimal.Decimal, description string) FlavorSource {
	return FlavorSource{
		Kind:  FlavorCustom,
		Label: fmt.Sprintf("%s (₹%s/kg)", description, pricePerKg.StringFixed(2)),
		Price: pricePerKg,
	}
}

// DecorationLine is one decoration at a quantity.
type DecorationLine struct {
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// Total is unit price times quantity.
func (l DecorationLine) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CakeSpec is everything the estimate depends on.
type CakeSpec struct {
	ShapeBasePricePerKg decimal.Decimal
	TierMultiplier      decimal.Decimal
	TotalWeight         decimal.Decimal
	Flavor              FlavorSource
	Decorations         []DecorationLine
}

// PriceBreakdown carries every intermediate of the estimate for display.
// Total always equals Estimate for the same spec.
type PriceBreakdown struct {
	Shape        decimal.Decimal `json:"shape"`
	Flavor       decimal.Decimal `json:"flavor"`
	FlavorSource string          `json:"flavor_source"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	WithTier     decimal.Decimal `json:"with_tier"`
	Decorations  decimal.Decimal `json:"decorations"`
	Total        decimal.Decimal `json:"total"`
}

// Breakdown computes the full estimate:
//
//	shape   = base_price_per_kg × weight
//	flavor  = flat product price | per_kg × weight | 0
//	total   = (shape + flavor) × tier_multiplier + Σ decoration totals
//
// Amounts round half-even to 2 places.
func Breakdown(spec CakeSpec) PriceBreakdown {
	shape := spec.ShapeBasePricePerKg.Mul(spec.TotalWeight)

	flavor := decimal.Zero
	switch spec.Flavor.Kind {
	case FlavorProduct:
		flavor = spec.Flavor.Price
	case FlavorCatalog, FlavorCustom:
		flavor = spec.Flavor.Price.Mul(spec.TotalWeight)
	}

	subtotal := shape.Add(flavor)
	withTier := subtotal.Mul(spec.TierMultiplier)

	decorations := decimal.Zero
	for _, line := range spec.Decorations {
		decorations = decorations.Add(line.Total())
	}

	label := spec.Flavor.Label
	if label == "" {
		label = "Not set"
	}

	return PriceBreakdown{
		Shape:        shape.RoundBank(2),
		Flavor:       flavor.RoundBank(2),
		FlavorSource: label,
		Subtotal:     subtotal.RoundBank(2),
		WithTier:     withTier.RoundBank(2),
		Decorations:  decorations.RoundBank(2),
		Total:        withTier.Add(decorations).RoundBank(2),
	}
}

// Estimate is the deterministic customer-facing estimate for the spec.
func Estimate(spec CakeSpec) decimal.Decimal {
	return Breakdown(spec).Total
}

// PriceRange is the fuzz band shown to customers before admin confirmation.
type PriceRange struct {
	Min      int64 `json:"min"`
	Max      int64 `json:"max"`
	Estimate int64 `json:"estimate"`
}

var rangeStep = decimal.NewFromInt(200)

// Range rounds the estimate up to the nearest 200 and spans 500 above that.
func Range(estimate decimal.Decimal) PriceRange {
	min := estimate.Div(rangeStep).Ceil().Mul(rangeStep).IntPart()
	return PriceRange{
		Min:      min,
		Max:      min + 500,
		Estimate: estimate.IntPart(),
	}
}

// DisplayPrice prefers the admin's final price over the estimate.
func DisplayPrice(finalPrice *decimal.Decimal, estimated decimal.Decimal) decimal.Decimal {
	if finalPrice != nil && !finalPrice.IsZero() {
		return *finalPrice
	}
	return estimated
}
