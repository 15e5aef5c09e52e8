package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/example/cakeshop/internal/models"
)

// PriceLookup resolves a product+size combination to its price. The second
// return is false when no price row exists.
type PriceLookup func(productID, sizeID uuid.UUID) (decimal.Decimal, bool)

// ResolveFlavor picks the authoritative flavor source for an order. The
// precedence is fixed: product+size, then catalog flavor, then the
// admin-set custom per-kg price, then nothing.
func ResolveFlavor(order *models.CustomCakeOrder, lookup PriceLookup) FlavorSource {
	if order.ProductID != nil && order.SizeID != nil {
		price, ok := lookup(*order.ProductID, *order.SizeID)
		if !ok {
			return MissingProductFlavor()
		}
		productName := ""
		if order.Product != nil {
			productName = order.Product.Name
		}
		sizeName := ""
		if order.Size != nil {
			sizeName = order.Size.Name
		}
		return ProductFlavor(price, productName, sizeName)
	}

	if order.Flavor != nil {
		return CatalogFlavor(order.Flavor.PricePerKg, order.Flavor.Name)
	}

	if order.CustomFlavorPricePerKg != nil {
		return CustomFlavor(*order.CustomFlavorPricePerKg, order.FlavorDescription)
	}

	return NoFlavor()
}

// SpecFromOrder assembles the pricing input from a loaded order. Shape,
// Tier and decoration rows must be preloaded; decorations of an unsaved
// order are simply absent, which prices them at zero.
func SpecFromOrder(order *models.CustomCakeOrder, lookup PriceLookup) CakeSpec {
	spec := CakeSpec{
		TotalWeight: order.TotalWeight,
		Flavor:      ResolveFlavor(order, lookup),
	}

	if order.Shape != nil {
		spec.ShapeBasePricePerKg = order.Shape.BasePricePerKg
	}
	if order.Tier != nil {
		spec.TierMultiplier = order.Tier.PriceMultiplier
	}

	for _, line := range order.Decorations {
		if line.Decoration == nil {
			continue
		}
		spec.Decorations = append(spec.Decorations, DecorationLine{
			Name:      line.Decoration.Name,
			UnitPrice: line.Decoration.Price,
			Quantity:  line.Quantity,
		})
	}

	return spec
}
