package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/example/cakeshop/internal/models"
)

func ptr(id uuid.UUID) *uuid.UUID { return &id }

func foundLookup(price string) PriceLookup {
	return func(productID, sizeID uuid.UUID) (decimal.Decimal, bool) {
		return d(price), true
	}
}

func missingLookup(productID, sizeID uuid.UUID) (decimal.Decimal, bool) {
	return decimal.Zero, false
}

func TestResolveFlavorProductWins(t *testing.T) {
	// Product+size outranks an attached catalog flavor and a custom price.
	custom := d("175")
	order := &models.CustomCakeOrder{
		ProductID:              ptr(uuid.New()),
		SizeID:                 ptr(uuid.New()),
		Product:                &models.Product{Name: "Red Velvet"},
		Size:                   &models.Size{Name: "1 kg"},
		Flavor:                 &models.Flavor{Name: "Vanilla", PricePerKg: d("150")},
		CustomFlavorPricePerKg: &custom,
	}

	source := ResolveFlavor(order, foundLookup("850"))
	assert.Equal(t, FlavorProduct, source.Kind)
	assert.True(t, source.Price.Equal(d("850")))
	assert.Equal(t, "Red Velvet - 1 kg (Product)", source.Label)
}

func TestResolveFlavorMissingProductPrice(t *testing.T) {
	order := &models.CustomCakeOrder{
		ProductID: ptr(uuid.New()),
		SizeID:    ptr(uuid.New()),
		Flavor:    &models.Flavor{Name: "Vanilla", PricePerKg: d("150")},
	}

	// No fallback to the catalog flavor: the product reference stays
	// authoritative and its cost degrades to zero.
	source := ResolveFlavor(order, missingLookup)
	assert.Equal(t, FlavorProduct, source.Kind)
	assert.True(t, source.Price.IsZero())
	assert.Equal(t, "Product price not found", source.Label)
}

func TestResolveFlavorCatalog(t *testing.T) {
	order := &models.CustomCakeOrder{
		Flavor: &models.Flavor{Name: "Pistachio", PricePerKg: d("220")},
	}

	source := ResolveFlavor(order, missingLookup)
	assert.Equal(t, FlavorCatalog, source.Kind)
	assert.True(t, source.Price.Equal(d("220")))
}

func TestResolveFlavorCustom(t *testing.T) {
	custom := d("175.50")
	order := &models.CustomCakeOrder{
		FlavorDescription:      "Rasmalai fusion",
		CustomFlavorPricePerKg: &custom,
	}

	source := ResolveFlavor(order, missingLookup)
	assert.Equal(t, FlavorCustom, source.Kind)
	assert.Equal(t, "Rasmalai fusion (₹175.50/kg)", source.Label)
}

func TestResolveFlavorNone(t *testing.T) {
	source := ResolveFlavor(&models.CustomCakeOrder{}, missingLookup)
	assert.Equal(t, FlavorNone, source.Kind)
	assert.True(t, source.Price.IsZero())
}

func TestSpecFromOrder(t *testing.T) {
	order := &models.CustomCakeOrder{
		TotalWeight: d("2"),
		Shape:       &models.CakeShape{BasePricePerKg: d("600")},
		Tier:        &models.CakeTier{PriceMultiplier: d("1.8")},
		Flavor:      &models.Flavor{Name: "Chocolate", PricePerKg: d("200")},
		Decorations: []models.CustomCakeOrderDecoration{
			{
				Decoration: &models.Decoration{Name: "Sugar Rose", Price: d("150")},
				Quantity:   3,
			},
			// Unloaded decoration rows are skipped rather than priced wrong.
			{Quantity: 10},
		},
	}

	spec := SpecFromOrder(order, missingLookup)
	assert.Len(t, spec.Decorations, 1)
	assert.True(t, Estimate(spec).Equal(d("3330")))
}
