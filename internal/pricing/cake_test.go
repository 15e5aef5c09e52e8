package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestBreakdownFullCake(t *testing.T) {
	spec := CakeSpec{
		ShapeBasePricePerKg: d("600"),
		TierMultiplier:      d("1.8"),
		TotalWeight:         d("2"),
		Flavor:              CatalogFlavor(d("200"), "Chocolate"),
		Decorations: []DecorationLine{
			{Name: "Sugar Rose", UnitPrice: d("150"), Quantity: 3},
		},
	}

	breakdown := Breakdown(spec)

	assert.True(t, breakdown.Shape.Equal(d("1200")), "shape = 600 × 2")
	assert.True(t, breakdown.Flavor.Equal(d("400")), "flavor = 200 × 2")
	assert.True(t, breakdown.Subtotal.Equal(d("1600")))
	assert.True(t, breakdown.WithTier.Equal(d("2880")), "subtotal × 1.8")
	assert.True(t, breakdown.Decorations.Equal(d("450")))
	assert.True(t, breakdown.Total.Equal(d("3330")))
	assert.Equal(t, "Chocolate (₹200.00/kg)", breakdown.FlavorSource)
}

func TestBreakdownMatchesEstimate(t *testing.T) {
	specs := []CakeSpec{
		{
			ShapeBasePricePerKg: d("550"),
			TierMultiplier:      d("1.0"),
			TotalWeight:         d("1.5"),
			Flavor:              NoFlavor(),
		},
		{
			ShapeBasePricePerKg: d("600"),
			TierMultiplier:      d("2.5"),
			TotalWeight:         d("3"),
			Flavor:              ProductFlavor(d("850"), "Red Velvet", "1 kg"),
			Decorations: []DecorationLine{
				{Name: "Topper", UnitPrice: d("99.50"), Quantity: 2},
			},
		},
		{
			ShapeBasePricePerKg: d("475.25"),
			TierMultiplier:      d("1.8"),
			TotalWeight:         d("2.5"),
			Flavor:              CustomFlavor(d("310.10"), "Rasmalai"),
		},
	}

	for _, spec := range specs {
		assert.True(t, Breakdown(spec).Total.Equal(Estimate(spec)))
	}
}

func TestBreakdownProductFlavorIsFlat(t *testing.T) {
	// A product-priced flavor is a flat amount, not per-kg.
	spec := CakeSpec{
		ShapeBasePricePerKg: d("500"),
		TierMultiplier:      d("1.0"),
		TotalWeight:         d("3"),
		Flavor:              ProductFlavor(d("700"), "Truffle Base", "1 kg"),
	}

	breakdown := Breakdown(spec)
	assert.True(t, breakdown.Flavor.Equal(d("700")))
	assert.True(t, breakdown.Total.Equal(d("2200")))
}

func TestBreakdownMissingProductPriceDegradesToZero(t *testing.T) {
	spec := CakeSpec{
		ShapeBasePricePerKg: d("600"),
		TierMultiplier:      d("1.8"),
		TotalWeight:         d("2"),
		Flavor:              MissingProductFlavor(),
	}

	breakdown := Breakdown(spec)
	assert.True(t, breakdown.Flavor.IsZero())
	assert.True(t, breakdown.Total.Equal(d("2160")), "cake still priced from shape alone")
	assert.Equal(t, "Product price not found", breakdown.FlavorSource)
}

func TestBreakdownEmptySpecIsZero(t *testing.T) {
	breakdown := Breakdown(CakeSpec{Flavor: NoFlavor()})
	assert.True(t, breakdown.Total.IsZero())
	assert.Equal(t, "Not set", breakdown.FlavorSource)
}

func TestBreakdownRoundsHalfEven(t *testing.T) {
	// 1.1725 × 2 = 2.345 rounds to 2.34, not 2.35.
	spec := CakeSpec{
		ShapeBasePricePerKg: d("1.1725"),
		TierMultiplier:      d("1"),
		TotalWeight:         d("2"),
		Flavor:              NoFlavor(),
	}

	breakdown := Breakdown(spec)
	assert.Equal(t, "2.34", breakdown.Shape.StringFixed(2))
	assert.Equal(t, "2.34", breakdown.Total.StringFixed(2))
}

func TestBreakdownSurvivesTwoDecimalStorage(t *testing.T) {
	// Every breakdown amount is persisted into numeric(10,2) columns, so
	// each must already be exact at two places even when the inputs carry
	// more precision than that.
	specs := []CakeSpec{
		{
			ShapeBasePricePerKg: d("333.333"),
			TierMultiplier:      d("1.8"),
			TotalWeight:         d("1.75"),
			Flavor:              CatalogFlavor(d("66.667"), "Pistachio"),
			Decorations: []DecorationLine{
				{Name: "Leaf", UnitPrice: d("33.335"), Quantity: 3},
			},
		},
		{
			ShapeBasePricePerKg: d("1.1725"),
			TierMultiplier:      d("2.5"),
			TotalWeight:         d("2.2"),
			Flavor:              CustomFlavor(d("0.005"), "Saffron"),
		},
		{
			ShapeBasePricePerKg: d("599.99"),
			TierMultiplier:      d("1.33"),
			TotalWeight:         d("3.333"),
			Flavor:              ProductFlavor(d("849.995"), "Red Velvet", "1 kg"),
		},
	}

	for i, spec := range specs {
		breakdown := Breakdown(spec)
		amounts := map[string]decimal.Decimal{
			"shape":       breakdown.Shape,
			"flavor":      breakdown.Flavor,
			"subtotal":    breakdown.Subtotal,
			"with_tier":   breakdown.WithTier,
			"decorations": breakdown.Decorations,
			"total":       breakdown.Total,
		}
		for name, amount := range amounts {
			assert.True(t, amount.Equal(amount.RoundBank(2)), "spec %d: %s = %s", i, name, amount)
		}
		assert.True(t, Estimate(spec).Equal(Estimate(spec).RoundBank(2)), "spec %d: estimate", i)
	}
}

func TestRange(t *testing.T) {
	cases := []struct {
		estimate string
		min      int64
		max      int64
	}{
		{"3330", 3400, 3900},
		{"3400", 3400, 3900},
		{"3401", 3600, 4100},
		{"0", 0, 500},
		{"150", 200, 700},
	}

	for _, tc := range cases {
		r := Range(d(tc.estimate))
		assert.Equal(t, tc.min, r.Min, "min for %s", tc.estimate)
		assert.Equal(t, tc.max, r.Max, "max for %s", tc.estimate)
	}
}

func TestDisplayPrice(t *testing.T) {
	estimated := d("3330")

	assert.True(t, DisplayPrice(nil, estimated).Equal(estimated))

	zero := decimal.Zero
	assert.True(t, DisplayPrice(&zero, estimated).Equal(estimated), "zero final price is not a quote")

	final := d("3500")
	assert.True(t, DisplayPrice(&final, estimated).Equal(final))
}

func TestDecorationLineTotal(t *testing.T) {
	line := DecorationLine{Name: "Rose", UnitPrice: d("150"), Quantity: 3}
	require.True(t, line.Total().Equal(d("450")))
}
