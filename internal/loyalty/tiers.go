// Package loyalty implements the stamp/points/tier ledger: order-completion
// accrual, checkout-time redemption, referrals, achievements and the
// retroactive replay used for data backfills.
package loyalty

import "github.com/example/cakeshop/internal/models"

// TierBenefits are the perks attached to a loyalty tier.
type TierBenefits struct {
	Discount              int
	PointsMultiplier      float64
	BirthdayBonus         int
	FreeDeliveryThreshold int
}

var tierBenefits = map[string]TierBenefits{
	models.TierBronze:   {Discount: 5, PointsMultiplier: 1.0, BirthdayBonus: 50, FreeDeliveryThreshold: 1000},
	models.TierSilver:   {Discount: 10, PointsMultiplier: 1.5, BirthdayBonus: 100, FreeDeliveryThreshold: 800},
	models.TierGold:     {Discount: 15, PointsMultiplier: 2.0, BirthdayBonus: 150, FreeDeliveryThreshold: 500},
	models.TierPlatinum: {Discount: 20, PointsMultiplier: 2.5, BirthdayBonus: 200, FreeDeliveryThreshold: 0},
}

// BenefitsFor returns the benefits table entry for a tier, defaulting to
// bronze for unknown values.
func BenefitsFor(tier string) TierBenefits {
	if benefits, ok := tierBenefits[tier]; ok {
		return benefits
	}
	return tierBenefits[models.TierBronze]
}

// TierForOrders derives the tier from lifetime completed orders. Boundaries
// are inclusive: 10 orders is silver, 25 gold, 50 platinum.
func TierForOrders(totalOrders int) string {
	switch {
	case totalOrders >= 50:
		return models.TierPlatinum
	case totalOrders >= 25:
		return models.TierGold
	case totalOrders >= 10:
		return models.TierSilver
	default:
		return models.TierBronze
	}
}

// RefreshTier recomputes the card's tier from its order count. The tier is
// never set independently.
func RefreshTier(card *models.LoyaltyCard) {
	card.Tier = TierForOrders(card.TotalOrders)
}

// replayMultiplier is the multiplier schedule the retroactive replay uses,
// keyed on the progressive order count rather than the benefits table. It
// intentionally differs from the live trigger; see Replay.
func replayMultiplier(totalOrders int) float64 {
	switch {
	case totalOrders >= 50:
		return 2.5
	case totalOrders >= 25:
		return 2.0
	case totalOrders >= 10:
		return 1.5
	default:
		return 1.0
	}
}
