package loyalty

import (
	"github.com/shopspring/decimal"

	"github.com/example/cakeshop/internal/models"
)

var pointsPerSlab = decimal.NewFromInt(100)

// AddStamp puts one stamp on the card. When the stamp count reaches
// stamps_to_reward the counter resets to zero, rewards_claimed increments
// and the return is true — the caller then issues the reward voucher.
func AddStamp(card *models.LoyaltyCard) bool {
	card.CurrentStamps++
	card.TotalStamps++

	if card.StampsToReward > 0 && card.CurrentStamps >= card.StampsToReward {
		card.CurrentStamps = 0
		card.RewardsClaimed++
		return true
	}
	return false
}

// EarnPoints credits base points multiplied by the card's tier multiplier,
// floored to an int, into both the balance and the lifetime total. Returns
// the credited amount.
func EarnPoints(card *models.LoyaltyCard, base int) int {
	credited := int(float64(base) * BenefitsFor(card.Tier).PointsMultiplier)
	card.PointsBalance += credited
	card.LifetimePoints += credited
	return credited
}

// OrderPoints is the base points for a completed order: 5 per ₹100 spent.
func OrderPoints(total decimal.Decimal) int {
	return int(total.Div(pointsPerSlab).IntPart()) * 5
}

// replayOrderPoints is the base schedule the retroactive replay uses:
// 10 per ₹100. Kept distinct from OrderPoints on purpose.
func replayOrderPoints(total decimal.Decimal) int {
	return int(total.Div(pointsPerSlab).IntPart()) * 10
}
