package loyalty

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/cakeshop/internal/models"
)

func TestTierForOrdersBoundaries(t *testing.T) {
	cases := []struct {
		orders int
		tier   string
	}{
		{0, models.TierBronze},
		{9, models.TierBronze},
		{10, models.TierSilver},
		{24, models.TierSilver},
		{25, models.TierGold},
		{49, models.TierGold},
		{50, models.TierPlatinum},
		{500, models.TierPlatinum},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.tier, TierForOrders(tc.orders), "orders=%d", tc.orders)
	}
}

func TestBenefitsFor(t *testing.T) {
	assert.Equal(t, 5, BenefitsFor(models.TierBronze).Discount)
	assert.Equal(t, 1.5, BenefitsFor(models.TierSilver).PointsMultiplier)
	assert.Equal(t, 150, BenefitsFor(models.TierGold).BirthdayBonus)
	assert.Equal(t, 0, BenefitsFor(models.TierPlatinum).FreeDeliveryThreshold)
}

func TestBenefitsForUnknownTierDefaultsToBronze(t *testing.T) {
	assert.Equal(t, BenefitsFor(models.TierBronze), BenefitsFor("diamond"))
}

func TestRefreshTier(t *testing.T) {
	card := &models.LoyaltyCard{Tier: models.TierBronze, TotalOrders: 25}
	RefreshTier(card)
	assert.Equal(t, models.TierGold, card.Tier)
}

func TestReplayMultiplierSchedule(t *testing.T) {
	assert.Equal(t, 1.0, replayMultiplier(1))
	assert.Equal(t, 1.0, replayMultiplier(9))
	assert.Equal(t, 1.5, replayMultiplier(10))
	assert.Equal(t, 2.0, replayMultiplier(25))
	assert.Equal(t, 2.5, replayMultiplier(50))
}
