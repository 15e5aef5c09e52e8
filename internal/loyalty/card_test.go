package loyalty

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/example/cakeshop/internal/models"
)

func TestAddStampBelowThreshold(t *testing.T) {
	card := &models.LoyaltyCard{CurrentStamps: 2, TotalStamps: 7, StampsToReward: 5}

	earned := AddStamp(card)
	assert.False(t, earned)
	assert.Equal(t, 3, card.CurrentStamps)
	assert.Equal(t, 8, card.TotalStamps)
	assert.Equal(t, 0, card.RewardsClaimed)
}

func TestAddStampFifthResetsAndEarns(t *testing.T) {
	card := &models.LoyaltyCard{CurrentStamps: 4, TotalStamps: 4, StampsToReward: 5}

	earned := AddStamp(card)
	assert.True(t, earned)
	assert.Equal(t, 0, card.CurrentStamps, "counter resets on completion")
	assert.Equal(t, 5, card.TotalStamps, "lifetime count keeps growing")
	assert.Equal(t, 1, card.RewardsClaimed)
}

func TestEarnPointsAppliesTierMultiplier(t *testing.T) {
	card := &models.LoyaltyCard{Tier: models.TierSilver}

	credited := EarnPoints(card, 100)
	assert.Equal(t, 150, credited, "silver multiplies by 1.5")
	assert.Equal(t, 150, card.PointsBalance)
	assert.Equal(t, 150, card.LifetimePoints)
}

func TestEarnPointsFloorsFraction(t *testing.T) {
	card := &models.LoyaltyCard{Tier: models.TierSilver}

	credited := EarnPoints(card, 25)
	assert.Equal(t, 37, credited, "37.5 floors to 37")
}

func TestOrderPoints(t *testing.T) {
	cases := []struct {
		total  string
		points int
	}{
		{"0", 0},
		{"99.99", 0},
		{"100", 5},
		{"199", 5},
		{"250", 10},
		{"3330", 165},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.points, OrderPoints(decimal.RequireFromString(tc.total)), "total=%s", tc.total)
	}
}

func TestReplayOrderPointsUsesBackfillSchedule(t *testing.T) {
	total := decimal.RequireFromString("350")
	assert.Equal(t, 15, OrderPoints(total))
	assert.Equal(t, 30, replayOrderPoints(total), "replay pays 10 per slab, not 5")
}

func TestProgressPercentage(t *testing.T) {
	card := &models.LoyaltyCard{CurrentStamps: 3, StampsToReward: 5}
	assert.Equal(t, 60, card.ProgressPercentage())

	full := &models.LoyaltyCard{CurrentStamps: 0, StampsToReward: 0}
	assert.Equal(t, 100, full.ProgressPercentage())
}
