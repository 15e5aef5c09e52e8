package loyalty

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/cakeshop/internal/models"
)

func replayOrders(totals []string) []ReplayOrder {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	orders := make([]ReplayOrder, 0, len(totals))
	for i, total := range totals {
		orders = append(orders, ReplayOrder{
			OrderNumber: "CK202501010001",
			Total:       decimal.RequireFromString(total),
			CompletedAt: base.AddDate(0, 0, i),
		})
	}
	return orders
}

func TestReplayEmptyHistory(t *testing.T) {
	result := Replay(nil, 5)
	assert.Equal(t, 0, result.TotalOrders)
	assert.Equal(t, models.TierBronze, result.Tier)
	assert.Empty(t, result.Credits)
	assert.Empty(t, result.Vouchers)
}

func TestReplaySingleOrder(t *testing.T) {
	result := Replay(replayOrders([]string{"500"}), 5)

	assert.Equal(t, 1, result.TotalOrders)
	assert.True(t, result.TotalSpent.Equal(decimal.RequireFromString("500")))
	// 500/100 × 10 × 1.0 multiplier.
	assert.Equal(t, 50, result.PointsBalance)
	assert.Equal(t, 1, result.CurrentStamps)
	assert.Empty(t, result.Vouchers)
}

func TestReplayStampCardCompletion(t *testing.T) {
	result := Replay(replayOrders([]string{"100", "100", "100", "100", "100"}), 5)

	assert.Equal(t, 0, result.CurrentStamps)
	assert.Equal(t, 5, result.TotalStamps)
	assert.Equal(t, 1, result.RewardsClaimed)
	require.Len(t, result.Vouchers, 1)
	// Still bronze at 5 orders, so the voucher carries the bronze discount.
	assert.Equal(t, 5, result.Vouchers[0].DiscountPercentage)
}

func TestReplayProgressiveMultiplier(t *testing.T) {
	// Twelve ₹100 orders: each order's multiplier comes from the count
	// before it, so the first ten earn 10 points each and silver pay only
	// starts at order eleven.
	result := Replay(replayOrders([]string{
		"100", "100", "100", "100", "100", "100",
		"100", "100", "100", "100", "100", "100",
	}), 5)

	require.Len(t, result.Credits, 12)
	for i := 0; i < 10; i++ {
		assert.Equal(t, 10, result.Credits[i].Points, "order %d", i+1)
	}
	for i := 10; i < 12; i++ {
		assert.Equal(t, 15, result.Credits[i].Points, "order %d", i+1)
	}
	assert.Equal(t, 10*10+2*15, result.PointsBalance)
	assert.Equal(t, models.TierSilver, result.Tier)

	// The second stamp card completed at order ten, when the card had
	// reached silver, so that voucher carries the silver discount.
	require.Len(t, result.Vouchers, 2)
	assert.Equal(t, 5, result.Vouchers[0].DiscountPercentage)
	assert.Equal(t, 10, result.Vouchers[1].DiscountPercentage)
}

func TestReplaySortsByCompletionTime(t *testing.T) {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	orders := []ReplayOrder{
		{OrderNumber: "B", Total: decimal.RequireFromString("200"), CompletedAt: base.AddDate(0, 0, 1)},
		{OrderNumber: "A", Total: decimal.RequireFromString("100"), CompletedAt: base},
	}

	result := Replay(orders, 5)
	require.Len(t, result.Credits, 2)
	assert.Equal(t, "Retroactive: Order #A", result.Credits[0].Reason)
	assert.Equal(t, "Retroactive: Order #B", result.Credits[1].Reason)
}

func TestReplayDiffersFromLiveAccrualByDesign(t *testing.T) {
	// The backfill schedule pays double the live base rate; the two paths
	// are not expected to reconcile.
	total := decimal.RequireFromString("1000")
	live := OrderPoints(total)
	replayed := Replay(replayOrders([]string{"1000"}), 5).PointsBalance
	assert.Equal(t, 2*live, replayed)
}
