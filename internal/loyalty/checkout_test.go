package loyalty

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/example/cakeshop/internal/models"
)

func TestMaxRedeemablePoints(t *testing.T) {
	cases := []struct {
		payable string
		balance int
		max     int
	}{
		{"500", 1000, 500},
		{"500", 200, 200},
		{"500.75", 1000, 500},
		{"0", 1000, 0},
		{"-10", 1000, 0},
		{"500", 0, 0},
	}

	for _, tc := range cases {
		got := MaxRedeemablePoints(decimal.RequireFromString(tc.payable), tc.balance)
		assert.Equal(t, tc.max, got, "payable=%s balance=%d", tc.payable, tc.balance)
	}
}

func TestCriteriaMet(t *testing.T) {
	card := &models.LoyaltyCard{
		TotalOrders:   12,
		TotalSpent:    decimal.RequireFromString("4500"),
		ReferralsMade: 2,
		TotalStamps:   12,
	}

	cases := []struct {
		name        string
		achievement models.Achievement
		met         bool
	}{
		{"orders met", models.Achievement{CriteriaType: models.CriteriaOrders, CriteriaValue: 10}, true},
		{"orders not met", models.Achievement{CriteriaType: models.CriteriaOrders, CriteriaValue: 20}, false},
		{"spent met at boundary", models.Achievement{CriteriaType: models.CriteriaSpent, CriteriaValue: 4500}, true},
		{"spent not met", models.Achievement{CriteriaType: models.CriteriaSpent, CriteriaValue: 5000}, false},
		{"referrals met", models.Achievement{CriteriaType: models.CriteriaReferrals, CriteriaValue: 2}, true},
		{"stamps met", models.Achievement{CriteriaType: models.CriteriaStamps, CriteriaValue: 10}, true},
		{"unknown criteria", models.Achievement{CriteriaType: "moon-phase", CriteriaValue: 1}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.met, CriteriaMet(tc.achievement, card))
		})
	}
}
