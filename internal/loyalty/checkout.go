package loyalty

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/cakeshop/internal/models"
)

// CheckoutIntent is the staged reward/points selection a caller collects
// before checkout and commits in one shot. It is an explicit value passed
// into ApplyCheckout rather than ambient session state.
type CheckoutIntent struct {
	RewardID       *uuid.UUID `json:"reward_id"`
	PointsToRedeem int        `json:"points_to_redeem"`
}

// CheckoutResult reports what was actually applied.
type CheckoutResult struct {
	Payable        decimal.Decimal `json:"payable"`
	RewardApplied  bool            `json:"reward_applied"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	PointsRedeemed int             `json:"points_redeemed"`
}

// MaxRedeemablePoints caps a redemption at the whole currency units still
// payable and at the card balance. One point is worth one rupee.
func MaxRedeemablePoints(payable decimal.Decimal, balance int) int {
	if payable.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	remaining := int(payable.Floor().IntPart())
	if balance < remaining {
		return balance
	}
	return remaining
}

// ApplyCheckout commits a staged intent against one order inside a single
// locked transaction: reward first (percentage off the payable, voucher
// marked used), then points capped by balance and remaining payable. Any
// sub-step that fails validation is skipped without partial mutation; a
// customer without a card gets the untouched total back.
func (s *Service) ApplyCheckout(customerID, orderID uuid.UUID, intent CheckoutIntent) (*CheckoutResult, error) {
	var result CheckoutResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, "id = ?", orderID).Error; err != nil {
			return err
		}

		result.Payable = order.TotalPrice
		result.DiscountAmount = decimal.Zero

		var card models.LoyaltyCard
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("customer_id = ?", customerID).
			First(&card).Error
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		if intent.RewardID != nil {
			if err := s.applyReward(tx, &card, &order, *intent.RewardID, &result); err != nil {
				return err
			}
		}

		if intent.PointsToRedeem > 0 {
			points := intent.PointsToRedeem
			if max := MaxRedeemablePoints(result.Payable, card.PointsBalance); points > max {
				points = max
			}
			if points > 0 {
				ok, err := s.RedeemPoints(tx, &card, points, "Redeemed on order "+order.OrderNumber, &order.ID)
				if err != nil {
					return err
				}
				if ok {
					result.PointsRedeemed = points
					result.Payable = result.Payable.Sub(decimal.NewFromInt(int64(points)))
					if result.Payable.IsNegative() {
						result.Payable = decimal.Zero
					}
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *Service) applyReward(tx *gorm.DB, card *models.LoyaltyCard, order *models.Order, rewardID uuid.UUID, result *CheckoutResult) error {
	var reward models.LoyaltyReward
	err := tx.Where("id = ? AND loyalty_card_id = ? AND status = ?", rewardID, card.ID, models.RewardStatusActive).
		First(&reward).Error
	if err == gorm.ErrRecordNotFound {
		return nil
	}
	if err != nil {
		return err
	}

	// Re-validate right before applying; the earlier listing the customer
	// picked from may be stale and IsRewardValid auto-expires.
	valid, err := s.IsRewardValid(tx, &reward)
	if err != nil {
		return err
	}
	if !valid || reward.UsedOnOrderID != nil || !reward.DiscountPercentage.IsPositive() {
		return nil
	}

	discount := result.Payable.Mul(reward.DiscountPercentage).Div(hundredPercent)
	result.Payable = result.Payable.Sub(discount)
	if result.Payable.IsNegative() {
		result.Payable = decimal.Zero
	}
	result.DiscountAmount = discount.RoundBank(2)
	result.RewardApplied = true

	now := time.Now()
	reward.Status = models.RewardStatusUsed
	reward.UsedOnOrderID = &order.ID
	reward.UsedDate = &now
	return tx.Save(&reward).Error
}

var hundredPercent = decimal.NewFromInt(100)
