package loyalty

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/example/cakeshop/internal/models"
)

// ReplayOrder is one historical completed order fed into Replay.
type ReplayOrder struct {
	OrderID     *uuid.UUID
	OrderNumber string
	Total       decimal.Decimal
	CompletedAt time.Time
}

// ReplayCredit is one points grant the replay produced.
type ReplayCredit struct {
	Points  int
	Reason  string
	OrderID *uuid.UUID
}

// ReplayVoucher is one stamp-card voucher the replay produced.
type ReplayVoucher struct {
	DiscountPercentage int
	Description        string
}

// ReplayResult is the rebuilt card state plus the ledger entries to persist.
type ReplayResult struct {
	TotalOrders    int
	TotalSpent     decimal.Decimal
	CurrentStamps  int
	TotalStamps    int
	RewardsClaimed int
	PointsBalance  int
	LifetimePoints int
	Tier           string

	Credits  []ReplayCredit
	Vouchers []ReplayVoucher
}

// Replay rebuilds a card from scratch out of historical completed orders,
// oldest first. Points use the backfill schedule (10 per ₹100) with a
// multiplier keyed on the progressive order count, and stamp vouchers carry
// the discount of the tier held at the moment each stamp card filled. This
// is a distinct schedule from live accrual and will not reproduce the same
// balances; that difference is accepted for backfills.
func Replay(orders []ReplayOrder, stampsToReward int) ReplayResult {
	sorted := make([]ReplayOrder, len(orders))
	copy(sorted, orders)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CompletedAt.Before(sorted[j].CompletedAt)
	})

	result := ReplayResult{
		TotalSpent: decimal.Zero,
		Tier:       models.TierBronze,
	}

	for _, order := range sorted {
		// The multiplier reads the count before this order, so the tenth
		// order still pays bronze rate and silver pay starts at eleven.
		points := int(float64(replayOrderPoints(order.Total)) * replayMultiplier(result.TotalOrders))

		result.TotalOrders++
		result.TotalSpent = result.TotalSpent.Add(order.Total)
		result.PointsBalance += points
		result.LifetimePoints += points
		result.Credits = append(result.Credits, ReplayCredit{
			Points:  points,
			Reason:  "Retroactive: Order #" + order.OrderNumber,
			OrderID: order.OrderID,
		})

		result.CurrentStamps++
		result.TotalStamps++
		if stampsToReward > 0 && result.CurrentStamps >= stampsToReward {
			result.CurrentStamps = 0
			result.RewardsClaimed++
			discount := BenefitsFor(TierForOrders(result.TotalOrders)).Discount
			result.Vouchers = append(result.Vouchers, ReplayVoucher{
				DiscountPercentage: discount,
				Description:        fmt.Sprintf("%d%% discount for completing %d orders!", discount, stampsToReward),
			})
		}
	}

	result.Tier = TierForOrders(result.TotalOrders)
	return result
}

// Retroactive wipes a customer's card-derived state and rebuilds it from
// every completed regular and gift box order on record. Existing points
// transactions and rewards for the card are replaced by the replayed ones.
func (s *Service) Retroactive(customerID uuid.UUID) (*models.LoyaltyCard, error) {
	var rebuilt *models.LoyaltyCard

	err := s.db.Transaction(func(tx *gorm.DB) error {
		card, err := s.GetOrCreateCard(tx, customerID)
		if err != nil {
			return err
		}

		var orders []models.Order
		if err := tx.Where("customer_id = ? AND status = ?", customerID, models.OrderStatusCompleted).
			Order("created_at asc").
			Find(&orders).Error; err != nil {
			return err
		}
		var giftBoxOrders []models.GiftBoxOrder
		if err := tx.Where("customer_id = ? AND status = ?", customerID, models.OrderStatusCompleted).
			Order("created_at asc").
			Find(&giftBoxOrders).Error; err != nil {
			return err
		}

		history := make([]ReplayOrder, 0, len(orders)+len(giftBoxOrders))
		for i := range orders {
			completedAt := orders[i].CreatedAt
			if orders[i].CompletedAt != nil {
				completedAt = *orders[i].CompletedAt
			}
			history = append(history, ReplayOrder{
				OrderID:     &orders[i].ID,
				OrderNumber: orders[i].OrderNumber,
				Total:       orders[i].TotalPrice,
				CompletedAt: completedAt,
			})
		}
		for i := range giftBoxOrders {
			completedAt := giftBoxOrders[i].CreatedAt
			if giftBoxOrders[i].CompletedAt != nil {
				completedAt = *giftBoxOrders[i].CompletedAt
			}
			history = append(history, ReplayOrder{
				OrderNumber: giftBoxOrders[i].OrderNumber,
				Total:       giftBoxOrders[i].TotalPrice,
				CompletedAt: completedAt,
			})
		}

		result := Replay(history, card.StampsToReward)

		if err := tx.Where("loyalty_card_id = ?", card.ID).Delete(&models.PointsTransaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("loyalty_card_id = ? AND reward_type = ?", card.ID, models.RewardStampCard).
			Delete(&models.LoyaltyReward{}).Error; err != nil {
			return err
		}

		card.TotalOrders = result.TotalOrders
		card.TotalSpent = result.TotalSpent
		card.CurrentStamps = result.CurrentStamps
		card.TotalStamps = result.TotalStamps
		card.RewardsClaimed = result.RewardsClaimed
		card.PointsBalance = result.PointsBalance
		card.LifetimePoints = result.LifetimePoints
		card.Tier = result.Tier
		if err := tx.Save(card).Error; err != nil {
			return err
		}

		for _, credit := range result.Credits {
			entry := models.PointsTransaction{
				LoyaltyCardID:   card.ID,
				Points:          credit.Points,
				TransactionType: models.PointsEarned,
				Reason:          credit.Reason,
				OrderID:         credit.OrderID,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}
		for _, voucher := range result.Vouchers {
			reward := models.LoyaltyReward{
				LoyaltyCardID:      card.ID,
				RewardType:         models.RewardStampCard,
				DiscountPercentage: decimal.NewFromInt(int64(voucher.DiscountPercentage)),
				DiscountAmount:     decimal.Zero,
				ExpiryDate:         time.Now().AddDate(0, 0, stampRewardExpiryDays),
				Status:             models.RewardStatusActive,
				Description:        voucher.Description,
			}
			if err := tx.Create(&reward).Error; err != nil {
				return err
			}
		}

		if err := s.checkAchievements(tx, card); err != nil {
			return err
		}
		rebuilt = card
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rebuilt, nil
}
