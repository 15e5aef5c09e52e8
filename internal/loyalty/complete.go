package loyalty

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/cakeshop/internal/models"
)

// CompleteOrder transitions a regular order into the completed state and
// runs loyalty accrual. The completed_at stamp guards the edge: an order
// that already traversed it is left untouched, so accrual happens at most
// once no matter how many times the transition is requested.
func (s *Service) CompleteOrder(orderID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, "id = ?", orderID).Error; err != nil {
			return err
		}

		if order.CompletedAt != nil || order.Status == models.OrderStatusCompleted {
			return nil
		}
		if order.Status == models.OrderStatusCancelled {
			return fmt.Errorf("order %s is cancelled and cannot be completed", order.OrderNumber)
		}

		now := time.Now()
		order.Status = models.OrderStatusCompleted
		order.CompletedAt = &now
		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		return s.accrue(tx, order.CustomerID, order.TotalPrice, fmt.Sprintf("Order #%s", order.OrderNumber), &order.ID)
	})
}

// CompleteGiftBoxOrder is the gift box counterpart of CompleteOrder.
func (s *Service) CompleteGiftBoxOrder(orderID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var order models.GiftBoxOrder
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, "id = ?", orderID).Error; err != nil {
			return err
		}

		if order.CompletedAt != nil || order.Status == models.OrderStatusCompleted {
			return nil
		}
		if order.Status == models.OrderStatusCancelled {
			return fmt.Errorf("gift box order %s is cancelled and cannot be completed", order.OrderNumber)
		}

		now := time.Now()
		order.Status = models.OrderStatusCompleted
		order.CompletedAt = &now
		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		return s.accrue(tx, order.CustomerID, order.TotalPrice, fmt.Sprintf("Gift Box Order #%s", order.OrderNumber), nil)
	})
}

// accrue applies the per-completion ledger updates: statistics, one stamp
// (issuing a voucher on completion of the stamp card), spend-proportional
// points, then achievement checks.
func (s *Service) accrue(tx *gorm.DB, customerID uuid.UUID, total decimal.Decimal, reason string, orderID *uuid.UUID) error {
	card, err := s.GetOrCreateCard(tx, customerID)
	if err != nil {
		return err
	}

	card.TotalOrders++
	card.TotalSpent = card.TotalSpent.Add(total)

	rewardEarned := AddStamp(card)

	credited, err := s.AddPoints(tx, card, OrderPoints(total), reason, orderID)
	if err != nil {
		return err
	}
	log.Printf("[Loyalty] %s: +1 stamp, +%d points for card %s", reason, credited, card.CardNumber)

	if rewardEarned {
		if err := s.issueStampReward(tx, card); err != nil {
			return err
		}
		log.Printf("[Loyalty] Stamp card completed, voucher issued for card %s", card.CardNumber)
	}

	return s.checkAchievements(tx, card)
}

// CriteriaMet evaluates an achievement's threshold against card statistics.
func CriteriaMet(achievement models.Achievement, card *models.LoyaltyCard) bool {
	switch achievement.CriteriaType {
	case models.CriteriaOrders:
		return card.TotalOrders >= achievement.CriteriaValue
	case models.CriteriaSpent:
		return card.TotalSpent.GreaterThanOrEqual(decimal.NewFromInt(int64(achievement.CriteriaValue)))
	case models.CriteriaReferrals:
		return card.ReferralsMade >= achievement.CriteriaValue
	case models.CriteriaStamps:
		return card.TotalStamps >= achievement.CriteriaValue
	}
	return false
}

// checkAchievements unlocks every active achievement whose criteria the
// card newly satisfies, awarding its points reward.
func (s *Service) checkAchievements(tx *gorm.DB, card *models.LoyaltyCard) error {
	var achievements []models.Achievement
	if err := tx.Where("is_active = ?", true).Find(&achievements).Error; err != nil {
		return err
	}

	for _, achievement := range achievements {
		var unlocked int64
		err := tx.Model(&models.CustomerAchievement{}).
			Where("loyalty_card_id = ? AND achievement_id = ?", card.ID, achievement.ID).
			Count(&unlocked).Error
		if err != nil {
			return err
		}
		if unlocked > 0 || !CriteriaMet(achievement, card) {
			continue
		}

		record := models.CustomerAchievement{
			LoyaltyCardID: card.ID,
			AchievementID: achievement.ID,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		if achievement.PointsReward > 0 {
			if _, err := s.AddPoints(tx, card, achievement.PointsReward, "Achievement unlocked: "+achievement.Name, nil); err != nil {
				return err
			}
		}
		log.Printf("[Loyalty] Achievement unlocked for card %s: %s", card.CardNumber, achievement.Name)
	}
	return nil
}
