package loyalty

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/cakeshop/internal/models"
)

const stampRewardExpiryDays = 60

// Service owns all loyalty ledger mutations. Card writes for one customer
// are serialized with row locks; methods taking a tx expect to run inside a
// transaction that already holds the card lock.
type Service struct {
	db *gorm.DB
}

// NewService constructs the loyalty Service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// GetOrCreateCard loads the customer's card under a row lock, creating it
// with a fresh LC number when absent.
func (s *Service) GetOrCreateCard(tx *gorm.DB, customerID uuid.UUID) (*models.LoyaltyCard, error) {
	var card models.LoyaltyCard
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("customer_id = ?", customerID).
		First(&card).Error
	if err == nil {
		return &card, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	number, err := models.NextCardNumber(tx)
	if err != nil {
		return nil, err
	}

	card = models.LoyaltyCard{
		CustomerID:     customerID,
		CardNumber:     number,
		Tier:           models.TierBronze,
		StampsToReward: 5,
		TotalSpent:     decimal.Zero,
		IsActive:       true,
	}
	if err := tx.Create(&card).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// AddPoints credits tier-multiplied points, refreshes the tier, saves the
// card and appends the earned transaction. Returns the credited amount.
func (s *Service) AddPoints(tx *gorm.DB, card *models.LoyaltyCard, base int, reason string, orderID *uuid.UUID) (int, error) {
	credited := EarnPoints(card, base)
	RefreshTier(card)
	if err := tx.Save(card).Error; err != nil {
		return 0, err
	}

	entry := models.PointsTransaction{
		LoyaltyCardID:   card.ID,
		Points:          credited,
		TransactionType: models.PointsEarned,
		Reason:          reason,
		OrderID:         orderID,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return 0, err
	}
	return credited, nil
}

// RedeemPoints deducts points when the balance covers them and appends the
// redeemed transaction. Returns false with no mutation when the balance is
// short.
func (s *Service) RedeemPoints(tx *gorm.DB, card *models.LoyaltyCard, points int, reason string, orderID *uuid.UUID) (bool, error) {
	if card.PointsBalance < points {
		return false, nil
	}

	card.PointsBalance -= points
	if err := tx.Save(card).Error; err != nil {
		return false, err
	}

	entry := models.PointsTransaction{
		LoyaltyCardID:   card.ID,
		Points:          points,
		TransactionType: models.PointsRedeemed,
		Reason:          reason,
		OrderID:         orderID,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return false, err
	}
	return true, nil
}

// IsRewardValid reports whether the reward can still be applied. A reward
// stays valid through the end of its expiry day. Reading an expired reward
// transitions it to the expired status, so redemption flows must re-check
// immediately before applying, not rely on a stale check.
func (s *Service) IsRewardValid(tx *gorm.DB, reward *models.LoyaltyReward) (bool, error) {
	if reward.Status != models.RewardStatusActive {
		return false, nil
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if reward.ExpiryDate.Before(today) {
		reward.Status = models.RewardStatusExpired
		if err := tx.Save(reward).Error; err != nil {
			return false, err
		}
		return false, nil
	}
	return true, nil
}

func (s *Service) issueStampReward(tx *gorm.DB, card *models.LoyaltyCard) error {
	benefits := BenefitsFor(card.Tier)
	reward := models.LoyaltyReward{
		LoyaltyCardID:      card.ID,
		RewardType:         models.RewardStampCard,
		DiscountPercentage: decimal.NewFromInt(int64(benefits.Discount)),
		DiscountAmount:     decimal.Zero,
		ExpiryDate:         time.Now().AddDate(0, 0, stampRewardExpiryDays),
		Status:             models.RewardStatusActive,
		Description:        fmt.Sprintf("%d%% discount for completing %d orders!", benefits.Discount, card.StampsToReward),
	}
	return tx.Create(&reward).Error
}
