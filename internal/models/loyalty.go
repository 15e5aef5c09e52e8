package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Loyalty tiers, derived solely from lifetime completed-order count.
const (
	TierBronze   = "bronze"
	TierSilver   = "silver"
	TierGold     = "gold"
	TierPlatinum = "platinum"
)

// Reward types.
const (
	RewardStampCard = "stamp_card"
	RewardBirthday  = "birthday"
	RewardReferral  = "referral"
	RewardMilestone = "milestone"
	RewardSpecial   = "special"
	RewardPoints    = "points"
)

// Reward statuses.
const (
	RewardStatusPending = "pending"
	RewardStatusActive  = "active"
	RewardStatusUsed    = "used"
	RewardStatusExpired = "expired"
)

// Points transaction types.
const (
	PointsEarned   = "earned"
	PointsRedeemed = "redeemed"
	PointsExpired  = "expired"
	PointsAdjusted = "adjusted"
)

// Referral statuses.
const (
	ReferralPending   = "pending"
	ReferralCompleted = "completed"
	ReferralRewarded  = "rewarded"
)

// Achievement criteria types.
const (
	CriteriaOrders    = "orders"
	CriteriaSpent     = "spent"
	CriteriaReferrals = "referrals"
	CriteriaStamps    = "stamps"
)

// LoyaltyCard tracks one customer's stamps, points, tier and statistics.
// Rewards, transactions and unlocked achievements cascade with the card.
type LoyaltyCard struct {
	BaseModel
	CustomerID uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"customer_id"`
	Customer   *Customer `json:"customer,omitempty"`
	CardNumber string    `gorm:"uniqueIndex" json:"card_number"`
	Tier       string    `gorm:"default:bronze" json:"tier"`

	CurrentStamps  int `json:"current_stamps"`
	TotalStamps    int `json:"total_stamps"`
	StampsToReward int `gorm:"default:5" json:"stamps_to_reward"`

	PointsBalance  int `json:"points_balance"`
	LifetimePoints int `json:"lifetime_points"`

	TotalOrders    int             `json:"total_orders"`
	TotalSpent     decimal.Decimal `gorm:"type:numeric(10,2);default:0" json:"total_spent"`
	RewardsClaimed int             `json:"rewards_claimed"`
	ReferralsMade  int             `json:"referrals_made"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	Rewards      []LoyaltyReward       `gorm:"constraint:OnDelete:CASCADE" json:"rewards,omitempty"`
	Transactions []PointsTransaction   `gorm:"constraint:OnDelete:CASCADE" json:"transactions,omitempty"`
	Achievements []CustomerAchievement `gorm:"constraint:OnDelete:CASCADE" json:"achievements,omitempty"`
}

// ProgressPercentage is progress toward the next stamp reward.
func (c *LoyaltyCard) ProgressPercentage() int {
	if c.StampsToReward == 0 {
		return 100
	}
	return c.CurrentStamps * 100 / c.StampsToReward
}

// LoyaltyReward is a percentage-discount voucher consumable on one order.
type LoyaltyReward struct {
	BaseModel
	LoyaltyCardID uuid.UUID `gorm:"type:uuid;index" json:"loyalty_card_id"`
	RewardType    string    `json:"reward_type"`

	DiscountPercentage decimal.Decimal `gorm:"type:numeric(5,2)" json:"discount_percentage"`
	DiscountAmount     decimal.Decimal `gorm:"type:numeric(10,2);default:0" json:"discount_amount"`

	ExpiryDate time.Time `json:"expiry_date"`
	Status     string    `gorm:"default:active" json:"status"`

	UsedOnOrderID *uuid.UUID `gorm:"type:uuid" json:"used_on_order_id"`
	UsedDate      *time.Time `json:"used_date"`

	Description string `json:"description"`
}

// PointsTransaction is an append-only ledger row; never mutated after
// creation.
type PointsTransaction struct {
	BaseModel
	LoyaltyCardID   uuid.UUID  `gorm:"type:uuid;index" json:"loyalty_card_id"`
	Points          int        `json:"points"`
	TransactionType string     `json:"transaction_type"`
	Reason          string     `json:"reason"`
	OrderID         *uuid.UUID `gorm:"type:uuid" json:"order_id"`
}

type Referral struct {
	BaseModel
	ReferrerID         uuid.UUID  `gorm:"type:uuid;index" json:"referrer_id"`
	Referrer           *Customer  `json:"referrer,omitempty"`
	ReferredCustomerID *uuid.UUID `gorm:"type:uuid" json:"referred_customer_id"`

	ReferredPhone string `json:"referred_phone"`
	ReferredName  string `json:"referred_name"`
	ReferralCode  string `gorm:"uniqueIndex" json:"referral_code"`

	Status string `gorm:"default:pending" json:"status"`

	ReferrerRewardPoints   int             `gorm:"default:100" json:"referrer_reward_points"`
	ReferredRewardDiscount decimal.Decimal `gorm:"type:numeric(5,2);default:10.00" json:"referred_reward_discount"`

	CompletedAt *time.Time `json:"completed_at"`
}

// Achievement defines unlock criteria and a points reward.
type Achievement struct {
	BaseModel
	Name          string `json:"name"`
	Description   string `json:"description"`
	Icon          string `json:"icon"`
	CriteriaType  string `json:"criteria_type"`
	CriteriaValue int    `json:"criteria_value"`
	PointsReward  int    `json:"points_reward"`
	DisplayOrder  int    `json:"display_order"`
	IsActive      bool   `gorm:"default:true" json:"is_active"`
}

// CustomerAchievement records an unlock, unique per card+achievement.
type CustomerAchievement struct {
	BaseModel
	LoyaltyCardID uuid.UUID    `gorm:"type:uuid;uniqueIndex:idx_card_achievement" json:"loyalty_card_id"`
	AchievementID uuid.UUID    `gorm:"type:uuid;uniqueIndex:idx_card_achievement" json:"achievement_id"`
	Achievement   *Achievement `json:"achievement,omitempty"`
	IsViewed      bool         `json:"is_viewed"`
}
