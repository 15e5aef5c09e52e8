package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/cakeshop/internal/loyalty"
	"github.com/example/cakeshop/internal/models"
	"github.com/example/cakeshop/internal/utils"
)

// LoyaltyHandler exposes the loyalty ledger: dashboard, rewards,
// referrals, achievements and the retroactive rebuild.
type LoyaltyHandler struct {
	db      *gorm.DB
	loyalty *loyalty.Service
}

// NewLoyaltyHandler constructs LoyaltyHandler.
func NewLoyaltyHandler(db *gorm.DB, loyaltySvc *loyalty.Service) *LoyaltyHandler {
	return &LoyaltyHandler{db: db, loyalty: loyaltySvc}
}

func (h *LoyaltyHandler) findCustomerByPhone(phone string) (*models.Customer, error) {
	var customer models.Customer
	if err := h.db.Where("phone_number = ?", phone).First(&customer).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "customer not found")
		}
		return nil, err
	}
	return &customer, nil
}

// Dashboard returns the customer's full loyalty view keyed by phone
// number: card, tier benefits, active rewards, recent transactions and
// unlocked achievements.
func (h *LoyaltyHandler) Dashboard(c *fiber.Ctx) error {
	phone := c.Query("phone")
	if phone == "" {
		return fiber.NewError(fiber.StatusBadRequest, "phone query parameter is required")
	}

	customer, err := h.findCustomerByPhone(phone)
	if err != nil {
		return err
	}

	var card models.LoyaltyCard
	err = h.db.Where("customer_id = ?", customer.ID).First(&card).Error
	if err == gorm.ErrRecordNotFound {
		return c.JSON(fiber.Map{
			"success": true,
			"data": fiber.Map{
				"customer": customer,
				"card":     nil,
				"message":  "no loyalty card yet; place an order to join",
			},
		})
	}
	if err != nil {
		return err
	}

	var rewards []models.LoyaltyReward
	if err := h.db.Where("loyalty_card_id = ? AND status = ?", card.ID, models.RewardStatusActive).
		Order("expiry_date asc").Find(&rewards).Error; err != nil {
		return err
	}

	var transactions []models.PointsTransaction
	if err := h.db.Where("loyalty_card_id = ?", card.ID).
		Order("created_at desc").Limit(20).Find(&transactions).Error; err != nil {
		return err
	}

	var achievements []models.CustomerAchievement
	if err := h.db.Preload("Achievement").Where("loyalty_card_id = ?", card.ID).
		Find(&achievements).Error; err != nil {
		return err
	}

	benefits := loyalty.BenefitsFor(card.Tier)

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"customer": customer,
			"card":     card,
			"progress": card.ProgressPercentage(),
			"benefits": fiber.Map{
				"discount":                benefits.Discount,
				"points_multiplier":       benefits.PointsMultiplier,
				"birthday_bonus":          benefits.BirthdayBonus,
				"free_delivery_threshold": benefits.FreeDeliveryThreshold,
			},
			"rewards":      rewards,
			"transactions": transactions,
			"achievements": achievements,
		},
	})
}

// ListCards returns paginated loyalty cards for the back office.
func (h *LoyaltyHandler) ListCards(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	var cards []models.LoyaltyCard
	var total int64

	query := h.db.Model(&models.LoyaltyCard{})
	if tier := c.Query("tier"); tier != "" {
		query = query.Where("tier = ?", tier)
	}
	if err := query.Count(&total).Error; err != nil {
		return err
	}
	if err := query.Preload("Customer").Limit(pg.Limit).Offset(pg.Offset).
		Order("created_at desc").Find(&cards).Error; err != nil {
		return err
	}

	return paginated(c, pg, total, cards)
}

type createReferralRequest struct {
	ReferrerPhone string `json:"referrer_phone"`
	ReferredName  string `json:"referred_name"`
	ReferredPhone string `json:"referred_phone"`
}

// CreateReferral issues a referral code for the referrer to share.
func (h *LoyaltyHandler) CreateReferral(c *fiber.Ctx) error {
	var req createReferralRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.ReferrerPhone == "" || req.ReferredPhone == "" {
		return fiber.NewError(fiber.StatusBadRequest, "referrer_phone and referred_phone are required")
	}

	referrer, err := h.findCustomerByPhone(req.ReferrerPhone)
	if err != nil {
		return err
	}

	referral, err := h.loyalty.CreateReferral(referrer.ID, req.ReferredName, req.ReferredPhone)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": referral})
}

type completeReferralRequest struct {
	ReferralCode  string `json:"referral_code"`
	ReferredPhone string `json:"referred_phone"`
}

// CompleteReferral redeems a referral code for the referred customer's
// first order; the referrer's bonus pays out at most once.
func (h *LoyaltyHandler) CompleteReferral(c *fiber.Ctx) error {
	var req completeReferralRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	referred, err := h.findCustomerByPhone(req.ReferredPhone)
	if err != nil {
		return err
	}

	referral, err := h.loyalty.MarkReferralCompleted(req.ReferralCode, referred.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "referral code not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": referral})
}

// ListReferrals lists a referrer's referrals by phone.
func (h *LoyaltyHandler) ListReferrals(c *fiber.Ctx) error {
	phone := c.Query("phone")
	if phone == "" {
		return fiber.NewError(fiber.StatusBadRequest, "phone query parameter is required")
	}

	referrer, err := h.findCustomerByPhone(phone)
	if err != nil {
		return err
	}

	var referrals []models.Referral
	if err := h.db.Where("referrer_id = ?", referrer.ID).
		Order("created_at desc").Find(&referrals).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": referrals})
}

// Retroactive rebuilds a customer's card from their completed order
// history. Admin-only data repair endpoint.
func (h *LoyaltyHandler) Retroactive(c *fiber.Ctx) error {
	customerID, err := uuid.Parse(c.Params("customerId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid customer id")
	}

	card, err := h.loyalty.Retroactive(customerID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": card})
}

// ListAchievements returns the achievement catalog.
func (h *LoyaltyHandler) ListAchievements(c *fiber.Ctx) error {
	var achievements []models.Achievement
	if err := h.db.Where("is_active = ?", true).
		Order("display_order asc").Find(&achievements).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": achievements})
}

// CreateAchievement adds an achievement definition.
func (h *LoyaltyHandler) CreateAchievement(c *fiber.Ctx) error {
	var achievement models.Achievement
	return createSimple(c, h.db, &achievement)
}

// UpdateAchievement updates an achievement definition.
func (h *LoyaltyHandler) UpdateAchievement(c *fiber.Ctx) error {
	var achievement models.Achievement
	return updateSimple(c, h.db, &achievement)
}
