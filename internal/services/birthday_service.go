package services

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/example/cakeshop/internal/loyalty"
	"github.com/example/cakeshop/internal/models"
)

const birthdayDiscountPercent = 5

// BirthdayService runs the daily birthday job: every customer whose
// birthday is today gets tier bonus points and a discount voucher, at most
// once per calendar year.
type BirthdayService struct {
	db       *gorm.DB
	loyalty  *loyalty.Service
	whatsapp *WhatsAppService
	schedule string
}

// NewBirthdayService creates a BirthdayService.
func NewBirthdayService(db *gorm.DB, loyaltySvc *loyalty.Service, whatsapp *WhatsAppService, schedule string) *BirthdayService {
	return &BirthdayService{
		db:       db,
		loyalty:  loyaltySvc,
		whatsapp: whatsapp,
		schedule: schedule,
	}
}

// StartScheduler registers the daily run and starts the cron loop.
func (s *BirthdayService) StartScheduler() (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(s.schedule, s.Run); err != nil {
		return nil, err
	}
	c.Start()
	log.Printf("[Birthday] scheduler started (%s)", s.schedule)
	return c, nil
}

// Run processes today's birthdays.
func (s *BirthdayService) Run() {
	now := time.Now()
	log.Println("[Birthday] processing today's birthdays")

	var customers []models.Customer
	err := s.db.Where("date_of_birth IS NOT NULL").
		Where("EXTRACT(MONTH FROM date_of_birth) = ? AND EXTRACT(DAY FROM date_of_birth) = ?",
			int(now.Month()), now.Day()).
		Find(&customers).Error
	if err != nil {
		log.Printf("[Birthday] failed to fetch customers: %v", err)
		return
	}

	for i := range customers {
		if err := s.processCustomer(&customers[i], now); err != nil {
			log.Printf("[Birthday] failed for customer %s: %v", customers[i].ID, err)
		}
	}
	log.Printf("[Birthday] done, %d birthday(s) today", len(customers))
}

func (s *BirthdayService) processCustomer(customer *models.Customer, now time.Time) error {
	var bonusPoints int

	err := s.db.Transaction(func(tx *gorm.DB) error {
		card, err := s.loyalty.GetOrCreateCard(tx, customer.ID)
		if err != nil {
			return err
		}

		yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		var granted int64
		err = tx.Model(&models.LoyaltyReward{}).
			Where("loyalty_card_id = ? AND reward_type = ? AND created_at >= ?",
				card.ID, models.RewardBirthday, yearStart).
			Count(&granted).Error
		if err != nil {
			return err
		}
		if granted > 0 {
			return nil
		}

		// Birthday bonus is a flat tier amount, not run through the points
		// multiplier.
		bonusPoints = loyalty.BenefitsFor(card.Tier).BirthdayBonus
		card.PointsBalance += bonusPoints
		card.LifetimePoints += bonusPoints
		if err := tx.Save(card).Error; err != nil {
			return err
		}
		entry := models.PointsTransaction{
			LoyaltyCardID:   card.ID,
			Points:          bonusPoints,
			TransactionType: models.PointsEarned,
			Reason:          "Birthday bonus",
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		reward := models.LoyaltyReward{
			LoyaltyCardID:      card.ID,
			RewardType:         models.RewardBirthday,
			DiscountPercentage: decimal.NewFromInt(birthdayDiscountPercent),
			DiscountAmount:     decimal.Zero,
			ExpiryDate:         now.AddDate(0, 0, 30),
			Status:             models.RewardStatusActive,
			Description:        fmt.Sprintf("Happy Birthday! %d%% off your next order", birthdayDiscountPercent),
		}
		return tx.Create(&reward).Error
	})
	if err != nil || bonusPoints == 0 {
		return err
	}

	if s.whatsapp != nil {
		_ = s.whatsapp.NotifyBirthdayReward(customer.PhoneNumber, customer.Name, bonusPoints)
	}
	return nil
}
