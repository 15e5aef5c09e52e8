package loyalty

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/cakeshop/internal/models"
	"github.com/example/cakeshop/internal/utils"
)

const referralCodeLength = 8

// CreateReferral records a pending referral with a fresh unique code. The
// code is what the referrer forwards to the friend; completion is keyed on
// it later.
func (s *Service) CreateReferral(referrerID uuid.UUID, referredName, referredPhone string) (*models.Referral, error) {
	code, err := s.uniqueReferralCode()
	if err != nil {
		return nil, err
	}

	referral := models.Referral{
		ReferrerID:    referrerID,
		ReferredName:  referredName,
		ReferredPhone: referredPhone,
		ReferralCode:  code,
		Status:        models.ReferralPending,
	}
	if err := s.db.Create(&referral).Error; err != nil {
		return nil, err
	}
	return &referral, nil
}

func (s *Service) uniqueReferralCode() (string, error) {
	for attempt := 0; attempt < 10; attempt++ {
		code, err := utils.GenerateCode(referralCodeLength)
		if err != nil {
			return "", err
		}
		var count int64
		if err := s.db.Model(&models.Referral{}).Where("referral_code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", errors.New("could not generate a unique referral code")
}

// MarkReferralCompleted completes a pending referral: links the referred
// customer, credits the referrer's bonus points and bumps the referrals
// counter. A referral in any other status is a no-op, so completion pays
// out at most once.
func (s *Service) MarkReferralCompleted(code string, referredCustomerID uuid.UUID) (*models.Referral, error) {
	var referral models.Referral

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("referral_code = ?", code).
			First(&referral).Error; err != nil {
			return err
		}

		if referral.Status != models.ReferralPending {
			return nil
		}

		now := time.Now()
		referral.Status = models.ReferralCompleted
		referral.ReferredCustomerID = &referredCustomerID
		referral.CompletedAt = &now
		if err := tx.Save(&referral).Error; err != nil {
			return err
		}

		card, err := s.GetOrCreateCard(tx, referral.ReferrerID)
		if err != nil {
			return err
		}
		card.ReferralsMade++
		if _, err := s.AddPoints(tx, card, referral.ReferrerRewardPoints, "Referral bonus for "+referral.ReferredName, nil); err != nil {
			return err
		}
		return s.checkAchievements(tx, card)
	})
	if err != nil {
		return nil, err
	}
	return &referral, nil
}
