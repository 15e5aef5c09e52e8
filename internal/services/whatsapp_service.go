package services

import (
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/example/cakeshop/internal/config"
)

// WhatsAppService sends customer notifications over Twilio's WhatsApp
// channel. With WHATSAPP_ENABLED off it logs the message and returns nil,
// so order flows never depend on Twilio being reachable.
type WhatsAppService struct {
	client      *twilio.RestClient
	from        string
	enabled     bool
	countryCode string
	shopName    string
}

// NewWhatsAppService creates a WhatsAppService from configuration.
func NewWhatsAppService(cfg *config.Config) *WhatsAppService {
	return &WhatsAppService{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		}),
		from:        cfg.TwilioWhatsAppFrom,
		enabled:     cfg.WhatsAppEnabled && cfg.TwilioAccountSID != "" && cfg.TwilioWhatsAppFrom != "",
		countryCode: cfg.CountryCallingCode,
		shopName:    cfg.ShopName,
	}
}

// SendMessage sends one WhatsApp message to a raw phone number.
func (s *WhatsAppService) SendMessage(phone, text string) error {
	if !s.enabled {
		log.Printf("[WhatsApp] disabled, skipping message to %s", phone)
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo("whatsapp:+" + s.normalize(phone))
	params.SetFrom("whatsapp:" + s.from)
	params.SetBody(text)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("[WhatsApp] failed to send to %s: %v", phone, err)
		return err
	}
	if resp.Sid != nil {
		log.Printf("[WhatsApp] sent to %s, SID: %s", phone, *resp.Sid)
	}
	return nil
}

// normalize strips non-digits and prefixes the country calling code.
func (s *WhatsAppService) normalize(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	clean := digits.String()
	if !strings.HasPrefix(clean, s.countryCode) {
		clean = s.countryCode + clean
	}
	return clean
}

// FormatPrice renders an amount as ₹ with thousand separators.
func FormatPrice(amount decimal.Decimal) string {
	str := fmt.Sprintf("%d", amount.RoundBank(0).IntPart())

	var result strings.Builder
	length := len(str)
	for i, digit := range str {
		if i > 0 && (length-i)%3 == 0 {
			result.WriteString(",")
		}
		result.WriteRune(digit)
	}
	return "₹" + result.String()
}

// NotifyOrderConfirmed tells the customer their order went through.
func (s *WhatsAppService) NotifyOrderConfirmed(phone, customerName, orderNumber string, total decimal.Decimal) error {
	message := fmt.Sprintf("Hi %s! Your order %s has been received. Total: %s. Thank you for choosing %s!",
		customerName, orderNumber, FormatPrice(total), s.shopName)
	return s.SendMessage(phone, message)
}

// NotifyCustomCakeQuote sends the admin's final quote for a custom cake.
func (s *WhatsAppService) NotifyCustomCakeQuote(phone, customerName, orderNumber string, finalPrice decimal.Decimal, note string) error {
	message := fmt.Sprintf("Hi %s! Your custom cake order %s has been priced at %s.",
		customerName, orderNumber, FormatPrice(finalPrice))
	if note != "" {
		message += " Note: " + note
	}
	message += " Reply to confirm and we'll start baking!"
	return s.SendMessage(phone, message)
}

// NotifyBirthdayReward tells the customer about their birthday voucher.
func (s *WhatsAppService) NotifyBirthdayReward(phone, customerName string, bonusPoints int) error {
	message := fmt.Sprintf("Happy Birthday, %s! 🎂 We've added %d bonus points and a birthday discount to your loyalty card. See you soon at %s!",
		customerName, bonusPoints, s.shopName)
	return s.SendMessage(phone, message)
}
