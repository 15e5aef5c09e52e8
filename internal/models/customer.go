package models

import (
	"strings"
	"time"
)

// Customer is identified by phone number; orders and loyalty hang off it.
type Customer struct {
	BaseModel
	Name           string       `json:"name"`
	PhoneNumber    string       `gorm:"uniqueIndex" json:"phone_number"`
	WhatsappNumber string       `json:"whatsapp_number"`
	Email          string       `json:"email"`
	Address        string       `json:"address"`
	DateOfBirth    *time.Time   `json:"date_of_birth"`
	LoyaltyCard    *LoyaltyCard `json:"loyalty_card,omitempty"`
	Orders         []Order      `json:"orders,omitempty"`
}

// WhatsAppLink builds a wa.me link for the customer's preferred number.
func (c *Customer) WhatsAppLink() string {
	number := c.WhatsappNumber
	if number == "" {
		number = c.PhoneNumber
	}

	var digits strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	clean := digits.String()
	if !strings.HasPrefix(clean, "91") {
		clean = "91" + clean
	}
	return "https://wa.me/" + clean
}
