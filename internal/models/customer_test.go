package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhatsAppLinkPrefersWhatsappNumber(t *testing.T) {
	customer := Customer{
		PhoneNumber:    "9876543210",
		WhatsappNumber: "9123456789",
	}
	assert.Equal(t, "https://wa.me/919123456789", customer.WhatsAppLink())
}

func TestWhatsAppLinkFallsBackToPhone(t *testing.T) {
	customer := Customer{PhoneNumber: "98765 43210"}
	assert.Equal(t, "https://wa.me/919876543210", customer.WhatsAppLink())
}

func TestWhatsAppLinkKeepsExistingCountryCode(t *testing.T) {
	customer := Customer{PhoneNumber: "+91 98765-43210"}
	assert.Equal(t, "https://wa.me/919876543210", customer.WhatsAppLink())
}
