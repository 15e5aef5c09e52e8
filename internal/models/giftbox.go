package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Gift box pricing types.
const (
	GiftBoxPricingFixed      = "fixed"
	GiftBoxPricingCalculated = "calculated"
	GiftBoxPricingDiscounted = "discounted"
)

// GiftBox bundles multiple product+size items under one price.
type GiftBox struct {
	BaseModel
	Name        string `json:"name"`
	Description string `json:"description"`
	MainImage   string `json:"main_image"`

	PricingType        string           `gorm:"default:calculated" json:"pricing_type"`
	FixedPrice         *decimal.Decimal `gorm:"type:numeric(10,2)" json:"fixed_price"`
	DiscountPercentage *decimal.Decimal `gorm:"type:numeric(5,2)" json:"discount_percentage"`

	IsActive     bool          `gorm:"default:true" json:"is_active"`
	DisplayOrder int           `json:"display_order"`
	Items        []GiftBoxItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// GiftBoxItem is unique per (box, product, size); unit price is looked up
// from ProductPrice and degrades to zero when absent.
type GiftBoxItem struct {
	BaseModel
	GiftBoxID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_box_product_size" json:"gift_box_id"`
	ProductID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_box_product_size" json:"product_id"`
	Product      *Product  `json:"product,omitempty"`
	SizeID       uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_box_product_size" json:"size_id"`
	Size         *Size     `json:"size,omitempty"`
	Quantity     int       `gorm:"default:1" json:"quantity"`
	DisplayOrder int       `json:"display_order"`
}

type GiftBoxOrder struct {
	BaseModel
	OrderNumber string    `gorm:"uniqueIndex" json:"order_number"`
	CustomerID  uuid.UUID `gorm:"type:uuid;index" json:"customer_id"`
	Customer    *Customer `json:"customer,omitempty"`
	GiftBoxID   uuid.UUID `gorm:"type:uuid" json:"gift_box_id"`
	GiftBox     *GiftBox  `json:"gift_box,omitempty"`
	Quantity    int       `gorm:"default:1" json:"quantity"`

	EventID             *uuid.UUID `gorm:"type:uuid" json:"event_id"`
	SpecialInstructions string     `json:"special_instructions"`
	Status              string     `gorm:"default:pending" json:"status"`
	DeliveryDate        time.Time  `json:"delivery_date"`
	DeliveryTime        *string    `json:"delivery_time"`

	UnitPrice  decimal.Decimal `gorm:"type:numeric(10,2)" json:"unit_price"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(10,2)" json:"total_price"`

	CompletedAt *time.Time `json:"completed_at"`
}
