package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Decoration categories.
const (
	DecorationFlowers = "flowers"
	DecorationFondant = "fondant"
	DecorationEdible  = "edible"
	DecorationTopping = "topping"
	DecorationOther   = "other"
)

// CakeShape carries the base price per kilogram, e.g. Round, Heart, Square.
type CakeShape struct {
	BaseModel
	Name           string          `gorm:"uniqueIndex" json:"name"`
	Description    string          `json:"description"`
	BasePricePerKg decimal.Decimal `gorm:"type:numeric(10,2)" json:"base_price_per_kg"`
	Image          string          `json:"image"`
	IsActive       bool            `gorm:"default:true" json:"is_active"`
	DisplayOrder   int             `json:"display_order"`
}

// CakeTier multiplies the shape+flavor subtotal, e.g. 1-tier=1.0, 2-tier=1.8.
type CakeTier struct {
	BaseModel
	Name            string          `gorm:"uniqueIndex" json:"name"`
	TiersCount      int             `json:"tiers_count"`
	Description     string          `json:"description"`
	PriceMultiplier decimal.Decimal `gorm:"type:numeric(5,2);default:1.0" json:"price_multiplier"`
	Image           string          `json:"image"`
	IsActive        bool            `gorm:"default:true" json:"is_active"`
	DisplayOrder    int             `json:"display_order"`
}

// Flavor prices per kg on top of the shape base price.
type Flavor struct {
	BaseModel
	Name         string          `gorm:"uniqueIndex" json:"name"`
	Description  string          `json:"description"`
	PricePerKg   decimal.Decimal `gorm:"type:numeric(10,2)" json:"price_per_kg"`
	IsActive     bool            `gorm:"default:true" json:"is_active"`
	DisplayOrder int             `json:"display_order"`
}

// Decoration is priced per unit (per flower, per figure).
type Decoration struct {
	BaseModel
	Name         string          `gorm:"uniqueIndex" json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `gorm:"type:numeric(10,2)" json:"price"`
	Image        string          `json:"image"`
	Category     string          `gorm:"default:other" json:"category"`
	IsActive     bool            `gorm:"default:true" json:"is_active"`
	DisplayOrder int             `json:"display_order"`
}

// CustomCakeOrderDecoration is one decoration line on a custom order,
// unique per (order, decoration).
type CustomCakeOrderDecoration struct {
	BaseModel
	CustomOrderID uuid.UUID   `gorm:"type:uuid;uniqueIndex:idx_order_decoration" json:"custom_order_id"`
	DecorationID  uuid.UUID   `gorm:"type:uuid;uniqueIndex:idx_order_decoration" json:"decoration_id"`
	Decoration    *Decoration `json:"decoration,omitempty"`
	Quantity      int         `gorm:"default:1" json:"quantity"`
}

// TotalPrice is decoration unit price times quantity.
func (d *CustomCakeOrderDecoration) TotalPrice() decimal.Decimal {
	if d.Decoration == nil {
		return decimal.Zero
	}
	return d.Decoration.Price.Mul(decimal.NewFromInt(int64(d.Quantity)))
}

type CustomCakeReferenceImage struct {
	BaseModel
	CustomOrderID uuid.UUID `gorm:"type:uuid;index" json:"custom_order_id"`
	Image         string    `json:"image"`
}

// CustomCakeOrder is a parametrized cake (shape × weight × tier × flavor ×
// decorations). Exactly one flavor pricing source is authoritative:
// product+size beats a catalog Flavor, which beats the admin-set custom
// per-kg price.
type CustomCakeOrder struct {
	BaseModel
	OrderNumber string    `gorm:"uniqueIndex" json:"order_number"`
	CustomerID  uuid.UUID `gorm:"type:uuid;index" json:"customer_id"`
	Customer    *Customer `json:"customer,omitempty"`

	ProductID *uuid.UUID `gorm:"type:uuid" json:"product_id"`
	Product   *Product   `json:"product,omitempty"`
	SizeID    *uuid.UUID `gorm:"type:uuid" json:"size_id"`
	Size      *Size      `json:"size,omitempty"`

	ShapeID     uuid.UUID       `gorm:"type:uuid" json:"shape_id"`
	Shape       *CakeShape      `json:"shape,omitempty"`
	TierID      uuid.UUID       `gorm:"type:uuid" json:"tier_id"`
	Tier        *CakeTier       `json:"tier,omitempty"`
	TotalWeight decimal.Decimal `gorm:"type:numeric(5,2)" json:"total_weight"`

	FlavorID               *uuid.UUID       `gorm:"type:uuid" json:"flavor_id"`
	Flavor                 *Flavor          `json:"flavor,omitempty"`
	FlavorDescription      string           `json:"flavor_description"`
	CustomFlavorPricePerKg *decimal.Decimal `gorm:"type:numeric(10,2)" json:"custom_flavor_price_per_kg"`

	SpecialInstructions string     `json:"special_instructions"`
	CustomMessage       string     `json:"custom_message"`
	EventID             *uuid.UUID `gorm:"type:uuid" json:"event_id"`
	Event               *Event     `json:"event,omitempty"`
	DeliveryDate        time.Time  `json:"delivery_date"`
	DeliveryTime        *string    `json:"delivery_time"`
	DeliveryAddress     string     `json:"delivery_address"`

	EstimatedPrice decimal.Decimal  `gorm:"type:numeric(10,2)" json:"estimated_price"`
	FinalPrice     *decimal.Decimal `gorm:"type:numeric(10,2)" json:"final_price"`
	PriceNote      string           `json:"price_note"`

	Status      string     `gorm:"default:pending" json:"status"`
	AdminNotes  string     `json:"admin_notes"`
	ConfirmedAt *time.Time `json:"confirmed_at"`

	Decorations     []CustomCakeOrderDecoration `gorm:"foreignKey:CustomOrderID;constraint:OnDelete:CASCADE" json:"decorations,omitempty"`
	ReferenceImages []CustomCakeReferenceImage  `gorm:"foreignKey:CustomOrderID;constraint:OnDelete:CASCADE" json:"reference_images,omitempty"`
}
