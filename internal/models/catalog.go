package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Category struct {
	BaseModel
	Name        string `gorm:"uniqueIndex" json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`
	// IsCake marks categories whose products can be picked as the flavor
	// base in the custom cake builder.
	IsCake        bool          `json:"is_cake"`
	Subcategories []Subcategory `json:"subcategories,omitempty"`
}

type Subcategory struct {
	BaseModel
	CategoryID  uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_subcategory_name" json:"category_id"`
	Category    *Category `json:"category,omitempty"`
	Name        string    `gorm:"uniqueIndex:idx_subcategory_name" json:"name"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
}

// Size is a sellable weight option, e.g. "½ kg", "1 kg".
type Size struct {
	BaseModel
	Name         string          `gorm:"uniqueIndex" json:"name"`
	WeightInKg   decimal.Decimal `gorm:"type:numeric(5,2)" json:"weight_in_kg"`
	DisplayOrder int             `json:"display_order"`
	IsActive     bool            `gorm:"default:true" json:"is_active"`
	Categories   []Category      `gorm:"many2many:size_categories;" json:"categories,omitempty"`
}

// Event is an occasion (Birthday, Wedding) used for order tagging and
// item suggestions.
type Event struct {
	BaseModel
	EventName   string            `gorm:"uniqueIndex" json:"event_name"`
	Description string            `json:"description"`
	Icon        string            `json:"icon"`
	IsActive    bool              `gorm:"default:true" json:"is_active"`
	Suggestions []EventSuggestion `json:"suggestions,omitempty"`
}

type EventSuggestion struct {
	BaseModel
	EventID       uuid.UUID `gorm:"type:uuid;index" json:"event_id"`
	SuggestedItem string    `json:"suggested_item"`
	Note          string    `json:"note"`
}
