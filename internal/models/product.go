package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	CategoryID    uuid.UUID      `gorm:"type:uuid;index" json:"category_id"`
	Category      *Category      `json:"category,omitempty"`
	SubcategoryID *uuid.UUID     `gorm:"type:uuid" json:"subcategory_id"`
	Subcategory   *Subcategory   `json:"subcategory,omitempty"`
	MainImage     string         `json:"main_image"`
	IsActive      bool           `gorm:"default:true" json:"is_active"`
	Sizes         []Size         `gorm:"many2many:product_sizes;" json:"sizes,omitempty"`
	Prices        []ProductPrice `json:"prices,omitempty"`
	Images        []ProductImage `json:"images,omitempty"`
}

type ProductImage struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	Image     string    `json:"image"`
	Caption   string    `json:"caption"`
}

// ProductPrice is the price for one product+size combination. Pricing code
// treats a missing row as a zero price rather than an error.
type ProductPrice struct {
	BaseModel
	ProductID uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_product_size" json:"product_id"`
	Product   *Product        `json:"product,omitempty"`
	SizeID    uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_product_size" json:"size_id"`
	Size      *Size           `json:"size,omitempty"`
	Price     decimal.Decimal `gorm:"type:numeric(10,2)" json:"price"`
}
