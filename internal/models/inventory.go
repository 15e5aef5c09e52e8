package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ingredient units.
const (
	UnitKilogram   = "kg"
	UnitGram       = "g"
	UnitLiter      = "l"
	UnitMilliliter = "ml"
	UnitPieces     = "pcs"
	UnitDozen      = "dozen"
	UnitPacket     = "packet"
)

type Ingredient struct {
	BaseModel
	Name            string          `gorm:"uniqueIndex" json:"name"`
	CurrentQuantity decimal.Decimal `gorm:"type:numeric(10,2)" json:"current_quantity"`
	Unit            string          `json:"unit"`
	ReorderLevel    decimal.Decimal `gorm:"type:numeric(10,2)" json:"reorder_level"`
	Notes           string          `json:"notes"`
}

// IsLowStock reports whether the quantity has fallen to the reorder level.
func (i *Ingredient) IsLowStock() bool {
	return i.CurrentQuantity.LessThanOrEqual(i.ReorderLevel)
}

// PurchaseBill records a supplier expense.
type PurchaseBill struct {
	BaseModel
	SupplierName string          `json:"supplier_name"`
	Date         time.Time       `json:"date"`
	TotalAmount  decimal.Decimal `gorm:"type:numeric(10,2)" json:"total_amount"`
	Notes        string          `json:"notes"`
	BillUpload   string          `json:"bill_upload"`
}
