package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order statuses shared by regular and gift box orders. Custom cake orders
// add the quoting states below.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"

	OrderStatusQuoted           = "quoted"
	OrderStatusCustomerApproved = "customer_approved"
)

// Order is a regular product order. Unit price comes from the ProductPrice
// table at creation time; a missing row prices the line at zero.
type Order struct {
	BaseModel
	OrderNumber         string          `gorm:"uniqueIndex" json:"order_number"`
	CustomerID          uuid.UUID       `gorm:"type:uuid;index" json:"customer_id"`
	Customer            *Customer       `json:"customer,omitempty"`
	ProductID           uuid.UUID       `gorm:"type:uuid" json:"product_id"`
	Product             *Product        `json:"product,omitempty"`
	SizeID              uuid.UUID       `gorm:"type:uuid" json:"size_id"`
	Size                *Size           `json:"size,omitempty"`
	Quantity            int             `gorm:"default:1" json:"quantity"`
	EventID             *uuid.UUID      `gorm:"type:uuid" json:"event_id"`
	Event               *Event          `json:"event,omitempty"`
	CustomMessage       string          `json:"custom_message"`
	SpecialInstructions string          `json:"special_instructions"`
	Status              string          `gorm:"default:pending" json:"status"`
	DeliveryDate        time.Time       `json:"delivery_date"`
	DeliveryTime        *string         `json:"delivery_time"`
	UnitPrice           decimal.Decimal `gorm:"type:numeric(10,2)" json:"unit_price"`
	TotalPrice          decimal.Decimal `gorm:"type:numeric(10,2)" json:"total_price"`
	// CompletedAt records the pending→completed edge so loyalty accrual
	// runs at most once per order.
	CompletedAt *time.Time `json:"completed_at"`
}
