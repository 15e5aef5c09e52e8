package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/example/cakeshop/internal/loyalty"
	"github.com/example/cakeshop/internal/models"
	"github.com/example/cakeshop/internal/services"
	"github.com/example/cakeshop/internal/utils"
)

// OrderHandler manages regular product orders.
type OrderHandler struct {
	db       *gorm.DB
	loyalty  *loyalty.Service
	whatsapp *services.WhatsAppService
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(db *gorm.DB, loyaltySvc *loyalty.Service, whatsapp *services.WhatsAppService) *OrderHandler {
	return &OrderHandler{db: db, loyalty: loyaltySvc, whatsapp: whatsapp}
}

type createOrderRequest struct {
	Customer            customerInput           `json:"customer"`
	ProductID           uuid.UUID               `json:"product_id"`
	SizeID              uuid.UUID               `json:"size_id"`
	Quantity            int                     `json:"quantity"`
	EventID             *uuid.UUID              `json:"event_id"`
	CustomMessage       string                  `json:"custom_message"`
	SpecialInstructions string                  `json:"special_instructions"`
	DeliveryDate        string                  `json:"delivery_date"`
	DeliveryTime        *string                 `json:"delivery_time"`
	Checkout            *loyalty.CheckoutIntent `json:"checkout"`
}

// CreateOrder places a regular order. The unit price comes from the
// product+size price table and degrades to zero when no row exists; an
// optional checkout block redeems a reward and/or points against the order.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Customer.PhoneNumber == "" {
		return fiber.NewError(fiber.StatusBadRequest, "customer phone_number is required")
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	deliveryDate, err := time.Parse("2006-01-02", req.DeliveryDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "delivery_date must be YYYY-MM-DD")
	}

	var order models.Order
	var customer *models.Customer

	err = h.db.Transaction(func(tx *gorm.DB) error {
		customer, err = upsertCustomer(tx, req.Customer)
		if err != nil {
			return err
		}

		unitPrice := decimal.Zero
		var price models.ProductPrice
		err := tx.Where("product_id = ? AND size_id = ?", req.ProductID, req.SizeID).
			First(&price).Error
		if err == nil {
			unitPrice = price.Price
		} else if err != gorm.ErrRecordNotFound {
			return err
		}

		number, err := models.NextOrderNumber(tx)
		if err != nil {
			return err
		}

		order = models.Order{
			OrderNumber:         number,
			CustomerID:          customer.ID,
			ProductID:           req.ProductID,
			SizeID:              req.SizeID,
			Quantity:            req.Quantity,
			EventID:             req.EventID,
			CustomMessage:       req.CustomMessage,
			SpecialInstructions: req.SpecialInstructions,
			Status:              models.OrderStatusPending,
			DeliveryDate:        deliveryDate,
			DeliveryTime:        req.DeliveryTime,
			UnitPrice:           unitPrice,
			TotalPrice:          unitPrice.Mul(decimal.NewFromInt(int64(req.Quantity))).RoundBank(2),
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return err
	}

	response := fiber.Map{"success": true, "data": order}

	if req.Checkout != nil {
		result, err := h.loyalty.ApplyCheckout(customer.ID, order.ID, *req.Checkout)
		if err != nil {
			return err
		}
		response["checkout"] = result
	}

	if h.whatsapp != nil {
		_ = h.whatsapp.NotifyOrderConfirmed(customer.PhoneNumber, customer.Name, order.OrderNumber, order.TotalPrice)
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

// ListOrders returns paginated orders; ?status= and ?customer_id= filter.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	var orders []models.Order
	var total int64

	query := h.db.Model(&models.Order{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return err
	}
	if err := query.Preload("Customer").Preload("Product").Preload("Size").Preload("Event").
		Limit(pg.Limit).Offset(pg.Offset).Order("created_at desc").
		Find(&orders).Error; err != nil {
		return err
	}

	return paginated(c, pg, total, orders)
}

func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var order models.Order
	err = h.db.Preload("Customer").Preload("Product").Preload("Size").Preload("Event").
		First(&order, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus moves an order through its lifecycle. The completed
// transition runs through the loyalty service so accrual happens exactly
// once; a completed order never changes status again.
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var order models.Order
	if err := h.db.First(&order, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	if order.CompletedAt != nil {
		return fiber.NewError(fiber.StatusConflict, "order is already completed")
	}

	switch req.Status {
	case models.OrderStatusCompleted:
		if err := h.loyalty.CompleteOrder(order.ID); err != nil {
			return err
		}
	case models.OrderStatusPending, models.OrderStatusConfirmed,
		models.OrderStatusPreparing, models.OrderStatusReady,
		models.OrderStatusCancelled:
		if err := h.db.Model(&order).Update("status", req.Status).Error; err != nil {
			return err
		}
	default:
		return fiber.NewError(fiber.StatusBadRequest, "invalid status")
	}

	if err := h.db.First(&order, "id = ?", id).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": order})
}
