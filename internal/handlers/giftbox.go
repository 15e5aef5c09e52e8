package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/example/cakeshop/internal/loyalty"
	"github.com/example/cakeshop/internal/models"
	"github.com/example/cakeshop/internal/pricing"
	"github.com/example/cakeshop/internal/services"
	"github.com/example/cakeshop/internal/utils"
)

// GiftBoxHandler manages gift boxes, their items and gift box orders.
type GiftBoxHandler struct {
	db       *gorm.DB
	loyalty  *loyalty.Service
	whatsapp *services.WhatsAppService
}

// NewGiftBoxHandler constructs GiftBoxHandler.
func NewGiftBoxHandler(db *gorm.DB, loyaltySvc *loyalty.Service, whatsapp *services.WhatsAppService) *GiftBoxHandler {
	return &GiftBoxHandler{db: db, loyalty: loyaltySvc, whatsapp: whatsapp}
}

// ListGiftBoxes returns paginated boxes with items and computed totals.
func (h *GiftBoxHandler) ListGiftBoxes(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	var boxes []models.GiftBox
	var total int64

	query := h.db.Model(&models.GiftBox{})
	if c.Query("is_active") == "true" {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Count(&total).Error; err != nil {
		return err
	}
	if err := query.Preload("Items").Preload("Items.Product").Preload("Items.Size").
		Limit(pg.Limit).Offset(pg.Offset).Order("display_order asc").
		Find(&boxes).Error; err != nil {
		return err
	}

	lookup := priceLookup(h.db)
	data := make([]fiber.Map, 0, len(boxes))
	for i := range boxes {
		specs := pricing.GiftBoxSpecs(&boxes[i], lookup)
		data = append(data, fiber.Map{
			"gift_box":    boxes[i],
			"total_price": pricing.GiftBoxTotal(boxes[i].PricingType, boxes[i].FixedPrice, boxes[i].DiscountPercentage, specs),
			"items_count": pricing.GiftBoxItemsCount(specs),
		})
	}

	return paginated(c, pg, total, data)
}

// GetGiftBox returns one box with its priced items.
func (h *GiftBoxHandler) GetGiftBox(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var box models.GiftBox
	err = h.db.Preload("Items").Preload("Items.Product").Preload("Items.Size").
		First(&box, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "gift box not found")
		}
		return err
	}

	specs := pricing.GiftBoxSpecs(&box, priceLookup(h.db))
	return c.JSON(fiber.Map{
		"success":     true,
		"data":        box,
		"total_price": pricing.GiftBoxTotal(box.PricingType, box.FixedPrice, box.DiscountPercentage, specs),
		"items_count": pricing.GiftBoxItemsCount(specs),
	})
}

func (h *GiftBoxHandler) CreateGiftBox(c *fiber.Ctx) error {
	var box models.GiftBox
	return createSimple(c, h.db, &box)
}

func (h *GiftBoxHandler) UpdateGiftBox(c *fiber.Ctx) error {
	var box models.GiftBox
	return updateSimple(c, h.db, &box)
}

func (h *GiftBoxHandler) DeleteGiftBox(c *fiber.Ctx) error {
	return deleteSimple(c, h.db, &models.GiftBox{})
}

type giftBoxItemRequest struct {
	ProductID    uuid.UUID `json:"product_id"`
	SizeID       uuid.UUID `json:"size_id"`
	Quantity     int       `json:"quantity"`
	DisplayOrder int       `json:"display_order"`
}

// AddItem attaches a product+size line to a box. A line already in the box
// is rejected with a warning rather than silently duplicated.
func (h *GiftBoxHandler) AddItem(c *fiber.Ctx) error {
	boxID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req giftBoxItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	var existing models.GiftBoxItem
	err = h.db.Where("gift_box_id = ? AND product_id = ? AND size_id = ?",
		boxID, req.ProductID, req.SizeID).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"warning": "this product and size is already in the box; update its quantity instead",
			"data":    existing,
		})
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	item := models.GiftBoxItem{
		GiftBoxID:    boxID,
		ProductID:    req.ProductID,
		SizeID:       req.SizeID,
		Quantity:     req.Quantity,
		DisplayOrder: req.DisplayOrder,
	}
	if err := h.db.Create(&item).Error; err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": item})
}

func (h *GiftBoxHandler) RemoveItem(c *fiber.Ctx) error {
	itemID, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	if err := h.db.Delete(&models.GiftBoxItem{}, "id = ?", itemID).Error; err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type giftBoxOrderRequest struct {
	Customer            customerInput `json:"customer"`
	GiftBoxID           uuid.UUID     `json:"gift_box_id"`
	Quantity            int           `json:"quantity"`
	EventID             *uuid.UUID    `json:"event_id"`
	SpecialInstructions string        `json:"special_instructions"`
	DeliveryDate        string        `json:"delivery_date"`
	DeliveryTime        *string       `json:"delivery_time"`
}

// CreateOrder places a gift box order priced by the box's pricing type.
func (h *GiftBoxHandler) CreateOrder(c *fiber.Ctx) error {
	var req giftBoxOrderRequest
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

	var order models.GiftBoxOrder
	var customer *models.Customer

	err = h.db.Transaction(func(tx *gorm.DB) error {
		customer, err = upsertCustomer(tx, req.Customer)
		if err != nil {
			return err
		}

		var box models.GiftBox
		if err := tx.Preload("Items").First(&box, "id = ?", req.GiftBoxID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "gift box not found")
			}
			return err
		}

		specs := pricing.GiftBoxSpecs(&box, priceLookup(tx))
		unitPrice := pricing.GiftBoxTotal(box.PricingType, box.FixedPrice, box.DiscountPercentage, specs)

		number, err := models.NextGiftBoxOrderNumber(tx)
		if err != nil {
			return err
		}

		order = models.GiftBoxOrder{
			OrderNumber:         number,
			CustomerID:          customer.ID,
			GiftBoxID:           box.ID,
			Quantity:            req.Quantity,
			EventID:             req.EventID,
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

	if h.whatsapp != nil {
		_ = h.whatsapp.NotifyOrderConfirmed(customer.PhoneNumber, customer.Name, order.OrderNumber, order.TotalPrice)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": order})
}

// ListOrders returns paginated gift box orders; ?status= filters.
func (h *GiftBoxHandler) ListOrders(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	var orders []models.GiftBoxOrder
	var total int64

	query := h.db.Model(&models.GiftBoxOrder{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return err
	}
	if err := query.Preload("Customer").Preload("GiftBox").
		Limit(pg.Limit).Offset(pg.Offset).Order("created_at desc").
		Find(&orders).Error; err != nil {
		return err
	}

	return paginated(c, pg, total, orders)
}

// UpdateOrderStatus mirrors the regular order lifecycle; completion runs
// through the loyalty service.
func (h *GiftBoxHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var order models.GiftBoxOrder
	if err := h.db.First(&order, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "gift box order not found")
		}
		return err
	}
	if order.CompletedAt != nil {
		return fiber.NewError(fiber.StatusConflict, "order is already completed")
	}

	switch req.Status {
	case models.OrderStatusCompleted:
		if err := h.loyalty.CompleteGiftBoxOrder(order.ID); err != nil {
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
