package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/example/cakeshop/internal/models"
	"github.com/example/cakeshop/internal/pricing"
	"github.com/example/cakeshop/internal/services"
	"github.com/example/cakeshop/internal/utils"
)

// CakeHandler manages the custom cake builder: shapes, tiers, flavors,
// decorations and the custom cake orders assembled from them.
type CakeHandler struct {
	db       *gorm.DB
	whatsapp *services.WhatsAppService
}

// NewCakeHandler constructs CakeHandler.
func NewCakeHandler(db *gorm.DB, whatsapp *services.WhatsAppService) *CakeHandler {
	return &CakeHandler{db: db, whatsapp: whatsapp}
}

// Builder catalog CRUD.

func (h *CakeHandler) ListShapes(c *fiber.Ctx) error {
	var shapes []models.CakeShape
	if err := h.db.Where("is_active = ?", true).Order("display_order asc").
		Find(&shapes).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": shapes})
}

func (h *CakeHandler) CreateShape(c *fiber.Ctx) error {
	var shape models.CakeShape
	return createSimple(c, h.db, &shape)
}

func (h *CakeHandler) UpdateShape(c *fiber.Ctx) error {
	var shape models.CakeShape
	return updateSimple(c, h.db, &shape)
}

func (h *CakeHandler) DeleteShape(c *fiber.Ctx) error {
	return deleteSimple(c, h.db, &models.CakeShape{})
}

func (h *CakeHandler) ListTiers(c *fiber.Ctx) error {
	var tiers []models.CakeTier
	if err := h.db.Where("is_active = ?", true).Order("display_order asc").
		Find(&tiers).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": tiers})
}

func (h *CakeHandler) CreateTier(c *fiber.Ctx) error {
	var tier models.CakeTier
	return createSimple(c, h.db, &tier)
}

func (h *CakeHandler) UpdateTier(c *fiber.Ctx) error {
	var tier models.CakeTier
	return updateSimple(c, h.db, &tier)
}

func (h *CakeHandler) DeleteTier(c *fiber.Ctx) error {
	return deleteSimple(c, h.db, &models.CakeTier{})
}

func (h *CakeHandler) ListFlavors(c *fiber.Ctx) error {
	var flavors []models.Flavor
	if err := h.db.Where("is_active = ?", true).Order("display_order asc").
		Find(&flavors).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": flavors})
}

func (h *CakeHandler) CreateFlavor(c *fiber.Ctx) error {
	var flavor models.Flavor
	return createSimple(c, h.db, &flavor)
}

func (h *CakeHandler) UpdateFlavor(c *fiber.Ctx) error {
	var flavor models.Flavor
	return updateSimple(c, h.db, &flavor)
}

func (h *CakeHandler) DeleteFlavor(c *fiber.Ctx) error {
	return deleteSimple(c, h.db, &models.Flavor{})
}

// ListDecorations returns active decorations; ?category= filters.
func (h *CakeHandler) ListDecorations(c *fiber.Ctx) error {
	query := h.db.Where("is_active = ?", true)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var decorations []models.Decoration
	if err := query.Order("display_order asc").Find(&decorations).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": decorations})
}

func (h *CakeHandler) CreateDecoration(c *fiber.Ctx) error {
	var decoration models.Decoration
	return createSimple(c, h.db, &decoration)
}

func (h *CakeHandler) UpdateDecoration(c *fiber.Ctx) error {
	var decoration models.Decoration
	return updateSimple(c, h.db, &decoration)
}

func (h *CakeHandler) DeleteDecoration(c *fiber.Ctx) error {
	return deleteSimple(c, h.db, &models.Decoration{})
}

// Custom cake orders.

type decorationInput struct {
	DecorationID uuid.UUID `json:"decoration_id"`
	Quantity     int       `json:"quantity"`
}

type customOrderRequest struct {
	Customer customerInput `json:"customer"`

	ShapeID     uuid.UUID       `json:"shape_id"`
	TierID      uuid.UUID       `json:"tier_id"`
	TotalWeight decimal.Decimal `json:"total_weight"`

	ProductID              *uuid.UUID        `json:"product_id"`
	SizeID                 *uuid.UUID        `json:"size_id"`
	FlavorID               *uuid.UUID        `json:"flavor_id"`
	FlavorDescription      string            `json:"flavor_description"`
	CustomFlavorPricePerKg *decimal.Decimal  `json:"custom_flavor_price_per_kg"`
	Decorations            []decorationInput `json:"decorations"`

	SpecialInstructions string     `json:"special_instructions"`
	CustomMessage       string     `json:"custom_message"`
	EventID             *uuid.UUID `json:"event_id"`
	DeliveryDate        string     `json:"delivery_date"`
	DeliveryTime        *string    `json:"delivery_time"`
	DeliveryAddress     string     `json:"delivery_address"`
	ReferenceImages     []string   `json:"reference_images"`
}

// CreateCustomOrder assembles a custom cake order, snapshots its estimate
// and returns the customer-facing price range.
func (h *CakeHandler) CreateCustomOrder(c *fiber.Ctx) error {
	var req customOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Customer.PhoneNumber == "" {
		return fiber.NewError(fiber.StatusBadRequest, "customer phone_number is required")
	}
	if req.TotalWeight.LessThanOrEqual(decimal.Zero) {
		return fiber.NewError(fiber.StatusBadRequest, "total_weight must be positive")
	}

	deliveryDate, err := time.Parse("2006-01-02", req.DeliveryDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "delivery_date must be YYYY-MM-DD")
	}

	var order models.CustomCakeOrder

	err = h.db.Transaction(func(tx *gorm.DB) error {
		customer, err := upsertCustomer(tx, req.Customer)
		if err != nil {
			return err
		}

		number, err := models.NextCustomOrderNumber(tx)
		if err != nil {
			return err
		}

		order = models.CustomCakeOrder{
			OrderNumber:            number,
			CustomerID:             customer.ID,
			ProductID:              req.ProductID,
			SizeID:                 req.SizeID,
			ShapeID:                req.ShapeID,
			TierID:                 req.TierID,
			TotalWeight:            req.TotalWeight,
			FlavorID:               req.FlavorID,
			FlavorDescription:      req.FlavorDescription,
			CustomFlavorPricePerKg: req.CustomFlavorPricePerKg,
			SpecialInstructions:    req.SpecialInstructions,
			CustomMessage:          req.CustomMessage,
			EventID:                req.EventID,
			DeliveryDate:           deliveryDate,
			DeliveryTime:           req.DeliveryTime,
			DeliveryAddress:        req.DeliveryAddress,
			Status:                 models.OrderStatusPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, line := range req.Decorations {
			quantity := line.Quantity
			if quantity <= 0 {
				quantity = 1
			}
			row := models.CustomCakeOrderDecoration{
				CustomOrderID: order.ID,
				DecorationID:  line.DecorationID,
				Quantity:      quantity,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for _, image := range req.ReferenceImages {
			row := models.CustomCakeReferenceImage{CustomOrderID: order.ID, Image: image}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		loaded, err := h.loadOrder(tx, order.ID)
		if err != nil {
			return err
		}
		spec := pricing.SpecFromOrder(loaded, priceLookup(tx))
		order = *loaded
		order.EstimatedPrice = pricing.Estimate(spec)
		return tx.Model(&models.CustomCakeOrder{}).Where("id = ?", order.ID).
			Update("estimated_price", order.EstimatedPrice).Error
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":     true,
		"data":        order,
		"price_range": pricing.Range(order.EstimatedPrice),
	})
}

func (h *CakeHandler) loadOrder(tx *gorm.DB, id uuid.UUID) (*models.CustomCakeOrder, error) {
	var order models.CustomCakeOrder
	err := tx.Preload("Customer").Preload("Product").Preload("Size").
		Preload("Shape").Preload("Tier").Preload("Flavor").Preload("Event").
		Preload("Decorations").Preload("Decorations.Decoration").
		Preload("ReferenceImages").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListCustomOrders returns paginated custom orders; ?status= filters.
func (h *CakeHandler) ListCustomOrders(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	var orders []models.CustomCakeOrder
	var total int64

	query := h.db.Model(&models.CustomCakeOrder{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return err
	}
	if err := query.Preload("Customer").Preload("Shape").Preload("Tier").
		Limit(pg.Limit).Offset(pg.Offset).Order("created_at desc").
		Find(&orders).Error; err != nil {
		return err
	}

	return paginated(c, pg, total, orders)
}

// GetCustomOrder returns the order with its recomputed price breakdown,
// range and display price.
func (h *CakeHandler) GetCustomOrder(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	order, err := h.loadOrder(h.db, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "custom order not found")
		}
		return err
	}

	spec := pricing.SpecFromOrder(order, priceLookup(h.db))
	breakdown := pricing.Breakdown(spec)

	return c.JSON(fiber.Map{
		"success":       true,
		"data":          order,
		"breakdown":     breakdown,
		"price_range":   pricing.Range(breakdown.Total),
		"display_price": pricing.DisplayPrice(order.FinalPrice, breakdown.Total),
	})
}

type estimateRequest struct {
	ShapeID     uuid.UUID       `json:"shape_id"`
	TierID      uuid.UUID       `json:"tier_id"`
	TotalWeight decimal.Decimal `json:"total_weight"`

	ProductID              *uuid.UUID        `json:"product_id"`
	SizeID                 *uuid.UUID        `json:"size_id"`
	FlavorID               *uuid.UUID        `json:"flavor_id"`
	FlavorDescription      string            `json:"flavor_description"`
	CustomFlavorPricePerKg *decimal.Decimal  `json:"custom_flavor_price_per_kg"`
	Decorations            []decorationInput `json:"decorations"`
}

// Estimate prices a cake configuration without saving anything, for the
// live builder preview.
func (h *CakeHandler) Estimate(c *fiber.Ctx) error {
	var req estimateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	draft := models.CustomCakeOrder{
		ProductID:              req.ProductID,
		SizeID:                 req.SizeID,
		ShapeID:                req.ShapeID,
		TierID:                 req.TierID,
		TotalWeight:            req.TotalWeight,
		FlavorID:               req.FlavorID,
		FlavorDescription:      req.FlavorDescription,
		CustomFlavorPricePerKg: req.CustomFlavorPricePerKg,
	}

	var shape models.CakeShape
	if err := h.db.First(&shape, "id = ?", req.ShapeID).Error; err == nil {
		draft.Shape = &shape
	} else if err != gorm.ErrRecordNotFound {
		return err
	}
	var tier models.CakeTier
	if err := h.db.First(&tier, "id = ?", req.TierID).Error; err == nil {
		draft.Tier = &tier
	} else if err != gorm.ErrRecordNotFound {
		return err
	}
	if req.ProductID != nil {
		var product models.Product
		if err := h.db.First(&product, "id = ?", *req.ProductID).Error; err == nil {
			draft.Product = &product
		} else if err != gorm.ErrRecordNotFound {
			return err
		}
	}
	if req.SizeID != nil {
		var size models.Size
		if err := h.db.First(&size, "id = ?", *req.SizeID).Error; err == nil {
			draft.Size = &size
		} else if err != gorm.ErrRecordNotFound {
			return err
		}
	}
	if req.FlavorID != nil {
		var flavor models.Flavor
		if err := h.db.First(&flavor, "id = ?", *req.FlavorID).Error; err == nil {
			draft.Flavor = &flavor
		} else if err != gorm.ErrRecordNotFound {
			return err
		}
	}
	for _, line := range req.Decorations {
		var decoration models.Decoration
		if err := h.db.First(&decoration, "id = ?", line.DecorationID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				continue
			}
			return err
		}
		quantity := line.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		draft.Decorations = append(draft.Decorations, models.CustomCakeOrderDecoration{
			DecorationID: decoration.ID,
			Decoration:   &decoration,
			Quantity:     quantity,
		})
	}

	spec := pricing.SpecFromOrder(&draft, priceLookup(h.db))
	breakdown := pricing.Breakdown(spec)

	return c.JSON(fiber.Map{
		"success":     true,
		"breakdown":   breakdown,
		"price_range": pricing.Range(breakdown.Total),
	})
}

// AddDecoration attaches one decoration line to an existing order. Adding a
// decoration that is already on the order bumps nothing and warns instead.
func (h *CakeHandler) AddDecoration(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var line decorationInput
	if err := c.BodyParser(&line); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if line.Quantity <= 0 {
		line.Quantity = 1
	}

	var existing models.CustomCakeOrderDecoration
	err = h.db.Where("custom_order_id = ? AND decoration_id = ?", orderID, line.DecorationID).
		First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"warning": "decoration already added to this order; update its quantity instead",
			"data":    existing,
		})
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	row := models.CustomCakeOrderDecoration{
		CustomOrderID: orderID,
		DecorationID:  line.DecorationID,
		Quantity:      line.Quantity,
	}
	if err := h.db.Create(&row).Error; err != nil {
		return err
	}
	if err := h.refreshEstimate(orderID); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": row})
}

// RemoveDecoration detaches a decoration line and refreshes the estimate.
func (h *CakeHandler) RemoveDecoration(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	decorationID, err := uuid.Parse(c.Params("decorationId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid decoration id")
	}

	err = h.db.Where("custom_order_id = ? AND decoration_id = ?", orderID, decorationID).
		Delete(&models.CustomCakeOrderDecoration{}).Error
	if err != nil {
		return err
	}
	if err := h.refreshEstimate(orderID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CakeHandler) refreshEstimate(orderID uuid.UUID) error {
	order, err := h.loadOrder(h.db, orderID)
	if err != nil {
		return err
	}
	estimate := pricing.Estimate(pricing.SpecFromOrder(order, priceLookup(h.db)))
	return h.db.Model(&models.CustomCakeOrder{}).Where("id = ?", orderID).
		Update("estimated_price", estimate).Error
}

type finalPriceRequest struct {
	FinalPrice decimal.Decimal `json:"final_price"`
	PriceNote  string          `json:"price_note"`
	AdminNotes string          `json:"admin_notes"`
}

// SetFinalPrice records the admin's quote, moves the order to quoted and
// notifies the customer over WhatsApp.
func (h *CakeHandler) SetFinalPrice(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req finalPriceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.FinalPrice.LessThanOrEqual(decimal.Zero) {
		return fiber.NewError(fiber.StatusBadRequest, "final_price must be positive")
	}

	order, err := h.loadOrder(h.db, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "custom order not found")
		}
		return err
	}

	order.FinalPrice = &req.FinalPrice
	order.PriceNote = req.PriceNote
	if req.AdminNotes != "" {
		order.AdminNotes = req.AdminNotes
	}
	order.Status = models.OrderStatusQuoted
	if err := h.db.Save(order).Error; err != nil {
		return err
	}

	if h.whatsapp != nil && order.Customer != nil {
		_ = h.whatsapp.NotifyCustomCakeQuote(order.Customer.PhoneNumber, order.Customer.Name,
			order.OrderNumber, req.FinalPrice, req.PriceNote)
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}

// UpdateCustomOrderStatus moves a custom order through its lifecycle.
// Approving the quote stamps confirmed_at.
func (h *CakeHandler) UpdateCustomOrderStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	valid := map[string]bool{
		models.OrderStatusPending:          true,
		models.OrderStatusQuoted:           true,
		models.OrderStatusCustomerApproved: true,
		models.OrderStatusConfirmed:        true,
		models.OrderStatusPreparing:        true,
		models.OrderStatusReady:            true,
		models.OrderStatusCompleted:        true,
		models.OrderStatusCancelled:        true,
	}
	if !valid[req.Status] {
		return fiber.NewError(fiber.StatusBadRequest, "invalid status")
	}

	var order models.CustomCakeOrder
	if err := h.db.First(&order, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "custom order not found")
		}
		return err
	}
	if order.Status == models.OrderStatusCompleted {
		return fiber.NewError(fiber.StatusConflict, "order is already completed")
	}

	order.Status = req.Status
	if req.Status == models.OrderStatusCustomerApproved && order.ConfirmedAt == nil {
		now := time.Now()
		order.ConfirmedAt = &now
	}
	if err := h.db.Save(&order).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}
