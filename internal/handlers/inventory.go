package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/example/cakeshop/internal/models"
	"github.com/example/cakeshop/internal/utils"
)

// InventoryHandler manages ingredients and purchase bills.
type InventoryHandler struct {
	db *gorm.DB
}

// NewInventoryHandler constructs InventoryHandler.
func NewInventoryHandler(db *gorm.DB) *InventoryHandler {
	return &InventoryHandler{db: db}
}

// ListIngredients returns all ingredients with their low-stock flag.
func (h *InventoryHandler) ListIngredients(c *fiber.Ctx) error {
	var ingredients []models.Ingredient
	if err := h.db.Order("name asc").Find(&ingredients).Error; err != nil {
		return err
	}

	data := make([]fiber.Map, 0, len(ingredients))
	for i := range ingredients {
		data = append(data, fiber.Map{
			"ingredient":   ingredients[i],
			"is_low_stock": ingredients[i].IsLowStock(),
		})
	}

	return c.JSON(fiber.Map{"success": true, "data": data})
}

// LowStock returns only the ingredients at or below reorder level.
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	var ingredients []models.Ingredient
	if err := h.db.Where("current_quantity <= reorder_level").
		Order("name asc").Find(&ingredients).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": ingredients})
}

func (h *InventoryHandler) CreateIngredient(c *fiber.Ctx) error {
	var ingredient models.Ingredient
	return createSimple(c, h.db, &ingredient)
}

func (h *InventoryHandler) UpdateIngredient(c *fiber.Ctx) error {
	var ingredient models.Ingredient
	return updateSimple(c, h.db, &ingredient)
}

func (h *InventoryHandler) DeleteIngredient(c *fiber.Ctx) error {
	return deleteSimple(c, h.db, &models.Ingredient{})
}

type adjustStockRequest struct {
	Delta decimal.Decimal `json:"delta"`
	Notes string          `json:"notes"`
}

// AdjustStock applies a signed quantity delta to an ingredient. Stock
// never goes below zero.
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req adjustStockRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var ingredient models.Ingredient
	if err := h.db.First(&ingredient, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "ingredient not found")
		}
		return err
	}

	ingredient.CurrentQuantity = ingredient.CurrentQuantity.Add(req.Delta)
	if ingredient.CurrentQuantity.IsNegative() {
		ingredient.CurrentQuantity = decimal.Zero
	}
	if req.Notes != "" {
		ingredient.Notes = req.Notes
	}
	if err := h.db.Save(&ingredient).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"data":         ingredient,
		"is_low_stock": ingredient.IsLowStock(),
	})
}

// ListBills returns paginated purchase bills newest first.
func (h *InventoryHandler) ListBills(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	var bills []models.PurchaseBill
	var total int64

	if err := h.db.Model(&models.PurchaseBill{}).Count(&total).Error; err != nil {
		return err
	}
	if err := h.db.Limit(pg.Limit).Offset(pg.Offset).Order("date desc").
		Find(&bills).Error; err != nil {
		return err
	}

	return paginated(c, pg, total, bills)
}

func (h *InventoryHandler) CreateBill(c *fiber.Ctx) error {
	var bill models.PurchaseBill
	return createSimple(c, h.db, &bill)
}

func (h *InventoryHandler) UpdateBill(c *fiber.Ctx) error {
	var bill models.PurchaseBill
	return updateSimple(c, h.db, &bill)
}

func (h *InventoryHandler) DeleteBill(c *fiber.Ctx) error {
	return deleteSimple(c, h.db, &models.PurchaseBill{})
}
