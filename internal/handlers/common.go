package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/example/cakeshop/internal/middleware"
	"github.com/example/cakeshop/internal/models"
	"github.com/example/cakeshop/internal/pricing"
	"github.com/example/cakeshop/internal/utils"
)

func currentUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	return middleware.GetCurrentUserID(c)
}

// priceLookup adapts the product price table to the pricing package's
// lookup contract.
func priceLookup(db *gorm.DB) pricing.PriceLookup {
	return func(productID, sizeID uuid.UUID) (decimal.Decimal, bool) {
		var price models.ProductPrice
		err := db.Where("product_id = ? AND size_id = ?", productID, sizeID).
			First(&price).Error
		if err != nil {
			return decimal.Zero, false
		}
		return price.Price, true
	}
}

func paginated(c *fiber.Ctx, pg utils.Pagination, total int64, data interface{}) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// Generic helpers for simple lookup tables.

func listSimple(c *fiber.Ctx, db *gorm.DB, model interface{}) error {
	pg := utils.ParsePagination(c)
	var total int64
	if err := db.Model(model).Count(&total).Error; err != nil {
		return err
	}
	if err := db.Limit(pg.Limit).Offset(pg.Offset).Order("created_at desc").
		Find(model).Error; err != nil {
		return err
	}
	return paginated(c, pg, total, model)
}

func getSimple(c *fiber.Ctx, db *gorm.DB, model interface{}) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	if err := db.First(model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "resource not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": model})
}

func createSimple(c *fiber.Ctx, db *gorm.DB, model interface{}) error {
	if err := c.BodyParser(model); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := db.Create(model).Error; err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": model})
}

func updateSimple(c *fiber.Ctx, db *gorm.DB, model interface{}) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	if err := db.First(model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "resource not found")
		}
		return err
	}
	if err := c.BodyParser(model); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := db.Save(model).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": model})
}

func deleteSimple(c *fiber.Ctx, db *gorm.DB, model interface{}) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	if err := db.Delete(model, "id = ?", id).Error; err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
