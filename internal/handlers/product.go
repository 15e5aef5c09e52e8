package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/example/cakeshop/internal/models"
	"github.com/example/cakeshop/internal/utils"
)

// ProductHandler manages products, their images and per-size prices.
type ProductHandler struct {
	db *gorm.DB
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{db: db}
}

// ListProducts returns paginated products with relations; supports
// ?category_id=, ?subcategory_id= and ?is_active= filters.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	var products []models.Product
	var total int64

	query := h.db.Model(&models.Product{})
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if subcategoryID := c.Query("subcategory_id"); subcategoryID != "" {
		query = query.Where("subcategory_id = ?", subcategoryID)
	}
	if c.Query("is_active") == "true" {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return err
	}
	if err := query.Preload("Category").Preload("Subcategory").
		Preload("Sizes").Preload("Prices").Preload("Images").
		Limit(pg.Limit).Offset(pg.Offset).Order("created_at desc").
		Find(&products).Error; err != nil {
		return err
	}

	return paginated(c, pg, total, products)
}

func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var product models.Product
	err = h.db.Preload("Category").Preload("Subcategory").
		Preload("Sizes").Preload("Prices").Preload("Prices.Size").Preload("Images").
		First(&product, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": product})
}

func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var product models.Product
	return createSimple(c, h.db, &product)
}

func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	var product models.Product
	return updateSimple(c, h.db, &product)
}

func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	return deleteSimple(c, h.db, &models.Product{})
}

type setPriceRequest struct {
	SizeID uuid.UUID       `json:"size_id"`
	Price  decimal.Decimal `json:"price"`
}

// SetPrice creates or updates the price for one product+size combination.
func (h *ProductHandler) SetPrice(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req setPriceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.SizeID == uuid.Nil {
		return fiber.NewError(fiber.StatusBadRequest, "size_id is required")
	}

	var price models.ProductPrice
	err = h.db.Where("product_id = ? AND size_id = ?", productID, req.SizeID).
		First(&price).Error
	switch err {
	case nil:
		price.Price = req.Price
		if err := h.db.Save(&price).Error; err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "data": price})
	case gorm.ErrRecordNotFound:
		price = models.ProductPrice{
			ProductID: productID,
			SizeID:    req.SizeID,
			Price:     req.Price,
		}
		if err := h.db.Create(&price).Error; err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": price})
	default:
		return err
	}
}

// ListPrices returns all per-size prices of a product.
func (h *ProductHandler) ListPrices(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var prices []models.ProductPrice
	if err := h.db.Preload("Size").Where("product_id = ?", productID).
		Find(&prices).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": prices})
}

// AddImage attaches a gallery image to a product.
func (h *ProductHandler) AddImage(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var image models.ProductImage
	if err := c.BodyParser(&image); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	image.ProductID = productID

	if err := h.db.Create(&image).Error; err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": image})
}

func (h *ProductHandler) DeleteImage(c *fiber.Ctx) error {
	imageID, err := uuid.Parse(c.Params("imageId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	if err := h.db.Delete(&models.ProductImage{}, "id = ?", imageID).Error; err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
