package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/cakeshop/internal/models"
	"github.com/example/cakeshop/internal/utils"
)

// CatalogHandler manages catalog lookup tables: categories, subcategories,
// sizes and events.
type CatalogHandler struct {
	db *gorm.DB
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(db *gorm.DB) *CatalogHandler {
	return &CatalogHandler{db: db}
}

// ListCategories returns paginated categories with their subcategories.
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	var categories []models.Category
	var total int64

	if err := h.db.Model(&models.Category{}).Count(&total).Error; err != nil {
		return err
	}

	query := h.db.Preload("Subcategories")
	if c.Query("is_cake") == "true" {
		query = query.Where("is_cake = ?", true)
	}
	if err := query.Limit(pg.Limit).Offset(pg.Offset).Order("created_at desc").
		Find(&categories).Error; err != nil {
		return err
	}

	return paginated(c, pg, total, categories)
}

func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var category models.Category
	if err := h.db.Preload("Subcategories").First(&category, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "category not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": category})
}

func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var category models.Category
	return createSimple(c, h.db, &category)
}

func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	var category models.Category
	return updateSimple(c, h.db, &category)
}

func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	return deleteSimple(c, h.db, &models.Category{})
}

func (h *CatalogHandler) ListSubcategories(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	var items []models.Subcategory
	var total int64

	query := h.db.Model(&models.Subcategory{})
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if err := query.Count(&total).Error; err != nil {
		return err
	}
	if err := query.Preload("Category").Limit(pg.Limit).Offset(pg.Offset).
		Order("created_at desc").Find(&items).Error; err != nil {
		return err
	}

	return paginated(c, pg, total, items)
}

func (h *CatalogHandler) GetSubcategory(c *fiber.Ctx) error {
	var item models.Subcategory
	return getSimple(c, h.db.Preload("Category"), &item)
}

func (h *CatalogHandler) CreateSubcategory(c *fiber.Ctx) error {
	var item models.Subcategory
	return createSimple(c, h.db, &item)
}

func (h *CatalogHandler) UpdateSubcategory(c *fiber.Ctx) error {
	var item models.Subcategory
	return updateSimple(c, h.db, &item)
}

func (h *CatalogHandler) DeleteSubcategory(c *fiber.Ctx) error {
	return deleteSimple(c, h.db, &models.Subcategory{})
}

// ListSizes returns sizes ordered for display; ?category_id= filters to
// sizes attached to that category.
func (h *CatalogHandler) ListSizes(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	var sizes []models.Size
	var total int64

	query := h.db.Model(&models.Size{})
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Joins("JOIN size_categories ON size_categories.size_id = sizes.id").
			Where("size_categories.category_id = ?", categoryID)
	}
	if err := query.Count(&total).Error; err != nil {
		return err
	}
	if err := query.Limit(pg.Limit).Offset(pg.Offset).
		Order("display_order asc").Find(&sizes).Error; err != nil {
		return err
	}

	return paginated(c, pg, total, sizes)
}

func (h *CatalogHandler) GetSize(c *fiber.Ctx) error {
	var size models.Size
	return getSimple(c, h.db.Preload("Categories"), &size)
}

func (h *CatalogHandler) CreateSize(c *fiber.Ctx) error {
	var size models.Size
	return createSimple(c, h.db, &size)
}

func (h *CatalogHandler) UpdateSize(c *fiber.Ctx) error {
	var size models.Size
	return updateSimple(c, h.db, &size)
}

func (h *CatalogHandler) DeleteSize(c *fiber.Ctx) error {
	return deleteSimple(c, h.db, &models.Size{})
}

func (h *CatalogHandler) ListEvents(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	var events []models.Event
	var total int64

	if err := h.db.Model(&models.Event{}).Count(&total).Error; err != nil {
		return err
	}
	if err := h.db.Preload("Suggestions").Limit(pg.Limit).Offset(pg.Offset).
		Order("created_at desc").Find(&events).Error; err != nil {
		return err
	}

	return paginated(c, pg, total, events)
}

func (h *CatalogHandler) GetEvent(c *fiber.Ctx) error {
	var event models.Event
	return getSimple(c, h.db.Preload("Suggestions"), &event)
}

func (h *CatalogHandler) CreateEvent(c *fiber.Ctx) error {
	var event models.Event
	return createSimple(c, h.db, &event)
}

func (h *CatalogHandler) UpdateEvent(c *fiber.Ctx) error {
	var event models.Event
	return updateSimple(c, h.db, &event)
}

func (h *CatalogHandler) DeleteEvent(c *fiber.Ctx) error {
	return deleteSimple(c, h.db, &models.Event{})
}

// AddEventSuggestion attaches a suggested item to an event.
func (h *CatalogHandler) AddEventSuggestion(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var suggestion models.EventSuggestion
	if err := c.BodyParser(&suggestion); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	suggestion.EventID = eventID

	if err := h.db.Create(&suggestion).Error; err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": suggestion})
}
