package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/cakeshop/internal/models"
	"github.com/example/cakeshop/internal/utils"
)

// EnquiryHandler manages contact enquiries and product reviews.
type EnquiryHandler struct {
	db *gorm.DB
}

// NewEnquiryHandler constructs EnquiryHandler.
func NewEnquiryHandler(db *gorm.DB) *EnquiryHandler {
	return &EnquiryHandler{db: db}
}

// CreateEnquiry records a contact-form submission.
func (h *EnquiryHandler) CreateEnquiry(c *fiber.Ctx) error {
	var enquiry models.Enquiry
	if err := c.BodyParser(&enquiry); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if enquiry.Phone == "" && enquiry.Email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "phone or email is required")
	}

	if err := h.db.Create(&enquiry).Error; err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": enquiry})
}

// ListEnquiries returns paginated enquiries; ?responded=false shows the
// open ones.
func (h *EnquiryHandler) ListEnquiries(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	var enquiries []models.Enquiry
	var total int64

	query := h.db.Model(&models.Enquiry{})
	if responded := c.Query("responded"); responded != "" {
		query = query.Where("is_responded = ?", responded == "true")
	}
	if err := query.Count(&total).Error; err != nil {
		return err
	}
	if err := query.Limit(pg.Limit).Offset(pg.Offset).Order("created_at desc").
		Find(&enquiries).Error; err != nil {
		return err
	}

	return paginated(c, pg, total, enquiries)
}

type respondRequest struct {
	Response string `json:"response"`
}

// RespondEnquiry records the shop's response and marks the enquiry closed.
func (h *EnquiryHandler) RespondEnquiry(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req respondRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var enquiry models.Enquiry
	if err := h.db.First(&enquiry, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "enquiry not found")
		}
		return err
	}

	enquiry.Response = req.Response
	enquiry.IsResponded = true
	if err := h.db.Save(&enquiry).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": enquiry})
}

// CreateReview records a customer review, unapproved until moderated.
func (h *EnquiryHandler) CreateReview(c *fiber.Ctx) error {
	var review models.Review
	if err := c.BodyParser(&review); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if review.Rating < 1 || review.Rating > 5 {
		return fiber.NewError(fiber.StatusBadRequest, "rating must be between 1 and 5")
	}

	review.IsApproved = false
	if err := h.db.Create(&review).Error; err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": review})
}

// ListReviews returns approved reviews; ?product_id= filters, ?all=true
// includes unapproved ones for moderation.
func (h *EnquiryHandler) ListReviews(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	var reviews []models.Review
	var total int64

	query := h.db.Model(&models.Review{})
	if c.Query("all") != "true" {
		query = query.Where("is_approved = ?", true)
	}
	if productID := c.Query("product_id"); productID != "" {
		query = query.Where("product_id = ?", productID)
	}
	if err := query.Count(&total).Error; err != nil {
		return err
	}
	if err := query.Preload("Product").Limit(pg.Limit).Offset(pg.Offset).
		Order("created_at desc").Find(&reviews).Error; err != nil {
		return err
	}

	return paginated(c, pg, total, reviews)
}

// ApproveReview publishes a review.
func (h *EnquiryHandler) ApproveReview(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.db.Model(&models.Review{}).Where("id = ?", id).
		Update("is_approved", true).Error; err != nil {
		return err
	}

	var review models.Review
	if err := h.db.First(&review, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "review not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": review})
}

func (h *EnquiryHandler) DeleteReview(c *fiber.Ctx) error {
	return deleteSimple(c, h.db, &models.Review{})
}
