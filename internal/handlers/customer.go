package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/cakeshop/internal/models"
	"github.com/example/cakeshop/internal/utils"
)

// customerInput is the inline customer block accepted by every order
// creation endpoint. Customers are keyed by phone number; an existing
// record is refreshed with any newly supplied details.
type customerInput struct {
	Name           string `json:"name"`
	PhoneNumber    string `json:"phone_number"`
	WhatsappNumber string `json:"whatsapp_number"`
	Email          string `json:"email"`
	Address        string `json:"address"`
	DateOfBirth    string `json:"date_of_birth"`
}

func upsertCustomer(tx *gorm.DB, input customerInput) (*models.Customer, error) {
	var customer models.Customer
	err := tx.Where("phone_number = ?", input.PhoneNumber).First(&customer).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}

	if err == gorm.ErrRecordNotFound {
		customer = models.Customer{PhoneNumber: input.PhoneNumber}
	}

	if input.Name != "" {
		customer.Name = input.Name
	}
	if input.WhatsappNumber != "" {
		customer.WhatsappNumber = input.WhatsappNumber
	}
	if input.Email != "" {
		customer.Email = input.Email
	}
	if input.Address != "" {
		customer.Address = input.Address
	}
	if input.DateOfBirth != "" {
		if dob, parseErr := time.Parse("2006-01-02", input.DateOfBirth); parseErr == nil {
			customer.DateOfBirth = &dob
		}
	}

	if err := tx.Save(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// CustomerHandler exposes the customer directory to the back office.
type CustomerHandler struct {
	db *gorm.DB
}

// NewCustomerHandler constructs CustomerHandler.
func NewCustomerHandler(db *gorm.DB) *CustomerHandler {
	return &CustomerHandler{db: db}
}

// ListCustomers returns paginated customers; ?phone= filters by partial
// phone match.
func (h *CustomerHandler) ListCustomers(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	var customers []models.Customer
	var total int64

	query := h.db.Model(&models.Customer{})
	if phone := c.Query("phone"); phone != "" {
		query = query.Where("phone_number LIKE ?", "%"+phone+"%")
	}
	if err := query.Count(&total).Error; err != nil {
		return err
	}
	if err := query.Preload("LoyaltyCard").Limit(pg.Limit).Offset(pg.Offset).
		Order("created_at desc").Find(&customers).Error; err != nil {
		return err
	}

	return paginated(c, pg, total, customers)
}

// GetCustomer returns one customer with loyalty card and WhatsApp link.
func (h *CustomerHandler) GetCustomer(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var customer models.Customer
	if err := h.db.Preload("LoyaltyCard").First(&customer, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "customer not found")
		}
		return err
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"data":          customer,
		"whatsapp_link": customer.WhatsAppLink(),
	})
}

// UpdateCustomer updates customer details.
func (h *CustomerHandler) UpdateCustomer(c *fiber.Ctx) error {
	var customer models.Customer
	return updateSimple(c, h.db, &customer)
}
