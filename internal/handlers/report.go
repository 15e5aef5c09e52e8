package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/cakeshop/internal/models"
)

// ReportHandler serves the admin dashboard aggregates.
type ReportHandler struct {
	db *gorm.DB
}

// NewReportHandler constructs ReportHandler.
func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{db: db}
}

// DashboardStats returns aggregate statistics across the three order
// streams plus loyalty and inventory signals.
func (h *ReportHandler) DashboardStats(c *fiber.Ctx) error {
	var totalCustomers int64
	if err := h.db.Model(&models.Customer{}).Count(&totalCustomers).Error; err != nil {
		return err
	}

	var totalOrders, totalCustomOrders, totalGiftBoxOrders int64
	if err := h.db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
		return err
	}
	if err := h.db.Model(&models.CustomCakeOrder{}).Count(&totalCustomOrders).Error; err != nil {
		return err
	}
	if err := h.db.Model(&models.GiftBoxOrder{}).Count(&totalGiftBoxOrders).Error; err != nil {
		return err
	}

	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	var statusCounts []statusCount
	if err := h.db.Model(&models.Order{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&statusCounts).Error; err != nil {
		return err
	}
	ordersByStatus := make(map[string]int64)
	for _, sc := range statusCounts {
		ordersByStatus[sc.Status] = sc.Count
	}

	var totalRevenue float64
	if err := h.db.Model(&models.Order{}).
		Where("status != ?", models.OrderStatusCancelled).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&totalRevenue).Error; err != nil {
		return err
	}

	var todayRevenue float64
	if err := h.db.Model(&models.Order{}).
		Where("status != ? AND created_at::date = CURRENT_DATE", models.OrderStatusCancelled).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&todayRevenue).Error; err != nil {
		return err
	}

	var pendingQuotes int64
	if err := h.db.Model(&models.CustomCakeOrder{}).
		Where("status = ?", models.OrderStatusPending).
		Count(&pendingQuotes).Error; err != nil {
		return err
	}

	var activeCards int64
	if err := h.db.Model(&models.LoyaltyCard{}).
		Where("is_active = ?", true).Count(&activeCards).Error; err != nil {
		return err
	}

	var lowStock int64
	if err := h.db.Model(&models.Ingredient{}).
		Where("current_quantity <= reorder_level").Count(&lowStock).Error; err != nil {
		return err
	}

	var openEnquiries int64
	if err := h.db.Model(&models.Enquiry{}).
		Where("is_responded = ?", false).Count(&openEnquiries).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"total_customers":       totalCustomers,
			"total_orders":          totalOrders,
			"total_custom_orders":   totalCustomOrders,
			"total_gift_box_orders": totalGiftBoxOrders,
			"orders_by_status":      ordersByStatus,
			"total_revenue":         totalRevenue,
			"today_revenue":         todayRevenue,
			"pending_custom_quotes": pendingQuotes,
			"active_loyalty_cards":  activeCards,
			"low_stock_ingredients": lowStock,
			"open_enquiries":        openEnquiries,
		},
	})
}

// RecentOrders returns the most recent 5 orders for the dashboard.
func (h *ReportHandler) RecentOrders(c *fiber.Ctx) error {
	var orders []models.Order
	if err := h.db.Preload("Customer").Preload("Product").
		Order("created_at desc").
		Limit(5).
		Find(&orders).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": orders})
}

// TierDistribution reports how many cards sit in each loyalty tier.
func (h *ReportHandler) TierDistribution(c *fiber.Ctx) error {
	type tierCount struct {
		Tier  string `json:"tier"`
		Count int64  `json:"count"`
	}
	var counts []tierCount
	if err := h.db.Model(&models.LoyaltyCard{}).
		Select("tier, count(*) as count").
		Group("tier").
		Scan(&counts).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": counts})
}
