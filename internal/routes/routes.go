package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/cakeshop/internal/config"
	"github.com/example/cakeshop/internal/handlers"
	"github.com/example/cakeshop/internal/loyalty"
	"github.com/example/cakeshop/internal/middleware"
	"github.com/example/cakeshop/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config, whatsapp *services.WhatsAppService, loyaltySvc *loyalty.Service) {
	authHandler := handlers.NewAuthHandler(db, cfg)
	catalogHandler := handlers.NewCatalogHandler(db)
	productHandler := handlers.NewProductHandler(db)
	customerHandler := handlers.NewCustomerHandler(db)
	orderHandler := handlers.NewOrderHandler(db, loyaltySvc, whatsapp)
	cakeHandler := handlers.NewCakeHandler(db, whatsapp)
	giftBoxHandler := handlers.NewGiftBoxHandler(db, loyaltySvc, whatsapp)
	loyaltyHandler := handlers.NewLoyaltyHandler(db, loyaltySvc)
	inventoryHandler := handlers.NewInventoryHandler(db)
	enquiryHandler := handlers.NewEnquiryHandler(db)
	reportHandler := handlers.NewReportHandler(db)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Public storefront reads
	categories := api.Group("/categories")
	categories.Get("/", catalogHandler.ListCategories)
	categories.Get("/:id", catalogHandler.GetCategory)

	subcategories := api.Group("/subcategories")
	subcategories.Get("/", catalogHandler.ListSubcategories)
	subcategories.Get("/:id", catalogHandler.GetSubcategory)

	sizes := api.Group("/sizes")
	sizes.Get("/", catalogHandler.ListSizes)
	sizes.Get("/:id", catalogHandler.GetSize)

	events := api.Group("/events")
	events.Get("/", catalogHandler.ListEvents)
	events.Get("/:id", catalogHandler.GetEvent)

	products := api.Group("/products")
	products.Get("/", productHandler.ListProducts)
	products.Get("/:id", productHandler.GetProduct)
	products.Get("/:id/prices", productHandler.ListPrices)

	// Custom cake builder
	cakes := api.Group("/custom-cakes")
	cakes.Get("/shapes", cakeHandler.ListShapes)
	cakes.Get("/tiers", cakeHandler.ListTiers)
	cakes.Get("/flavors", cakeHandler.ListFlavors)
	cakes.Get("/decorations", cakeHandler.ListDecorations)
	cakes.Post("/estimate", cakeHandler.Estimate)
	cakes.Post("/orders", cakeHandler.CreateCustomOrder)
	cakes.Get("/orders/:id", cakeHandler.GetCustomOrder)
	cakes.Post("/orders/:id/decorations", cakeHandler.AddDecoration)
	cakes.Delete("/orders/:id/decorations/:decorationId", cakeHandler.RemoveDecoration)

	// Gift boxes
	giftBoxes := api.Group("/gift-boxes")
	giftBoxes.Get("/", giftBoxHandler.ListGiftBoxes)
	giftBoxes.Get("/:id", giftBoxHandler.GetGiftBox)
	giftBoxes.Post("/orders", giftBoxHandler.CreateOrder)

	// Orders
	orders := api.Group("/orders")
	orders.Post("/", orderHandler.CreateOrder)

	// Loyalty (customer-facing, keyed by phone)
	loyaltyGroup := api.Group("/loyalty")
	loyaltyGroup.Get("/dashboard", loyaltyHandler.Dashboard)
	loyaltyGroup.Get("/achievements", loyaltyHandler.ListAchievements)
	loyaltyGroup.Get("/referrals", loyaltyHandler.ListReferrals)
	loyaltyGroup.Post("/referrals", loyaltyHandler.CreateReferral)
	loyaltyGroup.Post("/referrals/complete", loyaltyHandler.CompleteReferral)

	// Enquiries and reviews
	api.Post("/enquiries", enquiryHandler.CreateEnquiry)
	api.Post("/reviews", enquiryHandler.CreateReview)
	api.Get("/reviews", enquiryHandler.ListReviews)

	// Protected back-office routes
	protected := api.Group("", middleware.AuthMiddleware(cfg))

	protected.Get("/auth/me", authHandler.Me)

	protected.Post("/categories", catalogHandler.CreateCategory)
	protected.Put("/categories/:id", catalogHandler.UpdateCategory)
	protected.Delete("/categories/:id", catalogHandler.DeleteCategory)

	protected.Post("/subcategories", catalogHandler.CreateSubcategory)
	protected.Put("/subcategories/:id", catalogHandler.UpdateSubcategory)
	protected.Delete("/subcategories/:id", catalogHandler.DeleteSubcategory)

	protected.Post("/sizes", catalogHandler.CreateSize)
	protected.Put("/sizes/:id", catalogHandler.UpdateSize)
	protected.Delete("/sizes/:id", catalogHandler.DeleteSize)

	protected.Post("/events", catalogHandler.CreateEvent)
	protected.Put("/events/:id", catalogHandler.UpdateEvent)
	protected.Delete("/events/:id", catalogHandler.DeleteEvent)
	protected.Post("/events/:id/suggestions", catalogHandler.AddEventSuggestion)

	protected.Post("/products", productHandler.CreateProduct)
	protected.Put("/products/:id", productHandler.UpdateProduct)
	protected.Delete("/products/:id", productHandler.DeleteProduct)
	protected.Post("/products/:id/prices", productHandler.SetPrice)
	protected.Post("/products/:id/images", productHandler.AddImage)
	protected.Delete("/products/:id/images/:imageId", productHandler.DeleteImage)

	protected.Post("/custom-cakes/shapes", cakeHandler.CreateShape)
	protected.Put("/custom-cakes/shapes/:id", cakeHandler.UpdateShape)
	protected.Delete("/custom-cakes/shapes/:id", cakeHandler.DeleteShape)
	protected.Post("/custom-cakes/tiers", cakeHandler.CreateTier)
	protected.Put("/custom-cakes/tiers/:id", cakeHandler.UpdateTier)
	protected.Delete("/custom-cakes/tiers/:id", cakeHandler.DeleteTier)
	protected.Post("/custom-cakes/flavors", cakeHandler.CreateFlavor)
	protected.Put("/custom-cakes/flavors/:id", cakeHandler.UpdateFlavor)
	protected.Delete("/custom-cakes/flavors/:id", cakeHandler.DeleteFlavor)
	protected.Post("/custom-cakes/decorations", cakeHandler.CreateDecoration)
	protected.Put("/custom-cakes/decorations/:id", cakeHandler.UpdateDecoration)
	protected.Delete("/custom-cakes/decorations/:id", cakeHandler.DeleteDecoration)
	protected.Get("/custom-cakes/orders", cakeHandler.ListCustomOrders)
	protected.Put("/custom-cakes/orders/:id/final-price", cakeHandler.SetFinalPrice)
	protected.Put("/custom-cakes/orders/:id/status", cakeHandler.UpdateCustomOrderStatus)

	protected.Post("/gift-boxes", giftBoxHandler.CreateGiftBox)
	protected.Put("/gift-boxes/:id", giftBoxHandler.UpdateGiftBox)
	protected.Delete("/gift-boxes/:id", giftBoxHandler.DeleteGiftBox)
	protected.Post("/gift-boxes/:id/items", giftBoxHandler.AddItem)
	protected.Delete("/gift-boxes/:id/items/:itemId", giftBoxHandler.RemoveItem)
	protected.Get("/gift-boxes/orders/all", giftBoxHandler.ListOrders)
	protected.Put("/gift-boxes/orders/:id/status", giftBoxHandler.UpdateOrderStatus)

	protected.Get("/orders", orderHandler.ListOrders)
	protected.Get("/orders/:id", orderHandler.GetOrder)
	protected.Put("/orders/:id/status", orderHandler.UpdateStatus)

	protected.Get("/customers", customerHandler.ListCustomers)
	protected.Get("/customers/:id", customerHandler.GetCustomer)
	protected.Put("/customers/:id", customerHandler.UpdateCustomer)

	protected.Get("/loyalty/cards", loyaltyHandler.ListCards)
	protected.Post("/loyalty/achievements", loyaltyHandler.CreateAchievement)
	protected.Put("/loyalty/achievements/:id", loyaltyHandler.UpdateAchievement)
	protected.Post("/loyalty/retroactive/:customerId", loyaltyHandler.Retroactive)

	protected.Get("/ingredients", inventoryHandler.ListIngredients)
	protected.Get("/ingredients/low-stock", inventoryHandler.LowStock)
	protected.Post("/ingredients", inventoryHandler.CreateIngredient)
	protected.Put("/ingredients/:id", inventoryHandler.UpdateIngredient)
	protected.Delete("/ingredients/:id", inventoryHandler.DeleteIngredient)
	protected.Post("/ingredients/:id/adjust", inventoryHandler.AdjustStock)

	protected.Get("/purchase-bills", inventoryHandler.ListBills)
	protected.Post("/purchase-bills", inventoryHandler.CreateBill)
	protected.Put("/purchase-bills/:id", inventoryHandler.UpdateBill)
	protected.Delete("/purchase-bills/:id", inventoryHandler.DeleteBill)

	protected.Get("/enquiries", enquiryHandler.ListEnquiries)
	protected.Put("/enquiries/:id/respond", enquiryHandler.RespondEnquiry)
	protected.Put("/reviews/:id/approve", enquiryHandler.ApproveReview)
	protected.Delete("/reviews/:id", enquiryHandler.DeleteReview)

	protected.Get("/reports/dashboard", reportHandler.DashboardStats)
	protected.Get("/reports/recent-orders", reportHandler.RecentOrders)
	protected.Get("/reports/tier-distribution", reportHandler.TierDistribution)
}
