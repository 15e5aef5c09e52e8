package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/cakeshop/internal/config"
	"github.com/example/cakeshop/internal/database"
	"github.com/example/cakeshop/internal/loyalty"
	"github.com/example/cakeshop/internal/routes"
	"github.com/example/cakeshop/internal/services"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg.DatabaseURL)

	app := fiber.New(fiber.Config{
		AppName: "Cake Shop Backend",
	})

	app.Use(recover.New())
	app.Use(logger.New())

	whatsapp := services.NewWhatsAppService(cfg)
	loyaltySvc := loyalty.NewService(db)

	routes.Register(app, db, cfg, whatsapp, loyaltySvc)

	birthday := services.NewBirthdayService(db, loyaltySvc, whatsapp, cfg.BirthdayJobCron)
	if _, err := birthday.StartScheduler(); err != nil {
		log.Printf("birthday scheduler failed to start: %v", err)
	}

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}
