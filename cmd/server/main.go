package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"github.com/tryly/tryly-api/internal/config"
	"github.com/tryly/tryly-api/internal/database"
	"github.com/tryly/tryly-api/internal/routes"
	"github.com/tryly/tryly-api/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := services.InitPush(cfg.FCMServiceAccount); err != nil {
		log.Printf("Push notifications disabled: %v", err)
	}
	services.InitFeedback(cfg.OpenAIAPIKey, cfg.OpenAIModel)

	app := fiber.New(fiber.Config{
		AppName: "tryly-api",
	})
	app.Use(logger.New())
	app.Use(cors.New())

	app.Static("/uploads", "./uploads")

	routes.Setup(app)

	log.Printf("Server listening on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
