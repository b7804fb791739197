package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"catalog/internal/handlers"
	"catalog/internal/middleware"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"
	"catalog/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("SQLITE_PATH", "catalog.db")
	viper.SetDefault("JWT_SECRET", "change-me-in-production")
	viper.AutomaticEnv() // Load environment variables

	appPort := viper.GetString("APP_PORT")
	databaseURL := viper.GetString("DATABASE_URL")
	sqlitePath := viper.GetString("SQLITE_PATH")
	jwtSecret := viper.GetString("JWT_SECRET")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// --- Database ---
	// Postgres when DATABASE_URL is set, a local SQLite file otherwise.
	var dialector gorm.Dialector
	if databaseURL != "" {
		dialector = postgres.Open(databaseURL)
	} else {
		dialector = sqlite.Open(sqlitePath)
	}
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Sale{}, &models.User{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- RabbitMQ (optional) ---
	// The catalog works without a broker; events are simply not published.
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Printf("Warning: RabbitMQ unavailable, catalog events disabled: %v", err)
			mqClient = nil
		} else {
			defer mqClient.Close()
		}
	}

	// --- Repositories ---
	productRepo := repositories.NewGORMProductRepository(db)
	saleRepo := repositories.NewGORMSaleRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)

	// --- Services ---
	productService := services.NewProductService(productRepo, saleRepo, mqClient)
	authService := services.NewAuthService(userRepo, jwtSecret)

	// --- Handlers ---
	productHandler := handlers.NewProductHandler(productService)
	authHandler := handlers.NewAuthHandler(authService)

	// --- Fiber App ---
	app := fiber.New()
	app.Use(logger.New()) // Request logger

	apiV1 := app.Group("/api/v1")

	// Authentication routes are public; everything else requires a token.
	authHandler.RegisterRoutes(apiV1)
	protectedRoutes := apiV1.Group("", middleware.AuthRequired(authService))
	productHandler.RegisterRoutes(protectedRoutes)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Catalog Event Consumer ---
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for catalog events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received catalog event (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil // Return nil to acknowledge
			}
			if consumerErr := mqClient.ConsumeCatalogEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
