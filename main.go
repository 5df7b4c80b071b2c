package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/IleanaLopez91/dashboardPERN/internal/config"
	"github.com/IleanaLopez91/dashboardPERN/internal/docs"
	"github.com/IleanaLopez91/dashboardPERN/internal/handlers"
	"github.com/IleanaLopez91/dashboardPERN/internal/middleware"
	"github.com/IleanaLopez91/dashboardPERN/internal/models"
	"github.com/IleanaLopez91/dashboardPERN/internal/repositories"
	"github.com/IleanaLopez91/dashboardPERN/internal/services"
	"github.com/IleanaLopez91/dashboardPERN/pkg/rabbitmq"
)

// NewApp assembles the Fiber application: middleware, product routes,
// documentation and the health endpoint. It does not listen; main and
// the tests decide that.
func NewApp(cfg *config.Config, repo repositories.ProductRepository, events services.EventPublisher) *fiber.App {
	productService := services.NewProductService(repo, events)
	productHandler := handlers.NewProductHandler(productService)

	app := fiber.New()

	app.Use(middleware.RequestID())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.FrontendURL,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
	}))

	api := app.Group("/api")
	productHandler.RegisterRoutes(api)

	docs.RegisterRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app
}

func main() {
	cfg := config.Load()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Connected to database")

	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		events = mqClient
	} else {
		log.Println("RABBITMQ_URL not set, product events disabled")
	}

	repo := repositories.NewGORMProductRepository(db)
	app := NewApp(cfg, repo, events)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s", cfg.AppPort)
		if err := app.Listen(cfg.AppPort); err != nil {
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
