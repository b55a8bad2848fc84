package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"garage/internal/handlers"
	"garage/internal/models"
	"garage/internal/repositories"
	"garage/internal/services"
	"garage/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	// A .env file is optional; viper picks up whatever is in the environment.
	_ = godotenv.Load()

	viper.SetDefault("APP_PORT", ":8000")
	viper.SetDefault("DATABASE_URL", "garage.db")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	secretKey := viper.GetString("SECRET_KEY")
	if secretKey == "" {
		log.Fatal("SECRET_KEY environment variable not set. Please generate a strong, random key.")
	}

	// --- Database ---
	db, err := openDatabase(viper.GetString("DATABASE_URL"))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Item{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- RabbitMQ (optional) ---
	var mqClient *rabbitmq.Client
	if mqURL := viper.GetString("RABBITMQ_URL"); mqURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: mqURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()

		// Consume and log domain events published by the services.
		go func() {
			log.Println("Starting RabbitMQ consumer for domain events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received %s event (Tag: %d): %s", msg.Type, msg.DeliveryTag, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumeEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	} else {
		log.Println("RABBITMQ_URL not set. Event publishing disabled.")
	}

	app := NewApp(db, mqClient, secretKey)

	// --- Start HTTP Server ---
	appPort := viper.GetString("APP_PORT")
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

// NewApp builds the Fiber application with all repositories, services and
// routes wired. mqClient may be nil to disable event publishing.
func NewApp(db *gorm.DB, mqClient *rabbitmq.Client, jwtSecret string) *fiber.App {
	userRepo := repositories.NewGORMUserRepository(db)
	itemRepo := repositories.NewGORMItemRepository(db)

	authService := services.NewAuthService(userRepo, jwtSecret)
	userService := services.NewUserService(userRepo, mqClient)
	itemService := services.NewItemService(itemRepo, mqClient)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, authService)
	itemHandler := handlers.NewItemHandler(itemService, authService)

	app := fiber.New()
	app.Use(logger.New()) // Request logger

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Hello World"})
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	apiV1 := app.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1)
	userHandler.RegisterRoutes(apiV1)
	itemHandler.RegisterRoutes(apiV1)

	return app
}

// openDatabase opens the configured store. A postgres DSN selects the
// postgres driver; anything else is treated as a SQLite file path.
func openDatabase(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.HasPrefix(dsn, "host=") {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
}
