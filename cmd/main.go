package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "rli-storage-service/docs"
	"rli-storage-service/internal/config"
	"rli-storage-service/internal/export"
	"rli-storage-service/internal/handlers"
	"rli-storage-service/internal/metrics"
	"rli-storage-service/internal/repository"
	"rli-storage-service/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// @title RLI Storage Service API
// @version 1.0
// @description Records store for radar imagery sessions, georeferencing, marks and targets.
// @BasePath /api/rli
func main() {
	cfg := InitConfig()
	db := ConnectDatabase(cfg)
	defer func() {
		if err := config.CloseDatabase(db); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()
	MigrateDatabase(db)

	repos := repository.New(db, metrics.NewRepositoryMetrics(prometheus.DefaultRegisterer))
	publisher := InitPublisher(cfg)

	app := fiber.New()

	//Register Prometheus metrics endpoint
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api/rli")
	handlers.RegisterRoutes(api, repos, publisher)

	api.Get("/swagger/*", swagger.HandlerDefault)

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	routes := app.GetRoutes()
	log.Println("Registered routes:")
	for _, r := range routes {
		log.Printf("  %s %s\n", r.Method, r.Path)
	}

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		log.Println("Shutting down")
		if err := app.Shutdown(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}()

	port := cfg.AppPort
	if port == "" {
		port = "8080"
		log.Printf("Defaulting to port %s", port)
	}
	log.Printf("Server listening on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}

func InitConfig() *config.Config {
	// A .env file in the working directory is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Could not read .env: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	return cfg
}

func ConnectDatabase(cfg *config.Config) *gorm.DB {
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Printf("Connected to %s store", cfg.DBDriver)
	return db
}

func MigrateDatabase(db *gorm.DB) {
	if err := repository.Migrate(db); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}
}

func InitPublisher(cfg *config.Config) *export.Publisher {
	if !cfg.PublishingEnabled() {
		log.Println("MINIO_ENDPOINT not set, report publishing disabled")
		return nil
	}
	minioClient, err := storage.NewMinioClient(context.Background(), cfg)
	if err != nil {
		log.Fatalf("MinIO client initialization failed: %v", err)
	}
	return export.NewPublisher(minioClient, cfg.MinioBucket)
}
