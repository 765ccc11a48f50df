package main

import (
	"log"
	"time"

	"github.com/flowfunnels/flowfunnels-api/internal/config"
	"github.com/flowfunnels/flowfunnels-api/internal/db"
	"github.com/flowfunnels/flowfunnels-api/internal/handlers"
	"github.com/flowfunnels/flowfunnels-api/internal/middleware"
	"github.com/flowfunnels/flowfunnels-api/internal/services"
	"github.com/flowfunnels/flowfunnels-api/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it, using environment variables")
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to MongoDB
	client, database, err := db.Connect(cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() {
		if err := db.Disconnect(client); err != nil {
			log.Printf("MongoDB disconnect failed: %v", err)
		}
	}()

	// Initialize MinIO for asset storage
	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO: %v", err)
	}

	tokens, err := services.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Algorithm, time.Duration(cfg.JWT.TTLMinutes)*time.Minute)
	if err != nil {
		log.Fatalf("Failed to configure token issuer: %v", err)
	}

	authHandler := handlers.NewAuthHandler(services.NewAuthService(database, tokens))
	funnelHandler := handlers.NewFunnelHandler(services.NewFunnelService(database))
	pageHandler := handlers.NewPageHandler(services.NewPageService(database))
	templateHandler := handlers.NewTemplateHandler(services.NewTemplateService(database))
	analyticsHandler := handlers.NewAnalyticsHandler(services.NewAnalyticsService(database))
	assetHandler := handlers.NewAssetHandler(services.NewAssetService(database, store, cfg.Storage))

	// Initialize Fiber
	app := fiber.New()
	app.Use(logger.New())
	app.Use(cors.New())

	requireAuth := middleware.Auth(tokens)

	api := app.Group("/api")
	api.Get("/health", handlers.Health)

	// Auth Routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", requireAuth, authHandler.Me)

	// Funnel Routes
	funnels := api.Group("/funnels", requireAuth)
	funnels.Post("/", funnelHandler.Create)
	funnels.Get("/", funnelHandler.List)
	funnels.Get("/:id", funnelHandler.Get)
	funnels.Put("/:id", funnelHandler.Update)
	funnels.Delete("/:id", funnelHandler.Delete)
	funnels.Get("/:id/pages", pageHandler.ListByFunnel)

	// Page Routes
	pages := api.Group("/pages", requireAuth)
	pages.Post("/", pageHandler.Create)
	pages.Get("/:id", pageHandler.Get)
	pages.Put("/:id", pageHandler.Update)
	pages.Delete("/:id", pageHandler.Delete)

	// Analytics Routes - tracking is public, summaries are not
	analytics := api.Group("/analytics")
	analytics.Post("/track", analyticsHandler.Track)
	analytics.Get("/funnel/:id", requireAuth, analyticsHandler.Summary)

	// Template Routes - listing is public, cloning is not
	templates := api.Group("/templates")
	templates.Get("/", templateHandler.List)
	templates.Post("/:id/clone", requireAuth, templateHandler.Clone)

	// Asset Routes
	assets := api.Group("/assets", requireAuth)
	assets.Post("/upload", assetHandler.Upload)
	assets.Get("/", assetHandler.List)
	assets.Delete("/:id", assetHandler.Delete)

	// Start server
	log.Fatal(app.Listen(":" + cfg.Port))
}
