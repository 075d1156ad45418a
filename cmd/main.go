package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"catalog-service/internal/config"
	"catalog-service/internal/handlers"
	"catalog-service/internal/middleware"
	"catalog-service/internal/repository"
)

// @title Catalog API
// @version 1.0.0
// @description Product catalog service with variant pricing, attributes, categories, and storefront read surface

// @contact.name Catalog API Support
// @contact.email support@example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.bearer BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Environment == "production" {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(logrus.DebugLevel)
	}

	// Redis is a read cache only; the service runs without it
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Printf("WARNING: Failed to parse Redis URL: %v (continuing without Redis)", err)
		redisOpts = &redis.Options{Addr: "localhost:6379"}
	}
	redisClient := redis.NewClient(redisOpts)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Printf("WARNING: Failed to connect to Redis: %v (caching will be disabled)", err)
	} else {
		log.Println("✓ Redis connected successfully")
	}
	cancel()

	handlers.Configure(cfg)

	productsRepo := repository.NewProductsRepository(db, redisClient)
	attributesRepo := repository.NewAttributesRepository(db, redisClient)
	categoriesRepo := repository.NewCategoriesRepository(db)
	bannersRepo := repository.NewBannersRepository(db)

	productsHandler := handlers.NewProductsHandler(productsRepo, attributesRepo, logger)
	attributesHandler := handlers.NewAttributesHandler(attributesRepo, logger)
	categoriesHandler := handlers.NewCategoriesHandler(categoriesRepo, logger)
	bannersHandler := handlers.NewBannersHandler(bannersRepo, logger)
	exportHandler := handlers.NewExportHandler(productsRepo, logger)
	storefrontHandler := handlers.NewStorefrontHandler(productsRepo, attributesRepo, categoriesRepo, bannersRepo, logger)
	healthHandler := handlers.NewHealthHandler(db)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS())

	// Health endpoints (no auth required)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)

	// Admin API: full write surface behind JWT auth.
	// Development keeps a fixed identity so local tooling works without tokens.
	admin := router.Group("/api/v1/admin")
	if cfg.Environment == "production" {
		admin.Use(middleware.AdminAuthMiddleware(cfg.JWTSecret))
	} else {
		admin.Use(middleware.DevelopmentAuthMiddleware())
	}
	{
		products := admin.Group("/products")
		{
			products.GET("", productsHandler.GetProducts)
			products.GET("/export", exportHandler.ExportProducts)
			products.GET("/:idOrSlug", productsHandler.GetProduct)
			products.POST("", productsHandler.CreateProduct)
			products.PATCH("/:idOrSlug", productsHandler.UpdateProduct)
			products.DELETE("/:idOrSlug", productsHandler.DeleteProduct)
			products.POST("/bulk-delete", productsHandler.BulkDeleteProducts)
		}

		attributes := admin.Group("/attributes")
		{
			attributes.GET("", attributesHandler.GetAttributes)
			attributes.GET("/:idOrCode", attributesHandler.GetAttribute)
			attributes.POST("", attributesHandler.CreateAttribute)
			attributes.PATCH("/:idOrCode", attributesHandler.UpdateAttribute)
			attributes.POST("/bulk-delete", attributesHandler.BulkDeleteAttributes)

			attributes.POST("/:idOrCode/values", attributesHandler.AddAttributeValue)
			attributes.PATCH("/:idOrCode/values/:valueId", attributesHandler.UpdateAttributeValue)
			attributes.POST("/:idOrCode/values/remove-many", attributesHandler.RemoveAttributeValues)
		}

		categories := admin.Group("/categories")
		{
			categories.GET("", categoriesHandler.GetCategories)
			categories.GET("/:idOrSlug", categoriesHandler.GetCategory)
			categories.POST("", categoriesHandler.CreateCategory)
			categories.PATCH("/:idOrSlug", categoriesHandler.UpdateCategory)
			categories.DELETE("/:idOrSlug", categoriesHandler.DeleteCategory)
		}

		banners := admin.Group("/banners")
		{
			banners.GET("", bannersHandler.GetBanners)
			banners.GET("/:id", bannersHandler.GetBanner)
			banners.POST("", bannersHandler.CreateBanner)
			banners.PATCH("/:id", bannersHandler.UpdateBanner)
			banners.DELETE("/:id", bannersHandler.DeleteBanner)
		}
	}

	// Public storefront read surface: active records only, no auth
	storefront := router.Group("/api/v1/storefront")
	{
		storefront.GET("/products", storefrontHandler.ListProducts)
		storefront.GET("/products/:idOrSlug", storefrontHandler.GetProduct)
		storefront.GET("/categories", storefrontHandler.ListCategories)
		storefront.GET("/banners", storefrontHandler.ListBanners)
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Catalog service starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down catalog-service...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Catalog service stopped")
}
