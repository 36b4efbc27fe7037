package main

import (
	"log"
	"time"

	"ero_shop/internal/config"
	"ero_shop/internal/database"
	"ero_shop/internal/handlers"
	"ero_shop/internal/middleware"
	"ero_shop/internal/migrations"
	"ero_shop/internal/models"
	"ero_shop/internal/redis"
	"ero_shop/internal/repository"
	"ero_shop/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	cityRepo := repository.NewCityRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderItemRepo := repository.NewOrderItemRepository(db)
	trackingRepo := repository.NewTrackingOrderRepository(db)

	// Initialize services
	userService := services.NewUserService(userRepo, redisClient, time.Duration(cfg.SessionTTL)*time.Second)
	catalogService := services.NewCatalogService(productRepo, categoryRepo)
	orderService := services.NewOrderService(db, orderRepo, orderItemRepo, productRepo,
		redisClient, cfg.ShippingCost, time.Duration(cfg.StatsCacheTTL)*time.Second)
	redirectService := services.NewRedirectService(trackingRepo, productRepo, cityRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	productHandler := handlers.NewProductHandler(catalogService)
	orderHandler := handlers.NewOrderHandler(orderService)
	redirectHandler := handlers.NewRedirectHandler(redirectService)

	// Setup routes
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	auth := middleware.Auth(userService)
	vendorOnly := middleware.RequireUserType(models.UserVendor)

	api := router.Group("/api")
	{
		api.POST("/users/register", authHandler.Register)
		api.POST("/users/login", authHandler.Login)
		api.POST("/users/logout", auth, authHandler.Logout)
		api.GET("/users/me", auth, authHandler.Me)
		api.PUT("/users/me", auth, authHandler.UpdateMe)

		api.GET("/categories", productHandler.Categories)
		api.GET("/products", productHandler.List)
		api.GET("/products/featured", productHandler.Featured)
		api.GET("/products/best_sellers", productHandler.BestSellers)
		api.GET("/products/:slug", productHandler.Get)
		api.POST("/products", auth, vendorOnly, productHandler.Create)
		api.PUT("/products/:id", auth, vendorOnly, productHandler.Update)

		api.GET("/cities", redirectHandler.Cities)

		api.POST("/orders", auth, orderHandler.Create)
		api.GET("/orders", auth, orderHandler.List)
		api.GET("/orders/stats", auth, orderHandler.Stats)
		api.GET("/orders/:id", auth, orderHandler.Get)
		api.POST("/orders/:id/cancel", auth, orderHandler.Cancel)
		api.PATCH("/orders/:id/status", auth, vendorOnly, orderHandler.UpdateStatus)

		api.POST("/orders/initiate", auth, redirectHandler.Initiate)
		api.POST("/orders/initiate_cart", auth, redirectHandler.InitiateCart)
		api.GET("/orders/history", auth, redirectHandler.History)
		api.PATCH("/orders/tracking/:id/update_status", auth, redirectHandler.UpdateStatus)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
