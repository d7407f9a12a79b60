package main

import (
	"log"
	"time"

	"rental_manager/internal/config"
	"rental_manager/internal/database"
	"rental_manager/internal/handlers"
	"rental_manager/internal/migrations"
	"rental_manager/internal/redis"
	"rental_manager/internal/repository"
	"rental_manager/internal/routes"
	"rental_manager/internal/services"
	"rental_manager/pkg/whatsapp"

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

	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	tokenTTL := time.Duration(cfg.TokenTTL) * time.Second

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderItemRepo := repository.NewOrderItemRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, tokenTTL)
	userService := services.NewUserService(userRepo, orderRepo)
	branchService := services.NewBranchService(branchRepo)
	customerService := services.NewCustomerService(customerRepo, orderRepo, redisClient)
	orderService := services.NewOrderService(orderRepo, orderItemRepo, auditRepo, redisClient, cacheTTL)
	dashboardService := services.NewDashboardService(orderRepo, customerRepo, branchRepo, redisClient, cacheTTL)

	// Overdue notification sweep (optional, needs WhatsApp credentials)
	if cfg.WhatsAppAPIURL != "" {
		whatsappClient := whatsapp.NewClient(cfg.WhatsAppAPIURL, cfg.WhatsAppUsername, cfg.WhatsAppPassword, cfg.WhatsAppPath)
		sweepInterval := time.Duration(cfg.OverdueSweep) * time.Second
		overdueService := services.NewOverdueService(orderRepo, redisClient, whatsappClient, 24*time.Hour)
		go overdueService.Run(sweepInterval, nil)
	}

	// Initialize handlers
	h := routes.Handlers{
		Auth:      handlers.NewAuthHandler(authService),
		User:      handlers.NewUserHandler(userService),
		Customer:  handlers.NewCustomerHandler(customerService),
		Branch:    handlers.NewBranchHandler(branchService),
		Order:     handlers.NewOrderHandler(orderService),
		Dashboard: handlers.NewDashboardHandler(dashboardService),
	}

	// Setup routes
	router := gin.Default()
	routes.Setup(router, h, authService)

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
