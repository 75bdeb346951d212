package main

import (
	"log"

	"backend/internal/config"
	"backend/internal/database"
	"backend/internal/handler"
	"backend/internal/middleware"
	"backend/internal/repository"
	"backend/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	db, err := database.NewConnection(cfg.DSN())
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	lotRepo := repository.NewLotRepository(db)
	expenseCategoryRepo := repository.NewExpenseCategoryRepository(db)
	incomeCategoryRepo := repository.NewIncomeCategoryRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	incomeRepo := repository.NewIncomeRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	reportRepo := repository.NewReportRepository(db)

	authService := service.NewAuthService(userRepo, cfg)
	customerService := service.NewCustomerService(customerRepo)
	productService := service.NewProductService(productRepo)
	orderService := service.NewOrderService(orderRepo, customerRepo, productRepo, txManager)
	lotService := service.NewLotService(lotRepo, orderRepo, txManager)
	expenseCategoryService := service.NewExpenseCategoryService(expenseCategoryRepo)
	incomeCategoryService := service.NewIncomeCategoryService(incomeCategoryRepo)
	expenseService := service.NewExpenseService(expenseRepo, expenseCategoryRepo)
	incomeService := service.NewIncomeService(incomeRepo, incomeCategoryRepo)
	noteService := service.NewNoteService(noteRepo)
	reportService := service.NewReportService(reportRepo, customerRepo)

	authHandler := handler.NewAuthHandler(authService, int(cfg.TokenTTL.Seconds()), cfg.SecureCookies)
	customerHandler := handler.NewCustomerHandler(customerService)
	productHandler := handler.NewProductHandler(productService)
	orderHandler := handler.NewOrderHandler(orderService)
	lotHandler := handler.NewLotHandler(lotService)
	expenseCategoryHandler := handler.NewExpenseCategoryHandler(expenseCategoryService)
	incomeCategoryHandler := handler.NewIncomeCategoryHandler(incomeCategoryService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	incomeHandler := handler.NewIncomeHandler(incomeService)
	noteHandler := handler.NewNoteHandler(noteService)
	reportHandler := handler.NewReportHandler(reportService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// Auth endpoints stay open; everything else requires a valid token.
	authHandler.RegisterRoutes(router.Group(""))

	protected := router.Group("", middleware.RequireAuth(cfg.JWTSecret()))
	customerHandler.RegisterRoutes(protected)
	productHandler.RegisterRoutes(protected)
	orderHandler.RegisterRoutes(protected)
	lotHandler.RegisterRoutes(protected)
	expenseCategoryHandler.RegisterRoutes(protected)
	incomeCategoryHandler.RegisterRoutes(protected)
	expenseHandler.RegisterRoutes(protected)
	incomeHandler.RegisterRoutes(protected)
	noteHandler.RegisterRoutes(protected)
	reportHandler.RegisterRoutes(protected)

	log.Printf("Server listening on :%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
