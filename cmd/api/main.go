package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/time/rate"

	"github.com/epicsistemas10/meubolso/internal/cache"
	"github.com/epicsistemas10/meubolso/internal/config"
	"github.com/epicsistemas10/meubolso/internal/database"
	"github.com/epicsistemas10/meubolso/internal/handlers"
	"github.com/epicsistemas10/meubolso/internal/logger"
	"github.com/epicsistemas10/meubolso/internal/middleware"
	"github.com/epicsistemas10/meubolso/internal/services"
	"github.com/epicsistemas10/meubolso/internal/validator"

	_ "github.com/epicsistemas10/meubolso/internal/docs" // Import swagger docs
)

// @title           Meu Bolso API
// @version         1.0
// @description     Meu Bolso is a personal finance application covering accounts, transactions, budgets, goals, investments, and patrimony.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	summaryCache := cache.NewSummaryCache()

	categoryService := services.NewCategoryService(db)
	userService := services.NewUserService(db, categoryService)
	accountService := services.NewAccountService(db)
	transactionService := services.NewTransactionService(db, accountService)
	budgetService := services.NewBudgetService(db, appConfig.BudgetSpentMode)
	goalService := services.NewGoalService(db, accountService)
	investmentService := services.NewInvestmentService(db)
	assetService := services.NewAssetService(db)
	dashboardService := services.NewDashboardService(
		db, transactionService, budgetService, investmentService,
		summaryCache, appConfig.NetWorthIncludeGoals,
	)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	accountHandler := handlers.NewAccountHandler(accountService, auditService, dashboardService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService, dashboardService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService, dashboardService)
	goalHandler := handlers.NewGoalHandler(goalService, auditService, dashboardService)
	investmentHandler := handlers.NewInvestmentHandler(investmentService, auditService, dashboardService)
	assetHandler := handlers.NewAssetHandler(assetService, auditService, dashboardService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, transactionService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes, rate-limited against credential stuffing
	auth := v1.Group("/auth")
	auth.Use(middleware.RateLimit(rate.Limit(5), 10))
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)
	protected.PUT("/profile", authHandler.UpdateProfile)

	// Account routes
	accounts := protected.Group("/accounts")
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("", accountHandler.GetAccounts)
	accounts.GET("/:id", accountHandler.GetAccount)
	accounts.PUT("/:id", accountHandler.UpdateAccount)
	accounts.DELETE("/:id", accountHandler.DeleteAccount)

	// Category routes
	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Transaction routes
	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.POST("/transfer", transactionHandler.CreateTransfer)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/totals", transactionHandler.GetMonthTotals)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Budget routes
	budgets := protected.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.POST("/copy-forward", budgetHandler.CopyForward)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	// Goal routes
	goals := protected.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.GET("/:id", goalHandler.GetGoal)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.POST("/:id/deposit", goalHandler.Deposit)
	goals.PUT("/:id/status", goalHandler.ChangeStatus)
	goals.DELETE("/:id", goalHandler.DeleteGoal)

	// Investment routes
	investments := protected.Group("/investments")
	investments.POST("", investmentHandler.CreateInvestment)
	investments.GET("", investmentHandler.GetInvestments)
	investments.GET("/totals", investmentHandler.GetInvestmentTotals)
	investments.PUT("/:id/value", investmentHandler.UpdateInvestmentValue)
	investments.DELETE("/:id", investmentHandler.DeleteInvestment)

	// Asset routes
	assets := protected.Group("/assets")
	assets.POST("", assetHandler.CreateAsset)
	assets.GET("", assetHandler.GetAssets)
	assets.POST("/:id/sell", assetHandler.SellAsset)
	assets.DELETE("/:id", assetHandler.DeleteAsset)

	// Dashboard routes
	dashboard := protected.Group("/dashboard")
	dashboard.GET("/net-worth", dashboardHandler.GetNetWorth)
	dashboard.GET("/summary", dashboardHandler.GetSummary)
	dashboard.GET("/accounts", dashboardHandler.GetAccountSummaries)

	log.Infof("Starting Meu Bolso backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
