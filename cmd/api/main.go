package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"finbook/internal/config"
	"finbook/internal/database"
	"finbook/internal/handlers"
	"finbook/internal/logger"
	"finbook/internal/middleware"
	"finbook/internal/services"
	"finbook/internal/validator"
)

// @title           Finbook API
// @version         1.0
// @description     Finbook is a personal finance bookkeeping API for tracking income, expenses, investments, cards, budgets and savings goals.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	accountService := services.NewAccountService(db)
	incomeService := services.NewIncomeService(db, accountService)
	expenseService := services.NewExpenseService(db, accountService)
	investmentService := services.NewInvestmentService(db, accountService)
	transactionService := services.NewTransactionService(db)
	cardService := services.NewCardService(db)
	budgetService := services.NewBudgetService(db)
	savingsService := services.NewSavingsService(db, accountService)
	dashboardService := services.NewDashboardService(db, accountService)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	incomeHandler := handlers.NewIncomeHandler(incomeService, auditService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, auditService)
	investmentHandler := handlers.NewInvestmentHandler(investmentService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	cardHandler := handlers.NewCardHandler(cardService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	savingsHandler := handlers.NewSavingsHandler(savingsService, auditService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

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
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// Public routes
	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)

	// Protected routes
	protected := router.Group("/")
	protected.Use(middleware.AuthRequired())

	protected.GET("/profile", authHandler.GetProfile)
	protected.PUT("/profile", authHandler.UpdateProfile)

	incomes := protected.Group("/incomes")
	incomes.GET("", incomeHandler.GetIncomes)
	incomes.POST("", incomeHandler.CreateIncome)
	incomes.PUT("/:id", incomeHandler.UpdateIncome)
	incomes.DELETE("/:id", incomeHandler.DeleteIncome)

	expenses := protected.Group("/expenses")
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	investments := protected.Group("/investments")
	investments.GET("", investmentHandler.GetInvestments)
	investments.POST("", investmentHandler.CreateInvestment)
	investments.PUT("/:id", investmentHandler.UpdateInvestment)
	investments.DELETE("/:id", investmentHandler.DeleteInvestment)

	cards := protected.Group("/cards")
	cards.GET("", cardHandler.GetCards)
	cards.POST("", cardHandler.CreateCard)
	cards.PUT("/:id", cardHandler.UpdateCard)
	cards.DELETE("/:id", cardHandler.DeleteCard)

	budgets := protected.Group("/budgets")
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	savings := protected.Group("/savings")
	savings.GET("", savingsHandler.GetGoals)
	savings.POST("", savingsHandler.CreateGoal)
	savings.PUT("/:id", savingsHandler.UpdateGoal)
	savings.DELETE("/:id", savingsHandler.DeleteGoal)
	savings.POST("/:id/contribute", savingsHandler.Contribute)
	savings.POST("/:id/withdraw", savingsHandler.Withdraw)

	api := protected.Group("/api")
	api.GET("/dashboard", dashboardHandler.GetDashboard)
	api.GET("/transactions", transactionHandler.GetTransactions)
	api.POST("/transactions", transactionHandler.CreateTransaction)
	api.DELETE("/transactions/:id", transactionHandler.DeleteTransaction)

	// Legacy alias for clients that mount budgets under /api
	api.GET("/budgets", budgetHandler.GetBudgets)
	api.POST("/budgets", budgetHandler.CreateBudget)
	api.PUT("/budgets/:id", budgetHandler.UpdateBudget)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	log.Infof("Starting Finbook API server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
