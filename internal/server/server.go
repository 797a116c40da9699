// Package server assembles services, handlers and middleware into the HTTP
// router served by cmd/api.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "wheresmymoney/internal/docs" // Import swagger docs
	"wheresmymoney/internal/handlers"
	"wheresmymoney/internal/middleware"
	"wheresmymoney/internal/services"
)

// Options configures the router.
type Options struct {
	// CORSOrigin is the allowed browser origin. Defaults to "*".
	CORSOrigin string
	// Now is the clock used for default dates and report periods. Its
	// location decides which calendar day "today" is.
	Now func() time.Time
}

// NewRouter builds the Gin engine with every API route registered.
func NewRouter(db *gorm.DB, opts Options) *gin.Engine {
	if opts.CORSOrigin == "" {
		opts.CORSOrigin = "*"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	// Services
	auditService := services.NewAuditService(db)
	categoryService := services.NewCategoryService(db)
	transactionService := services.NewTransactionService(db, opts.Now)
	letterService := services.NewLetterService(db, opts.Now)
	reportService := services.NewReportService(services.NewLedgerStore(db), opts.Now)

	// Handlers
	categoryHandler := handlers.NewCategoryHandler(categoryService, transactionService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	letterHandler := handlers.NewLetterHandler(letterService, auditService)
	budgetHandler := handlers.NewBudgetHandler(reportService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(opts.CORSOrigin))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/api/health", health(db))

	v1 := router.Group("/api/v1")

	categories := v1.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/:name", categoryHandler.GetCategory)
	categories.PUT("/:name", categoryHandler.UpdateCategory)
	categories.DELETE("/:name", categoryHandler.DeleteCategory)
	categories.GET("/:name/transactions", categoryHandler.GetCategoryTransactions)

	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/latest", transactionHandler.GetLatestTransactions)
	transactions.GET("/export", transactionHandler.ExportTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	letters := v1.Group("/letters")
	letters.POST("", letterHandler.CreateLetter)
	letters.GET("", letterHandler.GetLetters)
	letters.GET("/:id", letterHandler.GetLetterByID)
	letters.PUT("/:id", letterHandler.UpdateLetter)
	letters.DELETE("/:id", letterHandler.DeleteLetter)

	budget := v1.Group("/budget")
	budget.GET("/:period", budgetHandler.GetBudget)
	budget.GET("/:period/export", budgetHandler.ExportBudget)

	return router
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
