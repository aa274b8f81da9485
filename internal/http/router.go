package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Version)
	booksController := NewBooksController(cfg.Store)
	ordersController := NewOrdersController(cfg.Store)
	importController := NewImportController(cfg.Store)
	reportController := NewReportController(cfg.Store, cfg.ReportYAMLPath, cfg.ReportWorkbookPath)
	scheduleController := NewScheduleController(cfg.Scheduler, cfg.ImportSchedule)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Catalogue endpoints
	router.GET("/api/books", booksController.GetBooks)
	router.POST("/api/books/:isbn/restock", booksController.Restock)
	router.GET("/api/authors", booksController.GetAuthors)

	// Order endpoints
	router.GET("/api/orders", ordersController.GetOrders)
	router.GET("/api/orders/:id/items", ordersController.GetOrderItems)

	// Import endpoints
	router.POST("/api/import", importController.Import)
	router.POST("/api/reset", importController.Reset)
	router.GET("/api/imports", importController.History)

	// Report endpoints
	router.GET("/api/report", reportController.GetReport)
	router.POST("/api/report/export", reportController.Export)

	// Scheduler endpoints
	router.GET("/api/schedule", scheduleController.GetStatus)
	router.POST("/api/schedule/run", scheduleController.RunNow)

	return router
}
