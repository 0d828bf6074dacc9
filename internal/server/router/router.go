package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/nutriwatch/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(dashboard *handlers.DashboardHandler, webhook *handlers.WebhookHandler, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	api := r.Group("/api/v1")
	{
		api.GET("/dashboard/stats", dashboard.Stats)
		api.GET("/charts/:name", dashboard.Chart)
		api.GET("/records", dashboard.ListRecords)
		api.GET("/records/recent", dashboard.RecentRecords)
		api.POST("/records", dashboard.CreateRecord)
		api.GET("/reports", dashboard.ReportHistory)
		api.POST("/reports/:type", dashboard.ExportReport)
	}

	r.GET("/webhook", webhook.Verify)
	r.POST("/webhook", webhook.Receive)
	r.POST("/send-message", webhook.SendMessage)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	logger.Info("router initialized")

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
