package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "tuwaiq_relay/docs"
	"tuwaiq_relay/internal/adapter/http/handlers"
	"tuwaiq_relay/internal/adapter/http/middleware"
	"tuwaiq_relay/internal/logger"
)

// Handlers groups the HTTP handlers the router exposes.
type Handlers struct {
	Bill    *handlers.BillHandler
	Webhook *handlers.WebhookHandler
}

// NewRouter builds the gin engine shared by the HTTP server and the Lambda adapter.
func NewRouter(h Handlers, log *logger.Logger) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	router.Use(middleware.RequestLogger(log))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.OrNop(log).Errorw("[http][router] recovered from panic", "panic", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
	}))
	router.Use(middleware.CORSMiddleware)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)

	api := router.Group(PathAPI)
	addBillRoutes(api, h.Bill)
	addWebhookRoutes(api, h.Webhook, log)

	return router
}

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}
