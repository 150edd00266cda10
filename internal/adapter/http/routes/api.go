package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tuwaiq_relay/internal/adapter/http/handlers"
	"tuwaiq_relay/internal/adapter/http/middleware"
	"tuwaiq_relay/internal/logger"
)

const (
	PathAPI          = "/api"
	PathCreateBill   = "/create-bill"
	PathConsultation = "/consultation"
	PathWebhook      = "/webhook"
)

// preflight answers OPTIONS; CORSMiddleware has already set the headers.
func preflight(c *gin.Context) { c.Status(http.StatusOK) }

func addBillRoutes(rg *gin.RouterGroup, billHandler *handlers.BillHandler) {
	// Both paths create bills; consultation bookings are recognised from the payload.
	for _, path := range []string{PathCreateBill, PathConsultation} {
		rg.POST(path, billHandler.CreateBill)
		rg.OPTIONS(path, preflight)
	}
}

func addWebhookRoutes(rg *gin.RouterGroup, webhookHandler *handlers.WebhookHandler, log *logger.Logger) {
	rg.POST(PathWebhook, middleware.WebhookBoundary(log), webhookHandler.HandleCallback)
	rg.OPTIONS(PathWebhook, preflight)
}
