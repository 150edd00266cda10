package handlers

import (
	"io"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"tuwaiq_relay/internal/adapter/http/dto/response"
	"tuwaiq_relay/internal/logger"
	"tuwaiq_relay/internal/usecase"
)

// WebhookHandler receives TuwaiqPay payment callbacks. Failures are attached
// to the context for the webhook boundary middleware to acknowledge.
type WebhookHandler struct {
	usecase usecase.IWebhookUseCase
	log     *logger.Logger
}

func NewWebhookHandler(uc usecase.IWebhookUseCase, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{usecase: uc, log: logger.OrNop(log)}
}

// HandleCallback godoc
// @Summary      Receive a payment callback
// @Description  Accepts flat or nested (transactionDetails) callbacks. Always answers 200.
// @Tags         webhook
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.WebhookResponse
// @Router       /api/webhook [post]
func (h *WebhookHandler) HandleCallback(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		_ = c.Error(errors.Wrap(err, "read callback body"))
		return
	}

	result, err := h.usecase.HandleEvent(c.Request.Context(), raw)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.log.Infow("[webhook][handler] acknowledged",
		"bill_id", result.Event.BillID,
		"note", result.Ack.Note,
		"ledger_read_failed", result.LedgerRead.Failed(),
		"ledger_write_failed", result.LedgerWrite.Failed(),
		"relay_failed", result.Relay.Failed(),
	)

	c.JSON(http.StatusOK, response.FromWebhookAck(result.Ack))
}
