package middleware

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"tuwaiq_relay/internal/adapter/http/dto/response"
	"tuwaiq_relay/internal/logger"
)

// WebhookBoundary makes every webhook request end in HTTP 200: the provider
// retries anything else. Panics and errors attached with c.Error are turned into
// {"received": false, "error": "..."}.
func WebhookBoundary(log *logger.Logger) gin.HandlerFunc {
	log = logger.OrNop(log)
	return func(c *gin.Context) {
		defer func() {
			if recovered := recover(); recovered != nil {
				err := errors.Newf("%v", recovered)
				log.Errorw("[webhook][boundary] recovered from panic", "request_id", RequestID(c.Request.Context()), "err", err)
				writeWebhookFailure(c, err)
			}
		}()

		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			log.Errorw("[webhook][boundary] callback processing failed", "request_id", RequestID(c.Request.Context()), "err", err)
			writeWebhookFailure(c, err)
		}
	}
}

func writeWebhookFailure(c *gin.Context, err error) {
	if c.Writer.Written() {
		return
	}
	c.AbortWithStatusJSON(http.StatusOK, response.WebhookFailure(err))
}
