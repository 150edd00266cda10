package routes

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"

	"tuwaiq_relay/internal/config"
	"tuwaiq_relay/internal/logger"
)

const shutdownTimeout = 10 * time.Second

// Run serves the router until ctx is cancelled, or hands it to the Lambda
// runtime when the process was started by AWS Lambda.
func Run(ctx context.Context, cfg config.Config, router *gin.Engine, log *logger.Logger) error {
	log = logger.OrNop(log)
	if cfg.IsLambda() {
		log.Infow("[http][server] starting in lambda mode")
		ginLambda := ginadapter.New(router)
		lambda.Start(ginLambda.ProxyWithContext)
		return nil
	}

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("[http][server] listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Infow("[http][server] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
