package main

import (
	"context"

	"github.com/gin-gonic/gin"

	"tuwaiq_relay/internal/adapter/crm"
	"tuwaiq_relay/internal/adapter/http/handlers"
	"tuwaiq_relay/internal/adapter/http/routes"
	"tuwaiq_relay/internal/adapter/persistence/repository"
	"tuwaiq_relay/internal/config"
	"tuwaiq_relay/internal/infrastructure/database"
	"tuwaiq_relay/internal/infrastructure/httpclient"
	"tuwaiq_relay/internal/infrastructure/payments"
	"tuwaiq_relay/internal/logger"
	"tuwaiq_relay/internal/usecase"
	"tuwaiq_relay/internal/usecase/interfaces"
)

func buildRouter(ctx context.Context, cfg config.Config, logr *logger.Logger) (*gin.Engine, error) {
	logr = logger.OrNop(logr)
	if !cfg.IsLambda() {
		gin.SetMode(gin.ReleaseMode)
	}
	client := httpclient.NewDefaultClient(cfg.HTTP.Timeout)

	// A missing gateway does not stop the service: bill requests fail with a
	// server error while the webhook keeps working.
	var paymentGateway interfaces.IPaymentGateway
	tuwaiq, err := payments.NewTuwaiqGateway(cfg.Tuwaiq, client, logr)
	if err != nil {
		logr.Warnw("TuwaiqPay gateway not configured", "err", err)
	} else {
		paymentGateway = tuwaiq
	}

	ledger, err := newLedger(ctx, cfg, client, logr)
	if err != nil {
		return nil, err
	}

	if cfg.CRM.WebhookURL == "" {
		logr.Warnw("GHL_WEBHOOK_URL not set; CRM relay disabled")
	}
	relay := crm.NewGHLRelay(client, cfg.CRM.WebhookURL, logr)

	billUseCase := usecase.NewBillUseCase(paymentGateway, ledger, logr)
	webhookUseCase := usecase.NewWebhookUseCase(ledger, relay, logr)

	return routes.NewRouter(routes.Handlers{
		Bill:    handlers.NewBillHandler(billUseCase, logr),
		Webhook: handlers.NewWebhookHandler(webhookUseCase, logr),
	}, logr), nil
}

func newLedger(ctx context.Context, cfg config.Config, client httpclient.Client, logr *logger.Logger) (interfaces.ILedgerRepository, error) {
	if cfg.Ledger.Backend == config.LedgerBackendDynamoDB {
		ddb, err := database.ConnectDynamoDB(ctx, cfg.AWS)
		if err != nil {
			return nil, err
		}
		logr.Infow("ledger backend: dynamodb", "table", cfg.Ledger.Table, "consultation_table", cfg.Ledger.ConsultationTable)
		return repository.NewLedgerDynamoRepository(ddb, cfg.Ledger.Table, cfg.Ledger.ConsultationTable), nil
	}

	if cfg.Ledger.URL == "" {
		logr.Warnw("GSHEET_URL not set; ordinary ledger disabled")
	}
	if cfg.Ledger.ConsultationURL == "" {
		logr.Warnw("GSHEET_CONSULTATION_URL not set; consultation ledger disabled")
	}
	return repository.NewLedgerSheetRepository(client, cfg.Ledger.URL, cfg.Ledger.ConsultationURL, logr), nil
}
