package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"tuwaiq_relay/internal/adapter/http/routes"
	"tuwaiq_relay/internal/config"
	"tuwaiq_relay/internal/logger"
)

// @title           Tuwaiq Bill Relay API
// @version         1.0
// @description     Creates TuwaiqPay bills and relays payment callbacks to the ledger and CRM.

// @host localhost:8080

// @BasePath  /

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.NewLogger(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = logr.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	router, err := buildRouter(ctx, cfg, logr)
	if err != nil {
		logr.Fatalw("failed to build router", "err", err)
	}

	if err := routes.Run(ctx, cfg, router, logr); err != nil {
		logr.Fatalw("failed to startup the application", "err", err)
	}
}
