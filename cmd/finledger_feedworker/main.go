package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/finledger/finledger/internal/bankfeed"
	"github.com/finledger/finledger/internal/platform/metrics"
	"github.com/finledger/finledger/internal/repositories/database/pgsql"
	"github.com/finledger/finledger/pkg/config"
	"github.com/finledger/finledger/pkg/database"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	logger.Info("Starting finledger feed worker")

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()

	repos := pgsql.NewRepositoryProvider(dbPool)
	m := metrics.NewMetrics()

	consumer, err := bankfeed.NewConsumer(cfg.AMQPURL, cfg.BankFeedExchange, cfg.BankFeedQueue, repos.BankTransactionRepo, m)
	if err != nil {
		logger.Error("Failed to initialize AMQP consumer", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Consumer stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Feed worker shut down")
}
