package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ImaneBelmiloudi/hr-management/internal/messaging/kafka"
	"github.com/ImaneBelmiloudi/hr-management/internal/messaging/kafka/producer"
	"github.com/ImaneBelmiloudi/hr-management/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker publishes outbox events until a shutdown signal arrives.
func RunWorker() error {
	cfg := LoadConfig()
	logger := zap.L()

	db, err := connection.ConnectGORMWithRetry(
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode,
		connectRetries,
	)
	if err != nil {
		return err
	}

	writer, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, connectRetries)
	if err != nil {
		return err
	}
	defer writer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		sig := <-quit
		logger.Info("worker shutting down", zap.String("signal", sig.String()))
		cancel()
	}()

	producer.ProcessOutboxEvents(ctx, kafka.NewOutboxRepository(db), writer, logger, 3*time.Second)
	return nil
}
