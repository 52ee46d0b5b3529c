// Команда sheet-forwarder читает созданные подписки из RabbitMQ и отправляет их во внешнюю таблицу.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/magabrotheeeer/elevator/internal/config"
	"github.com/magabrotheeeer/elevator/internal/forwarder"
	"github.com/magabrotheeeer/elevator/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/elevator/internal/lib/report"
	"github.com/magabrotheeeer/elevator/internal/lib/sl"
	"github.com/magabrotheeeer/elevator/internal/sheets"
)

func main() {
	cfg := config.MustLoad()
	logger := sl.New(cfg.Env, os.Stdout)
	logger.Info("starting sheet-forwarder", slog.String("env", cfg.Env))

	if err := run(cfg, logger); err != nil {
		logger.Error("sheet-forwarder stopped with error", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("sheet-forwarder shutting down gracefully")
}

func run(cfg *config.Config, logger *slog.Logger) error {
	if cfg.RabbitMQURL == "" || cfg.Sink.URL == "" {
		return errors.New("rabbitmq url and sink url are required")
	}

	if err := report.Init(cfg.SentryDSN, cfg.Env); err != nil {
		logger.Error("failed to init sentry", sl.Err(err))
	}
	defer report.Flush(2 * time.Second)

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return fmt.Errorf("connect to RabbitMQ: %w", err)
	}
	logger.Info("success to connect to RabbitMQ")
	defer func() {
		_ = conn.Close()
	}()

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.SubscriptionsExchange, cfg.RabbitMQPrefetch, rabbitmq.GetSubscriptionQueues())
	if err != nil {
		return fmt.Errorf("setup RabbitMQ channel: %w", err)
	}
	defer func() {
		_ = ch.Close()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	handler := forwarder.QueueHandler(sheets.New(cfg.Sink.URL, nil), cfg.Sink.Timeout, logger)
	done, err := rabbitmq.ConsumerMessage(ctx, logger, ch, rabbitmq.SheetQueue, cfg.RabbitMQPrefetch, handler)
	if err != nil {
		return fmt.Errorf("start consumer: %w", err)
	}

	select {
	case <-ctx.Done():
		<-done
		return nil
	case <-done:
		return errors.New("consumer stopped unexpectedly")
	}
}
