// Package main Elevator API
//
// @title           Elevator API
// @version         1.0
// @description     Регистрация пользователей, бесплатный тариф, оплата через Stripe и оформление подписок по webhook

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:3000
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/magabrotheeeer/elevator/internal/app/elevator"
	"github.com/magabrotheeeer/elevator/internal/config"
	"github.com/magabrotheeeer/elevator/internal/lib/report"
	"github.com/magabrotheeeer/elevator/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	logger := sl.New(cfg.Env, os.Stdout)

	logger.Info("starting elevator", slog.String("env", cfg.Env))
	logger.Debug("config loaded", slog.String("config", cfg.String()))

	if err := run(cfg, logger); err != nil {
		logger.Error("app stopped with error", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("elevator stopped gracefully")
}

func run(cfg *config.Config, logger *slog.Logger) error {
	if err := report.Init(cfg.SentryDSN, cfg.Env); err != nil {
		logger.Error("failed to init sentry", sl.Err(err))
	}
	defer report.Flush(2 * time.Second)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := elevator.New(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initialize app: %w", err)
	}

	if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
