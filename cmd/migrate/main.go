// Команда migrate готовит схему хранилища и завершается:
// применяет миграции PostgreSQL или создаёт индексы и справочник тарифов MongoDB.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/magabrotheeeer/elevator/internal/app/elevator"
	"github.com/magabrotheeeer/elevator/internal/config"
	"github.com/magabrotheeeer/elevator/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	logger := sl.New(cfg.Env, os.Stdout)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, err := elevator.OpenStore(ctx, cfg.Storage, logger)
	if err != nil {
		logger.Error("failed to prepare storage", sl.Err(err))
		os.Exit(1)
	}
	defer func() {
		_ = store.Close()
	}()

	logger.Info("storage schema is up to date", slog.String("driver", cfg.Driver))
}
