package elevator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/elevator/internal/config"
	"github.com/magabrotheeeer/elevator/internal/migrations"
	"github.com/magabrotheeeer/elevator/internal/services/plan"
	"github.com/magabrotheeeer/elevator/internal/services/subscription"
	"github.com/magabrotheeeer/elevator/internal/services/user"
	"github.com/magabrotheeeer/elevator/internal/storage/mongodb"
	"github.com/magabrotheeeer/elevator/internal/storage/postgresql"
)

// Store хранилище, общее для всех сервисов.
type Store interface {
	user.Repository
	plan.Repository
	subscription.Repository
	Ping(ctx context.Context) error
	Close() error
}

// OpenStore подключает хранилище из конфига и готовит схему:
// миграции для PostgreSQL, индексы и справочник тарифов для MongoDB.
func OpenStore(ctx context.Context, cfg config.Storage, log *slog.Logger) (Store, error) {
	const op = "app.elevator.OpenStore"

	switch cfg.Driver {
	case config.StorageDriverPostgres:
		db, err := postgresql.New(cfg.StorageConnectionString)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := migrations.Run(db.Db, cfg.MigrationsPath, log); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		log.Info("postgres storage ready")
		return db, nil

	case config.StorageDriverMongo:
		db, err := mongodb.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := db.EnsureIndexes(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := db.SeedPlans(ctx, mongodb.DefaultPlans); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		log.Info("mongo storage ready", slog.String("database", cfg.MongoDatabase))
		return db, nil

	default:
		return nil, fmt.Errorf("%s: unknown storage driver %q", op, cfg.Driver)
	}
}
