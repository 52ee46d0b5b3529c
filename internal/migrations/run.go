// Package migrations применяет SQL-миграции из каталога migrations к PostgreSQL.
package migrations

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	pgxv5 "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/magabrotheeeer/elevator/internal/lib/sl"
)

// ErrDirty схема осталась в промежуточном состоянии после неудачной миграции.
// Автоматически такое не чинится, нужен ручной migrate force.
var ErrDirty = errors.New("database schema is dirty")

// Run применяет все миграции из path. Повторный запуск без изменений не считается ошибкой.
func Run(db *sql.DB, path string, log *slog.Logger) error {
	const op = "migrations.Run"
	log = log.With(sl.Op(op), slog.String("path", path))

	driver, err := pgxv5.WithInstance(db, &pgxv5.Config{})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+path, "pgx_v5", driver)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	from, err := version(m)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("schema is up to date", slog.Uint64("version", uint64(from)))
			return nil
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	to, err := version(m)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	log.Info("schema migrated", slog.Uint64("from", uint64(from)), slog.Uint64("to", uint64(to)))
	return nil
}

// version возвращает текущую версию схемы, 0 для пустой базы.
func version(m *migrate.Migrate) (uint, error) {
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if dirty {
		return v, fmt.Errorf("version %d: %w", v, ErrDirty)
	}
	return v, nil
}
