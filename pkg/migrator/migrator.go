package migrator

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Up применяет все неприменённые миграции из fsys к базе по dsn
// Отсутствие новых миграций ошибкой не считается
func Up(fsys fs.FS, dsn string) error {
	src, err := iofs.New(fsys, ".")
	if err != nil {
		return fmt.Errorf("migrator: open source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return fmt.Errorf("migrator: init: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return fmt.Errorf("migrator: up: %w", err)
	}
	return nil
}
