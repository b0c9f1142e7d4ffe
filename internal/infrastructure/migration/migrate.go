package migration

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"golang.org/x/exp/slog"
)

// Migrator часть migrate.Migrate, которой пользуется Migration
type Migrator interface {
	Up() error
	Version() (version uint, dirty bool, err error)
	Close() (source error, database error)
}

// MigrationEngine открывает мигратор по источнику и строке подключения
type MigrationEngine func(sourceURL, databaseURL string) (Migrator, error)

// Migration применяет SQL миграции схемы каталога к postgres
type Migration struct {
	sourcePath  string
	databaseURI string
	engine      MigrationEngine
	log         *slog.Logger
}

func NewMigration(sourcePath, databaseURI string, engine MigrationEngine, log *slog.Logger) *Migration {
	if engine == nil {
		engine = DefaultEngine
	}
	return &Migration{
		sourcePath:  sourcePath,
		databaseURI: databaseURI,
		engine:      engine,
		log:         log.With("component", "migration"),
	}
}

func DefaultEngine(sourceURL, databaseURL string) (Migrator, error) {
	return migrate.New(sourceURL, databaseURL)
}

// Up применяет новые миграции и возвращает итоговую версию схемы.
// ErrNoChange ошибкой не считается.
func (mg *Migration) Up() (version uint, err error) {
	m, err := mg.engine("file://"+mg.sourcePath, mg.databaseURI)
	if err != nil {
		return 0, fmt.Errorf("open migrations %s: %w", mg.sourcePath, err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			srcErr = fmt.Errorf("close migration source: %w", srcErr)
		}
		if dbErr != nil {
			dbErr = fmt.Errorf("close migration database: %w", dbErr)
		}
		err = errors.Join(err, srcErr, dbErr)
	}()

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return 0, fmt.Errorf("migration up: %w", upErr)
	}

	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		return 0, nil
	case err != nil:
		return 0, fmt.Errorf("migration version: %w", err)
	case dirty:
		return version, fmt.Errorf("schema version %d is dirty", version)
	}

	mg.log.Info("schema migrated", "version", version, "changed", upErr == nil)

	return version, nil
}
