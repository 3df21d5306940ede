package postgres_store

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	ports "blog-service/internal/domain/ports/output"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate brings the schema up to date. Closing the temporary *sql.DB leaves the pool open.
func Migrate(pool *pgxpool.Pool, log ports.Logger) error {
	db := stdlib.OpenDBFromPool(pool)

	dbInstance, err := migratepgx.WithInstance(db, &migratepgx.Config{})
	if err != nil {
		db.Close()
		return fmt.Errorf("create DB instance: %w", err)
	}

	srcInstance, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		dbInstance.Close()
		return fmt.Errorf("create source instance: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", srcInstance, "pgx5", dbInstance)
	if err != nil {
		srcInstance.Close()
		dbInstance.Close()
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			log.Warn("Failed to close migrate instance", slog.Any("source_error", srcErr), slog.Any("db_error", dbErr))
		}
	}()

	migrateErr := m.Up()

	fields := []any{}
	version, dirty, versionErr := m.Version()
	if versionErr == nil {
		fields = append(fields, slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
	} else if !errors.Is(versionErr, migrate.ErrNilVersion) {
		log.Warn("Failed to fetch migration version", slog.String("error", versionErr.Error()))
	}

	if migrateErr != nil {
		if !errors.Is(migrateErr, migrate.ErrNoChange) {
			return fmt.Errorf("apply migrations: %w", migrateErr)
		}
		log.Info("No migrations to apply", fields...)
		return nil
	}

	log.Info("Database is migrated", fields...)
	return nil
}
