package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"

	"github.com/deppfellow/scripts/internal/config"
)

// LatestVersion asks MigrateTo for every embedded migration.
const LatestVersion int32 = -1

// versionTable tracks the applied schema version.
const versionTable = "schema_version"

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies every pending migration.
func Migrate(ctx context.Context, logger *zerolog.Logger, cfg *config.Config) error {
	return MigrateTo(ctx, logger, cfg, LatestVersion)
}

// MigrateTo moves the schema to target, applying or rolling back embedded
// tern migrations over a single connection. LatestVersion means the newest
// embedded migration.
func MigrateTo(ctx context.Context, logger *zerolog.Logger, cfg *config.Config, target int32) error {
	conn, err := pgx.Connect(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting for migrations: %w", err)
	}
	defer conn.Close(ctx)

	m, err := tern.NewMigrator(ctx, conn, versionTable)
	if err != nil {
		return fmt.Errorf("constructing database migrator: %w", err)
	}

	subtree, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("retrieving database migrations subtree: %w", err)
	}
	if err := m.LoadMigrations(subtree); err != nil {
		return fmt.Errorf("loading database migrations: %w", err)
	}

	m.OnStart = func(sequence int32, name, direction, _ string) {
		logger.Info().
			Int32("sequence", sequence).
			Str("name", name).
			Str("direction", direction).
			Msg("running migration")
	}

	if target == LatestVersion {
		target = int32(len(m.Migrations))
	}
	if target < 0 || target > int32(len(m.Migrations)) {
		return fmt.Errorf("migration target %d out of range 0..%d", target, len(m.Migrations))
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	if err := m.MigrateTo(ctx, target); err != nil {
		return fmt.Errorf("applying database migrations: %w", err)
	}

	if from == target {
		logger.Info().Int32("version", target).Msg("database schema up to date")
	} else {
		logger.Info().Int32("from", from).Int32("to", target).Msg("migrated database schema")
	}
	return nil
}
