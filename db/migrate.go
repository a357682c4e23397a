package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"starboard/core/log"
	"starboard/db/migrations"
)

// RunMigrations applies every pending embedded migration inside schema.
// It runs on a dedicated connection so the search_path change stays local.
func RunMigrations(ctx context.Context, conn *sqlx.DB, schema string) error {
	log.Info("📋 Starting to apply database migrations", "schema", schema)

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	sqlConn, err := conn.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire migration connection: %w", err)
	}

	quotedSchema := pq.QuoteIdentifier(schema)
	if _, err := sqlConn.ExecContext(ctx, "CREATE SCHEMA IF NOT EXISTS "+quotedSchema); err != nil {
		_ = sqlConn.Close()
		return fmt.Errorf("failed to create schema %s: %w", schema, err)
	}
	if _, err := sqlConn.ExecContext(ctx, "SET search_path TO "+quotedSchema); err != nil {
		_ = sqlConn.Close()
		return fmt.Errorf("failed to set search_path: %w", err)
	}

	driver, err := postgres.WithConnection(ctx, sqlConn, &postgres.Config{
		SchemaName:      schema,
		MigrationsTable: "schema_migrations",
	})
	if err != nil {
		_ = sqlConn.Close()
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		_ = driver.Close()
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer func() {
		if sourceErr, dbErr := migrator.Close(); sourceErr != nil || dbErr != nil {
			log.Warn("⚠️ Failed to close migrator", "source_error", sourceErr, "db_error", dbErr)
		}
	}()

	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	log.Info("📋 Completed successfully - database migrations applied", "version", version, "dirty", dirty)
	return nil
}
