// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration brings the catalog schema up to date before the API
// starts serving traffic.
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunUp applies every pending migration under dir. A dirty schema is an error
// and is never forced.
func RunUp(dsn string, dir string, logger *slog.Logger) (err error) {
	migrator, err := migrate.New("file://"+dir, ToPgx5DSN(dsn))
	if err != nil {
		return fmt.Errorf("migration: open %s: %w", dir, err)
	}
	defer func() {
		sourceErr, databaseErr := migrator.Close()
		if closeErr := errors.Join(sourceErr, databaseErr); closeErr != nil {
			logger.Warn("migration_close_failed", slog.Any("error", closeErr))
		}
	}()
	migrator.Log = slogAdapter{logger: logger}

	from, err := version(migrator)
	if err != nil {
		return err
	}

	switch err := migrator.Up(); {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("schema_up_to_date", slog.Uint64("version", uint64(from)))
		return nil
	case err != nil:
		return fmt.Errorf("migration: up from version %d: %w", from, err)
	}

	to, err := version(migrator)
	if err != nil {
		return err
	}
	logger.Info("schema_migrated", slog.Uint64("from_version", uint64(from)), slog.Uint64("to_version", uint64(to)))
	return nil
}

// version returns 0 for an empty database.
func version(migrator *migrate.Migrate) (uint, error) {
	current, dirty, err := migrator.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		return 0, nil
	case err != nil:
		return 0, fmt.Errorf("migration: read version: %w", err)
	case dirty:
		return 0, fmt.Errorf("migration: schema is dirty at version %d", current)
	}
	return current, nil
}

// ToPgx5DSN rewrites postgres:// and postgresql:// URLs to the pgx5:// scheme
// registered by the golang-migrate pgx/v5 driver.
func ToPgx5DSN(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, found := strings.CutPrefix(dsn, prefix); found {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// slogAdapter routes golang-migrate progress lines to the debug level.
type slogAdapter struct {
	logger *slog.Logger
}

func (adapter slogAdapter) Printf(format string, args ...any) {
	adapter.logger.Debug("migration_progress", slog.String("line", strings.TrimSpace(fmt.Sprintf(format, args...))))
}

func (adapter slogAdapter) Verbose() bool { return false }
