// Command migrate applies the embedded database migrations and exits.
package main

import (
	"context"
	"log/slog"
	"os"

	"phresh/config"
	"phresh/internal/errors"
	logs "phresh/internal/infra/log"
	"phresh/internal/infra/persistence/postgres"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("Migration failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}
	if cfg.Postgres == nil {
		return errors.New("postgres configuration is required to migrate")
	}

	logger, err := logs.New(logs.Params{Config: cfg})
	if err != nil {
		return err
	}

	db, err := postgres.Open(cfg, logger)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}
	defer sqlDB.Close()

	return postgres.Migrate(ctx, sqlDB, logger)
}
