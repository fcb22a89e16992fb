package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/eklix/mysql-faker/internal/bootstrap"
	"github.com/eklix/mysql-faker/internal/config"
	"github.com/eklix/mysql-faker/internal/connector"
	"github.com/eklix/mysql-faker/internal/database/mysql"
	"github.com/eklix/mysql-faker/internal/logging"
	"github.com/eklix/mysql-faker/internal/seeder"
	"github.com/eklix/mysql-faker/internal/utils"
	"github.com/fatih/color"
	"go.uber.org/zap"
)

func runSeed(ctx context.Context, cfg *config.Config) error {
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrInvalid, err)
	}
	defer logger.Sync()

	logger = logger.With(zap.String("addr", cfg.Addr()), zap.String("database", cfg.Database))

	color.Cyan("🔌 Connecting to %s...", cfg.Addr())
	db, err := connector.New(mysql.DSN(cfg), cfg.Retry, mysql.Open, logger).Connect(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	adapter := mysql.New(db)
	defer adapter.Close()
	color.Green("✅ Connected to database successfully")

	created, err := bootstrap.New(adapter, utils.StdInput(), cfg.AutoCreate, logger).EnsureDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	if created {
		color.Green("📦 Created database %s", cfg.Database)
	}

	tx, err := adapter.Begin(ctx)
	if err != nil {
		return err
	}

	gen := seeder.NewDataGenerator(seeder.PostOptions{
		AuthorID: cfg.AuthorID,
		PostType: cfg.PostType,
		GUIDBase: cfg.GUIDBase,
	})
	s, err := seeder.New(tx, gen, cfg.Table, logger)
	if err != nil {
		tx.Rollback()
		return err
	}

	color.Cyan("🌱 Beginning data creation of %d products", cfg.Rows)
	report, err := s.Seed(ctx, seeder.SeedConfig{Rows: cfg.Rows, Clean: cfg.Clean})
	if err != nil {
		return err
	}

	printReport(cfg, report)

	if count, err := adapter.CountRows(ctx, cfg.Table); err == nil {
		color.Cyan("📊 %s.%s now holds %d rows", cfg.Database, cfg.Table, count)
	} else {
		logger.Debug("could not count rows", zap.Error(err))
	}
	return nil
}

func printReport(cfg *config.Config, report *seeder.Report) {
	if report.Cleaned {
		color.Yellow("🗑️  Deleted %d existing rows from %s", report.Deleted, cfg.Table)
	}
	if report.Failed > 0 {
		color.Yellow("⚠️  %d of %d rows failed to insert", report.Failed, report.Attempted())
	}
	color.Green("✅ Finished creating product records: %d inserted in %s", report.Inserted, report.Duration.Round(time.Millisecond))
}
