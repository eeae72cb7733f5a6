package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	_ "github.com/ClickHouse/clickhouse-go/v2"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/clickhouse"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

var config struct {
	ClickhouseDSN string `long:"clickhouse-dsn" env:"BITCORE_NODE_CLICKHOUSE_DSN" default:"clickhouse://localhost:9000/default" description:"clickhouse dsn"`
	MigrationsDir string `long:"migrations-dir" env:"BITCORE_NODE_MIGRATIONS_DIR" default:"migrations/clickhouse" description:"path to migration files"`
	Down          bool   `long:"down" description:"roll all migrations back instead of applying them"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&config, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("Failed to parse arguments", zap.Error(err))
	}

	if err := run(ctx, logger); err != nil {
		logger.Fatal("Migration run failed", zap.Error(err))
	}
}

func run(ctx context.Context, logger *zap.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir, err := filepath.Abs(config.MigrationsDir)
	if err != nil {
		return fmt.Errorf("resolve migrations dir: %w", err)
	}
	if info, err := os.Stat(dir); err != nil {
		return fmt.Errorf("stat migrations dir %s: %w", dir, err)
	} else if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	m, err := migrate.New(fmt.Sprintf("file://%s", filepath.ToSlash(dir)), config.ClickhouseDSN)
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			logger.Error("Close migration source", zap.Error(srcErr))
		}
		if dbErr != nil {
			logger.Error("Close migration database", zap.Error(dbErr))
		}
	}()

	apply := m.Up
	direction := "up"
	if config.Down {
		apply = m.Down
		direction = "down"
	}

	if err := apply(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("No migrations to apply", zap.String("direction", direction))
			return nil
		}
		return err
	}

	logger.Info("Migrations applied", zap.String("direction", direction))
	return nil
}
