package main

import (
	"context"
	"fmt"
	"os"

	"bookshelf/db/migrations"
	"bookshelf/internal/config"
	"bookshelf/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	fs := pflag.NewFlagSet("migrate", pflag.ExitOnError)
	command := fs.StringP("command", "c", "up", "migration command: up, down, status, create")
	name := fs.StringP("name", "n", "", "name for the 'create' command")
	level := fs.String("log-level", "info", "debug, info, warn or error")
	_ = fs.Parse(os.Args[1:])

	log, err := logger.New(*level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(context.Background(), log, *command, *name); err != nil {
		log.Fatal("migrate", zap.String("command", *command), zap.Error(err))
	}
}

func run(ctx context.Context, log *zap.Logger, command, name string) error {
	loadEnvFiles()

	if command == "create" {
		if name == "" {
			return fmt.Errorf("name is required for 'create' command")
		}
		if err := goose.Create(nil, migrationsDir(), name, "sql"); err != nil {
			return fmt.Errorf("create migration: %w", err)
		}
		log.Info("migration created", zap.String("name", name), zap.String("dir", migrationsDir()))
		return nil
	}

	dsn := databaseDSN()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", config.RedactDSN(dsn), err)
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	dir := "."
	if _, ok := os.LookupEnv("MIGRATIONS_DIR"); ok {
		goose.SetBaseFS(nil)
		dir = migrationsDir()
	} else {
		goose.SetBaseFS(migrations.FS)
	}
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	switch command {
	case "up":
		if err := goose.Up(db, dir); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		log.Info("migrations applied", zap.String("db", config.RedactDSN(dsn)))
	case "down":
		if err := goose.Down(db, dir); err != nil {
			return fmt.Errorf("roll back migration: %w", err)
		}
		log.Info("migration rolled back", zap.String("db", config.RedactDSN(dsn)))
	case "status":
		if err := goose.Status(db, dir); err != nil {
			return fmt.Errorf("migration status: %w", err)
		}
	default:
		return fmt.Errorf("unknown command %q, use: up, down, status, create", command)
	}
	return nil
}
