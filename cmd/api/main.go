package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookshelf/internal/book"
	"bookshelf/internal/config"
	"bookshelf/internal/httpx"
	"bookshelf/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	fs := pflag.NewFlagSet("api", pflag.ExitOnError)
	config.RegisterAPIFlags(fs)
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.LoadAPI(fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("books api stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.API, log *zap.Logger) error {
	repo, ready, closeRepo, err := openRepository(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeRepo()

	if cfg.Seed {
		if _, err := book.Seed(ctx, repo, log); err != nil {
			return fmt.Errorf("seed books: %w", err)
		}
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newRouter(ctx, cfg, book.NewService(repo), ready, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return httpx.Serve(ctx, srv, 10*time.Second, log)
}

// openRepository picks Postgres when a DSN is configured and the in-memory
// store otherwise.
func openRepository(ctx context.Context, cfg *config.API, log *zap.Logger) (book.Repository, func(context.Context) error, func(), error) {
	if cfg.DSN == "" {
		log.Info("no database configured, using in-memory store")
		return book.NewMemoryRepo(), func(context.Context) error { return nil }, func() {}, nil
	}

	pool, err := mustOpenDB(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, nil, err
	}
	log.Info("connected to database", zap.String("db", config.RedactDSN(cfg.DSN)))
	return book.NewPostgresRepo(pool, cfg.DBTimeout), pool.Ping, pool.Close, nil
}

func mustOpenDB(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", config.RedactDSN(dsn), err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database %s: %w", config.RedactDSN(dsn), err)
	}
	return pool, nil
}
