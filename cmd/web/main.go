package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"bookshelf/internal/catalog"
	"bookshelf/internal/config"
	"bookshelf/internal/logger"
	"bookshelf/internal/telemetry"
	"bookshelf/internal/web"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	fs := pflag.NewFlagSet("web", pflag.ExitOnError)
	config.RegisterWebFlags(fs)
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.LoadWeb(fs)
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

	rec, err := telemetry.New(cfg.AppInsightsConnectionString, log)
	if err != nil {
		log.Fatal("telemetry", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := catalog.NewClient(catalog.ClientConfig{
		BaseURL:       cfg.BooksAPIURL,
		LatestTimeout: cfg.HomeTimeout,
		UserAgent:     "bookshelf-web",
	}, rec, log)

	if err := web.NewServer(ctx, cfg, client, rec, log).Run(ctx); err != nil {
		log.Fatal("web server stopped", zap.Error(err))
	}
}
