// Command server runs the Star Wars favorites API.
//
// main only reads configuration, builds the logger and hands both to
// internal/server; everything else lives in internal packages.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sakif/starwars-api/internal/config"
	"github.com/sakif/starwars-api/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := config.NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	if err := cfg.EnsureDataDir(); err != nil {
		logger.Error("failed to prepare data directory", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Cancelled on Ctrl+C or SIGTERM, which starts graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, server.Config{
		Port:          cfg.Port,
		DatabaseURL:   cfg.DatabaseTarget(),
		CurrentUserID: cfg.CurrentUserID,
		RateLimit:     cfg.RateLimit,
		RateBurst:     cfg.RateBurst,
		CORSOrigins:   cfg.CORSOrigins,
	}, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(ctx); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
