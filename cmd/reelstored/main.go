package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"reelstore/internal/config"
	"reelstore/internal/index"
	"reelstore/internal/logging"
	"reelstore/internal/movies"
	"reelstore/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("prepare directories: %v", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	idx, err := index.Open(cfg)
	if err != nil {
		logger.Error("open index store", slog.String("detail", err.Error()))
		os.Exit(1)
	}
	defer idx.Close()

	svc, err := movies.NewService(cfg, idx, logger)
	if err != nil {
		logger.Error("create movie service", slog.String("detail", err.Error()))
		os.Exit(1)
	}

	srv, err := server.New(cfg, svc, logger)
	if err != nil {
		logger.Error("create server", slog.String("detail", err.Error()))
		os.Exit(1)
	}

	if err := srv.Run(ctx); err != nil {
		logger.Error("server stopped", slog.String("detail", err.Error()))
		os.Exit(1)
	}
	logger.Info("reelstored shutting down")
}
