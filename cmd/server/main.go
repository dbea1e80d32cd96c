package main

import (
	"log/slog"
	"net/http"
	"os"

	"communitycash/internal/config"
	"communitycash/internal/server"
	"communitycash/internal/storage/sqlite"
	"communitycash/pkg/logging"
)

func main() {
	logger := logging.Setup()

	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("storage initialized", "database", cfg.DBPath)

	srv := server.New(cfg, store, logger)

	slog.Info("server starting", "address", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, srv.Router()); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
