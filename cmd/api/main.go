package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/vmarkovic/searchmark/internal/bench/engine"
	"github.com/vmarkovic/searchmark/internal/server"
	"github.com/vmarkovic/searchmark/pkg/logger"
)

func main() {
	logger.Setup(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

	cfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	instances, cleanup, err := engine.CreateFromSpec(context.Background(), cfg.Engines)
	if err != nil {
		slog.Error("Failed to create engine executors", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	e := echo.New()
	e.HideBanner = true

	s := server.NewServer(e, cfg, instances)

	slog.Info("Starting API", "port", cfg.Port, "engines", len(instances))
	if err := s.Start(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}
