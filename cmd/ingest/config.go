package main

import (
	"errors"
	"log/slog"
	"os"
	"strconv"

	"github.com/vmarkovic/searchmark/internal/corpus"
	"github.com/vmarkovic/searchmark/internal/ingest"
	"github.com/vmarkovic/searchmark/internal/storage"
	"github.com/vmarkovic/searchmark/pkg/config/env"
)

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type AppConfig struct {
	ENV string
}

// EngineTarget is one database this run loads.
type EngineTarget struct {
	Name    string
	ConnStr string
	Kind    storage.EngineKind
}

type IngestConfig struct {
	DatasetPath string
	DownloadURL string
	Download    bool
	BatchSize   int
	SampleSize  int64
	MaxConns    int
	MetricsPort string
	Pool        ingest.PoolConfig
	Targets     []EngineTarget
}

func (as *AppConfig) Load() (*IngestConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/ingest/.env")
	if err != nil {
		slog.Info("Skipping .env environment variables...", "error", err)
	}

	cfg := &IngestConfig{
		DatasetPath: envOr("DATASET_PATH", "data/metadata.json.gz"),
		DownloadURL: envOr("DOWNLOAD_URL", corpus.DefaultMetadataURL),
		Download:    os.Getenv("DOWNLOAD") == "true",
		BatchSize:   envInt("BATCH_SIZE", ingest.DefaultBatchSize),
		SampleSize:  int64(envInt("SAMPLE_SIZE", 0)),
		MaxConns:    envInt("PG_MAX_CONNS", 0),
		MetricsPort: os.Getenv("METRICS_PORT"),
		Pool: ingest.PoolConfig{
			Workers:       envInt("WORKERS", ingest.DefaultWorkers),
			QueueCapacity: envInt("QUEUE_CAPACITY", ingest.DefaultQueueCapacity),
			TargetTotal:   int64(envInt("TARGET_TOTAL", ingest.DefaultTargetTotal)),
		},
	}

	if url := os.Getenv("POSTGRES_URL"); url != "" {
		cfg.Targets = append(cfg.Targets, EngineTarget{
			Name:    "postgres",
			ConnStr: url,
			Kind:    storage.EngineNative,
		})
	}
	if url := os.Getenv("PARADEDB_URL"); url != "" {
		cfg.Targets = append(cfg.Targets, EngineTarget{
			Name:    "paradedb",
			ConnStr: url,
			Kind:    storage.EngineBM25,
		})
	}

	if len(cfg.Targets) == 0 {
		return nil, errors.New("no ingestion targets configured (set POSTGRES_URL and/or PARADEDB_URL)")
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("Invalid numeric environment variable, using default",
			"key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}
