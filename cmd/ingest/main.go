package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"golang.org/x/sync/errgroup"

	"github.com/vmarkovic/searchmark/internal/corpus"
	"github.com/vmarkovic/searchmark/internal/ingest"
	"github.com/vmarkovic/searchmark/internal/storage/pg"
	"github.com/vmarkovic/searchmark/pkg/logger"
	"github.com/vmarkovic/searchmark/pkg/metrics"
)

func main() {
	logger.Setup(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

	cfg, err := NewAppConfig().Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.MetricsPort != "" {
		go serveMetrics(cfg.MetricsPort)
	}

	if cfg.Download {
		if err := corpus.Download(ctx, cfg.DownloadURL, cfg.DatasetPath); err != nil {
			slog.Error("Failed to download corpus", "url", cfg.DownloadURL, "error", err)
			os.Exit(1)
		}
	}

	// Both engines load concurrently; each gets its own corpus reader
	// and connection pool, so the only shared resource is disk I/O.
	g, gctx := errgroup.WithContext(ctx)
	for _, target := range cfg.Targets {
		g.Go(func() error {
			return ingestTarget(gctx, cfg, target)
		})
	}

	if err := g.Wait(); err != nil {
		slog.Error("Ingestion failed", "error", err)
		os.Exit(1)
	}

	slog.Info("All targets ingested")
}

func ingestTarget(ctx context.Context, cfg *IngestConfig, target EngineTarget) error {
	maxConns := int32(cfg.MaxConns)
	if maxConns <= 0 {
		// One connection per writer plus headroom for DDL and counting.
		maxConns = int32(cfg.Pool.Workers + 2)
	}

	pool, err := pg.NewConnectionPool(ctx, pg.PoolConfig{
		ConnStr:  target.ConnStr,
		MaxConns: maxConns,
		MinConns: 1,
	})
	if err != nil {
		return fmt.Errorf("connect %s: %w", target.Name, err)
	}
	defer pool.Close()

	stager := pg.NewTableStager(pool.GetConn(), target.Kind)
	if err := stager.CreateUnlogged(ctx); err != nil {
		return fmt.Errorf("stage %s: %w", target.Name, err)
	}

	source, err := corpus.Open(cfg.DatasetPath)
	if err != nil {
		return fmt.Errorf("open corpus for %s: %w", target.Name, err)
	}
	defer source.Close()

	store := pg.NewProductStore(pool, target.Kind)
	stats := ingest.NewStats()
	workers := ingest.NewPool(target.Name, store, stats, cfg.Pool)

	pipeline := ingest.NewPipeline(ingest.PipelineConfig{
		Name:       target.Name,
		BatchSize:  cfg.BatchSize,
		SampleSize: cfg.SampleSize,
		Pool:       cfg.Pool,
	}, workers, stats)

	summary, err := pipeline.Run(ctx, source)
	if err != nil {
		return fmt.Errorf("ingest %s: %w", target.Name, err)
	}

	if err := stager.Finalize(ctx); err != nil {
		return fmt.Errorf("finalize %s: %w", target.Name, err)
	}

	count, err := store.Count(ctx)
	if err != nil {
		return fmt.Errorf("verify %s: %w", target.Name, err)
	}
	if count != summary.Processed {
		slog.Warn("Row count differs from processed total",
			"target", target.Name, "rows", count, "processed", summary.Processed)
	}

	slog.Info("Target ready", "target", target.Name,
		"rows", count, "skipped", summary.Skipped,
		"failed_batches", summary.FailedBatches, "took", summary.Elapsed)
	return nil
}

func serveMetrics(port string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	slog.Info("Serving metrics", "port", port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		slog.Warn("Metrics server stopped", "error", err)
	}
}
