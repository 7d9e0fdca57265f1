package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/vmarkovic/searchmark/internal/bench/engine"
	"github.com/vmarkovic/searchmark/internal/bench/report"
	"github.com/vmarkovic/searchmark/internal/bench/runner"
	"github.com/vmarkovic/searchmark/internal/bench/search"
	"github.com/vmarkovic/searchmark/internal/bench/spec"
	"github.com/vmarkovic/searchmark/pkg/logger"
)

func main() {
	logger.Setup(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

	cfg := parseFlags()
	ctx := context.Background()

	if cfg.SpecPath != "" {
		runWithSpec(ctx, cfg)
	} else {
		runQuickMode(ctx, cfg)
	}
}

func runWithSpec(ctx context.Context, cfg cliConfig) {
	bs, err := spec.LoadFromFile(cfg.SpecPath)
	if err != nil {
		slog.Error("Failed to load spec", "path", cfg.SpecPath, "error", err)
		os.Exit(1)
	}

	// CLI flags win over the spec file when explicitly set.
	if cfg.Warmup > 0 {
		bs.Workload.Warmup = cfg.Warmup
	}
	if cfg.Runs > 1 {
		bs.Workload.Runs = cfg.Runs
	}
	if cfg.Writes {
		bs.Workload.Writes = true
	}

	execute(ctx, cfg, bs)
}

func runQuickMode(ctx context.Context, cfg cliConfig) {
	if cfg.PgConnStr == "" && cfg.ParadeDB == "" {
		slog.Error("Quick mode requires --pg and/or --paradedb")
		os.Exit(1)
	}
	if cfg.Query == "" {
		slog.Error("Quick mode requires --query")
		os.Exit(1)
	}

	searchType, err := search.Parse(cfg.SearchType)
	if err != nil {
		slog.Error("Invalid search type", "type", cfg.SearchType, "error", err)
		os.Exit(1)
	}

	engines := make(map[string]spec.Engine)
	if cfg.PgConnStr != "" {
		engines["postgres"] = spec.Engine{Type: "postgres", Connection: cfg.PgConnStr}
	}
	if cfg.ParadeDB != "" {
		engines["paradedb"] = spec.Engine{Type: "paradedb", Connection: cfg.ParadeDB}
	}
	if cfg.EsAddresses != "" {
		engines["elasticsearch"] = spec.Engine{
			Type:       "elasticsearch",
			Connection: cfg.EsAddresses,
			Index:      cfg.EsIndex,
		}
	}

	bs := &spec.BenchSpec{
		Engines: engines,
		Queries: []spec.Query{
			{ID: "quick", Type: searchType, Text: cfg.Query},
		},
		Workload: spec.Workload{
			Reads:    true,
			Writes:   cfg.Writes,
			Limit:    cfg.Limit,
			Warmup:   cfg.Warmup,
			Runs:     cfg.Runs,
			WriteOps: cfg.WriteOps,
		},
		Metrics: spec.MetricsConfig{
			NDCGDepth:       cfg.NDCGDepth,
			ComparableDelta: cfg.Delta,
		},
	}

	execute(ctx, cfg, bs)
}

func execute(ctx context.Context, cfg cliConfig, bs *spec.BenchSpec) {
	instances, cleanup, err := engine.CreateFromSpec(ctx, bs.Engines)
	if err != nil {
		slog.Error("Failed to create executors", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	r := runner.New(runner.ConfigFromSpec(bs))
	result, err := r.Run(ctx, bs, instances)
	if err != nil {
		slog.Error("Benchmark failed", "error", err)
		os.Exit(1)
	}

	rpt := report.Generate(result, bs.Metrics.ComparableDelta)
	report.WriteTable(rpt, os.Stdout)

	if cfg.Output != "" {
		if err := report.WriteJSON(rpt, cfg.Output); err != nil {
			slog.Error("Failed to write JSON report", "error", err)
			os.Exit(1)
		}
		slog.Info("Report written", "path", cfg.Output)
	}
}
