package runner

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vmarkovic/searchmark/internal/bench/engine"
	"github.com/vmarkovic/searchmark/internal/bench/scoring"
	"github.com/vmarkovic/searchmark/internal/bench/search"
	"github.com/vmarkovic/searchmark/internal/bench/spec"
	"github.com/vmarkovic/searchmark/pkg/metrics"
)

// Runner executes the benchmark matrix. A failed cell never aborts the
// run; it is recorded and the run continues unconditionally.
type Runner struct {
	config Config
}

func New(cfg Config) *Runner {
	return &Runner{config: cfg}
}

// Run drives the read matrix and, when enabled, the write workload
// across all engines. Engines for one cell run concurrently (they
// share no state); queries within one engine run sequentially.
func (r *Runner) Run(ctx context.Context, bs *spec.BenchSpec, instances map[string]engine.Instance) (*BenchmarkResult, error) {
	br := &BenchmarkResult{
		Results:     make(map[string]map[string]QueryResult),
		EngineNames: sortedNames(instances),
		Config:      r.config,
	}

	if r.config.Reads {
		r.runQueries(ctx, br, bs.Queries, instances)
	}

	if r.config.Writes {
		br.Writes = r.runWrites(ctx, instances)
	}

	return br, nil
}

func (r *Runner) runQueries(ctx context.Context, br *BenchmarkResult, queries []spec.Query, instances map[string]engine.Instance) {
	for _, q := range queries {
		br.QueryOrder = append(br.QueryOrder, q.ID)
		br.Results[q.ID] = make(map[string]QueryResult)

		cells := make([]QueryResult, len(br.EngineNames))
		g, gctx := errgroup.WithContext(ctx)

		for i, engName := range br.EngineNames {
			inst := instances[engName]
			g.Go(func() error {
				cells[i] = r.runCell(gctx, q, engName, inst)
				return nil
			})
		}
		// Results are joined before any scoring is read.
		_ = g.Wait()

		for _, cell := range cells {
			br.Results[q.ID][cell.EngineName] = cell
			if cell.Error != nil {
				slog.Warn("Query failed", "query", q.ID, "engine", cell.EngineName, "error", cell.Error)
			}
		}
	}
}

// runCell executes one (query, engine) cell: warmup runs, then the
// measured iterations, then scoring of the final row set.
func (r *Runner) runCell(ctx context.Context, q spec.Query, engName string, inst engine.Instance) QueryResult {
	qr := QueryResult{
		QueryID:    q.ID,
		SearchType: q.Type,
		EngineName: engName,
	}

	engineQuery, err := search.Build(inst.Kind, q.Type, q.Text, r.config.Limit)
	if err != nil {
		qr.Error = err
		return qr
	}

	for i := 0; i < r.config.Warmup; i++ {
		_, _ = inst.Executor.Execute(ctx, engineQuery)
	}

	var latencies []time.Duration
	var lastExec *engine.Execution
	var lastErr error

	for i := 0; i < r.config.Runs; i++ {
		result, err := inst.Executor.Execute(ctx, engineQuery)
		if err != nil {
			lastErr = err
			metrics.QueryErrors.WithLabelValues(engName, string(q.Type)).Inc()
			continue
		}
		lastExec = result
		latencies = append(latencies, result.Latency)
		metrics.QueryLatency.WithLabelValues(engName, string(q.Type)).Observe(result.Latency.Seconds())
	}

	if lastExec == nil {
		qr.Error = lastErr
		return qr
	}

	qr.TotalMatches = lastExec.TotalMatches
	qr.Latency = SummarizeLatencies(latencies)
	qr.Relevance = scoring.Relevance(lastExec.Rows, q.Text)
	qr.NDCG = scoring.NDCG(lastExec.Rows, q.Text, r.config.NDCGDepth)
	return qr
}

func sortedNames(instances map[string]engine.Instance) []string {
	names := make([]string, 0, len(instances))
	for name := range instances {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
