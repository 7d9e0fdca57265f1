package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vmarkovic/searchmark/internal/corpus"
)

// PipelineConfig tunes one engine's end-to-end load.
type PipelineConfig struct {
	Name       string
	BatchSize  int
	SampleSize int64 // 0 means the whole corpus
	Pool       PoolConfig
}

// Summary is the final ingestion accounting for one engine.
type Summary struct {
	Processed     int64
	Skipped       int64
	FailedBatches int64
	Elapsed       time.Duration
}

// Pipeline wires the corpus reader, parser, accumulator and worker
// pool together for one engine: a single producer goroutine parses and
// batches, the pool writes with bounded parallelism.
type Pipeline struct {
	cfg   PipelineConfig
	pool  *Pool
	stats *Stats
}

func NewPipeline(cfg PipelineConfig, pool *Pool, stats *Stats) *Pipeline {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	return &Pipeline{cfg: cfg, pool: pool, stats: stats}
}

// Run consumes the line source to exhaustion (or SampleSize), flushes
// the final partial batch, then drains the pool. Malformed lines are
// counted as skipped, never fatal. Cancelling ctx stops
// submission; batches already queued still drain.
func (p *Pipeline) Run(ctx context.Context, source *corpus.LineSource) (Summary, error) {
	start := time.Now()
	slog.Info("Starting ingestion", "pipeline", p.cfg.Name,
		"batch_size", p.cfg.BatchSize, "workers", p.cfg.Pool.Workers)

	p.pool.Start(ctx)

	acc := NewAccumulator(p.cfg.BatchSize)
	var accepted int64

	for source.Next() {
		product, err := corpus.ParseLine(source.Text())
		if err != nil {
			p.stats.AddSkipped(1)
			continue
		}

		accepted++
		if full := acc.Add(product); full != nil {
			if err := p.pool.Submit(ctx, full); err != nil {
				p.finish()
				return p.summary(start), fmt.Errorf("submit batch: %w", err)
			}
		}

		if p.cfg.SampleSize > 0 && accepted >= p.cfg.SampleSize {
			break
		}
	}

	if partial := acc.Flush(); partial != nil {
		if err := p.pool.Submit(ctx, partial); err != nil {
			p.finish()
			return p.summary(start), fmt.Errorf("submit final batch: %w", err)
		}
	}

	if err := source.Err(); err != nil {
		p.finish()
		return p.summary(start), fmt.Errorf("read corpus: %w", err)
	}

	p.finish()
	s := p.summary(start)
	slog.Info("Ingestion complete", "pipeline", p.cfg.Name,
		"processed", s.Processed, "skipped", s.Skipped,
		"failed_batches", s.FailedBatches, "took", s.Elapsed.Round(time.Second))
	return s, nil
}

func (p *Pipeline) finish() {
	p.pool.Close()
	p.pool.Wait()
}

func (p *Pipeline) summary(start time.Time) Summary {
	return Summary{
		Processed:     p.stats.Processed(),
		Skipped:       p.stats.Skipped(),
		FailedBatches: p.stats.FailedBatches(),
		Elapsed:       time.Since(start),
	}
}
