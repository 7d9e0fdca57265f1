package ingest

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/vmarkovic/searchmark/internal/catalog"
	"github.com/vmarkovic/searchmark/internal/storage"
	"github.com/vmarkovic/searchmark/pkg/metrics"
)

const (
	DefaultWorkers          = 20
	DefaultQueueCapacity    = 100
	DefaultProgressInterval = 50_000
	DefaultTargetTotal      = 1_600_000
)

// PoolConfig tunes one engine's ingestion pool.
type PoolConfig struct {
	Workers          int
	QueueCapacity    int
	ProgressInterval int64
	TargetTotal      int64
}

func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		Workers:          DefaultWorkers,
		QueueCapacity:    DefaultQueueCapacity,
		ProgressInterval: DefaultProgressInterval,
		TargetTotal:      DefaultTargetTotal,
	}
}

func (c *PoolConfig) applyDefaults() {
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if c.QueueCapacity <= 0 {
		c.QueueCapacity = DefaultQueueCapacity
	}
	if c.ProgressInterval <= 0 {
		c.ProgressInterval = DefaultProgressInterval
	}
	if c.TargetTotal <= 0 {
		c.TargetTotal = DefaultTargetTotal
	}
}

// Pool is a fixed-size set of workers consuming product batches from a
// bounded queue and writing each as a single store transaction. The
// queue is the only synchronization point between producer and workers
// besides the atomic counters in Stats.
type Pool struct {
	name  string
	cfg   PoolConfig
	store storage.BatchWriter
	stats *Stats

	queue chan []catalog.Product
	wg    sync.WaitGroup

	closeOnce sync.Once
}

func NewPool(name string, store storage.BatchWriter, stats *Stats, cfg PoolConfig) *Pool {
	cfg.applyDefaults()
	return &Pool{
		name:  name,
		cfg:   cfg,
		store: store,
		stats: stats,
		queue: make(chan []catalog.Product, cfg.QueueCapacity),
	}
}

// Start launches the workers. Workers exit once the queue is closed
// and drained, or once ctx is cancelled.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.cfg.Workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

// Submit hands a batch to the pool, blocking while the queue is full.
// Ownership of the batch transfers to the pool. A cancelled context is
// the only way a batch is refused.
func (p *Pool) Submit(ctx context.Context, batch []catalog.Product) error {
	if len(batch) == 0 {
		return nil
	}
	select {
	case p.queue <- batch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close signals that no more batches will be submitted. Queued batches
// are still drained by the workers.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.queue)
	})
}

// Wait blocks until all workers have exited.
func (p *Pool) Wait() {
	p.wg.Wait()
}

func (p *Pool) worker(ctx context.Context) {
	defer p.wg.Done()

	for batch := range p.queue {
		written, err := p.store.WriteBatch(ctx, batch)
		if err != nil {
			// A lost batch is logged, never retried.
			p.stats.AddFailedBatch()
			metrics.IngestBatchesFailed.WithLabelValues(p.name).Inc()
			slog.Error("Batch write failed, continuing with next batch",
				"pool", p.name, "batch_size", len(batch), "error", err)
			continue
		}

		if dropped := len(batch) - written; dropped > 0 {
			p.stats.AddSkipped(dropped)
		}
		metrics.IngestRecords.WithLabelValues(p.name).Add(float64(written))
		p.reportProgress(p.stats.AddProcessed(written), written)
	}
}

// reportProgress logs rate and ETA whenever the processed total crosses
// a progress-interval boundary. Observability only, never blocks.
func (p *Pool) reportProgress(total int64, written int) {
	interval := p.cfg.ProgressInterval
	if total/interval == (total-int64(written))/interval {
		return
	}
	slog.Info("Ingestion progress",
		"pool", p.name,
		"processed", total,
		"rate_per_sec", int64(p.stats.Rate()),
		"eta", p.stats.ETA(p.cfg.TargetTotal).Round(time.Second),
	)
}
