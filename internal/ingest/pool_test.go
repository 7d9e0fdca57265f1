package ingest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmarkovic/searchmark/internal/catalog"
)

// fakeWriter counts writes and can simulate per-record drops or whole
// batch failures.
type fakeWriter struct {
	mu      sync.Mutex
	batches int
	records int

	dropPerBatch int
	failBatch    func(n int) bool
	gate         chan struct{}
}

func (w *fakeWriter) WriteBatch(_ context.Context, batch []catalog.Product) (int, error) {
	if w.gate != nil {
		<-w.gate
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.batches++

	if w.failBatch != nil && w.failBatch(w.batches) {
		return 0, errors.New("batch write refused")
	}

	written := len(batch) - w.dropPerBatch
	if written < 0 {
		written = 0
	}
	w.records += written
	return written, nil
}

func submitAll(t *testing.T, p *Pool, products []catalog.Product, batchSize int) {
	t.Helper()
	acc := NewAccumulator(batchSize)
	for _, product := range products {
		if full := acc.Add(product); full != nil {
			require.NoError(t, p.Submit(context.Background(), full))
		}
	}
	if partial := acc.Flush(); partial != nil {
		require.NoError(t, p.Submit(context.Background(), partial))
	}
}

func TestPoolProcessesAllRecords(t *testing.T) {
	const total = 1000
	const batchSize = 32

	for _, workers := range []int{1, 4, 20} {
		writer := &fakeWriter{}
		stats := NewStats()
		pool := NewPool("test", writer, stats, PoolConfig{Workers: workers})
		pool.Start(context.Background())

		submitAll(t, pool, makeProducts(total), batchSize)
		pool.Close()
		pool.Wait()

		assert.Equal(t, int64(total), stats.Processed(),
			"workers=%d must not lose or duplicate records", workers)
		assert.Equal(t, total, writer.records)
	}
}

func TestPoolCountsDroppedRecords(t *testing.T) {
	writer := &fakeWriter{dropPerBatch: 1}
	stats := NewStats()
	pool := NewPool("test", writer, stats, PoolConfig{Workers: 2})
	pool.Start(context.Background())

	submitAll(t, pool, makeProducts(50), 10)
	pool.Close()
	pool.Wait()

	assert.Equal(t, int64(45), stats.Processed())
	assert.Equal(t, int64(5), stats.Skipped())
	assert.Equal(t, int64(0), stats.FailedBatches())
}

func TestPoolSurvivesBatchFailure(t *testing.T) {
	writer := &fakeWriter{failBatch: func(n int) bool { return n == 1 }}
	stats := NewStats()
	pool := NewPool("test", writer, stats, PoolConfig{Workers: 1})
	pool.Start(context.Background())

	submitAll(t, pool, makeProducts(30), 10)
	pool.Close()
	pool.Wait()

	assert.Equal(t, int64(1), stats.FailedBatches())
	assert.Equal(t, int64(20), stats.Processed(), "batches after the failure still land")
}

func TestPoolSubmitBackpressure(t *testing.T) {
	writer := &fakeWriter{gate: make(chan struct{})}
	stats := NewStats()
	pool := NewPool("test", writer, stats, PoolConfig{Workers: 1, QueueCapacity: 1})
	pool.Start(context.Background())

	batch := makeProducts(5)

	// First batch occupies the worker, second fills the queue.
	require.NoError(t, pool.Submit(context.Background(), batch))
	require.NoError(t, pool.Submit(context.Background(), batch))

	submitted := make(chan struct{})
	go func() {
		_ = pool.Submit(context.Background(), batch)
		close(submitted)
	}()

	select {
	case <-submitted:
		t.Fatal("Submit returned while the queue was full")
	case <-time.After(50 * time.Millisecond):
	}

	close(writer.gate)

	select {
	case <-submitted:
	case <-time.After(2 * time.Second):
		t.Fatal("Submit never unblocked after the queue drained")
	}

	pool.Close()
	pool.Wait()
	assert.Equal(t, int64(15), stats.Processed())
}

func TestPoolSubmitCancelled(t *testing.T) {
	writer := &fakeWriter{gate: make(chan struct{})}
	pool := NewPool("test", writer, NewStats(), PoolConfig{Workers: 1, QueueCapacity: 1})
	pool.Start(context.Background())

	batch := makeProducts(2)
	require.NoError(t, pool.Submit(context.Background(), batch))
	require.NoError(t, pool.Submit(context.Background(), batch))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := pool.Submit(ctx, batch)
	assert.ErrorIs(t, err, context.Canceled)

	close(writer.gate)
	pool.Close()
	pool.Wait()
}

func TestPoolSubmitEmptyBatch(t *testing.T) {
	pool := NewPool("test", &fakeWriter{}, NewStats(), PoolConfig{Workers: 1})
	pool.Start(context.Background())

	assert.NoError(t, pool.Submit(context.Background(), nil))

	pool.Close()
	pool.Wait()
}
