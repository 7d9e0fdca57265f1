package ingest

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatsConcurrentCounting(t *testing.T) {
	stats := NewStats()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stats.AddProcessed(10)
			stats.AddSkipped(1)
			stats.AddFailedBatch()
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(500), stats.Processed())
	assert.Equal(t, int64(50), stats.Skipped())
	assert.Equal(t, int64(50), stats.FailedBatches())
}

func TestStatsRateAndETA(t *testing.T) {
	stats := NewStats()
	stats.AddProcessed(100)

	time.Sleep(10 * time.Millisecond)

	assert.Greater(t, stats.Rate(), 0.0)
	assert.Greater(t, stats.ETA(1000), time.Duration(0))
	assert.Zero(t, stats.ETA(50), "target already reached")
}
