package ingest

import (
	"sync/atomic"
	"time"
)

// Stats holds the process-wide ingestion counters. All workers mutate
// it concurrently; every field is atomic, there is no lock.
type Stats struct {
	processed     atomic.Int64
	skipped       atomic.Int64
	failedBatches atomic.Int64
	start         time.Time
}

func NewStats() *Stats {
	return &Stats{start: time.Now()}
}

// AddProcessed adds n successfully written records and returns the new
// total.
func (s *Stats) AddProcessed(n int) int64 {
	return s.processed.Add(int64(n))
}

func (s *Stats) AddSkipped(n int) int64 {
	return s.skipped.Add(int64(n))
}

func (s *Stats) AddFailedBatch() int64 {
	return s.failedBatches.Add(1)
}

func (s *Stats) Processed() int64 {
	return s.processed.Load()
}

func (s *Stats) Skipped() int64 {
	return s.skipped.Load()
}

func (s *Stats) FailedBatches() int64 {
	return s.failedBatches.Load()
}

func (s *Stats) Elapsed() time.Duration {
	return time.Since(s.start)
}

// Rate returns processed records per second since ingestion start.
func (s *Stats) Rate() float64 {
	elapsed := s.Elapsed().Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(s.Processed()) / elapsed
}

// ETA estimates remaining time to reach target at the current rate.
func (s *Stats) ETA(target int64) time.Duration {
	rate := s.Rate()
	remaining := target - s.Processed()
	if rate <= 0 || remaining <= 0 {
		return 0
	}
	return time.Duration(float64(remaining) / rate * float64(time.Second))
}
