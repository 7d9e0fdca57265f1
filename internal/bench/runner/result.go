package runner

import (
	"time"

	"github.com/vmarkovic/searchmark/internal/bench/search"
)

// QueryResult is one cell of the benchmark matrix: one query executed
// against one engine. An errored cell carries zero latency and zero
// rows and is excluded from aggregation denominators.
type QueryResult struct {
	QueryID      string
	SearchType   search.Type
	EngineName   string
	Relevance    float64
	NDCG         float64
	TotalMatches int64
	Latency      LatencyStats
	Error        error
}

// WriteResult measures one write-operation category on one engine.
type WriteResult struct {
	EngineName string
	Category   string
	Ops        int
	Errors     int
	Elapsed    time.Duration
}

// Throughput returns successful operations per second.
func (w WriteResult) Throughput() float64 {
	secs := w.Elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(w.Ops-w.Errors) / secs
}

// BenchmarkResult maps queryID -> engineName -> QueryResult.
type BenchmarkResult struct {
	Results     map[string]map[string]QueryResult
	QueryOrder  []string
	EngineNames []string
	Writes      []WriteResult
	Config      Config
}
