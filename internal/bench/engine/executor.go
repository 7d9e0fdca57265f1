package engine

import (
	"context"
	"time"

	"github.com/vmarkovic/searchmark/internal/bench/scoring"
	"github.com/vmarkovic/searchmark/internal/bench/search"
)

// Executor runs one engine query and reports its ranked rows and
// wall-clock latency.
type Executor interface {
	Execute(ctx context.Context, query search.Query) (*Execution, error)
	Name() string
	Close() error
}

// Mutator is the optional write-path capability used by the write
// workload. Read-only engines simply do not implement it.
type Mutator interface {
	Mutate(ctx context.Context, sql string, args []interface{}) error
}

type Execution struct {
	Rows         []scoring.ResultRow
	TotalMatches int64
	Latency      time.Duration
}
