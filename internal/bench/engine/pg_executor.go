package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/vmarkovic/searchmark/internal/bench/scoring"
	"github.com/vmarkovic/searchmark/internal/bench/search"
	"github.com/vmarkovic/searchmark/internal/storage"
	"github.com/vmarkovic/searchmark/internal/storage/pg"
)

// PgExecutor runs benchmark queries against one Postgres-wire engine
// (vanilla PostgreSQL or ParadeDB, both speak the same protocol).
type PgExecutor struct {
	name     string
	pool     *pg.ConnectionPool
	executor storage.RawExecutor
}

func NewPgExecutor(name string, pool *pg.ConnectionPool) *PgExecutor {
	return &PgExecutor{
		name:     name,
		pool:     pool,
		executor: pg.NewRawExecutor(pool),
	}
}

func (e *PgExecutor) Execute(ctx context.Context, query search.Query) (*Execution, error) {
	start := time.Now()

	result, err := e.executor.Exec(ctx, query.SQL, query.Args, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: pg exec: %v", storage.ErrQueryExec, err)
	}

	latency := time.Since(start)

	rows := make([]scoring.ResultRow, 0, len(result.Hits))
	for _, hit := range result.Hits {
		rows = append(rows, scoring.ResultRow{
			Title:       hit.Title,
			Description: hit.Description,
			Brand:       hit.Brand,
		})
	}

	return &Execution{
		Rows:         rows,
		TotalMatches: int64(result.TotalHits),
		Latency:      latency,
	}, nil
}

// Mutate runs one write statement, used by the write workload.
func (e *PgExecutor) Mutate(ctx context.Context, sql string, args []interface{}) error {
	if _, err := e.pool.GetConn().Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("%w: pg mutate: %v", storage.ErrQueryExec, err)
	}
	return nil
}

func (e *PgExecutor) Ping(ctx context.Context) error {
	return e.pool.Ping(ctx)
}

func (e *PgExecutor) Name() string { return e.name }
func (e *PgExecutor) Close() error { return nil }

var (
	_ Executor = (*PgExecutor)(nil)
	_ Mutator  = (*PgExecutor)(nil)
)
