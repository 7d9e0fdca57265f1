package pg

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vmarkovic/searchmark/internal/storage"
)

// RawExecutor runs built benchmark statements and scans their ranked
// hits. It only understands the hit projection the query builders
// emit; arbitrary SQL goes through the pool directly.
type RawExecutor struct {
	db *pgxpool.Pool
}

func NewRawExecutor(pool *ConnectionPool) *RawExecutor {
	return &RawExecutor{db: pool.GetConn()}
}

func (e *RawExecutor) Exec(
	ctx context.Context,
	query string,
	params []interface{},
	opts *storage.ExecOptions) (*storage.ExecuteResult, error) {
	queryCtx, cancel := queryContext(ctx, opts)
	defer cancel()

	rows, err := e.db.Query(queryCtx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hits []storage.SearchHit
	for rows.Next() {
		var h storage.SearchHit
		if err := rows.Scan(&h.ID, &h.ASIN, &h.Title, &h.Description, &h.Brand, &h.Rank); err != nil {
			return nil, err
		}
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &storage.ExecuteResult{
		TotalHits: len(hits),
		Hits:      hits,
	}, nil
}

func queryContext(ctx context.Context, opts *storage.ExecOptions) (context.Context, context.CancelFunc) {
	if opts != nil && opts.TimeoutSeconds > 0 {
		return context.WithTimeout(ctx, time.Duration(opts.TimeoutSeconds)*time.Second)
	}
	return ctx, func() {}
}

var _ storage.RawExecutor = (*RawExecutor)(nil)
