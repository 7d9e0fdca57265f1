// Package storage defines the engine-agnostic store contracts the
// ingestion pool, table stager and query dispatcher are written against.
// Concrete bindings live in the pg subpackage.
package storage

import (
	"context"

	"github.com/vmarkovic/searchmark/internal/catalog"
)

// EngineKind selects which query-construction and index-construction
// strategy applies to a store. It never branches core algorithmic logic.
type EngineKind string

const (
	// EngineNative is vanilla PostgreSQL with tsvector FTS and pg_trgm.
	EngineNative EngineKind = "native"
	// EngineBM25 is ParadeDB with the pg_search BM25 extension.
	EngineBM25 EngineKind = "bm25"
)

func (k EngineKind) Valid() bool {
	return k == EngineNative || k == EngineBM25
}

// SearchHit is one ranked row of a benchmark query. Every builder
// statement projects exactly this shape: id, asin, title, description,
// brand, rank.
type SearchHit struct {
	ID          int64
	ASIN        string
	Title       string
	Description string
	Brand       string
	Rank        float64
}

// ExecuteResult carries the ranked hits of one query execution.
type ExecuteResult struct {
	TotalHits int
	Hits      []SearchHit
}

// ExecOptions tunes a single execution.
type ExecOptions struct {
	TimeoutSeconds int
}

// RawExecutor executes one engine query and materializes its hits.
type RawExecutor interface {
	Exec(ctx context.Context, query string, params []interface{}, opts *ExecOptions) (*ExecuteResult, error)
}

// BatchWriter persists one batch of products inside a single
// transaction. It returns the number of records actually written;
// per-record failures reduce the count without failing the batch.
type BatchWriter interface {
	WriteBatch(ctx context.Context, batch []catalog.Product) (int, error)
}
