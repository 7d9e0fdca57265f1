package pg

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/vmarkovic/searchmark/internal/storage"
)

// Stage is one step of the post-load table lifecycle.
type Stage string

const (
	StageUnbufferedLoad    Stage = "unbuffered_load"
	StageDurableConversion Stage = "durable_conversion"
	StageIndexConstruction Stage = "index_construction"
	StageStatisticsRefresh Stage = "statistics_refresh"
	StageReady             Stage = "ready"
)

// DDLConn is the slice of pgxpool the stager needs, kept narrow so
// tests can fake it.
type DDLConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const createProductsTableCmd = `
	CREATE UNLOGGED TABLE products (
		id SERIAL PRIMARY KEY,
		asin VARCHAR(20),
		title TEXT,
		description TEXT,
		price VARCHAR(50),
		brand VARCHAR(200),
		categories TEXT[],
		sales_rank JSONB,
		image_url TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)
`

// TableStager drives the products table through its load lifecycle:
// unbuffered load, durable conversion, index construction with a
// single fallback attempt, then a best-effort statistics refresh.
type TableStager struct {
	db       DDLConn
	kind     storage.EngineKind
	strategy IndexStrategy
	stage    Stage
}

func NewTableStager(db DDLConn, kind storage.EngineKind) *TableStager {
	return &TableStager{
		db:       db,
		kind:     kind,
		strategy: StrategyFor(kind),
		stage:    StageUnbufferedLoad,
	}
}

// NewTableStagerWithStrategy overrides the engine's default index
// strategy. Used by tests and by reduced-index benchmark setups.
func NewTableStagerWithStrategy(db DDLConn, kind storage.EngineKind, strategy IndexStrategy) *TableStager {
	return &TableStager{db: db, kind: kind, strategy: strategy, stage: StageUnbufferedLoad}
}

func (s *TableStager) Stage() Stage {
	return s.stage
}

// CreateUnlogged recreates the products table without crash-durability
// guarantees, maximizing bulk-load throughput. Extensions are created
// here so the later index build can rely on them.
func (s *TableStager) CreateUnlogged(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, "DROP TABLE IF EXISTS products CASCADE"); err != nil {
		return fmt.Errorf("drop products table: %w", err)
	}
	if _, err := s.db.Exec(ctx, createProductsTableCmd); err != nil {
		return fmt.Errorf("create products table: %w", err)
	}

	ext := "pg_trgm"
	if s.kind == storage.EngineBM25 {
		ext = "pg_search"
	}
	if _, err := s.db.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS "+ext); err != nil {
		slog.Warn("Could not create extension", "engine", s.kind, "extension", ext, "error", err)
	}

	s.stage = StageUnbufferedLoad
	slog.Info("Products table created, deferring index creation until after load", "engine", s.kind)
	return nil
}

// Finalize runs the post-ingestion transitions. Only a total
// index-construction failure (primary and fallback) is returned as an
// error; the durability conversion and statistics refresh degrade to
// logged warnings.
func (s *TableStager) Finalize(ctx context.Context) error {
	s.transition(StageDurableConversion)
	start := time.Now()
	if _, err := s.db.Exec(ctx, "ALTER TABLE products SET LOGGED"); err != nil {
		slog.Warn("Could not convert products table to logged", "engine", s.kind, "error", err)
	}
	slog.Info("Durable conversion finished", "engine", s.kind, "took", time.Since(start).Round(time.Millisecond))

	s.transition(StageIndexConstruction)
	indexErr := s.buildIndexes(ctx)

	s.transition(StageStatisticsRefresh)
	start = time.Now()
	if _, err := s.db.Exec(ctx, "ANALYZE products"); err != nil {
		slog.Warn("Statistics refresh failed", "engine", s.kind, "error", err)
	} else {
		slog.Info("Statistics refreshed", "engine", s.kind, "took", time.Since(start).Round(time.Millisecond))
	}

	if indexErr != nil {
		return indexErr
	}

	s.transition(StageReady)
	return nil
}

// buildIndexes runs the engine strategy, attempting the fallback
// configuration exactly once before surfacing the failure.
func (s *TableStager) buildIndexes(ctx context.Context) error {
	start := time.Now()

	err := s.strategy.Build(ctx, s.db)
	if err == nil {
		slog.Info("Index construction finished",
			"engine", s.kind, "strategy", s.strategy.Name(),
			"took", time.Since(start).Round(time.Millisecond))
		return nil
	}

	fallback := s.strategy.Fallback()
	if fallback == nil {
		return fmt.Errorf("%w: %s: %v", storage.ErrIndexBuild, s.strategy.Name(), err)
	}

	slog.Warn("Primary index strategy failed, attempting fallback",
		"engine", s.kind, "strategy", s.strategy.Name(), "error", err)

	if fbErr := fallback.Build(ctx, s.db); fbErr != nil {
		return fmt.Errorf("%w: %s fallback: %v", storage.ErrIndexBuild, s.strategy.Name(), fbErr)
	}

	slog.Info("Fallback index construction finished",
		"engine", s.kind, "strategy", fallback.Name(),
		"took", time.Since(start).Round(time.Millisecond))
	return nil
}

func (s *TableStager) transition(next Stage) {
	slog.Info("Table stage transition", "engine", s.kind, "from", s.stage, "to", next)
	s.stage = next
}
