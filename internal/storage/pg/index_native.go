package pg

import (
	"context"
	"log/slog"

	"github.com/vmarkovic/searchmark/internal/storage"
)

// IndexStrategy builds the engine-specific search structures after the
// bulk load. Fallback returns a reduced-configuration strategy, or nil
// when the strategy has none.
type IndexStrategy interface {
	Name() string
	Build(ctx context.Context, db DDLConn) error
	Fallback() IndexStrategy
}

func StrategyFor(kind storage.EngineKind) IndexStrategy {
	if kind == storage.EngineBM25 {
		return bm25Strategy{}
	}
	return nativeStrategy{}
}

// nativeStrategy builds the vanilla PostgreSQL index set: per-field and
// combined GIN tsvector indexes, trigram indexes for fuzzy search, and
// btree lookups. Individual index failures degrade the engine but do
// not fail the build, so there is no fallback configuration.
type nativeStrategy struct{}

func (nativeStrategy) Name() string { return "pg-native" }

func (nativeStrategy) Fallback() IndexStrategy { return nil }

var nativeIndexCmds = []string{
	"CREATE INDEX IF NOT EXISTS idx_asin ON products(asin)",
	"CREATE INDEX IF NOT EXISTS idx_title_gin ON products USING gin(to_tsvector('english', title))",
	"CREATE INDEX IF NOT EXISTS idx_description_gin ON products USING gin(to_tsvector('english', description))",
	"CREATE INDEX IF NOT EXISTS idx_brand_gin ON products USING gin(to_tsvector('english', brand))",
	"CREATE INDEX IF NOT EXISTS idx_combined_fulltext ON products USING gin(to_tsvector('english', COALESCE(title, '') || ' ' || COALESCE(description, '') || ' ' || COALESCE(brand, '')))",
	"CREATE INDEX IF NOT EXISTS idx_title_trgm ON products USING gin (title gin_trgm_ops)",
	"CREATE INDEX IF NOT EXISTS idx_description_trgm ON products USING gin (description gin_trgm_ops)",
	"CREATE INDEX IF NOT EXISTS idx_brand_trgm ON products USING gin (brand gin_trgm_ops)",
	"CREATE INDEX IF NOT EXISTS idx_price ON products(price)",
}

func (s nativeStrategy) Build(ctx context.Context, db DDLConn) error {
	for i, cmd := range nativeIndexCmds {
		slog.Info("Creating index", "strategy", s.Name(), "index", i+1, "total", len(nativeIndexCmds))
		if _, err := db.Exec(ctx, cmd); err != nil {
			slog.Warn("Could not create index", "strategy", s.Name(), "error", err)
		}
	}

	if _, err := db.Exec(ctx, "ALTER TABLE products ADD CONSTRAINT products_asin_unique UNIQUE (asin)"); err != nil {
		slog.Warn("Could not add unique asin constraint", "strategy", s.Name(), "error", err)
	}
	return nil
}
