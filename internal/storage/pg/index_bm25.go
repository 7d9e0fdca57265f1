package pg

import (
	"context"
	"fmt"
)

// bm25Strategy builds the ParadeDB composite BM25 index with per-field
// tokenization. The fallback drops the field configuration down to the
// minimal key_field form.
type bm25Strategy struct{}

func (bm25Strategy) Name() string { return "paradedb-bm25" }

func (bm25Strategy) Fallback() IndexStrategy { return bm25FallbackStrategy{} }

const bm25IndexCmd = `
	CREATE INDEX IF NOT EXISTS products_search_idx ON products
	USING bm25 (id, title, description, brand)
	WITH (
		key_field='id',
		text_fields='{
			"title": {
				"tokenizer": {"type": "en_stem"},
				"record": "position",
				"normalizer": "lowercase"
			},
			"description": {
				"tokenizer": {"type": "en_stem"},
				"record": "position",
				"normalizer": "lowercase"
			},
			"brand": {
				"tokenizer": {"type": "raw"},
				"record": "basic",
				"normalizer": "lowercase"
			}
		}'
	)
`

func (bm25Strategy) Build(ctx context.Context, db DDLConn) error {
	if _, err := db.Exec(ctx, bm25IndexCmd); err != nil {
		return fmt.Errorf("create bm25 index: %w", err)
	}
	return nil
}

type bm25FallbackStrategy struct{}

func (bm25FallbackStrategy) Name() string { return "paradedb-bm25-minimal" }

func (bm25FallbackStrategy) Fallback() IndexStrategy { return nil }

const bm25FallbackIndexCmd = `
	CREATE INDEX IF NOT EXISTS products_search_idx ON products
	USING bm25 (id, title, description, brand)
	WITH (key_field='id')
`

func (bm25FallbackStrategy) Build(ctx context.Context, db DDLConn) error {
	if _, err := db.Exec(ctx, bm25FallbackIndexCmd); err != nil {
		return fmt.Errorf("create minimal bm25 index: %w", err)
	}
	return nil
}
