package pg

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vmarkovic/searchmark/internal/catalog"
	"github.com/vmarkovic/searchmark/internal/storage"
)

const insertProductCmd = `
	INSERT INTO products (asin, title, description, price, brand, categories, sales_rank, image_url)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

// ProductStore writes product batches to one engine's products table.
type ProductStore struct {
	db   *pgxpool.Pool
	kind storage.EngineKind
}

func NewProductStore(pool *ConnectionPool, kind storage.EngineKind) *ProductStore {
	return &ProductStore{db: pool.GetConn(), kind: kind}
}

// WriteBatch persists one batch inside a single transaction. A failed
// record is logged and skipped; the transaction still commits with the
// remaining records. Only a transaction-level failure loses the batch.
func (s *ProductStore) WriteBatch(ctx context.Context, batch []catalog.Product) (int, error) {
	if len(batch) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: begin: %v", storage.ErrBatchWrite, err)
	}
	defer tx.Rollback(ctx)

	written := 0
	for _, p := range batch {
		salesRankJSON, err := json.Marshal(p.SalesRank)
		if err != nil {
			slog.Warn("Skipping record with unencodable sales rank", "asin", p.ASIN, "error", err)
			continue
		}

		_, err = tx.Exec(ctx, insertProductCmd,
			p.ASIN,
			p.Title,
			p.Description,
			p.Price,
			p.Brand,
			categoriesArrayLiteral(p.Categories),
			string(salesRankJSON),
			p.ImageURL,
		)
		if err != nil {
			slog.Warn("Record write failed, continuing with batch",
				"engine", s.kind, "asin", p.ASIN,
				"error", fmt.Errorf("%w: %v", storage.ErrRecordWrite, err))
			continue
		}
		written++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("%w: commit: %v", storage.ErrBatchWrite, err)
	}
	return written, nil
}

func (s *ProductStore) Kind() storage.EngineKind {
	return s.kind
}

// Count returns the number of products currently stored.
func (s *ProductStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

// categoriesArrayLiteral renders a Postgres text[] literal with quotes
// and backslashes escaped.
func categoriesArrayLiteral(categories []string) string {
	if len(categories) == 0 {
		return "{}"
	}

	escaped := make([]string, 0, len(categories))
	for _, c := range categories {
		c = strings.ReplaceAll(c, "\\", "\\\\")
		c = strings.ReplaceAll(c, "\"", "\\\"")
		escaped = append(escaped, c)
	}
	return "{\"" + strings.Join(escaped, "\",\"") + "\"}"
}

var _ storage.BatchWriter = (*ProductStore)(nil)
