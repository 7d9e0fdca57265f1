package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vmarkovic/searchmark/internal/bench/engine"
)

// Write-operation categories. The statements are identical for both
// Postgres-wire engines so the comparison measures the engines, not
// the SQL.
const (
	WriteInsert = "insert"
	WriteUpdate = "update"
	WriteDelete = "delete"
)

const (
	writeInsertCmd = `
		INSERT INTO products (asin, title, description, price, brand, categories, sales_rank, image_url)
		VALUES ($1, $2, 'Benchmark write workload record', '9.99', 'Benchmark', '{}', '{}', '')`
	writeUpdateCmd = `UPDATE products SET price = '19.99' WHERE asin = $1`
	writeDeleteCmd = `DELETE FROM products WHERE asin = $1`
)

// runWrites measures insert, update and delete rounds per engine.
// Engines without a write path are skipped; individual statement
// failures are counted, never fatal.
func (r *Runner) runWrites(ctx context.Context, instances map[string]engine.Instance) []WriteResult {
	var results []WriteResult

	for _, engName := range sortedNames(instances) {
		mutator, ok := instances[engName].Executor.(engine.Mutator)
		if !ok {
			slog.Info("Engine has no write path, skipping write workload", "engine", engName)
			continue
		}

		asins := benchASINs(engName, r.config.WriteOps)

		results = append(results,
			r.writeRound(ctx, engName, mutator, WriteInsert, asins),
			r.writeRound(ctx, engName, mutator, WriteUpdate, asins),
			r.writeRound(ctx, engName, mutator, WriteDelete, asins),
		)
	}

	return results
}

func (r *Runner) writeRound(ctx context.Context, engName string, m engine.Mutator, category string, asins []string) WriteResult {
	wr := WriteResult{
		EngineName: engName,
		Category:   category,
		Ops:        len(asins),
	}

	start := time.Now()
	for i, asin := range asins {
		var err error
		switch category {
		case WriteInsert:
			err = m.Mutate(ctx, writeInsertCmd, []interface{}{asin, fmt.Sprintf("Benchmark Product %d", i)})
		case WriteUpdate:
			err = m.Mutate(ctx, writeUpdateCmd, []interface{}{asin})
		case WriteDelete:
			err = m.Mutate(ctx, writeDeleteCmd, []interface{}{asin})
		}
		if err != nil {
			wr.Errors++
			slog.Warn("Write operation failed", "engine", engName, "category", category, "error", err)
		}
	}
	wr.Elapsed = time.Since(start)

	slog.Info("Write round finished", "engine", engName, "category", category,
		"ops", wr.Ops, "errors", wr.Errors, "throughput_per_sec", int64(wr.Throughput()))
	return wr
}

// benchASINs generates engine-scoped synthetic identifiers so the
// write rounds never collide with corpus data or the other engine.
func benchASINs(engName string, n int) []string {
	asins := make([]string, n)
	for i := range asins {
		asins[i] = fmt.Sprintf("ZBENCH%.3s%05d", engName, i)
	}
	return asins
}
