package main

import (
	"flag"
)

type cliConfig struct {
	SpecPath    string
	PgConnStr   string
	ParadeDB    string
	EsAddresses string
	EsIndex     string
	Query       string
	SearchType  string
	Limit       int
	Warmup      int
	Runs        int
	Writes      bool
	WriteOps    int
	NDCGDepth   int
	Delta       float64
	Output      string
}

func parseFlags() cliConfig {
	cfg := cliConfig{}

	flag.StringVar(&cfg.SpecPath, "spec", "", "Path to bench spec YAML (full matrix mode)")
	flag.StringVar(&cfg.PgConnStr, "pg", "", "PostgreSQL connection string (quick mode)")
	flag.StringVar(&cfg.ParadeDB, "paradedb", "", "ParadeDB connection string (quick mode)")
	flag.StringVar(&cfg.EsAddresses, "es-addresses", "", "Elasticsearch addresses (quick mode, optional)")
	flag.StringVar(&cfg.EsIndex, "es-index", "products", "Elasticsearch index name")
	flag.StringVar(&cfg.Query, "query", "", "Single query text (quick mode)")
	flag.StringVar(&cfg.SearchType, "type", "fulltext", "Search type: fulltext, boolean, field, fuzzy, exact")
	flag.IntVar(&cfg.Limit, "limit", 10, "Maximum results per query")
	flag.IntVar(&cfg.Warmup, "warmup", 0, "Number of warmup runs before measurement")
	flag.IntVar(&cfg.Runs, "runs", 1, "Number of measured iterations")
	flag.BoolVar(&cfg.Writes, "writes", false, "Run the write workload as well")
	flag.IntVar(&cfg.WriteOps, "write-ops", 100, "Operations per write category")
	flag.IntVar(&cfg.NDCGDepth, "ndcg-depth", 10, "Top-K truncation for NDCG")
	flag.Float64Var(&cfg.Delta, "comparable-delta", 5, "NDCG delta below which engines are called comparable")
	flag.StringVar(&cfg.Output, "output", "", "Output path for the JSON report")

	flag.Parse()
	return cfg
}
