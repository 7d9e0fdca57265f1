package spec

import "github.com/vmarkovic/searchmark/internal/bench/search"

// BenchSpec is the YAML workload descriptor: which engines to compare,
// which queries to run, and how to measure them. One spec drives the
// whole benchmark; there are no per-variant driver scripts.
type BenchSpec struct {
	Engines  map[string]Engine `yaml:"engines"`
	Queries  []Query           `yaml:"queries"`
	Workload Workload          `yaml:"workload"`
	Metrics  MetricsConfig     `yaml:"metrics"`
}

type Engine struct {
	Type       string `yaml:"type"`
	Connection string `yaml:"connection"`
	Index      string `yaml:"index,omitempty"`
}

type Query struct {
	ID   string      `yaml:"id"`
	Type search.Type `yaml:"type"`
	Text string      `yaml:"text"`
}

// Workload toggles the read and write phases and sets measurement
// parameters.
type Workload struct {
	Reads    bool `yaml:"reads"`
	Writes   bool `yaml:"writes"`
	Limit    int  `yaml:"limit"`
	Warmup   int  `yaml:"warmup"`
	Runs     int  `yaml:"runs"`
	WriteOps int  `yaml:"write_ops"`
}

type MetricsConfig struct {
	NDCGDepth       int     `yaml:"ndcg_depth"`
	ComparableDelta float64 `yaml:"comparable_ndcg_delta"`
}
