package report

import (
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/vmarkovic/searchmark/internal/bench/runner"
	"github.com/vmarkovic/searchmark/internal/bench/search"
)

type Report struct {
	Meta        ReportMeta        `json:"meta"`
	PerQuery    []Entry           `json:"per_query"`
	Aggregated  []AggregatedEntry `json:"aggregated"`
	Writes      []WriteEntry      `json:"writes,omitempty"`
	Comparisons []Comparison      `json:"comparisons"`
}

type ReportMeta struct {
	RunID       uuid.UUID       `json:"run_id"`
	Timestamp   time.Time       `json:"timestamp"`
	Environment EnvironmentInfo `json:"environment"`
}

type EnvironmentInfo struct {
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	NumCPU    int    `json:"num_cpu"`
}

func NewReportMeta() ReportMeta {
	return ReportMeta{
		RunID:     uuid.New(),
		Timestamp: time.Now(),
		Environment: EnvironmentInfo{
			GoVersion: runtime.Version(),
			OS:        runtime.GOOS,
			Arch:      runtime.GOARCH,
			NumCPU:    runtime.NumCPU(),
		},
	}
}

// Entry is one benchmark cell in presentation form.
type Entry struct {
	QueryID      string              `json:"query_id"`
	SearchType   search.Type         `json:"search_type"`
	EngineName   string              `json:"engine"`
	Relevance    float64             `json:"relevance"`
	NDCG         float64             `json:"ndcg"`
	TotalMatches int64               `json:"total_matches"`
	Latency      runner.LatencyStats `json:"latency"`
	Error        string              `json:"error,omitempty"`
}

// AggregatedEntry is the per-(engine, search type) mean over succeeded
// cells. Errored cells are excluded from the denominator.
type AggregatedEntry struct {
	EngineName    string              `json:"engine"`
	SearchType    search.Type         `json:"search_type"`
	MeanRelevance float64             `json:"mean_relevance"`
	MeanNDCG      float64             `json:"mean_ndcg"`
	Latency       runner.LatencyStats `json:"latency"`
	QueryCount    int                 `json:"query_count"`
	ErrorCount    int                 `json:"error_count"`
}

type WriteEntry struct {
	EngineName string        `json:"engine"`
	Category   string        `json:"category"`
	Ops        int           `json:"ops"`
	Errors     int           `json:"errors"`
	Elapsed    time.Duration `json:"elapsed"`
	Throughput float64       `json:"throughput_per_sec"`
}

// Comparison declares a winner (or a tie) for one search type or one
// write category across two engines.
type Comparison struct {
	Dimension    string  `json:"dimension"`
	FasterEngine string  `json:"faster_engine"`
	SpeedRatio   float64 `json:"speed_ratio"`
	QualityCall  string  `json:"quality_call"`
}

// QualityComparable is the QualityCall value when the NDCG difference
// stays inside the configured threshold.
const QualityComparable = "comparable"
