package report

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmarkovic/searchmark/internal/bench/runner"
	"github.com/vmarkovic/searchmark/internal/bench/search"
)

func cell(qID, engName string, st search.Type, relevance, ndcg float64, latency time.Duration) runner.QueryResult {
	return runner.QueryResult{
		QueryID:    qID,
		SearchType: st,
		EngineName: engName,
		Relevance:  relevance,
		NDCG:       ndcg,
		Latency:    runner.SummarizeLatencies([]time.Duration{latency}),
	}
}

func benchResult() *runner.BenchmarkResult {
	return &runner.BenchmarkResult{
		Results:     make(map[string]map[string]runner.QueryResult),
		EngineNames: []string{"native", "bm25"},
	}
}

func addCells(br *runner.BenchmarkResult, qID string, cells ...runner.QueryResult) {
	br.QueryOrder = append(br.QueryOrder, qID)
	br.Results[qID] = make(map[string]runner.QueryResult)
	for _, c := range cells {
		br.Results[qID][c.EngineName] = c
	}
}

func TestGenerateAggregatesPerEngineAndType(t *testing.T) {
	br := benchResult()
	addCells(br, "q1",
		cell("q1", "native", search.Fulltext, 80, 90, 10*time.Millisecond),
		cell("q1", "bm25", search.Fulltext, 60, 70, 5*time.Millisecond),
	)
	addCells(br, "q2",
		cell("q2", "native", search.Fulltext, 40, 50, 20*time.Millisecond),
		cell("q2", "bm25", search.Fulltext, 80, 90, 15*time.Millisecond),
	)

	rpt := Generate(br, 5)

	require.Len(t, rpt.PerQuery, 4)
	require.Len(t, rpt.Aggregated, 2)

	byEngine := make(map[string]AggregatedEntry)
	for _, agg := range rpt.Aggregated {
		assert.Equal(t, search.Fulltext, agg.SearchType)
		byEngine[agg.EngineName] = agg
	}

	assert.InDelta(t, 60, byEngine["native"].MeanRelevance, 0.001)
	assert.InDelta(t, 70, byEngine["native"].MeanNDCG, 0.001)
	assert.Equal(t, 15*time.Millisecond, byEngine["native"].Latency.Mean)
	assert.Equal(t, 2, byEngine["native"].QueryCount)
	assert.Zero(t, byEngine["native"].ErrorCount)

	assert.InDelta(t, 70, byEngine["bm25"].MeanRelevance, 0.001)
	assert.Equal(t, 10*time.Millisecond, byEngine["bm25"].Latency.Mean)
}

func TestGenerateExcludesErroredCellsFromMeans(t *testing.T) {
	failed := runner.QueryResult{
		QueryID:    "q2",
		SearchType: search.Fulltext,
		EngineName: "native",
		Error:      errors.New("timeout"),
	}

	br := &runner.BenchmarkResult{
		Results:     make(map[string]map[string]runner.QueryResult),
		EngineNames: []string{"native"},
	}
	addCells(br, "q1", cell("q1", "native", search.Fulltext, 80, 90, 10*time.Millisecond))
	addCells(br, "q2", failed)

	rpt := Generate(br, 5)

	require.Len(t, rpt.Aggregated, 1)
	agg := rpt.Aggregated[0]

	assert.Equal(t, 2, agg.QueryCount)
	assert.Equal(t, 1, agg.ErrorCount)
	assert.InDelta(t, 80, agg.MeanRelevance, 0.001, "errored cell is excluded, not counted as zero")
	assert.InDelta(t, 90, agg.MeanNDCG, 0.001)
	assert.Equal(t, 1, agg.Latency.SampleCount)

	var entry Entry
	for _, e := range rpt.PerQuery {
		if e.QueryID == "q2" {
			entry = e
		}
	}
	assert.Equal(t, "timeout", entry.Error)
}

func TestGenerateReportMeta(t *testing.T) {
	rpt := Generate(benchResult(), 5)

	assert.NotZero(t, rpt.Meta.RunID)
	assert.NotZero(t, rpt.Meta.Timestamp)
	assert.NotEmpty(t, rpt.Meta.Environment.GoVersion)
	assert.Greater(t, rpt.Meta.Environment.NumCPU, 0)
}
