package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmarkovic/searchmark/internal/bench/search"
)

func TestCompareDeclaresFasterEngine(t *testing.T) {
	br := benchResult()
	addCells(br, "q1",
		cell("q1", "native", search.Fulltext, 80, 90, 20*time.Millisecond),
		cell("q1", "bm25", search.Fulltext, 80, 88, 10*time.Millisecond),
	)

	rpt := Generate(br, 5)

	require.Len(t, rpt.Comparisons, 1)
	c := rpt.Comparisons[0]

	assert.Equal(t, "search/fulltext", c.Dimension)
	assert.Equal(t, "bm25", c.FasterEngine)
	assert.InDelta(t, 2.0, c.SpeedRatio, 0.001)
	assert.Equal(t, QualityComparable, c.QualityCall, "2 NDCG points inside the threshold")
}

func TestCompareDeclaresQualityWinner(t *testing.T) {
	br := benchResult()
	addCells(br, "q1",
		cell("q1", "native", search.Fulltext, 80, 95, 10*time.Millisecond),
		cell("q1", "bm25", search.Fulltext, 80, 60, 10*time.Millisecond),
	)

	rpt := Generate(br, 5)

	require.Len(t, rpt.Comparisons, 1)
	assert.Equal(t, "native", rpt.Comparisons[0].QualityCall)
}

func TestCompareSkipsSingleEngineTypes(t *testing.T) {
	single := benchResult()
	single.EngineNames = []string{"native"}
	addCells(single, "q1", cell("q1", "native", search.Fulltext, 80, 90, 10*time.Millisecond))

	rpt := Generate(single, 5)
	assert.Empty(t, rpt.Comparisons, "one engine gives nothing to compare")
}

func TestCompareWrites(t *testing.T) {
	rpt := &Report{
		Writes: []WriteEntry{
			{EngineName: "native", Category: "insert", Throughput: 100},
			{EngineName: "bm25", Category: "insert", Throughput: 50},
			{EngineName: "native", Category: "update", Throughput: 200},
		},
	}

	comparisons := compareWrites(rpt)

	require.Len(t, comparisons, 1, "update has a single engine, no verdict")
	assert.Equal(t, "write/insert", comparisons[0].Dimension)
	assert.Equal(t, "native", comparisons[0].FasterEngine)
	assert.InDelta(t, 2.0, comparisons[0].SpeedRatio, 0.001)
}

func TestSpeedRatioRounding(t *testing.T) {
	assert.InDelta(t, 1.33, speedRatio(4, 3), 0.001)
	assert.Zero(t, speedRatio(10, 0))
}

func TestComparisonDescribe(t *testing.T) {
	c := Comparison{
		Dimension:    "search/fulltext",
		FasterEngine: "bm25",
		SpeedRatio:   1.5,
		QualityCall:  QualityComparable,
	}
	assert.Equal(t, "search/fulltext: bm25 is 1.50x faster, quality: comparable", c.Describe())
}
