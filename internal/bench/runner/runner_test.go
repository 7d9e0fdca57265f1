package runner

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmarkovic/searchmark/internal/bench/engine"
	"github.com/vmarkovic/searchmark/internal/bench/scoring"
	"github.com/vmarkovic/searchmark/internal/bench/search"
	"github.com/vmarkovic/searchmark/internal/bench/spec"
	"github.com/vmarkovic/searchmark/internal/storage"
)

type fakeExecutor struct {
	mu    sync.Mutex
	name  string
	rows  []scoring.ResultRow
	err   error
	calls int
}

func (f *fakeExecutor) Execute(_ context.Context, _ search.Query) (*engine.Execution, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	return &engine.Execution{
		Rows:         f.rows,
		TotalMatches: int64(len(f.rows)),
		Latency:      3 * time.Millisecond,
	}, nil
}

func (f *fakeExecutor) Name() string { return f.name }
func (f *fakeExecutor) Close() error { return nil }

type fakeMutatingExecutor struct {
	fakeExecutor
	mutations int
	mutateErr error
}

func (f *fakeMutatingExecutor) Mutate(_ context.Context, _ string, _ []interface{}) error {
	f.mu.Lock()
	f.mutations++
	f.mu.Unlock()
	return f.mutateErr
}

func benchQueries() []spec.Query {
	return []spec.Query{
		{ID: "q1", Type: search.Fulltext, Text: "apple iphone"},
		{ID: "q2", Type: search.Exact, Text: "Apple iPhone"},
	}
}

func instancesOf(execs ...engine.Executor) map[string]engine.Instance {
	instances := make(map[string]engine.Instance, len(execs))
	for _, e := range execs {
		instances[e.Name()] = engine.Instance{Executor: e, Kind: storage.EngineNative}
	}
	return instances
}

func TestRunnerScoresEveryCell(t *testing.T) {
	good := &fakeExecutor{
		name: "native",
		rows: []scoring.ResultRow{{Title: "Apple iPhone", Brand: "Apple"}},
	}

	r := New(Config{Limit: 10, NDCGDepth: 10, Runs: 3, Reads: true})
	bs := &spec.BenchSpec{Queries: benchQueries()}

	result, err := r.Run(context.Background(), bs, instancesOf(good))
	require.NoError(t, err)

	assert.Equal(t, []string{"q1", "q2"}, result.QueryOrder)
	for _, qID := range result.QueryOrder {
		cell := result.Results[qID]["native"]
		require.NoError(t, cell.Error)
		assert.Equal(t, int64(1), cell.TotalMatches)
		assert.Equal(t, 3, cell.Latency.SampleCount)
		assert.Greater(t, cell.Relevance, 0.0)
		assert.Greater(t, cell.NDCG, 0.0)
	}
}

func TestRunnerContinuesPastFailingEngine(t *testing.T) {
	good := &fakeExecutor{
		name: "native",
		rows: []scoring.ResultRow{{Title: "Apple iPhone"}},
	}
	broken := &fakeExecutor{
		name: "bm25",
		err:  errors.New("connection refused"),
	}

	r := New(Config{Limit: 10, NDCGDepth: 10, Runs: 2, Reads: true})
	bs := &spec.BenchSpec{Queries: benchQueries()}

	result, err := r.Run(context.Background(), bs, instancesOf(good, broken))
	require.NoError(t, err, "a failing engine never aborts the run")

	for _, qID := range result.QueryOrder {
		assert.Error(t, result.Results[qID]["bm25"].Error)
		assert.Zero(t, result.Results[qID]["bm25"].Latency.SampleCount)

		assert.NoError(t, result.Results[qID]["native"].Error)
		assert.Equal(t, 2, result.Results[qID]["native"].Latency.SampleCount)
	}
}

func TestRunnerWarmupNotMeasured(t *testing.T) {
	exec := &fakeExecutor{name: "native", rows: []scoring.ResultRow{{Title: "Apple"}}}

	r := New(Config{Limit: 10, NDCGDepth: 10, Warmup: 2, Runs: 3, Reads: true})
	bs := &spec.BenchSpec{Queries: benchQueries()[:1]}

	result, err := r.Run(context.Background(), bs, instancesOf(exec))
	require.NoError(t, err)

	assert.Equal(t, 5, exec.calls, "warmup plus measured runs")
	assert.Equal(t, 3, result.Results["q1"]["native"].Latency.SampleCount)
}

func TestRunnerWriteWorkload(t *testing.T) {
	mutating := &fakeMutatingExecutor{fakeExecutor: fakeExecutor{name: "native"}}
	readOnly := &fakeExecutor{name: "es"}

	r := New(Config{WriteOps: 4, Writes: true})
	bs := &spec.BenchSpec{Queries: benchQueries()}

	result, err := r.Run(context.Background(), bs, instancesOf(mutating, readOnly))
	require.NoError(t, err)

	require.Len(t, result.Writes, 3, "insert, update, delete for the one writable engine")
	assert.Equal(t, 12, mutating.mutations)

	categories := make(map[string]bool)
	for _, w := range result.Writes {
		assert.Equal(t, "native", w.EngineName)
		assert.Equal(t, 4, w.Ops)
		assert.Zero(t, w.Errors)
		categories[w.Category] = true
	}
	assert.Equal(t, map[string]bool{WriteInsert: true, WriteUpdate: true, WriteDelete: true}, categories)
}

func TestRunnerWriteErrorsCounted(t *testing.T) {
	mutating := &fakeMutatingExecutor{
		fakeExecutor: fakeExecutor{name: "native"},
		mutateErr:    errors.New("constraint violation"),
	}

	r := New(Config{WriteOps: 2, Writes: true})
	result, err := r.Run(context.Background(), &spec.BenchSpec{}, instancesOf(mutating))
	require.NoError(t, err)

	for _, w := range result.Writes {
		assert.Equal(t, 2, w.Errors, "failed statements are counted, never fatal")
	}
}

func TestWriteResultThroughput(t *testing.T) {
	wr := WriteResult{Ops: 100, Errors: 10, Elapsed: 2 * time.Second}
	assert.InDelta(t, 45.0, wr.Throughput(), 0.001)

	assert.Zero(t, WriteResult{Ops: 10}.Throughput())
}
