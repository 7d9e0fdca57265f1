package runner

import "github.com/vmarkovic/searchmark/internal/bench/spec"

const (
	DefaultLimit     = 10
	DefaultNDCGDepth = 10
	DefaultWarmup    = 0
	DefaultRuns      = 1
	DefaultWriteOps  = 100
)

type Config struct {
	Limit     int
	NDCGDepth int
	Warmup    int
	Runs      int
	Reads     bool
	Writes    bool
	WriteOps  int
}

func DefaultConfig() Config {
	return Config{
		Limit:     DefaultLimit,
		NDCGDepth: DefaultNDCGDepth,
		Warmup:    DefaultWarmup,
		Runs:      DefaultRuns,
		Reads:     true,
		WriteOps:  DefaultWriteOps,
	}
}

// ConfigFromSpec lifts the workload descriptor into a runner config.
func ConfigFromSpec(bs *spec.BenchSpec) Config {
	return Config{
		Limit:     bs.Workload.Limit,
		NDCGDepth: bs.Metrics.NDCGDepth,
		Warmup:    bs.Workload.Warmup,
		Runs:      bs.Workload.Runs,
		Reads:     bs.Workload.Reads,
		Writes:    bs.Workload.Writes,
		WriteOps:  bs.Workload.WriteOps,
	}
}
