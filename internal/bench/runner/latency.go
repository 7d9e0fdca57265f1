package runner

import (
	"math"
	"slices"
	"time"
)

// LatencyStats summarizes the measured wall-clock samples of one
// benchmark cell. Percentiles use nearest-rank selection; Stddev is
// the population deviation over the samples.
type LatencyStats struct {
	Min         time.Duration   `json:"min"`
	Max         time.Duration   `json:"max"`
	Mean        time.Duration   `json:"mean"`
	P50         time.Duration   `json:"p50"`
	P95         time.Duration   `json:"p95"`
	P99         time.Duration   `json:"p99"`
	Stddev      time.Duration   `json:"stddev"`
	SampleCount int             `json:"sample_count"`
	Samples     []time.Duration `json:"-"`
}

// SummarizeLatencies computes the statistics over one cell's samples.
// An empty sample set yields the zero value.
func SummarizeLatencies(samples []time.Duration) LatencyStats {
	if len(samples) == 0 {
		return LatencyStats{}
	}

	sorted := slices.Clone(samples)
	slices.Sort(sorted)
	n := len(sorted)

	var sum int64
	for _, d := range sorted {
		sum += int64(d)
	}
	mean := time.Duration(sum / int64(n))

	var sq float64
	meanNs := float64(mean)
	for _, d := range sorted {
		diff := float64(d) - meanNs
		sq += diff * diff
	}

	return LatencyStats{
		Min:         sorted[0],
		Max:         sorted[n-1],
		Mean:        mean,
		P50:         nearestRank(sorted, 50),
		P95:         nearestRank(sorted, 95),
		P99:         nearestRank(sorted, 99),
		Stddev:      time.Duration(math.Sqrt(sq / float64(n))),
		SampleCount: n,
		Samples:     samples,
	}
}

// MergeLatencies recomputes the statistics over the union of the raw
// samples, so merged percentiles stay exact rather than averaged.
func MergeLatencies(stats []LatencyStats) LatencyStats {
	var all []time.Duration
	for _, s := range stats {
		all = append(all, s.Samples...)
	}
	return SummarizeLatencies(all)
}

func (s LatencyStats) IsZero() bool {
	return s.SampleCount == 0
}

// nearestRank picks the smallest sorted sample at or above the p-th
// percentile rank.
func nearestRank(sorted []time.Duration, p float64) time.Duration {
	idx := int(math.Ceil(p/100*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	return sorted[idx]
}
