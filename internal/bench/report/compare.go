package report

import (
	"fmt"
	"math"

	"github.com/vmarkovic/searchmark/internal/bench/search"
)

// compare derives the cross-engine verdicts: one per search type with
// at least two measured engines, plus one per write category. The
// speed ratio is always max/min so it reads "N times faster".
func compare(r *Report, comparableDelta float64) []Comparison {
	var comparisons []Comparison

	for _, st := range search.All() {
		var entries []AggregatedEntry
		for _, agg := range r.Aggregated {
			if agg.SearchType == st && !agg.Latency.IsZero() {
				entries = append(entries, agg)
			}
		}
		if len(entries) < 2 {
			continue
		}

		fastest, slowest := entries[0], entries[0]
		best, worst := entries[0], entries[0]
		for _, e := range entries[1:] {
			if e.Latency.Mean < fastest.Latency.Mean {
				fastest = e
			}
			if e.Latency.Mean > slowest.Latency.Mean {
				slowest = e
			}
			if e.MeanNDCG > best.MeanNDCG {
				best = e
			}
			if e.MeanNDCG < worst.MeanNDCG {
				worst = e
			}
		}

		quality := QualityComparable
		if math.Abs(best.MeanNDCG-worst.MeanNDCG) > comparableDelta {
			quality = best.EngineName
		}

		comparisons = append(comparisons, Comparison{
			Dimension:    "search/" + string(st),
			FasterEngine: fastest.EngineName,
			SpeedRatio:   speedRatio(float64(slowest.Latency.Mean), float64(fastest.Latency.Mean)),
			QualityCall:  quality,
		})
	}

	comparisons = append(comparisons, compareWrites(r)...)
	return comparisons
}

func compareWrites(r *Report) []Comparison {
	byCategory := make(map[string][]WriteEntry)
	var order []string
	for _, w := range r.Writes {
		if _, seen := byCategory[w.Category]; !seen {
			order = append(order, w.Category)
		}
		byCategory[w.Category] = append(byCategory[w.Category], w)
	}

	var comparisons []Comparison
	for _, category := range order {
		entries := byCategory[category]
		if len(entries) < 2 {
			continue
		}

		fastest, slowest := entries[0], entries[0]
		for _, e := range entries[1:] {
			if e.Throughput > fastest.Throughput {
				fastest = e
			}
			if e.Throughput < slowest.Throughput {
				slowest = e
			}
		}

		comparisons = append(comparisons, Comparison{
			Dimension:    "write/" + category,
			FasterEngine: fastest.EngineName,
			SpeedRatio:   speedRatio(fastest.Throughput, slowest.Throughput),
			QualityCall:  QualityComparable,
		})
	}
	return comparisons
}

func speedRatio(slow, fast float64) float64 {
	if fast <= 0 {
		return 0
	}
	ratio := slow / fast
	// Round to two decimals for stable presentation.
	return math.Round(ratio*100) / 100
}

// Describe renders one comparison as a single report line.
func (c Comparison) Describe() string {
	return fmt.Sprintf("%s: %s is %.2fx faster, quality: %s", c.Dimension, c.FasterEngine, c.SpeedRatio, c.QualityCall)
}
