package report

import (
	"github.com/vmarkovic/searchmark/internal/bench/runner"
	"github.com/vmarkovic/searchmark/internal/bench/search"
)

// Generate turns a raw benchmark result into the presentation report.
func Generate(br *runner.BenchmarkResult, comparableDelta float64) *Report {
	r := &Report{
		Meta: NewReportMeta(),
	}

	for _, qID := range br.QueryOrder {
		engineResults := br.Results[qID]
		for _, engName := range br.EngineNames {
			qr := engineResults[engName]
			entry := Entry{
				QueryID:      qr.QueryID,
				SearchType:   qr.SearchType,
				EngineName:   qr.EngineName,
				Relevance:    qr.Relevance,
				NDCG:         qr.NDCG,
				TotalMatches: qr.TotalMatches,
				Latency:      qr.Latency,
			}
			if qr.Error != nil {
				entry.Error = qr.Error.Error()
			}
			r.PerQuery = append(r.PerQuery, entry)
		}
	}

	r.Aggregated = aggregate(br)

	for _, w := range br.Writes {
		r.Writes = append(r.Writes, WriteEntry{
			EngineName: w.EngineName,
			Category:   w.Category,
			Ops:        w.Ops,
			Errors:     w.Errors,
			Elapsed:    w.Elapsed,
			Throughput: w.Throughput(),
		})
	}

	r.Comparisons = compare(r, comparableDelta)

	return r
}

// aggregate computes per-(engine, search type) means. Only succeeded
// cells count toward the denominator.
func aggregate(br *runner.BenchmarkResult) []AggregatedEntry {
	var entries []AggregatedEntry

	for _, engName := range br.EngineNames {
		for _, st := range search.All() {
			agg := AggregatedEntry{
				EngineName: engName,
				SearchType: st,
			}

			var latencies []runner.LatencyStats
			counted := 0

			for _, qID := range br.QueryOrder {
				qr := br.Results[qID][engName]
				if qr.SearchType != st {
					continue
				}
				agg.QueryCount++

				if qr.Error != nil {
					agg.ErrorCount++
					continue
				}

				counted++
				agg.MeanRelevance += qr.Relevance
				agg.MeanNDCG += qr.NDCG
				latencies = append(latencies, qr.Latency)
			}

			if agg.QueryCount == 0 {
				continue
			}

			if counted > 0 {
				n := float64(counted)
				agg.MeanRelevance /= n
				agg.MeanNDCG /= n
				agg.Latency = runner.MergeLatencies(latencies)
			}

			entries = append(entries, agg)
		}
	}

	return entries
}
