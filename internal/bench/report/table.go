package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"
)

func WriteTable(r *Report, w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\n=== Search Engine Benchmark (run %s) ===\n\n", r.Meta.RunID)

	writeAggregatedTable(tw, r)
	writeLatencyTable(tw, r)
	if len(r.Writes) > 0 {
		writeWritesTable(tw, r)
	}
	writePerQueryTable(tw, r)
	writeComparisons(tw, r)

	tw.Flush()
}

func writeAggregatedTable(tw *tabwriter.Writer, r *Report) {
	fmt.Fprintf(tw, "Aggregated Results (mean across succeeded queries)\n\n")

	header := []string{"Engine", "Type", "Relevance", "NDCG", "Mean", "Errors"}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	fmt.Fprintln(tw, separator(len(header)))

	for _, agg := range r.Aggregated {
		row := []string{
			agg.EngineName,
			string(agg.SearchType),
			fmt.Sprintf("%.2f", agg.MeanRelevance),
			fmt.Sprintf("%.2f", agg.MeanNDCG),
			fmtDuration(agg.Latency.Mean),
			fmt.Sprintf("%d/%d", agg.ErrorCount, agg.QueryCount),
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	fmt.Fprintln(tw)
}

func writeLatencyTable(tw *tabwriter.Writer, r *Report) {
	fmt.Fprintf(tw, "Latency Statistics\n\n")

	header := []string{"Engine", "Type", "Min", "p50", "p95", "p99", "Max", "Mean", "Stddev", "Samples"}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	fmt.Fprintln(tw, separator(len(header)))

	for _, agg := range r.Aggregated {
		s := agg.Latency
		row := []string{
			agg.EngineName,
			string(agg.SearchType),
			fmtDuration(s.Min),
			fmtDuration(s.P50),
			fmtDuration(s.P95),
			fmtDuration(s.P99),
			fmtDuration(s.Max),
			fmtDuration(s.Mean),
			fmtDuration(s.Stddev),
			fmt.Sprintf("%d", s.SampleCount),
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	fmt.Fprintln(tw)
}

func writeWritesTable(tw *tabwriter.Writer, r *Report) {
	fmt.Fprintf(tw, "Write Workload\n\n")

	header := []string{"Engine", "Category", "Ops", "Errors", "Elapsed", "Ops/sec"}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	fmt.Fprintln(tw, separator(len(header)))

	for _, w := range r.Writes {
		row := []string{
			w.EngineName,
			w.Category,
			fmt.Sprintf("%d", w.Ops),
			fmt.Sprintf("%d", w.Errors),
			fmtDuration(w.Elapsed),
			fmt.Sprintf("%.0f", w.Throughput),
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	fmt.Fprintln(tw)
}

func writePerQueryTable(tw *tabwriter.Writer, r *Report) {
	fmt.Fprintf(tw, "Per-Query Results\n\n")

	header := []string{"Query", "Type", "Engine", "Relevance", "NDCG", "Hits", "p50", "Status"}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	fmt.Fprintln(tw, separator(len(header)))

	for _, e := range r.PerQuery {
		status := "OK"
		if e.Error != "" {
			status = "ERR"
		}
		row := []string{
			e.QueryID,
			string(e.SearchType),
			e.EngineName,
			fmt.Sprintf("%.2f", e.Relevance),
			fmt.Sprintf("%.2f", e.NDCG),
			fmt.Sprintf("%d", e.TotalMatches),
			fmtDuration(e.Latency.P50),
			status,
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	fmt.Fprintln(tw)
}

func writeComparisons(tw *tabwriter.Writer, r *Report) {
	fmt.Fprintf(tw, "Verdicts\n\n")
	for _, c := range r.Comparisons {
		fmt.Fprintf(tw, "%s\n", c.Describe())
	}
	fmt.Fprintln(tw)
}

func separator(n int) string {
	sep := make([]string, n)
	for i := range sep {
		sep[i] = "---"
	}
	return strings.Join(sep, "\t")
}

func fmtDuration(d time.Duration) string {
	if d == 0 {
		return "-"
	}
	if d < time.Millisecond {
		return fmt.Sprintf("%.1fµs", float64(d.Microseconds()))
	}
	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
