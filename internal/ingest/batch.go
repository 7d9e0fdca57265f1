package ingest

import "github.com/vmarkovic/searchmark/internal/catalog"

const DefaultBatchSize = 5000

// Accumulator groups validated records into fixed-size batches. A full
// batch is handed off by Add and never reused or mutated afterwards.
type Accumulator struct {
	target int
	buf    []catalog.Product
}

func NewAccumulator(target int) *Accumulator {
	if target <= 0 {
		target = DefaultBatchSize
	}
	return &Accumulator{
		target: target,
		buf:    make([]catalog.Product, 0, target),
	}
}

// Add appends one record. When the batch reaches the target size it is
// returned and the accumulator starts a fresh one; otherwise nil.
func (a *Accumulator) Add(p catalog.Product) []catalog.Product {
	a.buf = append(a.buf, p)
	if len(a.buf) < a.target {
		return nil
	}
	full := a.buf
	a.buf = make([]catalog.Product, 0, a.target)
	return full
}

// Flush returns the partial batch at stream end, or nil when empty.
func (a *Accumulator) Flush() []catalog.Product {
	if len(a.buf) == 0 {
		return nil
	}
	partial := a.buf
	a.buf = make([]catalog.Product, 0, a.target)
	return partial
}

func (a *Accumulator) Len() int {
	return len(a.buf)
}
