package search

import (
	"fmt"
	"strings"

	"github.com/vmarkovic/searchmark/internal/storage"
)

// Query is one ready-to-execute engine statement with bound parameters.
type Query struct {
	SQL  string
	Args []interface{}
}

// Builder maps logical query text to an engine statement. Builders are
// pure: same input, same statement.
type Builder func(text string, limit int) Query

// Builders returns the strategy table for one engine kind. The table is
// total over the search types; a missing entry is a programming error.
func Builders(kind storage.EngineKind) map[Type]Builder {
	if kind == storage.EngineBM25 {
		return bm25Builders
	}
	return nativeBuilders
}

// Build resolves and applies one strategy.
func Build(kind storage.EngineKind, t Type, text string, limit int) (Query, error) {
	builder, ok := Builders(kind)[t]
	if !ok {
		return Query{}, fmt.Errorf("no %s builder for search type %q", kind, t)
	}
	return builder(text, limit), nil
}

// splitFieldQuery splits "field:term" syntax, defaulting to title.
// Only known searchable fields are honored, anything else stays part
// of the term.
func splitFieldQuery(text string) (field, term string) {
	field = "title"
	term = text

	idx := strings.Index(text, ":")
	if idx <= 0 {
		return field, term
	}
	candidate := strings.ToLower(strings.TrimSpace(text[:idx]))
	switch candidate {
	case "title", "description", "brand":
		return candidate, strings.TrimSpace(text[idx+1:])
	}
	return field, term
}

// booleanToTsquery rewrites an AND/OR/NOT expression into tsquery
// operator syntax. Bare adjacent terms are conjoined.
func booleanToTsquery(expr string) string {
	isOp := func(s string) bool { return s == "&" || s == "|" || s == "!" }

	var out []string
	for _, tok := range strings.Fields(expr) {
		switch strings.ToUpper(tok) {
		case "AND":
			out = append(out, "&")
		case "OR":
			out = append(out, "|")
		case "NOT":
			// A negation directly after a term is an implicit AND NOT.
			if len(out) > 0 && !isOp(out[len(out)-1]) {
				out = append(out, "&")
			}
			out = append(out, "!")
		default:
			if len(out) > 0 && !isOp(out[len(out)-1]) {
				out = append(out, "&")
			}
			out = append(out, tok)
		}
	}
	return strings.Join(out, " ")
}
