// Package search defines the closed set of benchmark search types and
// the per-engine query construction strategies for each of them.
package search

import "fmt"

// Type is one benchmark search category.
type Type string

const (
	Fulltext Type = "fulltext"
	Boolean  Type = "boolean"
	Field    Type = "field"
	Fuzzy    Type = "fuzzy"
	Exact    Type = "exact"
)

// All returns the search types in their canonical benchmark order.
func All() []Type {
	return []Type{Fulltext, Boolean, Field, Fuzzy, Exact}
}

func (t Type) Valid() bool {
	switch t {
	case Fulltext, Boolean, Field, Fuzzy, Exact:
		return true
	}
	return false
}

func Parse(s string) (Type, error) {
	t := Type(s)
	if s == "like" {
		t = Fuzzy
	}
	if !t.Valid() {
		return "", fmt.Errorf("unknown search type %q", s)
	}
	return t, nil
}
