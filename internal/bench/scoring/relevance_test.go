package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelevance(t *testing.T) {
	tests := []struct {
		name  string
		rows  []ResultRow
		query string
		want  float64
	}{
		{
			name:  "empty result set",
			rows:  nil,
			query: "apple",
			want:  0,
		},
		{
			name:  "empty query",
			rows:  []ResultRow{{Title: "Apple iPhone"}},
			query: "",
			want:  0,
		},
		{
			name:  "punctuation-only query",
			rows:  []ResultRow{{Title: "Apple iPhone"}},
			query: "!!! ...",
			want:  0,
		},
		{
			name: "truncated fuzzy term never matches literally",
			rows: []ResultRow{
				{Title: "Samsung Galaxy Phone"},
				{Title: "Apple Watch"},
			},
			query: "samsu",
			want:  0,
		},
		{
			name: "perfect single result scores maximal",
			rows: []ResultRow{
				{Title: "Apple iPhone 13 Pro", Description: "Smartphone", Brand: "Apple"},
			},
			query: "apple iphone",
			want:  100,
		},
		{
			name: "match outside the title scores half",
			rows: []ResultRow{
				{Title: "Phone Case", Description: "Fits Samsung Galaxy models"},
			},
			query: "galaxy",
			want:  50,
		},
		{
			name: "field prefix is stripped before matching",
			rows: []ResultRow{
				{Title: "Apple iPhone 13 Pro"},
			},
			query: "title:apple",
			want:  100,
		},
		{
			name: "matching is case-insensitive",
			rows: []ResultRow{
				{Title: "APPLE IPHONE"},
			},
			query: "Apple",
			want:  100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Relevance(tt.rows, tt.query)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestRelevancePositionalDecay(t *testing.T) {
	match := ResultRow{Title: "Apple iPhone"}
	miss := ResultRow{Title: "Garden Hose"}

	early := Relevance([]ResultRow{match, miss}, "apple")
	late := Relevance([]ResultRow{miss, match}, "apple")

	assert.Greater(t, early, late, "a hit at rank one must outscore the same hit at rank two")
	assert.InDelta(t, 100*1.0/1.5, early, 0.001)
	assert.InDelta(t, 100*0.5/1.5, late, 0.001)
}

func TestRelevanceDeterministic(t *testing.T) {
	rows := []ResultRow{
		{Title: "Samsung Galaxy S21", Brand: "Samsung"},
		{Title: "Galaxy Case", Description: "For Samsung phones"},
	}

	first := Relevance(rows, "samsung galaxy")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Relevance(rows, "samsung galaxy"))
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "lowercases and splits on whitespace",
			query: "Apple iPhone",
			want:  []string{"apple", "iphone"},
		},
		{
			name:  "strips field prefixes",
			query: "title:apple brand:Samsung",
			want:  []string{"apple", "samsung"},
		},
		{
			name:  "drops surrounding punctuation",
			query: `"apple" iphone!`,
			want:  []string{"apple", "iphone"},
		},
		{
			name:  "empty query yields no terms",
			query: "   ",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.query))
		})
	}
}
