// Package scoring computes engine-agnostic result quality signals: a
// term-overlap relevance score with positional decay, and NDCG@K. All
// functions are pure; identical inputs always produce identical scores.
package scoring

import (
	"strings"
	"unicode"
)

// ResultRow is the textual projection of one result the scorer reads.
type ResultRow struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Brand       string `json:"brand"`
}

// Scoring scheme, applied per query term per row: whole-word match
// anywhere in the row +3, whole-word match in the title +3 more.
const (
	wordPoints     = 3
	titleWordBonus = 3
	perTermMax     = wordPoints + titleWordBonus
)

// Relevance scores a result set against the originating query text on
// a 0-100 scale. Each row's term score decays by 1/(position+1) and
// the total is normalized against the decay-weighted theoretical
// maximum, so a single perfect result at rank one scores 100.
//
// Matching is literal, case-insensitive and whole-word. A truncated
// term like "samsu" scores zero against "Samsung"; fuzzy correction
// is the engine's job, not the scorer's.
func Relevance(rows []ResultRow, query string) float64 {
	terms := Tokenize(query)
	if len(rows) == 0 || len(terms) == 0 {
		return 0
	}

	var total, max float64
	for i, row := range rows {
		weight := 1.0 / float64(i+1)
		total += float64(rowScore(row, terms)) * weight
		max += float64(len(terms)*perTermMax) * weight
	}
	if max == 0 {
		return 0
	}
	return 100 * total / max
}

func rowScore(row ResultRow, terms []string) int {
	haystack := strings.ToLower(row.Title + " " + row.Description + " " + row.Brand)
	words := wordSet(haystack)
	titleWords := wordSet(strings.ToLower(row.Title))

	score := 0
	for _, term := range terms {
		if !words[term] {
			continue
		}
		score += wordPoints
		if titleWords[term] {
			score += titleWordBonus
		}
	}
	return score
}

// Tokenize lowercases the query, splits on whitespace, strips
// field:term prefixes down to the term and drops punctuation.
func Tokenize(query string) []string {
	var terms []string
	for _, raw := range strings.Fields(strings.ToLower(query)) {
		if idx := strings.Index(raw, ":"); idx >= 0 {
			raw = raw[idx+1:]
		}
		term := strings.TrimFunc(raw, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}

// wordSet splits text on non-alphanumeric boundaries so punctuation
// never hides a whole-word match.
func wordSet(text string) map[string]bool {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}
