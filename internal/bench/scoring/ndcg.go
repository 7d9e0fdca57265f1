package scoring

import (
	"math"
	"sort"
	"strings"
)

// DefaultNDCGDepth is the top-K truncation for NDCG.
const DefaultNDCGDepth = 10

// Field weights for the graded relevance of one row. A term matching
// as a whole word contributes its field weight; the grade normalizes
// against termCount * 6 so it stays in [0, 1].
const (
	titleWeight       = 3
	brandWeight       = 2
	descriptionWeight = 1
	gradeDenominator  = titleWeight + brandWeight + descriptionWeight
)

// NDCG computes Normalized Discounted Cumulative Gain at depth k on a
// 0-100 scale: 100 when the results already appear in ideal relevance
// order, 0 when nothing is relevant at all.
func NDCG(rows []ResultRow, query string, k int) float64 {
	if k <= 0 {
		k = DefaultNDCGDepth
	}
	terms := Tokenize(query)
	if len(rows) == 0 || len(terms) == 0 {
		return 0
	}

	if len(rows) > k {
		rows = rows[:k]
	}

	grades := make([]float64, len(rows))
	for i, row := range rows {
		grades[i] = grade(row, terms)
	}

	dcg := discountedGain(grades)

	ideal := make([]float64, len(grades))
	copy(ideal, grades)
	sort.Sort(sort.Reverse(sort.Float64Slice(ideal)))
	idcg := discountedGain(ideal)

	if idcg == 0 {
		return 0
	}
	return 100 * dcg / idcg
}

// grade computes one row's graded relevance in [0, 1]: a weighted sum
// of per-term whole-word indicators across title, brand, description.
func grade(row ResultRow, terms []string) float64 {
	titleWords := wordSet(strings.ToLower(row.Title))
	brandWords := wordSet(strings.ToLower(row.Brand))
	descWords := wordSet(strings.ToLower(row.Description))

	score := 0
	for _, term := range terms {
		if titleWords[term] {
			score += titleWeight
		}
		if brandWords[term] {
			score += brandWeight
		}
		if descWords[term] {
			score += descriptionWeight
		}
	}
	return float64(score) / float64(len(terms)*gradeDenominator)
}

func discountedGain(grades []float64) float64 {
	var dcg float64
	for i, rel := range grades {
		dcg += (math.Pow(2, rel) - 1) / math.Log2(float64(i+2))
	}
	return dcg
}
