package catalog

import "strings"

const (
	DefaultBrand = "Unknown"
	DefaultPrice = "0"
)

// Product is one ingestable unit from the Amazon metadata corpus.
// Categories arrive nested in the source and are flattened by the parser.
type Product struct {
	ASIN        string                 `json:"asin"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Price       string                 `json:"price"`
	Brand       string                 `json:"brand"`
	Categories  []string               `json:"categories"`
	SalesRank   map[string]interface{} `json:"salesRank"`
	ImageURL    string                 `json:"imUrl"`
}

// Normalize applies the corpus defaults in place. Empty brand becomes
// "Unknown", an empty or null-sentinel price becomes "0".
func (p *Product) Normalize() {
	p.ASIN = strings.TrimSpace(p.ASIN)
	p.Title = strings.TrimSpace(p.Title)
	if p.Brand == "" {
		p.Brand = DefaultBrand
	}
	if p.Price == "" || p.Price == "null" {
		p.Price = DefaultPrice
	}
}

// Valid reports whether the record may be forwarded to storage.
// Both identifier and title must be non-empty after normalization.
func (p *Product) Valid() bool {
	return p.ASIN != "" && p.Title != ""
}
