package corpus

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/vmarkovic/searchmark/internal/catalog"
)

// ErrMalformedLine marks corpus lines that cannot be parsed or fail
// validation. Callers skip these records, they are never fatal.
var ErrMalformedLine = errors.New("malformed corpus line")

// rawProduct mirrors the source schema before category flattening.
// The SNAP dump nests categories as a list of category paths.
type rawProduct struct {
	ASIN        string                 `json:"asin"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Price       string                 `json:"price"`
	Brand       string                 `json:"brand"`
	Categories  []interface{}          `json:"categories"`
	SalesRank   map[string]interface{} `json:"salesRank"`
	ImageURL    string                 `json:"imUrl"`
}

// ParseLine turns one raw corpus line into a validated product record.
// The dump is python-literal dict text, not JSON, so quoting and the
// True/False/None sentinels are rewritten before unmarshalling.
func ParseLine(line string) (catalog.Product, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return catalog.Product{}, ErrMalformedLine
	}

	var raw rawProduct
	if err := json.Unmarshal([]byte(pythonToJSON(line)), &raw); err != nil {
		return catalog.Product{}, ErrMalformedLine
	}

	p := catalog.Product{
		ASIN:        raw.ASIN,
		Title:       raw.Title,
		Description: raw.Description,
		Price:       raw.Price,
		Brand:       raw.Brand,
		Categories:  flattenCategories(raw.Categories),
		SalesRank:   raw.SalesRank,
		ImageURL:    raw.ImageURL,
	}
	p.Normalize()

	if !p.Valid() {
		return catalog.Product{}, ErrMalformedLine
	}
	return p, nil
}

func pythonToJSON(line string) string {
	line = strings.ReplaceAll(line, "'", "\"")
	line = strings.ReplaceAll(line, ": True", ": true")
	line = strings.ReplaceAll(line, ": False", ": false")
	line = strings.ReplaceAll(line, ": None", ": null")
	return line
}

// flattenCategories collapses nested category paths into a single
// ordered list, preserving input order.
func flattenCategories(cats []interface{}) []string {
	if len(cats) == 0 {
		return nil
	}

	out := make([]string, 0, len(cats))
	for _, cat := range cats {
		switch v := cat.(type) {
		case []interface{}:
			for _, sub := range v {
				if s, ok := sub.(string); ok {
					out = append(out, s)
				}
			}
		case string:
			out = append(out, v)
		}
	}
	return out
}
