package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vmarkovic/searchmark/internal/bench/scoring"
	"github.com/vmarkovic/searchmark/internal/bench/search"
)

// EsExecutor lets an Elasticsearch products index participate as an
// extra reference engine. It maps the bound parameters of the logical
// query (text, limit) onto a multi_match request; the SQL text is a
// Postgres dialect and is ignored here.
type EsExecutor struct {
	name    string
	baseURL string
	index   string
	client  *http.Client
}

func NewEsExecutor(name, baseURL, index string) *EsExecutor {
	return &EsExecutor{
		name:    name,
		baseURL: baseURL,
		index:   index,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (e *EsExecutor) Execute(ctx context.Context, query search.Query) (*Execution, error) {
	body, err := esRequestBody(query)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s/_search", e.baseURL, e.index)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("es create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("es request: %w", err)
	}
	defer resp.Body.Close()
	latency := time.Since(start)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("es read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("es status %d: %s", resp.StatusCode, string(raw))
	}

	var esResp esSearchResponse
	if err := json.Unmarshal(raw, &esResp); err != nil {
		return nil, fmt.Errorf("es parse response: %w", err)
	}

	rows := make([]scoring.ResultRow, 0, len(esResp.Hits.Hits))
	for _, hit := range esResp.Hits.Hits {
		rows = append(rows, scoring.ResultRow{
			Title:       hit.Source.Title,
			Description: hit.Source.Description,
			Brand:       hit.Source.Brand,
		})
	}

	return &Execution{
		Rows:         rows,
		TotalMatches: esResp.Hits.Total.Value,
		Latency:      latency,
	}, nil
}

func (e *EsExecutor) Name() string { return e.name }
func (e *EsExecutor) Close() error { return nil }

func esRequestBody(query search.Query) ([]byte, error) {
	if len(query.Args) < 2 {
		return nil, fmt.Errorf("es executor needs (text, limit) parameters, got %d", len(query.Args))
	}
	text, ok := query.Args[0].(string)
	if !ok {
		return nil, fmt.Errorf("es executor: first parameter is not query text")
	}

	body := map[string]interface{}{
		"size": query.Args[1],
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  text,
				"fields": []string{"title^3", "description", "brand^2"},
			},
		},
	}
	return json.Marshal(body)
}

type esSearchResponse struct {
	Hits esHits `json:"hits"`
}

type esHits struct {
	Total esTotal `json:"total"`
	Hits  []esHit `json:"hits"`
}

type esTotal struct {
	Value int64 `json:"value"`
}

type esHit struct {
	Source esSource `json:"_source"`
}

type esSource struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Brand       string `json:"brand"`
}
