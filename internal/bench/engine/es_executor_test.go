package engine

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmarkovic/searchmark/internal/bench/search"
)

func TestEsExecutorExecute(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"hits": {
				"total": {"value": 2},
				"hits": [
					{"_source": {"title": "Samsung Galaxy S21", "brand": "Samsung"}},
					{"_source": {"title": "Galaxy Case", "description": "Fits Galaxy phones"}}
				]
			}
		}`))
	}))
	defer srv.Close()

	exec := NewEsExecutor("es", srv.URL, "products")
	result, err := exec.Execute(context.Background(), search.Query{
		SQL:  "ignored for elasticsearch",
		Args: []interface{}{"galaxy", 10},
	})
	require.NoError(t, err)

	assert.Equal(t, "/products/_search", gotPath)
	assert.Equal(t, float64(10), gotBody["size"])

	assert.Equal(t, int64(2), result.TotalMatches)
	require.Len(t, result.Rows, 2)
	assert.Equal(t, "Samsung Galaxy S21", result.Rows[0].Title)
	assert.Equal(t, "Samsung", result.Rows[0].Brand)
	assert.Equal(t, "Fits Galaxy phones", result.Rows[1].Description)
	assert.Greater(t, result.Latency.Nanoseconds(), int64(0))
}

func TestEsExecutorErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": "index_not_found_exception"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	exec := NewEsExecutor("es", srv.URL, "missing")
	_, err := exec.Execute(context.Background(), search.Query{
		Args: []interface{}{"galaxy", 10},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestEsRequestBody(t *testing.T) {
	_, err := esRequestBody(search.Query{Args: []interface{}{"text only"}})
	assert.Error(t, err, "limit parameter is required")

	_, err = esRequestBody(search.Query{Args: []interface{}{42, 10}})
	assert.Error(t, err, "query text must be a string")

	body, err := esRequestBody(search.Query{Args: []interface{}{"galaxy", 5}})
	require.NoError(t, err)
	assert.Contains(t, string(body), `"multi_match"`)
	assert.Contains(t, string(body), `"title^3"`)
}
