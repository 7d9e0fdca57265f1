package server

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vmarkovic/searchmark/internal/bench/engine"
	"github.com/vmarkovic/searchmark/internal/bench/report"
	"github.com/vmarkovic/searchmark/internal/bench/runner"
	"github.com/vmarkovic/searchmark/internal/bench/scoring"
	"github.com/vmarkovic/searchmark/internal/bench/search"
	"github.com/vmarkovic/searchmark/internal/bench/spec"
	"github.com/vmarkovic/searchmark/pkg/metrics"
)

type searchResponse struct {
	Engine       string              `json:"engine"`
	SearchType   search.Type         `json:"search_type"`
	Query        string              `json:"query"`
	TotalMatches int64               `json:"total_matches"`
	LatencyMs    float64             `json:"latency_ms"`
	Relevance    float64             `json:"relevance"`
	NDCG         float64             `json:"ndcg"`
	Results      []scoring.ResultRow `json:"results"`
}

func (s *Server) bindRoutes() {
	s.Echo.GET("/api/search", s.searchHandler)
	s.Echo.POST("/api/benchmark", s.benchmarkHandler)
	s.Echo.GET("/healthz", s.healthHandler)
	s.Echo.GET("/metrics", echo.WrapHandler(metrics.Handler()))
}

func (s *Server) searchHandler(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "q parameter is required"})
	}

	engName := c.QueryParam("engine")
	inst, ok := s.instances[engName]
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unknown engine: " + engName})
	}

	searchType := search.Fulltext
	if t := c.QueryParam("type"); t != "" {
		parsed, err := search.Parse(t)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		searchType = parsed
	}

	limit := runner.DefaultLimit
	if l := c.QueryParam("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed < 1 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "limit must be a positive number"})
		}
		limit = parsed
	}

	q, err := search.Build(inst.Kind, searchType, query, limit)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	exec, err := inst.Executor.Execute(c.Request().Context(), q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "query execution failed"})
	}

	return c.JSON(http.StatusOK, searchResponse{
		Engine:       engName,
		SearchType:   searchType,
		Query:        query,
		TotalMatches: exec.TotalMatches,
		LatencyMs:    float64(exec.Latency.Microseconds()) / 1000,
		Relevance:    scoring.Relevance(exec.Rows, query),
		NDCG:         scoring.NDCG(exec.Rows, query, scoring.DefaultNDCGDepth),
		Results:      exec.Rows,
	})
}

// benchmarkHandler runs a full benchmark matrix from a posted workload
// descriptor. The body is the same YAML document cmd/bench reads from
// disk; JSON bodies parse too.
func (s *Server) benchmarkHandler(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "failed to read request body"})
	}

	bs, err := spec.Parse(body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	instances, cleanup, err := engine.CreateFromSpec(c.Request().Context(), bs.Engines)
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
	defer cleanup()

	r := runner.New(runner.ConfigFromSpec(bs))
	br, err := r.Run(c.Request().Context(), bs, instances)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, report.Generate(br, bs.Metrics.ComparableDelta))
}

type pinger interface {
	Ping(ctx context.Context) error
}

func (s *Server) healthHandler(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	status := make(map[string]string, len(s.instances))
	healthy := true

	for name, inst := range s.instances {
		p, ok := inst.Executor.(pinger)
		if !ok {
			status[name] = "unknown"
			continue
		}
		if err := p.Ping(ctx); err != nil {
			status[name] = "down"
			healthy = false
			continue
		}
		status[name] = "up"
	}

	code := http.StatusOK
	if !healthy {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, status)
}
