package spec

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vmarkovic/searchmark/internal/bench/search"
)

func LoadFromFile(path string) (*BenchSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*BenchSpec, error) {
	var s BenchSpec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse spec YAML: %w", err)
	}
	if err := validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

var validEngineTypes = map[string]bool{
	"postgres":      true,
	"paradedb":      true,
	"elasticsearch": true,
}

func validate(s *BenchSpec) error {
	if len(s.Engines) == 0 {
		return fmt.Errorf("spec has no engines")
	}
	if len(s.Queries) == 0 {
		return fmt.Errorf("spec has no queries")
	}

	for name, eng := range s.Engines {
		if eng.Type == "" {
			return fmt.Errorf("engine %q has no type", name)
		}
		if !validEngineTypes[eng.Type] {
			return fmt.Errorf("engine %q has invalid type %q", name, eng.Type)
		}
		if eng.Connection == "" {
			return fmt.Errorf("engine %q has no connection", name)
		}
	}

	for i := range s.Queries {
		q := &s.Queries[i]
		if q.ID == "" {
			return fmt.Errorf("query at index %d has no id", i)
		}
		// Parse accepts the same aliases the CLI does and yields the
		// canonical type.
		typ, err := search.Parse(string(q.Type))
		if err != nil {
			return fmt.Errorf("query %q has invalid search type %q", q.ID, q.Type)
		}
		q.Type = typ
		if q.Text == "" {
			return fmt.Errorf("query %q has no text", q.ID)
		}
	}

	if !s.Workload.Reads && !s.Workload.Writes {
		s.Workload.Reads = true
	}
	if s.Workload.Limit <= 0 {
		s.Workload.Limit = 10
	}
	if s.Workload.Runs <= 0 {
		s.Workload.Runs = 1
	}
	if s.Workload.WriteOps <= 0 {
		s.Workload.WriteOps = 100
	}
	if s.Metrics.NDCGDepth <= 0 {
		s.Metrics.NDCGDepth = 10
	}
	if s.Metrics.ComparableDelta <= 0 {
		s.Metrics.ComparableDelta = 5
	}
	return nil
}
