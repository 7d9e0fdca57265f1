package engine

import (
	"context"
	"fmt"

	"github.com/vmarkovic/searchmark/internal/bench/spec"
	"github.com/vmarkovic/searchmark/internal/storage"
	"github.com/vmarkovic/searchmark/internal/storage/pg"
)

// Instance pairs an executor with the query dialect it expects.
type Instance struct {
	Executor Executor
	Kind     storage.EngineKind
}

// CreateFromSpec builds one executor per configured engine. The
// returned cleanup closes every pool that was opened, including on
// partial failure.
func CreateFromSpec(ctx context.Context, engines map[string]spec.Engine) (map[string]Instance, func(), error) {
	instances := make(map[string]Instance, len(engines))
	var cleanups []func()

	cleanup := func() {
		for _, c := range cleanups {
			c()
		}
	}

	for name, eng := range engines {
		switch eng.Type {
		case "postgres", "paradedb":
			pool, err := pg.NewConnectionPool(ctx, pg.PoolConfig{ConnStr: eng.Connection})
			if err != nil {
				cleanup()
				return nil, nil, fmt.Errorf("create pg pool for %q: %w", name, err)
			}
			cleanups = append(cleanups, pool.Close)

			kind := storage.EngineNative
			if eng.Type == "paradedb" {
				kind = storage.EngineBM25
			}
			instances[name] = Instance{Executor: NewPgExecutor(name, pool), Kind: kind}

		case "elasticsearch":
			index := eng.Index
			if index == "" {
				index = "products"
			}
			// The ES executor reads the bound text/limit parameters,
			// so the native dialect serves as its carrier.
			instances[name] = Instance{
				Executor: NewEsExecutor(name, eng.Connection, index),
				Kind:     storage.EngineNative,
			}

		default:
			cleanup()
			return nil, nil, fmt.Errorf("unsupported engine type %q for %q", eng.Type, name)
		}
	}

	return instances, cleanup, nil
}
