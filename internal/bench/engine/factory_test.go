package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vmarkovic/searchmark/internal/bench/spec"
)

func TestCreateFromSpecUnsupportedType(t *testing.T) {
	_, _, err := CreateFromSpec(context.Background(), map[string]spec.Engine{
		"mystery": {Type: "mongodb", Connection: "mongodb://localhost"},
	})
	assert.ErrorContains(t, err, `unsupported engine type "mongodb"`)
}

func TestCreateFromSpecElasticsearch(t *testing.T) {
	instances, cleanup, err := CreateFromSpec(context.Background(), map[string]spec.Engine{
		"es": {Type: "elasticsearch", Connection: "http://localhost:9200"},
	})
	assert.NoError(t, err, "elasticsearch executors connect lazily")
	defer cleanup()

	inst, ok := instances["es"]
	assert.True(t, ok)
	assert.Equal(t, "es", inst.Executor.Name())
}
