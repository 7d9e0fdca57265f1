package server

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/vmarkovic/searchmark/internal/bench/spec"
	"github.com/vmarkovic/searchmark/pkg/config/env"
	"github.com/vmarkovic/searchmark/pkg/utils"
)

type Config struct {
	Port        string
	UseHttp2    bool
	CorsOrigins []string
	Engines     map[string]spec.Engine
}

func LoadConfig() (*Config, error) {
	err := env.LoadDotEnv(os.Getenv("ENV"), "cmd/api/.env")
	if err != nil {
		slog.Info("Skipping .env ...", "error", err)
	}

	useHttp2Str := os.Getenv("USE_HTTP2")
	useHttp2 := useHttp2Str == "true"

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := validatePort(port); err != nil {
		return nil, fmt.Errorf("invalid port: %w", err)
	}

	var origins []string
	corsOriginsEnv := os.Getenv("CORS_ORIGINS")
	if corsOriginsEnv != "" {
		origins = strings.Split(corsOriginsEnv, ",")
		for i, origin := range origins {
			origins[i] = strings.TrimSpace(origin)
		}
		origins = utils.RemoveEmptyStrings(origins)
	}

	if len(origins) == 0 {
		origins = []string{"*"}
	}

	engines, err := enginesFromEnv()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:        port,
		UseHttp2:    useHttp2,
		CorsOrigins: origins,
		Engines:     engines,
	}, nil
}

// enginesFromEnv wires one engine per connection URL present in the
// environment. At least one of POSTGRES_URL or PARADEDB_URL must be
// set for the search endpoint to be usable.
func enginesFromEnv() (map[string]spec.Engine, error) {
	engines := make(map[string]spec.Engine)

	if url := os.Getenv("POSTGRES_URL"); url != "" {
		engines["postgres"] = spec.Engine{Type: "postgres", Connection: url}
	}
	if url := os.Getenv("PARADEDB_URL"); url != "" {
		engines["paradedb"] = spec.Engine{Type: "paradedb", Connection: url}
	}
	if url := os.Getenv("ELASTICSEARCH_URL"); url != "" {
		engines["elasticsearch"] = spec.Engine{
			Type:       "elasticsearch",
			Connection: url,
			Index:      os.Getenv("ELASTICSEARCH_INDEX"),
		}
	}

	if len(engines) == 0 {
		return nil, errors.New("no engine connection URLs configured (set POSTGRES_URL and/or PARADEDB_URL)")
	}

	return engines, nil
}

func validatePort(port string) error {
	portNum, err := strconv.Atoi(port)

	if err != nil {
		return errors.New("port must be a number")
	}

	if portNum < 1 || portNum > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	return nil
}
