package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/fosman1977/legal-case-management-ai-sub013/internal/anonymize"
	"github.com/fosman1977/legal-case-management-ai-sub013/internal/cache"
	"github.com/fosman1977/legal-case-management-ai-sub013/internal/logging"
	"github.com/fosman1977/legal-case-management-ai-sub013/internal/model"
	"github.com/fosman1977/legal-case-management-ai-sub013/internal/pipeline"
)

// loadConfig merges defaults with the config file and environment.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}
	return cfg, nil
}

// buildOrchestrator assembles the extractor registry, cache, and engines
// from configuration.
func buildOrchestrator(cfg *model.Config) *pipeline.Orchestrator {
	logger := logging.New(cfg.Logging)

	var extractors []anonymize.SpanExtractor
	if cfg.Extractors.EnableBuiltin {
		extractors = append(extractors, anonymize.BuiltinExtractors()...)
	}
	for _, endpoint := range cfg.Extractors.RemoteEndpoints {
		remote := anonymize.NewRemoteExtractor(endpoint, cfg.Extractors.RemoteTimeout, cfg.Extractors.RequestsPerSecond).
			WithLanguage(cfg.Extractors.Language)
		extractors = append(extractors, remote)
	}
	registry := anonymize.NewRegistry(extractors...)

	var store cache.Cache
	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			home, err := os.UserHomeDir()
			if err == nil {
				dir = filepath.Join(home, ".legalintel", "cache")
			}
		}
		if dir != "" {
			store = cache.NewLayeredCache(cfg.Cache.MemoryTTL, dir, cfg.Cache.DiskTTL)
		}
	}

	return pipeline.NewOrchestrator(cfg, registry, store, logger)
}
