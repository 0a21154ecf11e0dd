package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"media-insight-dashboard/config"
	"media-insight-dashboard/internal/dataset"
	"media-insight-dashboard/internal/elasticsearch"
	"media-insight-dashboard/internal/filestate"
	"media-insight-dashboard/internal/repository"
	"media-insight-dashboard/internal/service"
	"media-insight-dashboard/internal/store"
	"media-insight-dashboard/internal/timescaledb"
)

// newDatasetRepository picks the dataset source. The returned close func is never nil.
func newDatasetRepository(ctx context.Context, cfg *config.Config) (repository.DatasetRepository, func(), error) {
	noop := func() {}
	switch cfg.Dataset.Source {
	case "file", "":
		return dataset.NewFileDatasetRepository(cfg.Dataset.FilePath), noop, nil
	case "postgres", "timescaledb":
		mentionStore, err := timescaledb.NewMentionStore(ctx, cfg)
		if err != nil {
			return nil, noop, err
		}
		return mentionStore, mentionStore.Close, nil
	case "elasticsearch":
		repo, err := elasticsearch.NewElasticsearchMentionRepository(cfg)
		if err != nil {
			return nil, noop, err
		}
		return repo, noop, nil
	default:
		return nil, noop, &config.ConfigError{Key: "DATASET_SOURCE", Reason: fmt.Sprintf("unsupported source %q", cfg.Dataset.Source)}
	}
}

func newLLMService(cfg *config.Config) (service.LLMService, error) {
	if err := cfg.RequireAPIKey(); err != nil {
		log.Error().Err(err).Msg("Completion service credential missing")
		return nil, err
	}
	return service.NewLLMService(cfg)
}

func newInsightCache(cfg *config.Config) store.InsightCache {
	return store.NewInsightCache(cfg.Insight.CacheSize, cfg.Insight.CacheTTL)
}

// newFileStateManager returns nil when no snapshot file is configured.
func newFileStateManager(cfg *config.Config) filestate.Manager {
	if cfg.FileState.FilePath == "" {
		return nil
	}
	return filestate.NewManager(cfg.FileState.FilePath)
}
