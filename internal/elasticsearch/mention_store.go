package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/rs/zerolog/log"

	"media-insight-dashboard/config"
	"media-insight-dashboard/internal/model"
	"media-insight-dashboard/internal/repository"
)

type elasticMentionStore struct {
	client *elasticsearch.Client
	cfg    config.ElasticsearchConfig
}

// NewElasticMentionStore bulk indexes records into the mention index.
func NewElasticMentionStore(client *elasticsearch.Client, cfg config.ElasticsearchConfig) repository.RecordWriter {
	return &elasticMentionStore{client: client, cfg: cfg}
}

func (s *elasticMentionStore) StoreRecords(ctx context.Context, records []model.Record) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	var countFailed uint64
	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Client:        s.client,
		Index:         s.cfg.MentionIndex,
		NumWorkers:    s.cfg.BulkWorkers,
		FlushBytes:    s.cfg.FlushBytes,
		FlushInterval: s.cfg.FlushInterval,
		OnError: func(ctx context.Context, err error) {
			log.Error().Err(err).Msg("BulkIndexer error")
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("Error creating the BulkIndexer")
		return 0, fmt.Errorf("failed to create bulk indexer: %w", err)
	}

	for _, record := range records {
		data, err := json.Marshal(record)
		if err != nil {
			log.Error().Err(err).Msg("Failed to marshal record for Elasticsearch")
			atomic.AddUint64(&countFailed, 1)
			continue
		}
		err = bi.Add(ctx, esutil.BulkIndexerItem{
			Action: "index",
			Body:   bytes.NewReader(data),
			OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
				atomic.AddUint64(&countFailed, 1)
				if err != nil {
					log.Error().Err(err).Msg("Bulk item failed")
				} else {
					log.Error().Str("type", res.Error.Type).Str("reason", res.Error.Reason).Msg("Bulk item rejected")
				}
			},
		})
		if err != nil {
			log.Error().Err(err).Msg("Failed to add item to BulkIndexer")
			atomic.AddUint64(&countFailed, 1)
		}
	}

	if err := bi.Close(ctx); err != nil {
		log.Error().Err(err).Msg("Error closing BulkIndexer")
		return 0, err
	}

	stats := bi.Stats()
	log.Info().
		Str("index", s.cfg.MentionIndex).
		Uint64("indexed", stats.NumIndexed).
		Uint64("added", stats.NumAdded).
		Uint64("flushed", stats.NumFlushed).
		Uint64("failed", stats.NumFailed).
		Uint64("requests", stats.NumRequests).
		Msg("Elasticsearch BulkIndexer stats")

	if failed := atomic.LoadUint64(&countFailed); failed > 0 {
		return int64(stats.NumIndexed), fmt.Errorf("%d of %d records failed during bulk indexing", failed, len(records))
	}
	return int64(stats.NumIndexed), nil
}
