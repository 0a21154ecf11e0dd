package elasticsearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/core/closepointintime"
	"github.com/elastic/go-elasticsearch/v8/typedapi/core/search"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/rs/zerolog/log"

	"media-insight-dashboard/config"
	"media-insight-dashboard/internal/model"
	"media-insight-dashboard/internal/repository"
)

const (
	defaultPageSize = 1000
	pitKeepAlive    = "1m"
)

type elasticsearchMentionRepository struct {
	esTypedClient *elasticsearch.TypedClient
	index         string
	maxRows       int
	pageSize      int
}

func NewElasticsearchMentionRepository(cfg *config.Config) (repository.DatasetRepository, error) {
	typedClient, err := elasticsearch.NewTypedClient(clientConfig(cfg.Elasticsearch))
	if err != nil {
		log.Error().Err(err).Msg("Failed to create Typed Elasticsearch Client in Repository")
		return nil, err
	}
	return &elasticsearchMentionRepository{
		esTypedClient: typedClient,
		index:         cfg.Elasticsearch.MentionIndex,
		maxRows:       cfg.Dataset.MaxRows,
		pageSize:      defaultPageSize,
	}, nil
}

func (r *elasticsearchMentionRepository) Describe() string {
	return "elasticsearch:" + r.index
}

// LoadDataset reads the whole index, oldest first, paging through a point in time so that
// documents indexed meanwhile neither shift nor duplicate pages.
func (r *elasticsearchMentionRepository) LoadDataset(ctx context.Context) (*model.Dataset, error) {
	pit, err := r.esTypedClient.OpenPointInTime(r.index).KeepAlive(pitKeepAlive).Do(ctx)
	if err != nil {
		log.Error().Err(err).Str("index", r.index).Msg("Failed to open Elasticsearch point in time")
		return nil, &model.LoadError{Path: r.Describe(), Err: fmt.Errorf("open point in time: %w", err)}
	}
	pitID := pit.Id
	defer func() {
		if _, err := r.esTypedClient.ClosePointInTime().Request(&closepointintime.Request{Id: pitID}).Do(context.Background()); err != nil {
			log.Warn().Err(err).Msg("Failed to close Elasticsearch point in time")
		}
	}()

	var records []model.Record
	var after []types.FieldValue
	for page := 0; ; page++ {
		res, err := r.esTypedClient.Search().Request(r.pageRequest(pitID, after)).Do(ctx)
		if err != nil {
			log.Error().Err(err).Str("index", r.index).Int("page", page).Msg("Error executing Elasticsearch search via TypedClient")
			return nil, &model.LoadError{Path: r.Describe(), Err: fmt.Errorf("elasticsearch search failed: %w", err)}
		}
		if res.PitId != nil {
			pitID = *res.PitId
		}

		for _, hit := range res.Hits.Hits {
			record, err := decodeHit(hit)
			if err != nil {
				log.Error().Err(err).Str("index", r.index).Msg("Malformed mention document")
				return nil, &model.LoadError{Path: r.Describe(), Err: err}
			}
			records = append(records, record)
		}
		if err := repository.CheckRowLimit(r.Describe(), len(records), r.maxRows); err != nil {
			log.Error().Err(err).Int("max_rows", r.maxRows).Msg("Mention index exceeds the row limit")
			return nil, err
		}

		hits := res.Hits.Hits
		if len(hits) < r.pageSize {
			break
		}
		after = hits[len(hits)-1].Sort
	}

	log.Debug().Int("returned_hits", len(records)).Str("index", r.index).Msg("Elasticsearch mention search successful")
	return model.NewDataset(r.Describe(), model.KnownColumns, records), nil
}

func (r *elasticsearchMentionRepository) pageRequest(pitID string, after []types.FieldValue) *search.Request {
	size := r.pageSize
	order := sortorder.Asc
	return &search.Request{
		Query: &types.Query{
			MatchAll: &types.MatchAllQuery{},
		},
		Pit:         &types.PointInTimeReference{Id: pitID, KeepAlive: pitKeepAlive},
		Size:        &size,
		SearchAfter: after,
		Sort: []types.SortCombinations{
			types.SortOptions{
				SortOptions: map[string]types.FieldSort{
					model.ColDate: {Order: &order},
				},
			},
		},
	}
}

// decodeHit turns a document into a record. Documents without a source or Date are malformed.
func decodeHit(hit types.Hit) (model.Record, error) {
	id := ""
	if hit.Id_ != nil {
		id = *hit.Id_
	}
	var record model.Record
	if hit.Source_ == nil {
		return record, fmt.Errorf("document %q has no source", id)
	}
	if err := json.Unmarshal(hit.Source_, &record); err != nil {
		return record, fmt.Errorf("document %q: %w", id, err)
	}
	if record.Date.IsZero() {
		return record, fmt.Errorf("document %q: %w", id, errMissingDate)
	}
	return record, nil
}

var errMissingDate = errors.New("missing " + model.ColDate)
