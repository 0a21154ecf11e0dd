package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"media-insight-dashboard/internal/model"
	"media-insight-dashboard/internal/repository"
)

var ErrDatasetNotLoaded = errors.New("dataset not loaded")

// DatasetService holds the current dataset. A reload swaps it atomically; readers keep
// whatever dataset they already obtained.
type DatasetService interface {
	Current() (*model.Dataset, error)
	Reload(ctx context.Context) error
}

type datasetService struct {
	repo   repository.DatasetRepository
	mu     sync.RWMutex
	loaded *model.Dataset
	reload sync.Mutex
}

func NewDatasetService(repo repository.DatasetRepository) DatasetService {
	return &datasetService{repo: repo}
}

func (s *datasetService) Current() (*model.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.loaded == nil {
		return nil, ErrDatasetNotLoaded
	}
	return s.loaded, nil
}

func (s *datasetService) Reload(ctx context.Context) error {
	if !s.reload.TryLock() {
		log.Warn().Str("source", s.repo.Describe()).Msg("Dataset reload already in progress, skipping run.")
		return nil
	}
	defer s.reload.Unlock()

	ds, err := s.repo.LoadDataset(ctx)
	if err != nil {
		log.Error().Err(err).Str("source", s.repo.Describe()).Msg("Failed to load dataset")
		return fmt.Errorf("failed to load dataset from %s: %w", s.repo.Describe(), err)
	}

	s.mu.Lock()
	s.loaded = ds
	s.mu.Unlock()

	log.Info().
		Str("source", s.repo.Describe()).
		Int("records", ds.Len()).
		Strs("platforms", ds.Platforms()).
		Time("min_date", ds.MinDate()).
		Time("max_date", ds.MaxDate()).
		Msg("Dataset loaded")
	return nil
}
