package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"media-insight-dashboard/config"
	"media-insight-dashboard/internal/model"
)

type batchRecorder struct {
	batches []int
	failAt  int
}

func (b *batchRecorder) StoreRecords(ctx context.Context, records []model.Record) (int64, error) {
	b.batches = append(b.batches, len(records))
	if b.failAt > 0 && len(b.batches) == b.failAt {
		return 0, errors.New("disk full")
	}
	return int64(len(records)), nil
}

func sampleRecords(n int) []model.Record {
	out := make([]model.Record, n)
	for i := range out {
		out[i] = model.Record{Date: time.Date(2024, 1, 1+i%28, 0, 0, 0, 0, time.UTC), Platform: "X", Engagements: int64(i)}
	}
	return out
}

func TestImportRecords_Batches(t *testing.T) {
	w := &batchRecorder{}
	written, err := importRecords(context.Background(), w, sampleRecords(25), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(25), written)
	assert.Equal(t, []int{10, 10, 5}, w.batches)

	w = &batchRecorder{}
	written, err = importRecords(context.Background(), w, sampleRecords(7), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(7), written)
	assert.Equal(t, []int{7}, w.batches)
}

func TestImportRecords_StopsOnError(t *testing.T) {
	w := &batchRecorder{failAt: 2}
	written, err := importRecords(context.Background(), w, sampleRecords(25), 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch 10-20")
	assert.Equal(t, int64(10), written)
}

func TestNewDatasetRepository_UnknownSource(t *testing.T) {
	_, closeRepo, err := newDatasetRepository(context.Background(), &config.Config{Dataset: config.DatasetConfig{Source: "ftp"}})
	var cfgErr *config.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "DATASET_SOURCE", cfgErr.Key)
	assert.NotNil(t, closeRepo)
}

func TestNewLLMService_RequiresAPIKey(t *testing.T) {
	_, err := newLLMService(&config.Config{LLM: config.LLMConfig{Provider: "openrouter"}})
	var cfgErr *config.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "LLM_API_KEY", cfgErr.Key)
}

func TestSetupLogger(t *testing.T) {
	setupLogger(config.LogConfig{Level: "debug"})
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	setupLogger(config.LogConfig{Level: "nonsense"})
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
