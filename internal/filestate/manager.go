package filestate

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/rs/zerolog/log"

	"media-insight-dashboard/internal/store"
)

// CacheState is the on-disk form of the insight cache, keyed like the cache itself.
type CacheState map[string]store.CachedInsight

type Manager interface {
	LoadState() (CacheState, error)
	SaveState(state CacheState) error
	GetStateFilePath() string
}

type fileStateManager struct {
	filePath string
	mu       sync.RWMutex
}

func NewManager(filePath string) Manager {
	return &fileStateManager{
		filePath: filePath,
	}
}

func (m *fileStateManager) LoadState() (CacheState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, err := os.ReadFile(m.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn().Str("file", m.filePath).Msg("Insight cache snapshot not found, starting fresh.")
			return make(CacheState), nil
		}
		log.Error().Err(err).Str("file", m.filePath).Msg("Failed to read insight cache snapshot")
		return nil, err
	}

	if len(data) == 0 {
		log.Warn().Str("file", m.filePath).Msg("Insight cache snapshot is empty, starting fresh.")
		return make(CacheState), nil
	}
	var state CacheState
	if err := json.Unmarshal(data, &state); err != nil {
		log.Error().Err(err).Str("file", m.filePath).Msg("Failed to unmarshal insight cache snapshot")
		return nil, err
	}

	log.Debug().Str("file", m.filePath).Int("entries", len(state)).Msg("Loaded insight cache snapshot")
	return state, nil
}

func (m *fileStateManager) SaveState(state CacheState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal insight cache snapshot")
		return err
	}

	tempFilePath := m.filePath + ".tmp"
	err = os.WriteFile(tempFilePath, data, 0644)
	if err != nil {
		log.Error().Err(err).Str("file", tempFilePath).Msg("Failed to write temporary snapshot file")
		return err
	}

	err = os.Rename(tempFilePath, m.filePath)
	if err != nil {
		log.Error().Err(err).Str("from", tempFilePath).Str("to", m.filePath).Msg("Failed to rename snapshot file")
		// Attempt cleanup
		_ = os.Remove(tempFilePath)
		return err
	}
	log.Debug().Str("file", m.filePath).Int("entries", len(state)).Msg("Saved insight cache snapshot")
	return nil
}

func (m *fileStateManager) GetStateFilePath() string {
	return m.filePath
}
