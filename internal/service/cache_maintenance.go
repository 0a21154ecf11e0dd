package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"media-insight-dashboard/internal/filestate"
	"media-insight-dashboard/internal/store"
)

// SessionIdleTimeout is how long an idle dashboard session is kept.
const SessionIdleTimeout = 2 * time.Hour

// CacheMaintenanceService keeps the insight cache and session table bounded, and persists the
// cache to the snapshot file when one is configured.
type CacheMaintenanceService interface {
	Restore() error
	RunMaintenance(ctx context.Context) error
	Snapshot() error
}

type cacheMaintenanceService struct {
	cache    store.InsightCache
	sessions store.SessionStore
	stateMgr filestate.Manager // nil disables snapshots
	runLock  sync.Mutex
}

func NewCacheMaintenanceService(insights InsightService, sessions store.SessionStore, stateMgr filestate.Manager) CacheMaintenanceService {
	return &cacheMaintenanceService{
		cache:    insights.Cache(),
		sessions: sessions,
		stateMgr: stateMgr,
	}
}

func (s *cacheMaintenanceService) Restore() error {
	if s.stateMgr == nil {
		return nil
	}
	state, err := s.stateMgr.LoadState()
	if err != nil {
		return fmt.Errorf("failed to load insight cache snapshot: %w", err)
	}
	restored := s.cache.Restore(state)
	log.Info().
		Str("file", s.stateMgr.GetStateFilePath()).
		Int("entries", len(state)).
		Int("restored", restored).
		Msg("Insight cache restored")
	return nil
}

func (s *cacheMaintenanceService) RunMaintenance(ctx context.Context) error {
	if !s.runLock.TryLock() {
		log.Warn().Msg("Cache maintenance already in progress, skipping run.")
		return nil
	}
	defer s.runLock.Unlock()

	swept := s.cache.Sweep()
	expired := s.sessions.Expire(SessionIdleTimeout)
	log.Info().
		Int("swept", swept).
		Int("cached", s.cache.Len()).
		Int("expired_sessions", expired).
		Msg("Cache maintenance finished")

	if err := ctx.Err(); err != nil {
		return err
	}
	return s.Snapshot()
}

func (s *cacheMaintenanceService) Snapshot() error {
	if s.stateMgr == nil {
		return nil
	}
	if err := s.stateMgr.SaveState(filestate.CacheState(s.cache.Snapshot())); err != nil {
		return fmt.Errorf("failed to save insight cache snapshot: %w", err)
	}
	return nil
}
