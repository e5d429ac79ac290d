// Package store holds the session's cached Dataset behind a read-only
// handle with an explicit reload trigger. Snapshots are immutable; a reload
// builds a fresh Dataset and swaps the pointer, so readers never observe a
// partially loaded state.
package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/oakmere/air-traffic-api/internal/domain"
	"github.com/oakmere/air-traffic-api/internal/observability"
)

// DatasetLoader produces a fresh Dataset from the input sources.
type DatasetLoader interface {
	Load(ctx context.Context) (*domain.Dataset, error)
}

// Store caches the most recent successfully loaded Dataset.
type Store struct {
	loader  DatasetLoader
	logger  *slog.Logger
	metrics *observability.Metrics

	mu sync.RWMutex
	ds *domain.Dataset
}

// New creates an empty Store. Call Reload once before serving queries.
func New(loader DatasetLoader, logger *slog.Logger, metrics *observability.Metrics) *Store {
	return &Store{
		loader:  loader,
		logger:  logger,
		metrics: metrics,
	}
}

// Reload runs a full load pass and swaps in the new snapshot. On failure
// the previous snapshot, if any, stays in place.
func (s *Store) Reload(ctx context.Context) error {
	ds, err := s.loader.Load(ctx)
	if err != nil {
		s.metrics.ReloadFailures.Inc()
		s.logger.Error("dataset reload failed", "error", err)
		return err
	}

	s.mu.Lock()
	s.ds = ds
	s.mu.Unlock()

	s.metrics.Reloads.Inc()
	s.metrics.DatasetRows.Set(float64(len(ds.Annual)))
	s.metrics.DatasetLoaded.Set(1)
	return nil
}

// Snapshot returns the current Dataset, or nil before the first successful
// load. Callers must treat the result as read-only.
func (s *Store) Snapshot() *domain.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds
}

// CheckReadiness returns nil once a dataset snapshot is available.
func (s *Store) CheckReadiness(_ context.Context) error {
	if s.Snapshot() == nil {
		return errors.New("dataset has not been loaded yet")
	}
	return nil
}
